package service

import (
	"fmt"
	"time"

	"branch-scheduler/internal/models"
	"branch-scheduler/internal/repository"

	"github.com/sirupsen/logrus"
)

// MeetingScheduleService covers the administrative path: privileged users
// create and delete room calendar entries directly, bypassing the approval
// workflow. Rows derived from reservations stay under the state machine's
// control and cannot be deleted here.
type MeetingScheduleService struct {
	repo     repository.MeetingScheduleRepository
	resRepo  repository.ReservationRepository
	roomRepo repository.MeetingRoomRepository
	permSvc  *PermissionService
	logger   *logrus.Logger
}

func NewMeetingScheduleService(
	repo repository.MeetingScheduleRepository,
	resRepo repository.ReservationRepository,
	roomRepo repository.MeetingRoomRepository,
	permSvc *PermissionService,
	logger *logrus.Logger,
) *MeetingScheduleService {
	return &MeetingScheduleService{
		repo:     repo,
		resRepo:  resRepo,
		roomRepo: roomRepo,
		permSvc:  permSvc,
		logger:   logger,
	}
}

func (s *MeetingScheduleService) Create(actor *models.SystemUser, schedule *models.MeetingSchedule) (*models.MeetingSchedule, error) {
	if err := s.permSvc.RequireEdit(actor, models.FunctionMeetingSchedules); err != nil {
		return nil, err
	}
	if err := validateReservationFields(schedule.StartTime, schedule.EndTime, schedule.MeetingContent); err != nil {
		return nil, err
	}

	room, err := s.roomRepo.GetByID(schedule.RoomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, fmt.Errorf("meeting room %d: %w", schedule.RoomID, ErrNotFound)
	}

	if err := s.repo.Create(schedule); err != nil {
		s.logger.WithError(err).Error("Failed to create meeting schedule")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"id":      schedule.ID,
		"room_id": schedule.RoomID,
	}).Info("Meeting schedule created directly")
	return schedule, nil
}

func (s *MeetingScheduleService) Delete(actor *models.SystemUser, id uint) error {
	if err := s.permSvc.RequireEdit(actor, models.FunctionMeetingSchedules); err != nil {
		return err
	}

	schedule, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if schedule == nil {
		return fmt.Errorf("meeting schedule %d: %w", id, ErrNotFound)
	}

	// Reservation-derived rows only leave through revoke or cascade delete.
	linked, err := s.resRepo.GetByMeetingScheduleID(id)
	if err != nil {
		return err
	}
	if linked != nil {
		return fmt.Errorf("meeting schedule %d belongs to reservation %d: %w", id, linked.ID, ErrConflict)
	}

	return s.repo.Delete(id)
}

func (s *MeetingScheduleService) ListByRoom(roomID uint, from, to time.Time) ([]models.MeetingSchedule, error) {
	return s.repo.ListByRoom(roomID, from, to)
}

func (s *MeetingScheduleService) ListOverlapping(from, to time.Time) ([]models.MeetingSchedule, error) {
	return s.repo.ListOverlapping(from, to)
}
