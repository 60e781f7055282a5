package service

import (
	"fmt"

	"branch-scheduler/internal/models"
	"branch-scheduler/internal/repository"

	"github.com/sirupsen/logrus"
)

type MeetingRoomService struct {
	repo    repository.MeetingRoomRepository
	resRepo repository.ReservationRepository
	msRepo  repository.MeetingScheduleRepository
	permSvc *PermissionService
	logger  *logrus.Logger
}

func NewMeetingRoomService(
	repo repository.MeetingRoomRepository,
	resRepo repository.ReservationRepository,
	msRepo repository.MeetingScheduleRepository,
	permSvc *PermissionService,
	logger *logrus.Logger,
) *MeetingRoomService {
	return &MeetingRoomService{
		repo:    repo,
		resRepo: resRepo,
		msRepo:  msRepo,
		permSvc: permSvc,
		logger:  logger,
	}
}

func (s *MeetingRoomService) Create(actor *models.SystemUser, room *models.MeetingRoom) (*models.MeetingRoom, error) {
	if err := s.permSvc.RequireEdit(actor, models.FunctionMeetingRooms); err != nil {
		return nil, err
	}
	if room.Name == "" {
		return nil, fmt.Errorf("room name: %w", ErrMissingContent)
	}

	existing, err := s.repo.GetByName(room.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("room name %s already taken: %w", room.Name, ErrConflict)
	}

	if err := s.repo.Create(room); err != nil {
		s.logger.WithError(err).Error("Failed to create meeting room")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"id":   room.ID,
		"name": room.Name,
	}).Info("Meeting room created")
	return room, nil
}

func (s *MeetingRoomService) Update(actor *models.SystemUser, id uint, name, location string) (*models.MeetingRoom, error) {
	if err := s.permSvc.RequireEdit(actor, models.FunctionMeetingRooms); err != nil {
		return nil, err
	}

	room, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, fmt.Errorf("meeting room %d: %w", id, ErrNotFound)
	}
	if name == "" {
		return nil, fmt.Errorf("room name: %w", ErrMissingContent)
	}

	if name != room.Name {
		existing, err := s.repo.GetByName(name)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, fmt.Errorf("room name %s already taken: %w", name, ErrConflict)
		}
	}

	room.Name = name
	room.Location = location
	if err := s.repo.Update(room); err != nil {
		return nil, err
	}
	return room, nil
}

// Delete refuses while reservations or meeting schedules reference the room.
func (s *MeetingRoomService) Delete(actor *models.SystemUser, id uint) error {
	if err := s.permSvc.RequireEdit(actor, models.FunctionMeetingRooms); err != nil {
		return err
	}

	room, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if room == nil {
		return fmt.Errorf("meeting room %d: %w", id, ErrNotFound)
	}

	resCount, err := s.resRepo.CountByRoom(id)
	if err != nil {
		return err
	}
	if resCount > 0 {
		return fmt.Errorf("room %d still has %d reservations: %w", id, resCount, ErrConflict)
	}

	msCount, err := s.msRepo.CountByRoom(id)
	if err != nil {
		return err
	}
	if msCount > 0 {
		return fmt.Errorf("room %d still has %d meeting schedules: %w", id, msCount, ErrConflict)
	}

	return s.repo.Delete(id)
}

func (s *MeetingRoomService) GetAll() ([]models.MeetingRoom, error) {
	return s.repo.GetAll()
}
