package service

import (
	"fmt"
	"time"

	"branch-scheduler/internal/models"
	"branch-scheduler/internal/repository"
	"branch-scheduler/pkg/datespan"

	"github.com/sirupsen/logrus"
)

// ReservationService drives the meeting-room reservation lifecycle:
// pending -> approved or rejected, approved -> pending again via revoke.
// A meeting-schedule row derived from a reservation exists exactly while
// the reservation is approved; every transition keeps that in step.
//
// Overlapping pending or approved reservations for the same room are
// allowed to coexist as requests; resolving the conflict is the approver's
// decision, not a machine check.
type ReservationService struct {
	resRepo  repository.ReservationRepository
	msRepo   repository.MeetingScheduleRepository
	roomRepo repository.MeetingRoomRepository
	permSvc  *PermissionService
	logger   *logrus.Logger
	now      func() time.Time
}

func NewReservationService(
	resRepo repository.ReservationRepository,
	msRepo repository.MeetingScheduleRepository,
	roomRepo repository.MeetingRoomRepository,
	permSvc *PermissionService,
	logger *logrus.Logger,
) *ReservationService {
	return &ReservationService{
		resRepo:  resRepo,
		msRepo:   msRepo,
		roomRepo: roomRepo,
		permSvc:  permSvc,
		logger:   logger,
		now:      time.Now,
	}
}

func validateReservationFields(start, end time.Time, content string) error {
	if !end.After(start) {
		return ErrInvalidRange
	}
	if content == "" {
		return ErrMissingContent
	}
	if len(content) > models.MaxContentLength {
		return ErrContentTooLong
	}
	return nil
}

// Create files a new reservation in pending status.
func (s *ReservationService) Create(requester *models.SystemUser, roomID uint, start, end time.Time, content, contactInfo string) (*models.MeetingRoomReservation, error) {
	if err := s.permSvc.RequireEdit(requester, models.FunctionReservations); err != nil {
		return nil, err
	}
	if err := validateReservationFields(start, end, content); err != nil {
		return nil, err
	}

	room, err := s.roomRepo.GetByID(roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, fmt.Errorf("meeting room %d: %w", roomID, ErrNotFound)
	}

	reservation := &models.MeetingRoomReservation{
		RoomID:         roomID,
		RequestedBy:    requester.ID,
		StartTime:      start,
		EndTime:        end,
		MeetingContent: content,
		ContactInfo:    contactInfo,
		Status:         models.ReservationPending,
	}
	if err := s.resRepo.Create(reservation); err != nil {
		s.logger.WithError(err).Error("Failed to create reservation")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"id":      reservation.ID,
		"room_id": roomID,
		"user_id": requester.ID,
	}).Info("Reservation created")
	return reservation, nil
}

// Approve moves a pending reservation to approved and materializes the
// meeting-schedule row. The status flip is guarded on the stored status
// still being pending, so when two approvers race only one transition
// lands; the loser gets ErrInvalidTransition and the freshly created
// meeting schedule is removed again.
func (s *ReservationService) Approve(approver *models.SystemUser, id uint) (*models.MeetingRoomReservation, error) {
	if err := s.permSvc.RequireEdit(approver, models.FunctionReservationApproval); err != nil {
		return nil, err
	}

	reservation, err := s.resRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, fmt.Errorf("reservation %d: %w", id, ErrNotFound)
	}
	if !reservation.IsPending() {
		return nil, fmt.Errorf("approve from %s: %w", reservation.Status, ErrInvalidTransition)
	}

	meetingSchedule := &models.MeetingSchedule{
		RoomID:         reservation.RoomID,
		StartTime:      reservation.StartTime,
		EndTime:        reservation.EndTime,
		MeetingContent: reservation.MeetingContent,
		ContactPerson:  reservation.ContactInfo,
	}
	if err := s.msRepo.Create(meetingSchedule); err != nil {
		s.logger.WithError(err).Error("Failed to materialize meeting schedule")
		return nil, err
	}

	approvedAt := s.now()
	updated, err := s.resRepo.UpdateStatusIf(id, models.ReservationPending, map[string]interface{}{
		"status":              models.ReservationApproved,
		"approved_by":         approver.ID,
		"approved_at":         approvedAt,
		"meeting_schedule_id": meetingSchedule.ID,
		"rejection_reason":    "",
	})
	if err != nil {
		// The status never flipped, so the materialized row must not outlive
		// this call either.
		if delErr := s.msRepo.Delete(meetingSchedule.ID); delErr != nil {
			s.logger.WithError(delErr).WithField("meeting_schedule_id", meetingSchedule.ID).
				Error("Failed to roll back meeting schedule after failed status update")
		}
		return nil, err
	}
	if !updated {
		// Lost the race; undo the materialized row.
		if delErr := s.msRepo.Delete(meetingSchedule.ID); delErr != nil {
			s.logger.WithError(delErr).WithField("meeting_schedule_id", meetingSchedule.ID).
				Error("Failed to roll back meeting schedule after lost approval race")
		}
		return nil, fmt.Errorf("reservation %d no longer pending: %w", id, ErrInvalidTransition)
	}

	reservation.Status = models.ReservationApproved
	reservation.ApprovedBy = &approver.ID
	reservation.ApprovedAt = &approvedAt
	reservation.MeetingScheduleID = &meetingSchedule.ID
	reservation.RejectionReason = ""

	s.logger.WithFields(logrus.Fields{
		"id":                  id,
		"approved_by":         approver.ID,
		"meeting_schedule_id": meetingSchedule.ID,
	}).Info("Reservation approved")
	return reservation, nil
}

// Reject moves a pending reservation to rejected. A non-empty reason is
// required; there is no meeting-schedule side effect.
func (s *ReservationService) Reject(approver *models.SystemUser, id uint, reason string) (*models.MeetingRoomReservation, error) {
	if err := s.permSvc.RequireEdit(approver, models.FunctionReservationApproval); err != nil {
		return nil, err
	}
	if reason == "" {
		return nil, ErrMissingReason
	}

	reservation, err := s.resRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, fmt.Errorf("reservation %d: %w", id, ErrNotFound)
	}
	if !reservation.IsPending() {
		return nil, fmt.Errorf("reject from %s: %w", reservation.Status, ErrInvalidTransition)
	}

	updated, err := s.resRepo.UpdateStatusIf(id, models.ReservationPending, map[string]interface{}{
		"status":           models.ReservationRejected,
		"rejection_reason": reason,
	})
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, fmt.Errorf("reservation %d no longer pending: %w", id, ErrInvalidTransition)
	}

	reservation.Status = models.ReservationRejected
	reservation.RejectionReason = reason

	s.logger.WithFields(logrus.Fields{
		"id":          id,
		"rejected_by": approver.ID,
	}).Info("Reservation rejected")
	return reservation, nil
}

// Revoke takes an approved reservation back to pending for re-review,
// deleting the derived meeting-schedule row and clearing the approval
// fields.
func (s *ReservationService) Revoke(approver *models.SystemUser, id uint) (*models.MeetingRoomReservation, error) {
	if err := s.permSvc.RequireEdit(approver, models.FunctionReservationApproval); err != nil {
		return nil, err
	}

	reservation, err := s.resRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, fmt.Errorf("reservation %d: %w", id, ErrNotFound)
	}
	if !reservation.IsApproved() {
		return nil, fmt.Errorf("revoke from %s: %w", reservation.Status, ErrInvalidTransition)
	}

	// Remove the derived row first. A competing revoke or cascade delete
	// would have removed it too, so a stale id here is harmless.
	if reservation.MeetingScheduleID != nil {
		if err := s.msRepo.Delete(*reservation.MeetingScheduleID); err != nil {
			s.logger.WithError(err).WithField("meeting_schedule_id", *reservation.MeetingScheduleID).
				Error("Failed to delete meeting schedule on revoke")
			return nil, err
		}
	}

	updated, err := s.resRepo.UpdateStatusIf(id, models.ReservationApproved, map[string]interface{}{
		"status":              models.ReservationPending,
		"approved_by":         nil,
		"approved_at":         nil,
		"meeting_schedule_id": nil,
	})
	if err != nil {
		return nil, err
	}
	if !updated {
		return nil, fmt.Errorf("reservation %d no longer approved: %w", id, ErrInvalidTransition)
	}

	reservation.Status = models.ReservationPending
	reservation.ApprovedBy = nil
	reservation.ApprovedAt = nil
	reservation.MeetingScheduleID = nil

	s.logger.WithFields(logrus.Fields{
		"id":         id,
		"revoked_by": approver.ID,
	}).Info("Reservation approval revoked")
	return reservation, nil
}

// Delete removes a reservation. The requester may delete their own pending
// request; an approver may delete in any status. Deleting an approved
// reservation cascades to the derived meeting-schedule row.
func (s *ReservationService) Delete(actor *models.SystemUser, id uint) error {
	reservation, err := s.resRepo.GetByID(id)
	if err != nil {
		return err
	}
	if reservation == nil {
		return fmt.Errorf("reservation %d: %w", id, ErrNotFound)
	}

	isApprover, err := s.permSvc.CanEdit(actor, models.FunctionReservationApproval)
	if err != nil {
		return err
	}
	ownPending := reservation.RequestedBy == actor.ID && reservation.IsPending()
	if !isApprover && !ownPending {
		return fmt.Errorf("delete reservation %d: %w", id, ErrForbidden)
	}

	if reservation.IsApproved() && reservation.MeetingScheduleID != nil {
		if err := s.msRepo.Delete(*reservation.MeetingScheduleID); err != nil {
			s.logger.WithError(err).WithField("meeting_schedule_id", *reservation.MeetingScheduleID).
				Error("Failed to cascade meeting schedule delete")
			return err
		}
	}

	if err := s.resRepo.Delete(id); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"id":       id,
		"actor_id": actor.ID,
	}).Info("Reservation deleted")
	return nil
}

// Edit updates a pending reservation's fields. Only the original requester
// may edit, and only while the request is still pending.
func (s *ReservationService) Edit(actor *models.SystemUser, id uint, roomID uint, start, end time.Time, content, contactInfo string) (*models.MeetingRoomReservation, error) {
	reservation, err := s.resRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, fmt.Errorf("reservation %d: %w", id, ErrNotFound)
	}
	if reservation.RequestedBy != actor.ID {
		return nil, fmt.Errorf("edit reservation %d: %w", id, ErrForbidden)
	}
	if !reservation.IsPending() {
		return nil, fmt.Errorf("edit from %s: %w", reservation.Status, ErrInvalidTransition)
	}

	if err := validateReservationFields(start, end, content); err != nil {
		return nil, err
	}
	if roomID != reservation.RoomID {
		room, err := s.roomRepo.GetByID(roomID)
		if err != nil {
			return nil, err
		}
		if room == nil {
			return nil, fmt.Errorf("meeting room %d: %w", roomID, ErrNotFound)
		}
	}

	reservation.RoomID = roomID
	reservation.StartTime = start
	reservation.EndTime = end
	reservation.MeetingContent = content
	reservation.ContactInfo = contactInfo

	if err := s.resRepo.Update(reservation); err != nil {
		s.logger.WithError(err).Error("Failed to update reservation")
		return nil, err
	}
	return reservation, nil
}

// ListOwn returns the actor's reservations.
func (s *ReservationService) ListOwn(actor *models.SystemUser) ([]models.MeetingRoomReservation, error) {
	return s.resRepo.ListByRequester(actor.ID)
}

// ListForRoom returns a room's reservations overlapping the date range, so
// requesters and approvers can see what already claims a slot. The end date
// is inclusive.
func (s *ReservationService) ListForRoom(actor *models.SystemUser, roomID uint, from, to time.Time) ([]models.MeetingRoomReservation, error) {
	if err := s.permSvc.RequireView(actor, models.FunctionReservations); err != nil {
		return nil, err
	}

	room, err := s.roomRepo.GetByID(roomID)
	if err != nil {
		return nil, err
	}
	if room == nil {
		return nil, fmt.Errorf("meeting room %d: %w", roomID, ErrNotFound)
	}
	return s.resRepo.ListByRoomOverlapping(roomID, from, datespan.EndOfDay(to))
}

// ListAll returns every reservation, optionally filtered by status.
// Requires VIEW on the approval function.
func (s *ReservationService) ListAll(actor *models.SystemUser, statusFilter string) ([]models.MeetingRoomReservation, error) {
	if err := s.permSvc.RequireView(actor, models.FunctionReservationApproval); err != nil {
		return nil, err
	}
	return s.resRepo.ListAll(statusFilter)
}

// Get returns a single reservation. Requesters see their own; anyone with
// VIEW on the approval function sees all.
func (s *ReservationService) Get(actor *models.SystemUser, id uint) (*models.MeetingRoomReservation, error) {
	reservation, err := s.resRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if reservation == nil {
		return nil, fmt.Errorf("reservation %d: %w", id, ErrNotFound)
	}
	if reservation.RequestedBy == actor.ID {
		return reservation, nil
	}
	if err := s.permSvc.RequireView(actor, models.FunctionReservationApproval); err != nil {
		return nil, err
	}
	return reservation, nil
}
