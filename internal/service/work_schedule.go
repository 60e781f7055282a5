package service

import (
	"fmt"
	"time"

	"branch-scheduler/internal/models"
	"branch-scheduler/internal/repository"
	"branch-scheduler/pkg/datespan"

	"github.com/sirupsen/logrus"
)

// SchedulePolicy carries the system-wide scheduling rules. All values come
// from configuration; nothing is inferred from the request.
type SchedulePolicy struct {
	// DailyLimit is the maximum number of schedules a staff member may have
	// overlapping any single calendar day.
	DailyLimit int
	// AllowWeekend permits timed entries on Saturday and Sunday.
	AllowWeekend bool
	// WorkStartMinutes/WorkEndMinutes bound timed entries, as minutes since
	// midnight.
	WorkStartMinutes int
	WorkEndMinutes   int
}

// LimitCheckResult is the outcome of the daily-quota validation.
type LimitCheckResult struct {
	IsValid       bool       `json:"is_valid"`
	ViolatingDate *time.Time `json:"violating_date,omitempty"`
	CurrentCount  int        `json:"current_count,omitempty"`
}

type WorkScheduleService struct {
	repo       repository.WorkScheduleRepository
	staffRepo  repository.StaffRepository
	holidaySvc *HolidayService
	permSvc    *PermissionService
	policy     SchedulePolicy
	logger     *logrus.Logger
}

func NewWorkScheduleService(
	repo repository.WorkScheduleRepository,
	staffRepo repository.StaffRepository,
	holidaySvc *HolidayService,
	permSvc *PermissionService,
	policy SchedulePolicy,
	logger *logrus.Logger,
) *WorkScheduleService {
	return &WorkScheduleService{
		repo:       repo,
		staffRepo:  staffRepo,
		holidaySvc: holidaySvc,
		permSvc:    permSvc,
		policy:     policy,
		logger:     logger,
	}
}

// ValidateDailyLimit walks every calendar day spanned by [start, end] in
// ascending order and checks that the staff member's schedule count for the
// day, plus the candidate record, stays within the daily limit. The first
// violating day short-circuits the walk. excludeID lets an update skip the
// record being edited; zero excludes nothing. Read-only: never mutates
// stored data.
func (s *WorkScheduleService) ValidateDailyLimit(staffID uint, start, end time.Time, excludeID uint) (*LimitCheckResult, error) {
	for _, day := range datespan.Days(start, end) {
		count, err := s.repo.CountOverlappingDay(staffID, day, datespan.EndOfDay(day), excludeID)
		if err != nil {
			return nil, err
		}
		if int(count)+1 > s.policy.DailyLimit {
			violating := day
			return &LimitCheckResult{
				IsValid:       false,
				ViolatingDate: &violating,
				CurrentCount:  int(count),
			}, nil
		}
	}
	return &LimitCheckResult{IsValid: true}, nil
}

// validateEntry runs the ordered policy checks that precede the quota check.
// Any single failure aborts the write before anything is persisted.
func (s *WorkScheduleService) validateEntry(schedule *models.WorkSchedule) error {
	if !schedule.EndTime.After(schedule.StartTime) {
		return ErrInvalidRange
	}

	fullDay := datespan.IsFullDay(schedule.StartTime, schedule.EndTime)
	if !fullDay {
		if !s.policy.AllowWeekend && datespan.IsWeekend(schedule.StartTime) {
			return ErrWeekendNotAllowed
		}
	}

	isHoliday, err := s.holidaySvc.IsHoliday(schedule.StartTime)
	if err != nil {
		return err
	}
	if isHoliday {
		return ErrHolidayNotAllowed
	}

	if !fullDay {
		startMinutes := datespan.MinutesOfDay(schedule.StartTime)
		endMinutes := datespan.MinutesOfDay(schedule.EndTime)
		if startMinutes < s.policy.WorkStartMinutes || endMinutes > s.policy.WorkEndMinutes {
			return ErrOutsideWorkHours
		}
	}

	if !models.IsKnownWorkType(schedule.WorkType) {
		return ErrInvalidWorkType
	}
	if schedule.WorkType == models.WorkTypeOther && schedule.CustomContent == "" {
		return ErrMissingCustomContent
	}
	if len(schedule.CustomContent) > models.MaxContentLength {
		return ErrContentTooLong
	}

	return nil
}

// Create validates and persists a new work schedule for the actor. The
// actor needs EDIT on work schedules plus a per-staff grant. After the
// insert the affected days are re-counted; if a concurrent write pushed a
// day over the limit the row is removed again and the quota error returned,
// so two racing submissions cannot jointly exceed the quota.
func (s *WorkScheduleService) Create(actor *models.SystemUser, schedule *models.WorkSchedule) (*models.WorkSchedule, error) {
	allowed, err := s.permSvc.CanEditStaffSchedule(actor, schedule.StaffID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("staff %d schedules: %w", schedule.StaffID, ErrForbidden)
	}

	staff, err := s.staffRepo.GetByID(schedule.StaffID)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, fmt.Errorf("staff %d: %w", schedule.StaffID, ErrNotFound)
	}

	if err := s.validateEntry(schedule); err != nil {
		return nil, err
	}

	check, err := s.ValidateDailyLimit(schedule.StaffID, schedule.StartTime, schedule.EndTime, 0)
	if err != nil {
		return nil, err
	}
	if !check.IsValid {
		return nil, &QuotaExceededError{
			StaffID:       schedule.StaffID,
			ViolatingDate: *check.ViolatingDate,
			CurrentCount:  check.CurrentCount,
			Limit:         s.policy.DailyLimit,
		}
	}

	schedule.CreatedBy = actor.ID
	schedule.UpdatedBy = actor.ID
	if err := s.repo.Create(schedule); err != nil {
		s.logger.WithError(err).Error("Failed to create work schedule")
		return nil, err
	}

	if err := s.recheckAfterWrite(schedule); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"id":        schedule.ID,
		"staff_id":  schedule.StaffID,
		"work_type": schedule.WorkType,
	}).Info("Work schedule created")
	return schedule, nil
}

// recheckAfterWrite re-counts every day spanned by the freshly written
// record, now including it. A count above the limit means a concurrent
// submission passed validation at the same time; this record loses, is
// deleted again, and the quota error is returned.
func (s *WorkScheduleService) recheckAfterWrite(schedule *models.WorkSchedule) error {
	for _, day := range datespan.Days(schedule.StartTime, schedule.EndTime) {
		count, err := s.repo.CountOverlappingDay(schedule.StaffID, day, datespan.EndOfDay(day), 0)
		if err != nil {
			return err
		}
		if int(count) > s.policy.DailyLimit {
			if delErr := s.repo.Delete(schedule.ID); delErr != nil {
				s.logger.WithError(delErr).WithField("id", schedule.ID).
					Error("Failed to roll back over-quota schedule")
			}
			return &QuotaExceededError{
				StaffID:       schedule.StaffID,
				ViolatingDate: day,
				CurrentCount:  int(count) - 1,
				Limit:         s.policy.DailyLimit,
			}
		}
	}
	return nil
}

// Update re-validates and saves changes to an existing schedule. Like
// Create, the affected days are re-counted after the write; a concurrent
// submission that pushed a day over the limit makes this update lose, and
// the record is restored to its prior interval.
func (s *WorkScheduleService) Update(actor *models.SystemUser, id uint, patch *models.WorkSchedule) (*models.WorkSchedule, error) {
	schedule, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if schedule == nil {
		return nil, fmt.Errorf("work schedule %d: %w", id, ErrNotFound)
	}

	allowed, err := s.permSvc.CanEditStaffSchedule(actor, schedule.StaffID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, fmt.Errorf("staff %d schedules: %w", schedule.StaffID, ErrForbidden)
	}

	prior := *schedule
	schedule.StartTime = patch.StartTime
	schedule.EndTime = patch.EndTime
	schedule.WorkType = patch.WorkType
	schedule.CustomContent = patch.CustomContent
	schedule.UpdatedBy = actor.ID

	if err := s.validateEntry(schedule); err != nil {
		return nil, err
	}

	check, err := s.ValidateDailyLimit(schedule.StaffID, schedule.StartTime, schedule.EndTime, schedule.ID)
	if err != nil {
		return nil, err
	}
	if !check.IsValid {
		return nil, &QuotaExceededError{
			StaffID:       schedule.StaffID,
			ViolatingDate: *check.ViolatingDate,
			CurrentCount:  check.CurrentCount,
			Limit:         s.policy.DailyLimit,
		}
	}

	if err := s.repo.Update(schedule); err != nil {
		s.logger.WithError(err).Error("Failed to update work schedule")
		return nil, err
	}

	if err := s.recheckAfterUpdate(schedule, &prior); err != nil {
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"id":       schedule.ID,
		"staff_id": schedule.StaffID,
	}).Info("Work schedule updated")
	return schedule, nil
}

// recheckAfterUpdate re-counts every day spanned by the updated record. A
// count above the limit means a concurrent write landed between the quota
// check and the save; the record is put back on its prior interval and the
// quota error returned.
func (s *WorkScheduleService) recheckAfterUpdate(schedule, prior *models.WorkSchedule) error {
	for _, day := range datespan.Days(schedule.StartTime, schedule.EndTime) {
		count, err := s.repo.CountOverlappingDay(schedule.StaffID, day, datespan.EndOfDay(day), 0)
		if err != nil {
			return err
		}
		if int(count) > s.policy.DailyLimit {
			if restoreErr := s.repo.Update(prior); restoreErr != nil {
				s.logger.WithError(restoreErr).WithField("id", schedule.ID).
					Error("Failed to restore schedule after over-quota update")
			}
			return &QuotaExceededError{
				StaffID:       schedule.StaffID,
				ViolatingDate: day,
				CurrentCount:  int(count) - 1,
				Limit:         s.policy.DailyLimit,
			}
		}
	}
	return nil
}

// Delete removes a schedule, subject to the same two-layer permission check.
func (s *WorkScheduleService) Delete(actor *models.SystemUser, id uint) error {
	schedule, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if schedule == nil {
		return fmt.Errorf("work schedule %d: %w", id, ErrNotFound)
	}

	allowed, err := s.permSvc.CanEditStaffSchedule(actor, schedule.StaffID)
	if err != nil {
		return err
	}
	if !allowed {
		return fmt.Errorf("staff %d schedules: %w", schedule.StaffID, ErrForbidden)
	}

	if err := s.repo.Delete(id); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"id":       id,
		"staff_id": schedule.StaffID,
	}).Info("Work schedule deleted")
	return nil
}

// ListForStaff returns schedules overlapping [from, to] for one staff member.
func (s *WorkScheduleService) ListForStaff(actor *models.SystemUser, staffID uint, from, to time.Time) ([]models.WorkSchedule, error) {
	if err := s.permSvc.RequireView(actor, models.FunctionWorkSchedules); err != nil {
		return nil, err
	}
	return s.repo.ListForStaff(staffID, from, to)
}
