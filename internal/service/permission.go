package service

import (
	"fmt"
	"sort"

	"branch-scheduler/internal/models"
	"branch-scheduler/internal/repository"

	"github.com/sirupsen/logrus"
)

// PermissionService resolves what a system user may see and change.
// Function-level access comes from the user group's permission map;
// work-schedule writes additionally need a per-staff grant.
type PermissionService struct {
	groupRepo     repository.UserGroupRepository
	schedPermRepo repository.SchedulePermissionRepository
	logger        *logrus.Logger
}

func NewPermissionService(
	groupRepo repository.UserGroupRepository,
	schedPermRepo repository.SchedulePermissionRepository,
	logger *logrus.Logger,
) *PermissionService {
	return &PermissionService{
		groupRepo:     groupRepo,
		schedPermRepo: schedPermRepo,
		logger:        logger,
	}
}

func (s *PermissionService) levelFor(user *models.SystemUser, key models.FunctionKey) (models.PermissionLevel, error) {
	group, err := s.groupRepo.GetByID(user.UserGroupID)
	if err != nil {
		return models.PermissionNone, err
	}
	if group == nil {
		s.logger.WithFields(logrus.Fields{
			"user_id":  user.ID,
			"group_id": user.UserGroupID,
		}).Warn("User references a missing group")
		return models.PermissionNone, nil
	}
	return group.Permissions.LevelFor(key), nil
}

// CanEdit reports whether the user's group grants EDIT on the function.
func (s *PermissionService) CanEdit(user *models.SystemUser, key models.FunctionKey) (bool, error) {
	level, err := s.levelFor(user, key)
	if err != nil {
		return false, err
	}
	return level == models.PermissionEdit, nil
}

// CanView reports whether the user's group grants VIEW or EDIT on the function.
func (s *PermissionService) CanView(user *models.SystemUser, key models.FunctionKey) (bool, error) {
	level, err := s.levelFor(user, key)
	if err != nil {
		return false, err
	}
	return level == models.PermissionEdit || level == models.PermissionView, nil
}

// EditableStaffIDs returns the staff the user holds per-staff schedule
// grants for, in ascending id order. The profile endpoint serves it so the
// UI can scope the schedule form to those staff members.
func (s *PermissionService) EditableStaffIDs(userID uint) ([]uint, error) {
	staffIDs, err := s.schedPermRepo.ListStaffIDsForUser(userID)
	if err != nil {
		return nil, err
	}
	if staffIDs == nil {
		staffIDs = []uint{}
	}
	sort.Slice(staffIDs, func(i, j int) bool { return staffIDs[i] < staffIDs[j] })
	return staffIDs, nil
}

// CanEditStaffSchedule requires both the function-level EDIT on work
// schedules and a per-staff grant for the target staff member.
func (s *PermissionService) CanEditStaffSchedule(user *models.SystemUser, staffID uint) (bool, error) {
	canEdit, err := s.CanEdit(user, models.FunctionWorkSchedules)
	if err != nil {
		return false, err
	}
	if !canEdit {
		return false, nil
	}

	granted, err := s.schedPermRepo.Exists(user.ID, staffID)
	if err != nil {
		return false, err
	}
	return granted, nil
}

// RequireEdit returns ErrForbidden unless the user's group grants EDIT.
func (s *PermissionService) RequireEdit(user *models.SystemUser, key models.FunctionKey) error {
	ok, err := s.CanEdit(user, key)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("function %s: %w", key, ErrForbidden)
	}
	return nil
}

// RequireView returns ErrForbidden unless the user's group grants VIEW or EDIT.
func (s *PermissionService) RequireView(user *models.SystemUser, key models.FunctionKey) error {
	ok, err := s.CanView(user, key)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("function %s: %w", key, ErrForbidden)
	}
	return nil
}
