package service

import (
	"fmt"

	"branch-scheduler/internal/models"
	"branch-scheduler/internal/repository"

	"github.com/sirupsen/logrus"
)

// UserService manages system users, user groups, and per-staff schedule
// grants. All writes require EDIT on the users function.
type UserService struct {
	userRepo      repository.UserRepository
	groupRepo     repository.UserGroupRepository
	staffRepo     repository.StaffRepository
	schedPermRepo repository.SchedulePermissionRepository
	permSvc       *PermissionService
	logger        *logrus.Logger
}

func NewUserService(
	userRepo repository.UserRepository,
	groupRepo repository.UserGroupRepository,
	staffRepo repository.StaffRepository,
	schedPermRepo repository.SchedulePermissionRepository,
	permSvc *PermissionService,
	logger *logrus.Logger,
) *UserService {
	return &UserService{
		userRepo:      userRepo,
		groupRepo:     groupRepo,
		staffRepo:     staffRepo,
		schedPermRepo: schedPermRepo,
		permSvc:       permSvc,
		logger:        logger,
	}
}

func (s *UserService) CreateGroup(actor *models.SystemUser, group *models.UserGroup) (*models.UserGroup, error) {
	if err := s.permSvc.RequireEdit(actor, models.FunctionUsers); err != nil {
		return nil, err
	}
	if group.Name == "" {
		return nil, fmt.Errorf("group name: %w", ErrMissingContent)
	}
	if err := group.Permissions.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrConflict)
	}

	if err := s.groupRepo.Create(group); err != nil {
		s.logger.WithError(err).Error("Failed to create user group")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"id":   group.ID,
		"name": group.Name,
	}).Info("User group created")
	return group, nil
}

func (s *UserService) UpdateGroup(actor *models.SystemUser, id uint, name string, permissions models.PermissionMap) (*models.UserGroup, error) {
	if err := s.permSvc.RequireEdit(actor, models.FunctionUsers); err != nil {
		return nil, err
	}

	group, err := s.groupRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, fmt.Errorf("user group %d: %w", id, ErrNotFound)
	}
	if err := permissions.Validate(); err != nil {
		return nil, fmt.Errorf("%v: %w", err, ErrConflict)
	}

	group.Name = name
	group.Permissions = permissions
	if err := s.groupRepo.Update(group); err != nil {
		return nil, err
	}
	return group, nil
}

// DeleteGroup refuses while users still belong to the group.
func (s *UserService) DeleteGroup(actor *models.SystemUser, id uint) error {
	if err := s.permSvc.RequireEdit(actor, models.FunctionUsers); err != nil {
		return err
	}

	group, err := s.groupRepo.GetByID(id)
	if err != nil {
		return err
	}
	if group == nil {
		return fmt.Errorf("user group %d: %w", id, ErrNotFound)
	}

	count, err := s.userRepo.CountByGroup(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("group %d still has %d users: %w", id, count, ErrConflict)
	}

	return s.groupRepo.Delete(id)
}

func (s *UserService) GetAllGroups(actor *models.SystemUser) ([]models.UserGroup, error) {
	if err := s.permSvc.RequireView(actor, models.FunctionUsers); err != nil {
		return nil, err
	}
	return s.groupRepo.GetAll()
}

func (s *UserService) CreateUser(actor *models.SystemUser, username, password string, groupID uint) (*models.SystemUser, error) {
	if err := s.permSvc.RequireEdit(actor, models.FunctionUsers); err != nil {
		return nil, err
	}
	if username == "" || password == "" {
		return nil, fmt.Errorf("username and password: %w", ErrMissingContent)
	}

	group, err := s.groupRepo.GetByID(groupID)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, fmt.Errorf("user group %d: %w", groupID, ErrNotFound)
	}

	existing, err := s.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("username %s already taken: %w", username, ErrConflict)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}
	user := &models.SystemUser{
		Username:     username,
		PasswordHash: hash,
		UserGroupID:  groupID,
	}
	if err := s.userRepo.Create(user); err != nil {
		s.logger.WithError(err).Error("Failed to create user")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"id":       user.ID,
		"username": username,
	}).Info("User created")
	return user, nil
}

// UpdateUser changes the group and, when a new password is given, the hash.
func (s *UserService) UpdateUser(actor *models.SystemUser, id uint, password string, groupID uint) (*models.SystemUser, error) {
	if err := s.permSvc.RequireEdit(actor, models.FunctionUsers); err != nil {
		return nil, err
	}

	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
	}

	if groupID != 0 && groupID != user.UserGroupID {
		group, err := s.groupRepo.GetByID(groupID)
		if err != nil {
			return nil, err
		}
		if group == nil {
			return nil, fmt.Errorf("user group %d: %w", groupID, ErrNotFound)
		}
		user.UserGroupID = groupID
	}

	if password != "" {
		hash, err := HashPassword(password)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = hash
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteUser(actor *models.SystemUser, id uint) error {
	if err := s.permSvc.RequireEdit(actor, models.FunctionUsers); err != nil {
		return err
	}
	if actor.ID == id {
		return fmt.Errorf("cannot delete own account: %w", ErrConflict)
	}

	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %d: %w", id, ErrNotFound)
	}

	if err := s.schedPermRepo.DeleteByUser(id); err != nil {
		return err
	}
	return s.userRepo.Delete(id)
}

func (s *UserService) GetAllUsers(actor *models.SystemUser) ([]models.SystemUser, error) {
	if err := s.permSvc.RequireView(actor, models.FunctionUsers); err != nil {
		return nil, err
	}
	return s.userRepo.GetAll()
}

// GrantSchedulePermission allows the target user to write schedules for the
// staff member.
func (s *UserService) GrantSchedulePermission(actor *models.SystemUser, userID, staffID uint) error {
	if err := s.permSvc.RequireEdit(actor, models.FunctionUsers); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return fmt.Errorf("user %d: %w", userID, ErrNotFound)
	}

	staff, err := s.staffRepo.GetByID(staffID)
	if err != nil {
		return err
	}
	if staff == nil {
		return fmt.Errorf("staff %d: %w", staffID, ErrNotFound)
	}

	if err := s.schedPermRepo.Grant(userID, staffID); err != nil {
		return err
	}

	s.logger.WithFields(logrus.Fields{
		"user_id":  userID,
		"staff_id": staffID,
	}).Info("Schedule permission granted")
	return nil
}

func (s *UserService) RevokeSchedulePermission(actor *models.SystemUser, userID, staffID uint) error {
	if err := s.permSvc.RequireEdit(actor, models.FunctionUsers); err != nil {
		return err
	}
	return s.schedPermRepo.Revoke(userID, staffID)
}

// GetByID loads a user; used by the auth middleware to resolve the actor.
func (s *UserService) GetByID(id uint) (*models.SystemUser, error) {
	return s.userRepo.GetByID(id)
}

// EditableStaffIDs lists the staff the user may write schedules for, for
// the profile payload.
func (s *UserService) EditableStaffIDs(userID uint) ([]uint, error) {
	return s.permSvc.EditableStaffIDs(userID)
}
