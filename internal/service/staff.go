package service

import (
	"fmt"

	"branch-scheduler/internal/models"
	"branch-scheduler/internal/repository"

	"github.com/sirupsen/logrus"
)

type StaffService struct {
	repo          repository.StaffRepository
	deptRepo      repository.DepartmentRepository
	scheduleRepo  repository.WorkScheduleRepository
	schedPermRepo repository.SchedulePermissionRepository
	permSvc       *PermissionService
	logger        *logrus.Logger
}

func NewStaffService(
	repo repository.StaffRepository,
	deptRepo repository.DepartmentRepository,
	scheduleRepo repository.WorkScheduleRepository,
	schedPermRepo repository.SchedulePermissionRepository,
	permSvc *PermissionService,
	logger *logrus.Logger,
) *StaffService {
	return &StaffService{
		repo:          repo,
		deptRepo:      deptRepo,
		scheduleRepo:  scheduleRepo,
		schedPermRepo: schedPermRepo,
		permSvc:       permSvc,
		logger:        logger,
	}
}

func (s *StaffService) Create(actor *models.SystemUser, staff *models.Staff) (*models.Staff, error) {
	if err := s.permSvc.RequireEdit(actor, models.FunctionStaff); err != nil {
		return nil, err
	}
	if staff.EmployeeID == "" || staff.FullName == "" {
		return nil, fmt.Errorf("employee id and full name: %w", ErrMissingContent)
	}

	department, err := s.deptRepo.GetByID(staff.DepartmentID)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, fmt.Errorf("department %d: %w", staff.DepartmentID, ErrNotFound)
	}

	existing, err := s.repo.GetByEmployeeID(staff.EmployeeID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("employee id %s already taken: %w", staff.EmployeeID, ErrConflict)
	}

	if err := s.repo.Create(staff); err != nil {
		s.logger.WithError(err).Error("Failed to create staff")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"id":          staff.ID,
		"employee_id": staff.EmployeeID,
	}).Info("Staff created")
	return staff, nil
}

func (s *StaffService) Update(actor *models.SystemUser, id uint, patch *models.Staff) (*models.Staff, error) {
	if err := s.permSvc.RequireEdit(actor, models.FunctionStaff); err != nil {
		return nil, err
	}

	staff, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if staff == nil {
		return nil, fmt.Errorf("staff %d: %w", id, ErrNotFound)
	}

	// The employee id is immutable once assigned; only descriptive fields move.
	staff.FullName = patch.FullName
	staff.DepartmentID = patch.DepartmentID
	staff.PositionShort = patch.PositionShort
	staff.DisplayOrder = patch.DisplayOrder
	staff.IsBoardMember = patch.IsBoardMember

	if err := s.repo.Update(staff); err != nil {
		return nil, err
	}
	return staff, nil
}

// Delete refuses while work schedules still reference the staff member,
// then clears any per-staff grants.
func (s *StaffService) Delete(actor *models.SystemUser, id uint) error {
	if err := s.permSvc.RequireEdit(actor, models.FunctionStaff); err != nil {
		return err
	}

	staff, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if staff == nil {
		return fmt.Errorf("staff %d: %w", id, ErrNotFound)
	}

	count, err := s.scheduleRepo.CountByStaff(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("staff %d still has %d schedules: %w", id, count, ErrConflict)
	}

	if err := s.schedPermRepo.DeleteByStaff(id); err != nil {
		return err
	}
	return s.repo.Delete(id)
}

func (s *StaffService) GetAll() ([]models.Staff, error) {
	return s.repo.GetAll()
}

func (s *StaffService) GetByDepartment(departmentID uint) ([]models.Staff, error) {
	return s.repo.GetByDepartment(departmentID)
}
