package service

import (
	"fmt"

	"branch-scheduler/internal/models"
	"branch-scheduler/internal/repository"

	"github.com/sirupsen/logrus"
)

type DepartmentService struct {
	repo      repository.DepartmentRepository
	staffRepo repository.StaffRepository
	permSvc   *PermissionService
	logger    *logrus.Logger
}

func NewDepartmentService(
	repo repository.DepartmentRepository,
	staffRepo repository.StaffRepository,
	permSvc *PermissionService,
	logger *logrus.Logger,
) *DepartmentService {
	return &DepartmentService{repo: repo, staffRepo: staffRepo, permSvc: permSvc, logger: logger}
}

func (s *DepartmentService) Create(actor *models.SystemUser, department *models.Department) (*models.Department, error) {
	if err := s.permSvc.RequireEdit(actor, models.FunctionDepartments); err != nil {
		return nil, err
	}
	if department.Name == "" {
		return nil, fmt.Errorf("department name: %w", ErrMissingContent)
	}

	if err := s.repo.Create(department); err != nil {
		s.logger.WithError(err).Error("Failed to create department")
		return nil, err
	}

	s.logger.WithFields(logrus.Fields{
		"id":   department.ID,
		"name": department.Name,
	}).Info("Department created")
	return department, nil
}

func (s *DepartmentService) Update(actor *models.SystemUser, id uint, name string, displayOrder int) (*models.Department, error) {
	if err := s.permSvc.RequireEdit(actor, models.FunctionDepartments); err != nil {
		return nil, err
	}

	department, err := s.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if department == nil {
		return nil, fmt.Errorf("department %d: %w", id, ErrNotFound)
	}
	if name == "" {
		return nil, fmt.Errorf("department name: %w", ErrMissingContent)
	}

	department.Name = name
	department.DisplayOrder = displayOrder
	if err := s.repo.Update(department); err != nil {
		return nil, err
	}
	return department, nil
}

// Delete refuses while staff still belong to the department.
func (s *DepartmentService) Delete(actor *models.SystemUser, id uint) error {
	if err := s.permSvc.RequireEdit(actor, models.FunctionDepartments); err != nil {
		return err
	}

	department, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if department == nil {
		return fmt.Errorf("department %d: %w", id, ErrNotFound)
	}

	count, err := s.staffRepo.CountByDepartment(id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("department %d still has %d staff: %w", id, count, ErrConflict)
	}

	return s.repo.Delete(id)
}

func (s *DepartmentService) GetAll() ([]models.Department, error) {
	return s.repo.GetAll()
}
