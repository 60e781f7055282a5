package repository

import (
	"errors"

	"branch-scheduler/internal/models"

	"gorm.io/gorm"
)

type StaffRepository interface {
	Create(staff *models.Staff) error
	Update(staff *models.Staff) error
	Delete(id uint) error
	GetByID(id uint) (*models.Staff, error)
	GetByEmployeeID(employeeID string) (*models.Staff, error)
	GetAll() ([]models.Staff, error)
	GetByDepartment(departmentID uint) ([]models.Staff, error)
	CountByDepartment(departmentID uint) (int64, error)
}

type GormStaffRepository struct {
	db *gorm.DB
}

func NewGormStaffRepository(db *gorm.DB) (StaffRepository, error) {
	if err := db.AutoMigrate(&models.Staff{}); err != nil {
		return nil, err
	}
	return &GormStaffRepository{db: db}, nil
}

func (r *GormStaffRepository) Create(staff *models.Staff) error {
	return r.db.Create(staff).Error
}

func (r *GormStaffRepository) Update(staff *models.Staff) error {
	return r.db.Save(staff).Error
}

func (r *GormStaffRepository) Delete(id uint) error {
	return r.db.Delete(&models.Staff{}, id).Error
}

func (r *GormStaffRepository) GetByID(id uint) (*models.Staff, error) {
	var staff models.Staff
	err := r.db.First(&staff, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *GormStaffRepository) GetByEmployeeID(employeeID string) (*models.Staff, error) {
	var staff models.Staff
	err := r.db.Where("employee_id = ?", employeeID).First(&staff).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &staff, nil
}

func (r *GormStaffRepository) GetAll() ([]models.Staff, error) {
	var staff []models.Staff
	err := r.db.Order("display_order ASC, full_name ASC").Find(&staff).Error
	return staff, err
}

func (r *GormStaffRepository) GetByDepartment(departmentID uint) ([]models.Staff, error) {
	var staff []models.Staff
	err := r.db.Where("department_id = ?", departmentID).
		Order("display_order ASC, full_name ASC").
		Find(&staff).Error
	return staff, err
}

func (r *GormStaffRepository) CountByDepartment(departmentID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Staff{}).
		Where("department_id = ?", departmentID).
		Count(&count).Error
	return count, err
}
