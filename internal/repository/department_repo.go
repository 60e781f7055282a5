package repository

import (
	"errors"

	"branch-scheduler/internal/models"

	"gorm.io/gorm"
)

type DepartmentRepository interface {
	Create(department *models.Department) error
	Update(department *models.Department) error
	Delete(id uint) error
	GetByID(id uint) (*models.Department, error)
	GetAll() ([]models.Department, error)
}

type GormDepartmentRepository struct {
	db *gorm.DB
}

func NewGormDepartmentRepository(db *gorm.DB) (DepartmentRepository, error) {
	if err := db.AutoMigrate(&models.Department{}); err != nil {
		return nil, err
	}
	return &GormDepartmentRepository{db: db}, nil
}

func (r *GormDepartmentRepository) Create(department *models.Department) error {
	return r.db.Create(department).Error
}

func (r *GormDepartmentRepository) Update(department *models.Department) error {
	return r.db.Save(department).Error
}

func (r *GormDepartmentRepository) Delete(id uint) error {
	return r.db.Delete(&models.Department{}, id).Error
}

func (r *GormDepartmentRepository) GetByID(id uint) (*models.Department, error) {
	var department models.Department
	err := r.db.First(&department, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &department, nil
}

func (r *GormDepartmentRepository) GetAll() ([]models.Department, error) {
	var departments []models.Department
	err := r.db.Order("display_order ASC, name ASC").Find(&departments).Error
	return departments, err
}
