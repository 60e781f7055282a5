package repository

import (
	"errors"

	"branch-scheduler/internal/models"

	"gorm.io/gorm"
)

type HolidayRepository interface {
	Create(holiday *models.Holiday) error
	Update(holiday *models.Holiday) error
	Delete(id uint) error
	GetByID(id uint) (*models.Holiday, error)
	GetAll() ([]models.Holiday, error)
}

type GormHolidayRepository struct {
	db *gorm.DB
}

func NewGormHolidayRepository(db *gorm.DB) (HolidayRepository, error) {
	if err := db.AutoMigrate(&models.Holiday{}); err != nil {
		return nil, err
	}
	return &GormHolidayRepository{db: db}, nil
}

func (r *GormHolidayRepository) Create(holiday *models.Holiday) error {
	return r.db.Create(holiday).Error
}

func (r *GormHolidayRepository) Update(holiday *models.Holiday) error {
	return r.db.Save(holiday).Error
}

func (r *GormHolidayRepository) Delete(id uint) error {
	return r.db.Delete(&models.Holiday{}, id).Error
}

func (r *GormHolidayRepository) GetByID(id uint) (*models.Holiday, error) {
	var holiday models.Holiday
	err := r.db.First(&holiday, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &holiday, nil
}

func (r *GormHolidayRepository) GetAll() ([]models.Holiday, error) {
	var holidays []models.Holiday
	err := r.db.Order("date ASC").Find(&holidays).Error
	return holidays, err
}
