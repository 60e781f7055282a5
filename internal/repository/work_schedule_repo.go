package repository

import (
	"errors"
	"time"

	"branch-scheduler/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type WorkScheduleRepository interface {
	Create(schedule *models.WorkSchedule) error
	Update(schedule *models.WorkSchedule) error
	Delete(id uint) error
	GetByID(id uint) (*models.WorkSchedule, error)
	ListForStaff(staffID uint, from, to time.Time) ([]models.WorkSchedule, error)
	ListOverlapping(from, to time.Time) ([]models.WorkSchedule, error)
	CountOverlappingDay(staffID uint, dayStart, dayEnd time.Time, excludeID uint) (int64, error)
	CountByStaff(staffID uint) (int64, error)
}

type GormWorkScheduleRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormWorkScheduleRepository(db *gorm.DB, logger *logrus.Logger) (WorkScheduleRepository, error) {
	if err := db.AutoMigrate(&models.WorkSchedule{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate work_schedules table")
		return nil, err
	}
	return &GormWorkScheduleRepository{db: db, logger: logger}, nil
}

func (r *GormWorkScheduleRepository) Create(schedule *models.WorkSchedule) error {
	return r.db.Create(schedule).Error
}

func (r *GormWorkScheduleRepository) Update(schedule *models.WorkSchedule) error {
	return r.db.Save(schedule).Error
}

func (r *GormWorkScheduleRepository) Delete(id uint) error {
	result := r.db.Delete(&models.WorkSchedule{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormWorkScheduleRepository) GetByID(id uint) (*models.WorkSchedule, error) {
	var schedule models.WorkSchedule
	err := r.db.First(&schedule, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

// ListForStaff returns the staff member's schedules whose interval overlaps
// [from, to], ordered by start time.
func (r *GormWorkScheduleRepository) ListForStaff(staffID uint, from, to time.Time) ([]models.WorkSchedule, error) {
	var schedules []models.WorkSchedule
	err := r.db.Where("staff_id = ? AND start_time <= ? AND end_time >= ?", staffID, to, from).
		Order("start_time ASC").
		Find(&schedules).Error
	return schedules, err
}

// ListOverlapping returns every schedule overlapping [from, to] with the
// staff association preloaded, for the display board and reports.
func (r *GormWorkScheduleRepository) ListOverlapping(from, to time.Time) ([]models.WorkSchedule, error) {
	var schedules []models.WorkSchedule
	err := r.db.Preload("Staff").
		Where("start_time <= ? AND end_time >= ?", to, from).
		Order("staff_id ASC, start_time ASC").
		Find(&schedules).Error
	return schedules, err
}

// CountOverlappingDay counts the staff member's schedules overlapping one
// calendar day. excludeID removes the record being edited from its own count;
// zero excludes nothing.
func (r *GormWorkScheduleRepository) CountOverlappingDay(staffID uint, dayStart, dayEnd time.Time, excludeID uint) (int64, error) {
	query := r.db.Model(&models.WorkSchedule{}).
		Where("staff_id = ? AND start_time <= ? AND end_time >= ?", staffID, dayEnd, dayStart)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}

	var count int64
	err := query.Count(&count).Error
	return count, err
}

func (r *GormWorkScheduleRepository) CountByStaff(staffID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.WorkSchedule{}).
		Where("staff_id = ?", staffID).
		Count(&count).Error
	return count, err
}
