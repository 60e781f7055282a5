package repository

import (
	"errors"
	"time"

	"branch-scheduler/internal/models"

	"gorm.io/gorm"
)

type MeetingScheduleRepository interface {
	Create(schedule *models.MeetingSchedule) error
	Delete(id uint) error
	GetByID(id uint) (*models.MeetingSchedule, error)
	ListByRoom(roomID uint, from, to time.Time) ([]models.MeetingSchedule, error)
	ListOverlapping(from, to time.Time) ([]models.MeetingSchedule, error)
	CountByRoom(roomID uint) (int64, error)
}

type GormMeetingScheduleRepository struct {
	db *gorm.DB
}

func NewGormMeetingScheduleRepository(db *gorm.DB) (MeetingScheduleRepository, error) {
	if err := db.AutoMigrate(&models.MeetingSchedule{}); err != nil {
		return nil, err
	}
	return &GormMeetingScheduleRepository{db: db}, nil
}

func (r *GormMeetingScheduleRepository) Create(schedule *models.MeetingSchedule) error {
	return r.db.Create(schedule).Error
}

func (r *GormMeetingScheduleRepository) Delete(id uint) error {
	return r.db.Delete(&models.MeetingSchedule{}, id).Error
}

func (r *GormMeetingScheduleRepository) GetByID(id uint) (*models.MeetingSchedule, error) {
	var schedule models.MeetingSchedule
	err := r.db.First(&schedule, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &schedule, nil
}

func (r *GormMeetingScheduleRepository) ListByRoom(roomID uint, from, to time.Time) ([]models.MeetingSchedule, error) {
	var schedules []models.MeetingSchedule
	err := r.db.Where("room_id = ? AND start_time <= ? AND end_time >= ?", roomID, to, from).
		Order("start_time ASC").
		Find(&schedules).Error
	return schedules, err
}

func (r *GormMeetingScheduleRepository) ListOverlapping(from, to time.Time) ([]models.MeetingSchedule, error) {
	var schedules []models.MeetingSchedule
	err := r.db.Preload("Room").
		Where("start_time <= ? AND end_time >= ?", to, from).
		Order("room_id ASC, start_time ASC").
		Find(&schedules).Error
	return schedules, err
}

func (r *GormMeetingScheduleRepository) CountByRoom(roomID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.MeetingSchedule{}).
		Where("room_id = ?", roomID).
		Count(&count).Error
	return count, err
}
