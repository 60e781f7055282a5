package repository

import (
	"errors"

	"branch-scheduler/internal/models"

	"gorm.io/gorm"
)

type MeetingRoomRepository interface {
	Create(room *models.MeetingRoom) error
	Update(room *models.MeetingRoom) error
	Delete(id uint) error
	GetByID(id uint) (*models.MeetingRoom, error)
	GetByName(name string) (*models.MeetingRoom, error)
	GetAll() ([]models.MeetingRoom, error)
}

type GormMeetingRoomRepository struct {
	db *gorm.DB
}

func NewGormMeetingRoomRepository(db *gorm.DB) (MeetingRoomRepository, error) {
	if err := db.AutoMigrate(&models.MeetingRoom{}); err != nil {
		return nil, err
	}
	return &GormMeetingRoomRepository{db: db}, nil
}

func (r *GormMeetingRoomRepository) Create(room *models.MeetingRoom) error {
	return r.db.Create(room).Error
}

func (r *GormMeetingRoomRepository) Update(room *models.MeetingRoom) error {
	return r.db.Save(room).Error
}

func (r *GormMeetingRoomRepository) Delete(id uint) error {
	return r.db.Delete(&models.MeetingRoom{}, id).Error
}

func (r *GormMeetingRoomRepository) GetByID(id uint) (*models.MeetingRoom, error) {
	var room models.MeetingRoom
	err := r.db.First(&room, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *GormMeetingRoomRepository) GetByName(name string) (*models.MeetingRoom, error) {
	var room models.MeetingRoom
	err := r.db.Where("name = ?", name).First(&room).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &room, nil
}

func (r *GormMeetingRoomRepository) GetAll() ([]models.MeetingRoom, error) {
	var rooms []models.MeetingRoom
	err := r.db.Order("name ASC").Find(&rooms).Error
	return rooms, err
}
