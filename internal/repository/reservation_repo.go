package repository

import (
	"errors"
	"time"

	"branch-scheduler/internal/models"

	"gorm.io/gorm"
)

type ReservationRepository interface {
	Create(reservation *models.MeetingRoomReservation) error
	Update(reservation *models.MeetingRoomReservation) error
	Delete(id uint) error
	GetByID(id uint) (*models.MeetingRoomReservation, error)
	GetByMeetingScheduleID(meetingScheduleID uint) (*models.MeetingRoomReservation, error)
	ListByRequester(userID uint) ([]models.MeetingRoomReservation, error)
	ListAll(statusFilter string) ([]models.MeetingRoomReservation, error)
	ListByRoomOverlapping(roomID uint, from, to time.Time) ([]models.MeetingRoomReservation, error)
	CountByRoom(roomID uint) (int64, error)

	// UpdateStatusIf applies the patch only while the stored status still
	// equals expectedStatus. Returns false when another transition won the
	// race and zero rows matched.
	UpdateStatusIf(id uint, expectedStatus string, patch map[string]interface{}) (bool, error)
}

type GormReservationRepository struct {
	db *gorm.DB
}

func NewGormReservationRepository(db *gorm.DB) (ReservationRepository, error) {
	if err := db.AutoMigrate(&models.MeetingRoomReservation{}); err != nil {
		return nil, err
	}
	return &GormReservationRepository{db: db}, nil
}

func (r *GormReservationRepository) Create(reservation *models.MeetingRoomReservation) error {
	return r.db.Create(reservation).Error
}

func (r *GormReservationRepository) Update(reservation *models.MeetingRoomReservation) error {
	return r.db.Save(reservation).Error
}

func (r *GormReservationRepository) Delete(id uint) error {
	result := r.db.Delete(&models.MeetingRoomReservation{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *GormReservationRepository) GetByID(id uint) (*models.MeetingRoomReservation, error) {
	var reservation models.MeetingRoomReservation
	err := r.db.First(&reservation, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *GormReservationRepository) GetByMeetingScheduleID(meetingScheduleID uint) (*models.MeetingRoomReservation, error) {
	var reservation models.MeetingRoomReservation
	err := r.db.Where("meeting_schedule_id = ?", meetingScheduleID).First(&reservation).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &reservation, nil
}

func (r *GormReservationRepository) ListByRequester(userID uint) ([]models.MeetingRoomReservation, error) {
	var reservations []models.MeetingRoomReservation
	err := r.db.Preload("Room").
		Where("requested_by = ?", userID).
		Order("start_time DESC").
		Find(&reservations).Error
	return reservations, err
}

func (r *GormReservationRepository) ListAll(statusFilter string) ([]models.MeetingRoomReservation, error) {
	query := r.db.Preload("Room")
	if statusFilter != "" {
		query = query.Where("status = ?", statusFilter)
	}

	var reservations []models.MeetingRoomReservation
	err := query.Order("start_time DESC").Find(&reservations).Error
	return reservations, err
}

func (r *GormReservationRepository) ListByRoomOverlapping(roomID uint, from, to time.Time) ([]models.MeetingRoomReservation, error) {
	var reservations []models.MeetingRoomReservation
	err := r.db.Where("room_id = ? AND start_time <= ? AND end_time >= ?", roomID, to, from).
		Order("start_time ASC").
		Find(&reservations).Error
	return reservations, err
}

func (r *GormReservationRepository) CountByRoom(roomID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.MeetingRoomReservation{}).
		Where("room_id = ?", roomID).
		Count(&count).Error
	return count, err
}

func (r *GormReservationRepository) UpdateStatusIf(id uint, expectedStatus string, patch map[string]interface{}) (bool, error) {
	result := r.db.Model(&models.MeetingRoomReservation{}).
		Where("id = ? AND status = ?", id, expectedStatus).
		Updates(patch)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
