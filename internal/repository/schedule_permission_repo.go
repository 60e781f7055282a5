package repository

import (
	"branch-scheduler/internal/models"

	"gorm.io/gorm"
)

type SchedulePermissionRepository interface {
	Grant(userID, staffID uint) error
	Revoke(userID, staffID uint) error
	ListStaffIDsForUser(userID uint) ([]uint, error)
	Exists(userID, staffID uint) (bool, error)
	DeleteByStaff(staffID uint) error
	DeleteByUser(userID uint) error
}

type GormSchedulePermissionRepository struct {
	db *gorm.DB
}

func NewGormSchedulePermissionRepository(db *gorm.DB) (SchedulePermissionRepository, error) {
	if err := db.AutoMigrate(&models.SchedulePermission{}); err != nil {
		return nil, err
	}
	return &GormSchedulePermissionRepository{db: db}, nil
}

// Grant inserts the pair unless it already exists. Duplicates are harmless
// but the unique index keeps the table clean.
func (r *GormSchedulePermissionRepository) Grant(userID, staffID uint) error {
	exists, err := r.Exists(userID, staffID)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}
	return r.db.Create(&models.SchedulePermission{UserID: userID, StaffID: staffID}).Error
}

func (r *GormSchedulePermissionRepository) Revoke(userID, staffID uint) error {
	return r.db.Where("user_id = ? AND staff_id = ?", userID, staffID).
		Delete(&models.SchedulePermission{}).Error
}

func (r *GormSchedulePermissionRepository) ListStaffIDsForUser(userID uint) ([]uint, error) {
	var staffIDs []uint
	err := r.db.Model(&models.SchedulePermission{}).
		Where("user_id = ?", userID).
		Pluck("staff_id", &staffIDs).Error
	return staffIDs, err
}

func (r *GormSchedulePermissionRepository) Exists(userID, staffID uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.SchedulePermission{}).
		Where("user_id = ? AND staff_id = ?", userID, staffID).
		Count(&count).Error
	return count > 0, err
}

func (r *GormSchedulePermissionRepository) DeleteByStaff(staffID uint) error {
	return r.db.Where("staff_id = ?", staffID).Delete(&models.SchedulePermission{}).Error
}

func (r *GormSchedulePermissionRepository) DeleteByUser(userID uint) error {
	return r.db.Where("user_id = ?", userID).Delete(&models.SchedulePermission{}).Error
}
