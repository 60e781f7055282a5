package repository

import (
	"errors"

	"branch-scheduler/internal/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *models.SystemUser) error
	Update(user *models.SystemUser) error
	Delete(id uint) error
	GetByID(id uint) (*models.SystemUser, error)
	GetByUsername(username string) (*models.SystemUser, error)
	GetAll() ([]models.SystemUser, error)
	CountByGroup(groupID uint) (int64, error)
}

type GormUserRepository struct {
	db *gorm.DB
}

func NewGormUserRepository(db *gorm.DB) (UserRepository, error) {
	if err := db.AutoMigrate(&models.SystemUser{}); err != nil {
		return nil, err
	}
	return &GormUserRepository{db: db}, nil
}

func (r *GormUserRepository) Create(user *models.SystemUser) error {
	return r.db.Create(user).Error
}

func (r *GormUserRepository) Update(user *models.SystemUser) error {
	return r.db.Save(user).Error
}

func (r *GormUserRepository) Delete(id uint) error {
	return r.db.Delete(&models.SystemUser{}, id).Error
}

func (r *GormUserRepository) GetByID(id uint) (*models.SystemUser, error) {
	var user models.SystemUser
	err := r.db.Preload("UserGroup").First(&user, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) GetByUsername(username string) (*models.SystemUser, error) {
	var user models.SystemUser
	err := r.db.Preload("UserGroup").Where("username = ?", username).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *GormUserRepository) GetAll() ([]models.SystemUser, error) {
	var users []models.SystemUser
	err := r.db.Preload("UserGroup").Order("username ASC").Find(&users).Error
	return users, err
}

func (r *GormUserRepository) CountByGroup(groupID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.SystemUser{}).
		Where("user_group_id = ?", groupID).
		Count(&count).Error
	return count, err
}
