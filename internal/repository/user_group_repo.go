package repository

import (
	"errors"

	"branch-scheduler/internal/models"

	"gorm.io/gorm"
)

type UserGroupRepository interface {
	Create(group *models.UserGroup) error
	Update(group *models.UserGroup) error
	Delete(id uint) error
	GetByID(id uint) (*models.UserGroup, error)
	GetByName(name string) (*models.UserGroup, error)
	GetAll() ([]models.UserGroup, error)
}

type GormUserGroupRepository struct {
	db *gorm.DB
}

func NewGormUserGroupRepository(db *gorm.DB) (UserGroupRepository, error) {
	if err := db.AutoMigrate(&models.UserGroup{}); err != nil {
		return nil, err
	}
	return &GormUserGroupRepository{db: db}, nil
}

func (r *GormUserGroupRepository) Create(group *models.UserGroup) error {
	return r.db.Create(group).Error
}

func (r *GormUserGroupRepository) Update(group *models.UserGroup) error {
	return r.db.Save(group).Error
}

func (r *GormUserGroupRepository) Delete(id uint) error {
	return r.db.Delete(&models.UserGroup{}, id).Error
}

func (r *GormUserGroupRepository) GetByID(id uint) (*models.UserGroup, error) {
	var group models.UserGroup
	err := r.db.First(&group, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *GormUserGroupRepository) GetByName(name string) (*models.UserGroup, error) {
	var group models.UserGroup
	err := r.db.Where("name = ?", name).First(&group).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &group, nil
}

func (r *GormUserGroupRepository) GetAll() ([]models.UserGroup, error) {
	var groups []models.UserGroup
	err := r.db.Order("name ASC").Find(&groups).Error
	return groups, err
}
