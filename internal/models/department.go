package models

import "time"

type Department struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"uniqueIndex;not null" json:"name"`
	DisplayOrder int       `gorm:"not null;default:0" json:"display_order"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Staff []Staff `gorm:"foreignKey:DepartmentID" json:"staff,omitempty"`
}

func (Department) TableName() string {
	return "departments"
}
