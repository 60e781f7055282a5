package models

import "time"

type Staff struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	EmployeeID    string    `gorm:"uniqueIndex;not null" json:"employee_id"`
	FullName      string    `gorm:"not null" json:"full_name"`
	DepartmentID  uint      `gorm:"not null;index" json:"department_id"`
	PositionShort string    `gorm:"type:varchar(50)" json:"position_short"`
	DisplayOrder  int       `gorm:"not null;default:0" json:"display_order"`
	IsBoardMember bool      `gorm:"not null;default:false" json:"is_board_member"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Department Department `gorm:"foreignKey:DepartmentID" json:"department,omitempty"`
}

func (Staff) TableName() string {
	return "staff"
}
