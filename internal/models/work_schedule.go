package models

import "time"

// Work schedule types
const (
	WorkTypeBranch         = "work_at_branch"
	WorkTypeLeave          = "leave"
	WorkTypeLeadershipDuty = "leadership_duty"
	WorkTypeDomesticTrip   = "domestic_trip"
	WorkTypeForeignTrip    = "foreign_trip"
	WorkTypeCustomerVisit  = "customer_visit"
	WorkTypeOther          = "other"
)

// MaxContentLength caps free-text content on schedules and reservations.
const MaxContentLength = 200

var workTypes = map[string]bool{
	WorkTypeBranch:         true,
	WorkTypeLeave:          true,
	WorkTypeLeadershipDuty: true,
	WorkTypeDomesticTrip:   true,
	WorkTypeForeignTrip:    true,
	WorkTypeCustomerVisit:  true,
	WorkTypeOther:          true,
}

// IsKnownWorkType reports whether the value is one of the WorkType constants.
func IsKnownWorkType(workType string) bool {
	return workTypes[workType]
}

type WorkSchedule struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	StaffID       uint      `gorm:"not null;index" json:"staff_id"`
	StartTime     time.Time `gorm:"not null;index" json:"start_time"`
	EndTime       time.Time `gorm:"not null;index" json:"end_time"`
	WorkType      string    `gorm:"type:varchar(30);not null" json:"work_type"`
	CustomContent string    `gorm:"type:varchar(200)" json:"custom_content"`
	CreatedBy     uint      `gorm:"not null" json:"created_by"`
	UpdatedBy     uint      `json:"updated_by"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Staff Staff `gorm:"foreignKey:StaffID" json:"staff,omitempty"`
}

func (WorkSchedule) TableName() string {
	return "work_schedules"
}

// IsValid checks the structural invariants of the record.
func (ws *WorkSchedule) IsValid() bool {
	if ws.StaffID == 0 {
		return false
	}
	if ws.StartTime.IsZero() || ws.EndTime.IsZero() {
		return false
	}
	if !ws.EndTime.After(ws.StartTime) {
		return false
	}
	if !IsKnownWorkType(ws.WorkType) {
		return false
	}
	if len(ws.CustomContent) > MaxContentLength {
		return false
	}
	return true
}
