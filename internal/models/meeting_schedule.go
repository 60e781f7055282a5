package models

import "time"

// MeetingSchedule is the room calendar entry shown on the public display.
// Rows are either materialized from an approved reservation or created
// directly by privileged users.
type MeetingSchedule struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	RoomID         uint      `gorm:"not null;index" json:"room_id"`
	StartTime      time.Time `gorm:"not null;index" json:"start_time"`
	EndTime        time.Time `gorm:"not null" json:"end_time"`
	MeetingContent string    `gorm:"type:varchar(200);not null" json:"meeting_content"`
	ContactPerson  string    `json:"contact_person"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Room MeetingRoom `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

func (MeetingSchedule) TableName() string {
	return "meeting_schedules"
}
