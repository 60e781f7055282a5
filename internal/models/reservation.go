package models

import "time"

// Reservation statuses
const (
	ReservationPending  = "pending"
	ReservationApproved = "approved"
	ReservationRejected = "rejected"
)

type MeetingRoomReservation struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	RoomID          uint       `gorm:"not null;index" json:"room_id"`
	RequestedBy     uint       `gorm:"not null;index" json:"requested_by"`
	StartTime       time.Time  `gorm:"not null;index" json:"start_time"`
	EndTime         time.Time  `gorm:"not null" json:"end_time"`
	MeetingContent  string     `gorm:"type:varchar(200);not null" json:"meeting_content"`
	ContactInfo     string     `json:"contact_info"`
	Status          string     `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	RejectionReason string     `json:"rejection_reason"`
	ApprovedBy      *uint      `json:"approved_by"`
	ApprovedAt      *time.Time `json:"approved_at"`

	// Derived meeting schedule row, set only while Status is approved.
	MeetingScheduleID *uint `gorm:"index" json:"meeting_schedule_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Room MeetingRoom `gorm:"foreignKey:RoomID" json:"room,omitempty"`
}

func (MeetingRoomReservation) TableName() string {
	return "meeting_room_reservations"
}

// IsPending reports whether the reservation still awaits an approval decision.
func (r *MeetingRoomReservation) IsPending() bool {
	return r.Status == ReservationPending
}

// IsApproved reports whether the reservation is currently approved.
func (r *MeetingRoomReservation) IsApproved() bool {
	return r.Status == ReservationApproved
}
