package models

import "time"

// SchedulePermission grants a system user the right to write work schedules
// for one staff member. Function-level EDIT on workSchedules is still
// required; both layers must hold.
type SchedulePermission struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_sched_perm_user_staff" json:"user_id"`
	StaffID   uint      `gorm:"not null;uniqueIndex:idx_sched_perm_user_staff" json:"staff_id"`
	CreatedAt time.Time `json:"created_at"`
}

func (SchedulePermission) TableName() string {
	return "schedule_permissions"
}
