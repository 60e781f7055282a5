package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// PermissionLevel is the access granted to a user group for one function key.
type PermissionLevel string

const (
	PermissionNone PermissionLevel = "NONE"
	PermissionView PermissionLevel = "VIEW"
	PermissionEdit PermissionLevel = "EDIT"
)

// FunctionKey identifies an access-controlled area of the system.
type FunctionKey string

const (
	FunctionWorkSchedules       FunctionKey = "workSchedules"
	FunctionMeetingRooms        FunctionKey = "meetingRooms"
	FunctionReservations        FunctionKey = "reservations"
	FunctionReservationApproval FunctionKey = "reservationApproval"
	FunctionMeetingSchedules    FunctionKey = "meetingSchedules"
	FunctionStaff               FunctionKey = "staff"
	FunctionDepartments         FunctionKey = "departments"
	FunctionHolidays            FunctionKey = "holidays"
	FunctionUsers               FunctionKey = "users"
)

// KnownFunctionKeys lists every function key the permission map accepts.
var KnownFunctionKeys = []FunctionKey{
	FunctionWorkSchedules,
	FunctionMeetingRooms,
	FunctionReservations,
	FunctionReservationApproval,
	FunctionMeetingSchedules,
	FunctionStaff,
	FunctionDepartments,
	FunctionHolidays,
	FunctionUsers,
}

// IsKnownFunctionKey reports whether the key is one of the FunctionKey constants.
func IsKnownFunctionKey(key FunctionKey) bool {
	for _, known := range KnownFunctionKeys {
		if key == known {
			return true
		}
	}
	return false
}

// PermissionMap maps function keys to the level granted by a user group.
// Stored as a JSON text column; keys and levels are validated at the
// boundary so a typo cannot silently grant or deny access.
type PermissionMap map[FunctionKey]PermissionLevel

// Value implements the driver.Valuer interface.
func (pm PermissionMap) Value() (driver.Value, error) {
	if pm == nil {
		return "{}", nil
	}
	data, err := json.Marshal(pm)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements the sql.Scanner interface.
func (pm *PermissionMap) Scan(value interface{}) error {
	if value == nil {
		*pm = PermissionMap{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("cannot scan type %T into PermissionMap", value)
	}
	if len(data) == 0 {
		*pm = PermissionMap{}
		return nil
	}
	return json.Unmarshal(data, pm)
}

// Validate rejects unknown function keys and permission levels.
func (pm PermissionMap) Validate() error {
	for key, level := range pm {
		if !IsKnownFunctionKey(key) {
			return fmt.Errorf("unknown function key %q", key)
		}
		switch level {
		case PermissionNone, PermissionView, PermissionEdit:
		default:
			return fmt.Errorf("unknown permission level %q for function %q", level, key)
		}
	}
	return nil
}

// LevelFor returns the granted level for a function key, defaulting to NONE.
func (pm PermissionMap) LevelFor(key FunctionKey) PermissionLevel {
	if level, ok := pm[key]; ok {
		return level
	}
	return PermissionNone
}

type UserGroup struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Name        string        `gorm:"uniqueIndex;not null" json:"name"`
	Permissions PermissionMap `gorm:"type:text;not null" json:"permissions"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

func (UserGroup) TableName() string {
	return "user_groups"
}

type SystemUser struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string    `gorm:"not null" json:"-"`
	UserGroupID  uint      `gorm:"not null;index" json:"user_group_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	UserGroup UserGroup `gorm:"foreignKey:UserGroupID" json:"user_group,omitempty"`
}

func (SystemUser) TableName() string {
	return "system_users"
}
