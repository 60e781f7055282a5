package models

import (
	"time"

	"gorm.io/gorm"
)

const monthDayFormat = "01-02"

type Holiday struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"not null" json:"name"`
	Date        time.Time `gorm:"type:date;not null" json:"date"`
	IsRecurring bool      `gorm:"not null;default:false" json:"is_recurring"`

	// MonthDay holds the "MM-DD" component of Date, set iff IsRecurring.
	MonthDay string `gorm:"type:varchar(5)" json:"month_day"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Holiday) TableName() string {
	return "holidays"
}

// BeforeSave keeps MonthDay in sync with Date and the recurring flag.
func (h *Holiday) BeforeSave(tx *gorm.DB) error {
	if h.IsRecurring {
		h.MonthDay = h.Date.Format(monthDayFormat)
	} else {
		h.MonthDay = ""
	}
	return nil
}

// MatchesDate reports whether the holiday falls on the given date.
// Non-recurring holidays match on the exact calendar date; recurring
// holidays match on the month and day of any year. A recurring Feb 29
// holiday never matches in non-leap years.
func (h *Holiday) MatchesDate(date time.Time) bool {
	if !h.IsRecurring {
		return h.Date.Year() == date.Year() &&
			h.Date.Month() == date.Month() &&
			h.Date.Day() == date.Day()
	}
	return date.Format(monthDayFormat) == h.MonthDay
}
