package service

import (
	"errors"
	"fmt"
	"time"
)

// Domain errors. Expected rule violations come back as these values so
// handlers can translate them; anything else is a persistence failure and
// propagates untouched.
var (
	ErrInvalidRange         = errors.New("end time must be after start time")
	ErrWeekendNotAllowed    = errors.New("weekend scheduling is disabled")
	ErrHolidayNotAllowed    = errors.New("date falls on a holiday")
	ErrOutsideWorkHours     = errors.New("time falls outside the work-hours window")
	ErrMissingCustomContent = errors.New("custom content is required for this work type")
	ErrInvalidWorkType      = errors.New("unknown work type")
	ErrDailyQuotaExceeded   = errors.New("daily schedule limit exceeded")
	ErrInvalidTransition    = errors.New("reservation status does not allow this transition")
	ErrMissingReason        = errors.New("rejection reason is required")
	ErrMissingContent       = errors.New("meeting content is required")
	ErrContentTooLong       = errors.New("content exceeds the maximum length")
	ErrForbidden            = errors.New("operation not permitted")
	ErrNotFound             = errors.New("record not found")
	ErrConflict             = errors.New("record conflicts with existing data")
)

// QuotaExceededError reports which day failed the daily-quota check and how
// many schedules already overlap it.
type QuotaExceededError struct {
	StaffID       uint
	ViolatingDate time.Time
	CurrentCount  int
	Limit         int
}

func (e *QuotaExceededError) Error() string {
	return fmt.Sprintf("staff %d already has %d of %d schedules on %s",
		e.StaffID, e.CurrentCount, e.Limit, e.ViolatingDate.Format("2006-01-02"))
}

func (e *QuotaExceededError) Unwrap() error {
	return ErrDailyQuotaExceeded
}

// IsDomainError reports whether the error is an expected rule violation
// rather than an infrastructure failure.
func IsDomainError(err error) bool {
	for _, domain := range []error{
		ErrInvalidRange, ErrWeekendNotAllowed, ErrHolidayNotAllowed,
		ErrOutsideWorkHours, ErrMissingCustomContent, ErrInvalidWorkType,
		ErrDailyQuotaExceeded, ErrInvalidTransition, ErrMissingReason,
		ErrMissingContent, ErrContentTooLong, ErrForbidden, ErrNotFound,
		ErrConflict,
	} {
		if errors.Is(err, domain) {
			return true
		}
	}
	return false
}
