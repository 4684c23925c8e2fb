package billing

import (
	"time"

	"github.com/bizadmin/backend/internal/domain/shared"
)

// Period is a reporting window anchored at the current moment
type Period string

const (
	PeriodWeek  Period = "week"
	PeriodMonth Period = "month"
	PeriodYear  Period = "year"
)

// IsValid checks if the period is one of week, month or year
func (p Period) IsValid() bool {
	switch p {
	case PeriodWeek, PeriodMonth, PeriodYear:
		return true
	}
	return false
}

// String returns the string representation of Period
func (p Period) String() string {
	return string(p)
}

// Bounds returns the half-open interval [start, end) containing ref.
// Weeks start on Monday.
func (p Period) Bounds(ref time.Time) (time.Time, time.Time, error) {
	loc := ref.Location()
	switch p {
	case PeriodWeek:
		weekday := int(ref.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday belongs to the week that started the previous Monday
		}
		start := time.Date(ref.Year(), ref.Month(), ref.Day(), 0, 0, 0, 0, loc).AddDate(0, 0, -(weekday - 1))
		return start, start.AddDate(0, 0, 7), nil
	case PeriodMonth:
		start := time.Date(ref.Year(), ref.Month(), 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(0, 1, 0), nil
	case PeriodYear:
		start := time.Date(ref.Year(), 1, 1, 0, 0, 0, 0, loc)
		return start, start.AddDate(1, 0, 0), nil
	default:
		return time.Time{}, time.Time{}, shared.ErrInvalidPeriod
	}
}
