// Package dbtime holds calendar helpers for event dates. Month boundaries are
// computed in platform local time.
package dbtime

import (
	"fmt"
	"time"

	"kntista_backend/internals/helpers/errs"
)

// MonthStart returns midnight of the first day of t's month.
func MonthStart(t time.Time) time.Time {
	t = t.Local()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.Local)
}

// CurrentMonthRange returns the first and the last day (both at midnight) of now's month.
func CurrentMonthRange(now time.Time) (time.Time, time.Time) {
	start := MonthStart(now)
	end := start.AddDate(0, 1, -1)
	return start, end
}

func EarliestDate(dates []time.Time) (time.Time, error) {
	if len(dates) == 0 {
		return time.Time{}, fmt.Errorf("%w: event has no start dates", errs.ErrInvalidInput)
	}
	earliest := dates[0]
	for _, d := range dates[1:] {
		if d.Before(earliest) {
			earliest = d
		}
	}
	return earliest, nil
}

// IsWithinRange: earliest start in [rangeStart, rangeEnd] and the end date, if any, not after rangeEnd.
func IsWithinRange(startDates []time.Time, endDate *time.Time, rangeStart, rangeEnd time.Time) bool {
	earliest, err := EarliestDate(startDates)
	if err != nil {
		return false
	}
	if earliest.Before(rangeStart) || earliest.After(rangeEnd) {
		return false
	}
	return endDate == nil || !endDate.After(rangeEnd)
}

// IsActiveInCurrentMonth compares calendar months, not exact dates:
// open-ended events are active from their start month on, finished events
// up to and including their end month.
func IsActiveInCurrentMonth(startDates []time.Time, endDate *time.Time, now time.Time) bool {
	earliest, err := EarliestDate(startDates)
	if err != nil {
		return false
	}
	current := MonthStart(now)
	if endDate == nil {
		return !current.Before(MonthStart(earliest))
	}
	return !current.After(MonthStart(*endDate))
}
