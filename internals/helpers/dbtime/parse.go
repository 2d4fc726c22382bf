package dbtime

import (
	"fmt"
	"strings"
	"time"

	"kntista_backend/internals/helpers/errs"
)

const DateLayout = "2006-01-02"

// ParseDate accepts YYYY-MM-DD (local midnight) or RFC3339.
func ParseDate(raw string) (time.Time, error) {
	s := strings.TrimSpace(raw)
	if t, err := time.ParseInLocation(DateLayout, s, time.Local); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q is not a date", errs.ErrInvalidInput, raw)
}

func ParseDates(raw []string) ([]time.Time, error) {
	out := make([]time.Time, 0, len(raw))
	for _, s := range raw {
		t, err := ParseDate(s)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
