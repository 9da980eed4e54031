package utils

import (
	"errors"
	"strings"
	"time"

	"github.com/yukikurage/trip-planner-api/internal/constants"
)

// ErrInvalidDate is returned when a value is neither YYYY-MM-DD nor RFC 3339.
var ErrInvalidDate = errors.New("invalid date")

// ParseDate accepts a calendar date (YYYY-MM-DD) or an RFC 3339 timestamp and
// returns it in UTC.
func ParseDate(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, ErrInvalidDate
	}
	if t, err := time.ParseInLocation(constants.DateLayout, value, time.UTC); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.UTC(), nil
	}
	return time.Time{}, ErrInvalidDate
}

// ParseDay is ParseDate truncated to midnight UTC.
func ParseDay(value string) (time.Time, error) {
	t, err := ParseDate(value)
	if err != nil {
		return t, err
	}
	return TruncateDay(t), nil
}

// TruncateDay drops the clock part of t in UTC.
func TruncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate renders t as YYYY-MM-DD in UTC.
func FormatDate(t time.Time) string {
	return t.UTC().Format(constants.DateLayout)
}
