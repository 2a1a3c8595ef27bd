package utils

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Time-of-day values travel through the API as strings, either 12-hour
// ("2:30 PM") or 24-hour ("14:30"). Internally all comparisons run on
// minutes from midnight.

var (
	// ErrInvalidTimeFormat is returned for a time string that matches
	// neither the 12-hour nor the 24-hour form.
	ErrInvalidTimeFormat = errors.New("invalid time format, use a form like \"2:30 PM\" or \"14:30\"")
	// ErrOutOfRangeTime is returned when an arithmetic result leaves the
	// 00:00-23:59 range of a single day.
	ErrOutOfRangeTime = errors.New("time out of range for a single day")
)

var timeLayouts = []string{"15:04", "3:04 PM", "3:04PM"}

// ParseTimeToMinutes converts a time-of-day string to minutes from midnight.
func ParseTimeToMinutes(value string) (int, error) {
	s := strings.ToUpper(strings.TrimSpace(value))
	for _, layout := range timeLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.Hour()*60 + t.Minute(), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, value)
}

// FormatMinutes renders minutes from midnight in canonical 24-hour "15:04" form.
func FormatMinutes(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// Convert12To24Hour canonicalizes any accepted time form to "15:04".
func Convert12To24Hour(value string) (string, error) {
	minutes, err := ParseTimeToMinutes(value)
	if err != nil {
		return "", err
	}
	return FormatMinutes(minutes), nil
}

// AddMinutesToTime shifts a time-of-day forward by the given minutes.
// Crossing midnight in either direction is a caller error.
func AddMinutesToTime(value string, minutes int) (string, error) {
	base, err := ParseTimeToMinutes(value)
	if err != nil {
		return "", err
	}
	result := base + minutes
	if result < 0 || result >= 24*60 {
		return "", fmt.Errorf("%w: %s %+d minutes", ErrOutOfRangeTime, value, minutes)
	}
	return FormatMinutes(result), nil
}

// IsTimeWithinRange reports whether candidate lies in [start, end).
func IsTimeWithinRange(candidate, start, end string) (bool, error) {
	c, err := ParseTimeToMinutes(candidate)
	if err != nil {
		return false, err
	}
	s, err := ParseTimeToMinutes(start)
	if err != nil {
		return false, err
	}
	e, err := ParseTimeToMinutes(end)
	if err != nil {
		return false, err
	}
	return c >= s && c < e, nil
}
