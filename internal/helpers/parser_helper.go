package helpers

import (
	"fmt"
	"strconv"
	"time"
)

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04:05"
)

func StringToInt(s string) (int, error) {
	return strconv.Atoi(s)
}

// ParseDate validates a calendar date in YYYY-MM-DD form and returns it
// normalized, so stored values always compare correctly as strings.
func ParseDate(s string) (string, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	return t.Format(DateLayout), nil
}

// ParseClock validates a time of day in HH:MM:SS form and returns it
// normalized.
func ParseClock(s string) (string, error) {
	t, err := time.Parse(ClockLayout, s)
	if err != nil {
		return "", fmt.Errorf("invalid time %q: expected HH:MM:SS", s)
	}
	return t.Format(ClockLayout), nil
}

// DateInFuture reports whether date (YYYY-MM-DD, assumed normalized) is
// strictly after today in server-local time.
func DateInFuture(date string, now time.Time) bool {
	return date > now.Format(DateLayout)
}
