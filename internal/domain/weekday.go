package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var ErrBadWeekday = errors.New("invalid weekday")

// DayAll is the filter value matching every weekday. It is not a weekday.
const DayAll = "All"

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// ParseWeekday maps a canonical English day name (any case) to time.Weekday.
func ParseWeekday(s string) (time.Weekday, error) {
	d, ok := weekdays[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrBadWeekday, s)
	}
	return d, nil
}

// WeekdayName returns the canonical English name for a weekday.
func WeekdayName(d time.Weekday) string {
	return d.String()
}
