package domain

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var ErrBadTime = errors.New("invalid time of day")

// TimeOfDay is a canonical wall-clock time within a single day.
type TimeOfDay struct {
	Hour   int // 0..23
	Minute int // 0..59
}

// ParseTimeOfDay parses "HH:MM" (24-hour, hour padding optional) or
// "H:MM AM"/"H:MM PM" (12-hour, meridiem case-insensitive). "00:00" is
// accepted as midnight. Malformed input returns a wrapped ErrBadTime,
// never a panic, so callers can render a placeholder instead.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return TimeOfDay{}, fmt.Errorf("%w: empty", ErrBadTime)
	}

	meridiem := ""
	fields := strings.Fields(s)
	switch len(fields) {
	case 1:
		// 24-hour form
	case 2:
		meridiem = strings.ToUpper(fields[1])
		if meridiem != "AM" && meridiem != "PM" {
			return TimeOfDay{}, fmt.Errorf("%w: %q", ErrBadTime, s)
		}
	default:
		return TimeOfDay{}, fmt.Errorf("%w: %q", ErrBadTime, s)
	}

	parts := strings.Split(fields[0], ":")
	if len(parts) != 2 {
		return TimeOfDay{}, fmt.Errorf("%w: expected HH:MM in %q", ErrBadTime, s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("%w: hour in %q", ErrBadTime, s)
	}
	if len(parts[1]) != 2 {
		return TimeOfDay{}, fmt.Errorf("%w: minute in %q", ErrBadTime, s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return TimeOfDay{}, fmt.Errorf("%w: minute in %q", ErrBadTime, s)
	}

	if meridiem == "" {
		if h < 0 || h > 23 {
			return TimeOfDay{}, fmt.Errorf("%w: hour in %q", ErrBadTime, s)
		}
		return TimeOfDay{Hour: h, Minute: m}, nil
	}

	if h < 1 || h > 12 {
		return TimeOfDay{}, fmt.Errorf("%w: hour in %q", ErrBadTime, s)
	}
	if meridiem == "PM" && h != 12 {
		h += 12
	}
	if meridiem == "AM" && h == 12 {
		h = 0
	}
	return TimeOfDay{Hour: h, Minute: m}, nil
}

// Minutes returns minutes since midnight.
func (t TimeOfDay) Minutes() int {
	return t.Hour*60 + t.Minute
}

// Compare orders two times of day: -1, 0 or 1.
func Compare(a, b TimeOfDay) int {
	switch {
	case a.Minutes() < b.Minutes():
		return -1
	case a.Minutes() > b.Minutes():
		return 1
	default:
		return 0
	}
}

// Format12h renders "H:MM AM" with no leading hour zero and a
// two-digit minute, the shape the 12-hour input grammar accepts back.
func (t TimeOfDay) Format12h() string {
	h := t.Hour % 12
	if h == 0 {
		h = 12
	}
	meridiem := "AM"
	if t.Hour >= 12 {
		meridiem = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", h, t.Minute, meridiem)
}
