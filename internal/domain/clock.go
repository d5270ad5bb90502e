package domain

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Clock is a time of day expressed in minutes since midnight. Values of 24:00
// and beyond are legal and describe work that runs past midnight.
type Clock int

// NewClock builds a Clock from hours and minutes.
func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

// ParseClock parses "HH:MM" or "H:MM" in the 00:00-23:59 range.
func ParseClock(s string) (Clock, error) {
	hh, mm, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || len(mm) != 2 || len(hh) == 0 || len(hh) > 2 {
		return 0, fmt.Errorf("invalid time %q (expected HH:MM)", s)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid time %q (expected HH:MM)", s)
	}
	m, err := strconv.Atoi(mm)
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid time %q (expected HH:MM)", s)
	}
	return NewClock(h, m), nil
}

// MustParseClock is ParseClock for constants and tests.
func MustParseClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

func (c Clock) Hour() int   { return int(c) / 60 }
func (c Clock) Minute() int { return int(c) % 60 }

// Add returns c shifted by the given number of minutes.
func (c Clock) Add(minutes int) Clock {
	return c + Clock(minutes)
}

// RoundUp returns the smallest multiple of step minutes that is >= c.
func (c Clock) RoundUp(step int) Clock {
	if step <= 0 {
		return c
	}
	if r := int(c) % step; r != 0 {
		return c + Clock(step-r)
	}
	return c
}

// On places the clock on the given calendar day in loc. The result is the
// wall-clock time c on that day, so DST shifts do not move it; values past
// 24:00 roll over into the next day.
func (c Clock) On(day time.Time, loc *time.Location) time.Time {
	y, mo, d := day.Date()
	return time.Date(y, mo, d, 0, int(c), 0, 0, loc)
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

// FormatMinutes renders a duration the way plan files write it: 45m, 2h, 1h 30m.
func FormatMinutes(minutes int) string {
	switch {
	case minutes < 60:
		return fmt.Sprintf("%dm", minutes)
	case minutes%60 == 0:
		return fmt.Sprintf("%dh", minutes/60)
	default:
		return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
	}
}

func (c Clock) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

func (c *Clock) UnmarshalText(b []byte) error {
	parsed, err := ParseClock(string(b))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
