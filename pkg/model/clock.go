package model

import (
	"fmt"
	"strings"
	"time"
)

// Clock is a wall-clock time of day expressed in seconds since midnight
type Clock uint32

const (
	secondsPerMinute = 60
	secondsPerHour   = 60 * secondsPerMinute
	secondsPerDay    = 24 * secondsPerHour
)

// NewClock builds a Clock from its hour, minute and second components
func NewClock(hour, minute, second int) (Clock, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 || second < 0 || second > 59 {
		return 0, fmt.Errorf("%w: time of day %02d:%02d:%02d is out of range", ErrInvalidInput, hour, minute, second)
	}
	return Clock(hour*secondsPerHour + minute*secondsPerMinute + second), nil
}

// MustClock is like NewClock but panics on malformed components. Intended for fixtures and tests.
func MustClock(hour, minute int) Clock {
	clock, err := NewClock(hour, minute, 0)
	if err != nil {
		panic(err)
	}
	return clock
}

// ParseClock accepts "HH:MM" and "HH:MM:SS"
func ParseClock(value string) (Clock, error) {
	value = strings.TrimSpace(value)
	layout := "15:04"
	if strings.Count(value, ":") == 2 {
		layout = "15:04:05"
	}

	parsed, err := time.Parse(layout, value)
	if err != nil {
		return 0, fmt.Errorf("%w: cannot parse time of day \"%v\"", ErrInvalidInput, value)
	}
	return NewClock(parsed.Hour(), parsed.Minute(), parsed.Second())
}

func (clock Clock) Hour() int   { return int(clock) / secondsPerHour }
func (clock Clock) Minute() int { return int(clock) % secondsPerHour / secondsPerMinute }
func (clock Clock) Second() int { return int(clock) % secondsPerMinute }

func (clock Clock) Valid() bool {
	return clock < secondsPerDay
}

func (clock Clock) String() string {
	if clock.Second() != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", clock.Hour(), clock.Minute(), clock.Second())
	}
	return fmt.Sprintf("%02d:%02d", clock.Hour(), clock.Minute())
}

func (clock Clock) MarshalText() ([]byte, error) {
	return []byte(clock.String()), nil
}

func (clock *Clock) UnmarshalText(text []byte) error {
	parsed, err := ParseClock(string(text))
	if err != nil {
		return err
	}
	*clock = parsed
	return nil
}
