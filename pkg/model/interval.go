package model

import "fmt"

type Day uint8

const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var days = map[Day]string{
	Monday:    "Monday",
	Tuesday:   "Tuesday",
	Wednesday: "Wednesday",
	Thursday:  "Thursday",
	Friday:    "Friday",
	Saturday:  "Saturday",
	Sunday:    "Sunday",
}

func (day Day) Valid() bool {
	return day <= Sunday
}

func (day Day) String() string {
	if name, ok := days[day]; ok {
		return name
	}
	return fmt.Sprintf("Day(%d)", uint8(day))
}

// Interval is a half-open [Start, End) range of a single day of the week
type Interval struct {
	Day   Day
	Start Clock
	End   Clock
}

// Overlaps checks whether both intervals fall on the same day and share some time. Back-to-back intervals do not overlap
func (interval Interval) Overlaps(other Interval) bool {
	return interval.Day == other.Day && interval.Start < other.End && interval.End > other.Start
}

// Within checks whether the interval is fully contained in other (same day included)
func (interval Interval) Within(other Interval) bool {
	return interval.Day == other.Day && interval.Start >= other.Start && interval.End <= other.End
}

func (interval Interval) Validate() error {
	if !interval.Day.Valid() {
		return fmt.Errorf("%w: day of week %d is out of range", ErrInvalidInput, interval.Day)
	} else if !interval.Start.Valid() || !interval.End.Valid() {
		return fmt.Errorf("%w: interval %v has a time of day out of range", ErrInvalidInput, interval)
	} else if interval.Start >= interval.End {
		return fmt.Errorf("%w: interval %v must start before it ends", ErrInvalidInput, interval)
	}
	return nil
}

func (interval Interval) String() string {
	return fmt.Sprintf("%v %v-%v", interval.Day, interval.Start, interval.End)
}

// IntervalsOverlap is the symmetric overlap test between two intervals
func IntervalsOverlap(a, b Interval) bool {
	return a.Overlaps(b)
}
