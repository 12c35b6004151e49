package model

import "fmt"

type ConstraintKind string

const (
	Preferred ConstraintKind = "preferred" // Soft: rewards slots fully contained in the interval
	Avoid     ConstraintKind = "avoid"     // Soft: penalizes slots overlapping the interval
	Required  ConstraintKind = "required"  // Hard: the interval must be kept free
)

func (kind ConstraintKind) Valid() bool {
	switch kind {
	case Preferred, Avoid, Required:
		return true
	}
	return false
}

type Priority uint8

const (
	Low Priority = iota + 1
	Medium
	High
)

var priorities = map[string]Priority{
	"low":    Low,
	"medium": Medium,
	"high":   High,
}

func ParsePriority(label string) (Priority, error) {
	priority, ok := priorities[label]
	if !ok {
		return 0, fmt.Errorf("%w: unknown priority \"%v\"", ErrInvalidInput, label)
	}
	return priority, nil
}

func (priority Priority) Valid() bool {
	return priority >= Low && priority <= High
}

// Weight returns the score contribution of a constraint with this priority
func (priority Priority) Weight() int {
	switch priority {
	case Low:
		return 1
	case Medium:
		return 2
	case High:
		return 3
	}
	panic(fmt.Sprintf("invalid priority %d", uint8(priority)))
}

func (priority Priority) String() string {
	switch priority {
	case Low:
		return "low"
	case Medium:
		return "medium"
	case High:
		return "high"
	}
	return fmt.Sprintf("Priority(%d)", uint8(priority))
}

// Constraint is a user-declared time preference. It does not belong to any course
type Constraint struct {
	Kind     ConstraintKind
	Interval Interval
	Priority Priority
}

func (constraint Constraint) Validate() error {
	if !constraint.Kind.Valid() {
		return fmt.Errorf("%w: unknown constraint kind \"%v\"", ErrInvalidInput, constraint.Kind)
	} else if !constraint.Priority.Valid() {
		return fmt.Errorf("%w: constraint priority %d is out of range", ErrInvalidInput, constraint.Priority)
	}
	return constraint.Interval.Validate()
}
