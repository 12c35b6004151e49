package model

type predicateEvaluator interface {
	// Checks whether two slots are scheduled on the same day and share some time
	Conflicts(slot1, slot2 TimeSlot) bool

	// Checks whether the slot overlaps any required constraint (i.e. time the user must keep free)
	ViolatesRequired(slot TimeSlot) bool

	// Returns the weighted sum of the preferred constraints that fully contain the slot minus the avoid constraints that overlap it
	Score(slot TimeSlot) int
}

func newPredicateEvaluator(constraints []Constraint) predicateEvaluator {
	return newPredicateEvaluatorStandard(constraints)
}
