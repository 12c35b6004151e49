package model

import "github.com/samber/lo"

type predicateEvaluatorStandard struct {
	required  []Constraint
	preferred []Constraint
	avoided   []Constraint
}

func newPredicateEvaluatorStandard(constraints []Constraint) *predicateEvaluatorStandard {
	byKind := func(kind ConstraintKind) []Constraint {
		return lo.Filter(constraints, func(constraint Constraint, _ int) bool { return constraint.Kind == kind })
	}
	return &predicateEvaluatorStandard{
		required:  byKind(Required),
		preferred: byKind(Preferred),
		avoided:   byKind(Avoid),
	}
}

func (evaluator *predicateEvaluatorStandard) Conflicts(slot1, slot2 TimeSlot) bool {
	return slot1.Interval.Overlaps(slot2.Interval)
}

func (evaluator *predicateEvaluatorStandard) ViolatesRequired(slot TimeSlot) bool {
	return lo.SomeBy(evaluator.required, func(constraint Constraint) bool {
		return slot.Interval.Overlaps(constraint.Interval)
	})
}

func (evaluator *predicateEvaluatorStandard) Score(slot TimeSlot) int {
	score := 0
	// Every matching constraint contributes, there is no deduplication
	for _, constraint := range evaluator.preferred {
		if slot.Interval.Within(constraint.Interval) {
			score += constraint.Priority.Weight()
		}
	}
	for _, constraint := range evaluator.avoided {
		if slot.Interval.Overlaps(constraint.Interval) {
			score -= constraint.Priority.Weight()
		}
	}
	return score
}
