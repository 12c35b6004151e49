package model

import (
	"fmt"
	"slices"
)

func validateInput(modelInput ModelInput) error {
	for _, course := range modelInput.Courses {
		for _, slot := range course.Slots {
			if err := slot.Interval.Validate(); err != nil {
				return fmt.Errorf("course \"%v\" slot \"%v\": %w", course.Id, slot.Id, err)
			}
		}
	}
	for i, constraint := range modelInput.Constraints {
		if err := constraint.Validate(); err != nil {
			return fmt.Errorf("constraint %d: %w", i, err)
		}
	}
	return nil
}

// verify checks that the solution picks one candidate slot per course (in course order), that no two slots conflict and that
// no slot violates a required constraint
func verify(solution Solution, modelInput ModelInput) bool {
	if len(solution) != len(modelInput.Courses) {
		return false
	}

	evaluator := newPredicateEvaluator(modelInput.Constraints)
	for i, slot := range solution {
		if !slices.Contains(modelInput.Courses[i].Slots, slot) || evaluator.ViolatesRequired(slot) {
			return false
		}
		for j := i + 1; j < len(solution); j++ {
			if evaluator.Conflicts(slot, solution[j]) {
				return false
			}
		}
	}
	return true
}
