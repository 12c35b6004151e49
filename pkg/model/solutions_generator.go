package model

import "context"

type StopReason string

const (
	Completed StopReason = "completed"
	NodeLimit StopReason = "node_limit"
	Deadline  StopReason = "deadline"
	Canceled  StopReason = "canceled"
)

// SearchLimits bounds the backtracking search. A zero value keeps the search exhaustive
type SearchLimits struct {
	MaxNodes uint64 // Maximum number of search states entered (0 means unlimited)
}

type enumeration struct {
	solutions []Solution // Complete solutions in discovery order
	explored  uint64
	stop      StopReason
}

type solutionsGenerator interface {
	// Enumerates, depth first and in candidate order, every assignment of one slot per course such that no two slots conflict and
	// no slot violates a required constraint. The enumeration is exhaustive unless the limits are reached or the context is done,
	// in which case the solutions discovered so far are returned along with the reason the search stopped.
	//
	// Example:
	//
	//	generator := newSolutionsGenerator(courses, newPredicateEvaluator(constraints), SearchLimits{})
	//	enumeration := generator.Solutions(context.Background())
	//	// enumeration.stop == Completed, enumeration.solutions holds every valid assignment
	Solutions(ctx context.Context) enumeration
}

func newSolutionsGenerator(courses []Course, evaluator predicateEvaluator, limits SearchLimits) solutionsGenerator {
	return &solutionsGeneratorImplementation{courses, evaluator, limits}
}
