package model

import "context"

// Result is the outcome of one generation request
type Result struct {
	Solutions  []ScoredSolution // Best solutions first
	Found      int              // Complete solutions discovered before ranking
	Explored   uint64           // Search states entered
	Exhaustive bool             // False when the search stopped before exploring every branch
	StopReason StopReason
}

// Empty reports that no valid assignment was found. It is an expected outcome for over-constrained input, not an error
func (result Result) Empty() bool {
	return len(result.Solutions) == 0
}

type Timetabler interface {
	Generate(
		ctx context.Context,
		modelInput ModelInput,
		maxSolutions int,
	) (Result, error)

	Verify(
		solution Solution,
		modelInput ModelInput,
	) bool
}
