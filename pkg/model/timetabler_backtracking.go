package model

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type backtrackingTimetabler struct {
	limits SearchLimits
	logger *zap.Logger
}

// NewBacktrackingTimetabler returns a Timetabler that exhaustively enumerates conflict-free assignments and ranks them by score.
// Every Generate call builds its own search state, so the returned value is safe for concurrent use
func NewBacktrackingTimetabler(limits SearchLimits, logger *zap.Logger) Timetabler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &backtrackingTimetabler{
		limits: limits,
		logger: logger,
	}
}

func (timetabler *backtrackingTimetabler) Generate(ctx context.Context, modelInput ModelInput, maxSolutions int) (Result, error) {
	//** Validate input
	if maxSolutions <= 0 {
		return Result{}, fmt.Errorf("%w: max solutions must be positive: %v", ErrInvalidInput, maxSolutions)
	}
	if err := validateInput(modelInput); err != nil {
		return Result{}, err
	}

	//** Initialize dependencies
	evaluator := newPredicateEvaluator(modelInput.Constraints)
	generator := newSolutionsGenerator(modelInput.Courses, evaluator, timetabler.limits)

	//** Search
	start := time.Now()
	enumeration := generator.Solutions(ctx)

	//** Rank
	result := Result{
		Solutions:  rank(enumeration.solutions, evaluator, maxSolutions),
		Found:      len(enumeration.solutions),
		Explored:   enumeration.explored,
		Exhaustive: enumeration.stop == Completed,
		StopReason: enumeration.stop,
	}

	fields := []zap.Field{
		zap.Int("courses", len(modelInput.Courses)),
		zap.Int("constraints", len(modelInput.Constraints)),
		zap.Uint64("explored", result.Explored),
		zap.Int("found", result.Found),
		zap.Int("returned", len(result.Solutions)),
		zap.Duration("elapsed", time.Since(start)),
	}
	if !result.Exhaustive {
		timetabler.logger.Warn("timetable search stopped early", append(fields, zap.String("reason", string(result.StopReason)))...)
	} else {
		timetabler.logger.Debug("timetable search completed", fields...)
	}

	return result, nil
}

func (timetabler *backtrackingTimetabler) Verify(solution Solution, modelInput ModelInput) bool {
	return verify(solution, modelInput)
}
