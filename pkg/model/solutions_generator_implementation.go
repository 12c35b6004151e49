package model

import (
	"context"
	"errors"

	"github.com/samber/lo"
)

type solutionsGeneratorImplementation struct {
	courses   []Course
	evaluator predicateEvaluator
	limits    SearchLimits
}

// searchState is owned by a single Solutions call and never shared
type searchState struct {
	ctx       context.Context
	partial   Solution // Slots chosen for courses [0, len(partial))
	solutions []Solution
	explored  uint64
	stop      StopReason
}

func (generator *solutionsGeneratorImplementation) Solutions(ctx context.Context) enumeration {
	state := searchState{
		ctx:       ctx,
		partial:   make(Solution, 0, len(generator.courses)),
		solutions: make([]Solution, 0),
		stop:      Completed,
	}
	generator.backtrack(&state, 0)

	return enumeration{
		solutions: state.solutions,
		explored:  state.explored,
		stop:      state.stop,
	}
}

func (generator *solutionsGeneratorImplementation) backtrack(state *searchState, course int) {
	if !generator.enter(state) {
		return
	}

	if course >= len(generator.courses) {
		solution := make(Solution, len(state.partial))
		copy(solution, state.partial)
		state.solutions = append(state.solutions, solution)
		return
	}

	for _, slot := range generator.courses[course].Slots {
		conflict := lo.SomeBy(state.partial, func(selected TimeSlot) bool {
			return generator.evaluator.Conflicts(slot, selected)
		})
		if conflict || generator.evaluator.ViolatesRequired(slot) {
			continue
		}

		state.partial = append(state.partial, slot)
		generator.backtrack(state, course+1)
		state.partial = state.partial[:len(state.partial)-1]

		if state.stop != Completed {
			return
		}
	}
}

// enter accounts for a new search state and reports whether the search may proceed
func (generator *solutionsGeneratorImplementation) enter(state *searchState) bool {
	if state.stop != Completed {
		return false
	}

	select {
	case <-state.ctx.Done():
		if errors.Is(state.ctx.Err(), context.DeadlineExceeded) {
			state.stop = Deadline
		} else {
			state.stop = Canceled
		}
		return false
	default:
	}

	if generator.limits.MaxNodes > 0 && state.explored >= generator.limits.MaxNodes {
		state.stop = NodeLimit
		return false
	}
	state.explored++
	return true
}
