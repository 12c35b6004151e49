package model

import (
	"cmp"
	"slices"

	"github.com/samber/lo"
)

type ScoredSolution struct {
	Solution Solution
	Score    int
}

func scoreSolution(solution Solution, evaluator predicateEvaluator) int {
	return lo.SumBy(solution, evaluator.Score)
}

// rank scores every solution and keeps the best maxSolutions ones. Equal scores keep their discovery order
func rank(solutions []Solution, evaluator predicateEvaluator, maxSolutions int) []ScoredSolution {
	scored := lo.Map(solutions, func(solution Solution, _ int) ScoredSolution {
		return ScoredSolution{Solution: solution, Score: scoreSolution(solution, evaluator)}
	})

	slices.SortStableFunc(scored, func(a, b ScoredSolution) int {
		return cmp.Compare(b.Score, a.Score)
	})

	return scored[:min(maxSolutions, len(scored))]
}

// ScoreSlot is the preference score a single slot earns against the given constraints
func ScoreSlot(slot TimeSlot, constraints []Constraint) int {
	return newPredicateEvaluator(constraints).Score(slot)
}

// Score sums the score of every slot of the solution independently
func Score(solution Solution, constraints []Constraint) int {
	return scoreSolution(solution, newPredicateEvaluator(constraints))
}

// ViolatesRequired checks whether the slot overlaps any required constraint
func ViolatesRequired(slot TimeSlot, constraints []Constraint) bool {
	return newPredicateEvaluator(constraints).ViolatesRequired(slot)
}
