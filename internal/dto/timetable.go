package dto

import (
	"github.com/samber/lo"

	"github.com/limaJavier/coursetable/internal/models"
	"github.com/limaJavier/coursetable/pkg/model"
)

// PreviewTimetableRequest carries the whole planning input; nothing is persisted.
type PreviewTimetableRequest struct {
	Courses      []map[string]any `json:"courses"`
	Constraints  []map[string]any `json:"constraints"`
	MaxSolutions int              `json:"max_solutions" validate:"omitempty,min=1,max=100"`
}

// GenerateTimetableRequest generates from the stored courses and constraints of a user and saves the best solution.
type GenerateTimetableRequest struct {
	Name         string `json:"name" validate:"omitempty,max=100"`
	MaxSolutions int    `json:"max_solutions" validate:"omitempty,min=1,max=100"`
}

// TimeSlotResponse is a chosen slot as presented to clients.
type TimeSlotResponse struct {
	ID        string `json:"id"`
	CourseID  string `json:"course_id"`
	DayOfWeek int    `json:"day_of_week"`
	DayName   string `json:"day_name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Location  string `json:"location,omitempty"`
	SlotType  string `json:"slot_type"`
}

// SolutionResponse is one ranked solution.
type SolutionResponse struct {
	Rank  int                `json:"rank"`
	Score int                `json:"score"`
	Slots []TimeSlotResponse `json:"slots"`
}

// GenerationResponse summarises a search.
type GenerationResponse struct {
	Solutions  []SolutionResponse `json:"solutions"`
	Found      int                `json:"found"`
	Explored   uint64             `json:"explored"`
	Exhaustive bool               `json:"exhaustive"`
	StopReason string             `json:"stop_reason"`
}

// GenerateTimetableResponse mirrors the generate action: the saved best solution plus every ranked alternative.
type GenerateTimetableResponse struct {
	TimetableID string             `json:"timetable_id"`
	Message     string             `json:"message"`
	Selected    *models.Timetable  `json:"selected"`
	Generation  GenerationResponse `json:"generation"`
}

// NewGenerationResponse flattens a search result, numbering solutions from 1.
func NewGenerationResponse(result model.Result) GenerationResponse {
	return GenerationResponse{
		Solutions: lo.Map(result.Solutions, func(scored model.ScoredSolution, i int) SolutionResponse {
			return SolutionResponse{
				Rank:  i + 1,
				Score: scored.Score,
				Slots: lo.Map(scored.Solution, func(slot model.TimeSlot, _ int) TimeSlotResponse {
					return TimeSlotResponse{
						ID:        slot.Id,
						CourseID:  slot.Course,
						DayOfWeek: int(slot.Interval.Day),
						DayName:   slot.Interval.Day.String(),
						StartTime: slot.Interval.Start.String(),
						EndTime:   slot.Interval.End.String(),
						Location:  slot.Location,
						SlotType:  string(slot.Category),
					}
				}),
			}
		}),
		Found:      result.Found,
		Explored:   result.Explored,
		Exhaustive: result.Exhaustive,
		StopReason: string(result.StopReason),
	}
}
