package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limaJavier/coursetable/pkg/model"
)

func TestNewGenerationResponse(t *testing.T) {
	slot := model.TimeSlot{
		Id:       "s1",
		Course:   "c1",
		Interval: model.Interval{Day: model.Wednesday, Start: model.MustClock(9, 30), End: model.MustClock(11, 0)},
		Location: "B-12",
		Category: model.Lab,
	}
	result := model.Result{
		Solutions:  []model.ScoredSolution{{Solution: model.Solution{slot}, Score: 4}, {Solution: model.Solution{slot}, Score: -1}},
		Found:      7,
		Explored:   31,
		Exhaustive: true,
		StopReason: model.Completed,
	}

	resp := NewGenerationResponse(result)

	require.Len(t, resp.Solutions, 2)
	assert.Equal(t, 1, resp.Solutions[0].Rank)
	assert.Equal(t, 2, resp.Solutions[1].Rank)
	assert.Equal(t, -1, resp.Solutions[1].Score)
	assert.Equal(t, TimeSlotResponse{
		ID:        "s1",
		CourseID:  "c1",
		DayOfWeek: 2,
		DayName:   "Wednesday",
		StartTime: "09:30",
		EndTime:   "11:00",
		Location:  "B-12",
		SlotType:  "lab",
	}, resp.Solutions[0].Slots[0])
	assert.Equal(t, 7, resp.Found)
	assert.Equal(t, uint64(31), resp.Explored)
	assert.Equal(t, "completed", resp.StopReason)
}

func TestNewGenerationResponseEmptyEncodesList(t *testing.T) {
	resp := NewGenerationResponse(model.Result{Exhaustive: true, StopReason: model.Completed})

	raw, err := json.Marshal(resp)

	require.NoError(t, err)
	assert.Contains(t, string(raw), `"solutions":[]`)
}
