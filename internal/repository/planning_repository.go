package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/samber/lo"

	"github.com/limaJavier/coursetable/pkg/model"
)

type courseRow struct {
	ID         string  `db:"id"`
	Code       string  `db:"code"`
	Name       string  `db:"name"`
	Instructor *string `db:"instructor"`
}

type timeSlotRow struct {
	ID        string  `db:"id"`
	CourseID  string  `db:"course_id"`
	DayOfWeek int     `db:"day_of_week"`
	StartTime string  `db:"start_time"`
	EndTime   string  `db:"end_time"`
	Location  *string `db:"location"`
	SlotType  string  `db:"slot_type"`
}

type constraintRow struct {
	ConstraintType string `db:"constraint_type"`
	DayOfWeek      int    `db:"day_of_week"`
	StartTime      string `db:"start_time"`
	EndTime        string `db:"end_time"`
	Priority       string `db:"priority"`
}

// PlanningRepository loads the planning input (courses with their candidate slots and constraints) owned by a user.
type PlanningRepository struct {
	db *sqlx.DB
}

// NewPlanningRepository builds repository.
func NewPlanningRepository(db *sqlx.DB) *PlanningRepository {
	return &PlanningRepository{db: db}
}

const (
	selectCoursesQuery = `SELECT id::text AS id, code, name, instructor FROM courses WHERE user_id = $1 ORDER BY id ASC`

	selectTimeSlotsQuery = `SELECT ts.id::text AS id, ts.course_id::text AS course_id, ts.day_of_week, ts.start_time::text AS start_time, ts.end_time::text AS end_time, ts.location, ts.slot_type FROM time_slots ts JOIN courses c ON c.id = ts.course_id WHERE c.user_id = $1 ORDER BY ts.course_id ASC, ts.id ASC`

	selectConstraintsQuery = `SELECT constraint_type, day_of_week, start_time::text AS start_time, end_time::text AS end_time, priority FROM constraints WHERE user_id = $1 ORDER BY id ASC`
)

// LoadInput returns the user's courses in id order, each with its slots in id order, and the user's constraints.
func (r *PlanningRepository) LoadInput(ctx context.Context, userID string) (model.ModelInput, error) {
	var courses []courseRow
	if err := r.db.SelectContext(ctx, &courses, selectCoursesQuery, userID); err != nil {
		return model.ModelInput{}, fmt.Errorf("list courses: %w", err)
	}
	var slots []timeSlotRow
	if err := r.db.SelectContext(ctx, &slots, selectTimeSlotsQuery, userID); err != nil {
		return model.ModelInput{}, fmt.Errorf("list time slots: %w", err)
	}
	var constraints []constraintRow
	if err := r.db.SelectContext(ctx, &constraints, selectConstraintsQuery, userID); err != nil {
		return model.ModelInput{}, fmt.Errorf("list constraints: %w", err)
	}

	slotsPerCourse := lo.GroupBy(slots, func(slot timeSlotRow) string { return slot.CourseID })
	rawInput := model.RawModelInput{
		Courses: lo.Map(courses, func(course courseRow, _ int) model.RawCourse {
			return model.RawCourse{
				Id:         course.ID,
				Code:       course.Code,
				Name:       course.Name,
				Instructor: lo.FromPtr(course.Instructor),
				TimeSlots: lo.Map(slotsPerCourse[course.ID], func(slot timeSlotRow, _ int) model.RawTimeSlot {
					return model.RawTimeSlot{
						Id:        slot.ID,
						DayOfWeek: lo.ToPtr(slot.DayOfWeek),
						StartTime: slot.StartTime,
						EndTime:   slot.EndTime,
						Location:  lo.FromPtr(slot.Location),
						SlotType:  slot.SlotType,
					}
				}),
			}
		}),
		Constraints: lo.Map(constraints, func(constraint constraintRow, _ int) model.RawConstraint {
			return model.RawConstraint{
				ConstraintType: constraint.ConstraintType,
				DayOfWeek:      lo.ToPtr(constraint.DayOfWeek),
				StartTime:      constraint.StartTime,
				EndTime:        constraint.EndTime,
				Priority:       constraint.Priority,
			}
		}),
	}

	return model.ProcessRawInput(rawInput)
}
