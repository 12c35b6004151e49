package model

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/gocarina/gocsv"
	"github.com/samber/lo"
)

// One row per candidate slot; course columns repeat on every row of the same course
type csvTimeSlotRow struct {
	CourseId   string `csv:"course_id"`
	CourseCode string `csv:"course_code"`
	CourseName string `csv:"course_name"`
	Instructor string `csv:"instructor"`
	SlotId     string `csv:"slot_id"`
	DayOfWeek  string `csv:"day_of_week"`
	StartTime  string `csv:"start_time"`
	EndTime    string `csv:"end_time"`
	Location   string `csv:"location"`
	SlotType   string `csv:"slot_type"`
	day        *int
}

type csvConstraintRow struct {
	ConstraintType string `csv:"constraint_type"`
	DayOfWeek      string `csv:"day_of_week"`
	StartTime      string `csv:"start_time"`
	EndTime        string `csv:"end_time"`
	Priority       string `csv:"priority"`
	day            *int
}

// InputFromCsv loads courses (one row per time slot) and constraints from two comma separated files
func InputFromCsv(coursesFile, constraintsFile string) (ModelInput, error) {
	courses, err := os.Open(coursesFile)
	if err != nil {
		return ModelInput{}, err
	}
	defer courses.Close()

	constraints, err := os.Open(constraintsFile)
	if err != nil {
		return ModelInput{}, err
	}
	defer constraints.Close()

	return InputFromCsvReaders(courses, constraints, ',')
}

func InputFromCsvReaders(courses, constraints io.Reader, delim rune) (ModelInput, error) {
	slotRows := []*csvTimeSlotRow{}
	if err := gocsv.UnmarshalCSV(newCsvReader(courses, delim), &slotRows); err != nil {
		return ModelInput{}, fmt.Errorf("%w: cannot parse courses csv: %v", ErrInvalidInput, err)
	}

	constraintRows := []*csvConstraintRow{}
	if err := gocsv.UnmarshalCSV(newCsvReader(constraints, delim), &constraintRows); err != nil {
		return ModelInput{}, fmt.Errorf("%w: cannot parse constraints csv: %v", ErrInvalidInput, err)
	}

	var err error
	for _, row := range slotRows {
		if row.day, err = parseCsvDay(row.DayOfWeek); err != nil {
			return ModelInput{}, err
		}
	}
	for _, row := range constraintRows {
		if row.day, err = parseCsvDay(row.DayOfWeek); err != nil {
			return ModelInput{}, err
		}
	}

	// Courses keep the order in which they first appear
	courseIds := lo.Uniq(lo.Map(slotRows, func(row *csvTimeSlotRow, _ int) string { return row.CourseId }))
	rowsPerCourse := lo.GroupBy(slotRows, func(row *csvTimeSlotRow) string { return row.CourseId })

	rawInput := RawModelInput{
		Courses: lo.Map(courseIds, func(courseId string, _ int) RawCourse {
			rows := rowsPerCourse[courseId]
			return RawCourse{
				Id:         courseId,
				Code:       rows[0].CourseCode,
				Name:       rows[0].CourseName,
				Instructor: rows[0].Instructor,
				TimeSlots: lo.Map(rows, func(row *csvTimeSlotRow, _ int) RawTimeSlot {
					return RawTimeSlot{
						Id:        row.SlotId,
						DayOfWeek: row.day,
						StartTime: row.StartTime,
						EndTime:   row.EndTime,
						Location:  row.Location,
						SlotType:  row.SlotType,
					}
				}),
			}
		}),
		Constraints: lo.Map(constraintRows, func(row *csvConstraintRow, _ int) RawConstraint {
			return RawConstraint{
				ConstraintType: row.ConstraintType,
				DayOfWeek:      row.day,
				StartTime:      row.StartTime,
				EndTime:        row.EndTime,
				Priority:       row.Priority,
			}
		}),
	}

	return ProcessRawInput(rawInput)
}

// parseCsvDay reads a day_of_week cell. Blank cells stay nil so validation reports them as missing
func parseCsvDay(cell string) (*int, error) {
	cell = strings.TrimSpace(cell)
	if cell == "" {
		return nil, nil
	}
	day, err := strconv.Atoi(cell)
	if err != nil {
		return nil, fmt.Errorf("%w: day of week \"%v\" is not an integer", ErrInvalidInput, cell)
	}
	return &day, nil
}

func newCsvReader(in io.Reader, delim rune) gocsv.CSVReader {
	reader := csv.NewReader(in)
	reader.Comma = delim
	reader.TrimLeadingSpace = true
	return reader
}
