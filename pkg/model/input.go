package model

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"reflect"

	"github.com/go-playground/validator/v10"
	"github.com/mitchellh/mapstructure"
)

type SlotCategory string

const (
	Lecture  SlotCategory = "lecture"
	Lab      SlotCategory = "lab"
	Tutorial SlotCategory = "tutorial"
	Other    SlotCategory = "other"
)

// TimeSlot is one candidate meeting time of a course. Location and Category are carried along but never evaluated
type TimeSlot struct {
	Id       string
	Course   string
	Interval Interval
	Location string
	Category SlotCategory
}

type Course struct {
	Id         string
	Code       string
	Name       string
	Instructor string
	Slots      []TimeSlot
}

// Solution holds one slot per course, in course order
type Solution []TimeSlot

type ModelInput struct {
	Courses     []Course
	Constraints []Constraint
}

type RawTimeSlot struct {
	Id        string `mapstructure:"id"`
	DayOfWeek *int   `mapstructure:"day_of_week" validate:"required,min=0,max=6"`
	StartTime string `mapstructure:"start_time" validate:"required"`
	EndTime   string `mapstructure:"end_time" validate:"required"`
	Location  string `mapstructure:"location"`
	SlotType  string `mapstructure:"slot_type" validate:"omitempty,oneof=lecture lab tutorial other"`
}

type RawCourse struct {
	Id         string        `mapstructure:"id" validate:"required"`
	Code       string        `mapstructure:"code"`
	Name       string        `mapstructure:"name"`
	Instructor string        `mapstructure:"instructor"`
	TimeSlots  []RawTimeSlot `mapstructure:"time_slots" validate:"dive"`
}

type RawConstraint struct {
	ConstraintType string `mapstructure:"constraint_type" validate:"required,oneof=preferred avoid required"`
	DayOfWeek      *int   `mapstructure:"day_of_week" validate:"required,min=0,max=6"`
	StartTime      string `mapstructure:"start_time" validate:"required"`
	EndTime        string `mapstructure:"end_time" validate:"required"`
	Priority       string `mapstructure:"priority" validate:"omitempty,oneof=low medium high"`
}

type RawModelInput struct {
	Courses     []RawCourse     `mapstructure:"courses" validate:"dive"`
	Constraints []RawConstraint `mapstructure:"constraints" validate:"dive"`
}

var validate = validator.New()

func InputFromJson(file string) (ModelInput, error) {
	bytes, err := os.ReadFile(file)
	if err != nil {
		return ModelInput{}, err
	}
	var inputJson map[string]any
	if err := json.Unmarshal(bytes, &inputJson); err != nil {
		return ModelInput{}, err
	}
	return InputFromMap(inputJson)
}

// InputFromMap decodes an already unmarshalled JSON document. Numeric ids are accepted and turned into strings
func InputFromMap(inputJson map[string]any) (ModelInput, error) {
	var rawInput RawModelInput
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		DecodeHook:       rejectFractionalInts,
		Result:           &rawInput,
	})
	if err != nil {
		return ModelInput{}, err
	}
	if err := decoder.Decode(inputJson); err != nil {
		return ModelInput{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return ProcessRawInput(rawInput)
}

// JSON numbers arrive as float64 and mapstructure would silently truncate them into int fields
func rejectFractionalInts(from reflect.Kind, to reflect.Kind, data any) (any, error) {
	if from != reflect.Float64 || to != reflect.Int {
		return data, nil
	}
	if value := reflect.ValueOf(data).Float(); value != math.Trunc(value) {
		return nil, fmt.Errorf("%v is not an integer", value)
	}
	return data, nil
}

func ProcessRawInput(rawInput RawModelInput) (ModelInput, error) {
	if err := validate.Struct(rawInput); err != nil {
		return ModelInput{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	courses := make([]Course, 0, len(rawInput.Courses))
	seenCourses := make(map[string]bool)
	for _, rawCourse := range rawInput.Courses {
		// Course ids must be unique since slots reference them
		if seenCourses[rawCourse.Id] {
			return ModelInput{}, fmt.Errorf("%w: duplicate course \"%v\"", ErrInvalidInput, rawCourse.Id)
		}
		seenCourses[rawCourse.Id] = true

		course := Course{
			Id:         rawCourse.Id,
			Code:       rawCourse.Code,
			Name:       rawCourse.Name,
			Instructor: rawCourse.Instructor,
			Slots:      make([]TimeSlot, 0, len(rawCourse.TimeSlots)),
		}
		for i, rawSlot := range rawCourse.TimeSlots {
			interval, err := parseInterval(*rawSlot.DayOfWeek, rawSlot.StartTime, rawSlot.EndTime)
			if err != nil {
				return ModelInput{}, fmt.Errorf("course \"%v\" slot %d: %w", rawCourse.Id, i, err)
			}

			slotId := rawSlot.Id
			if slotId == "" {
				slotId = fmt.Sprintf("%v#%d", rawCourse.Id, i)
			}
			category := SlotCategory(rawSlot.SlotType)
			if category == "" {
				category = Lecture
			}

			course.Slots = append(course.Slots, TimeSlot{
				Id:       slotId,
				Course:   rawCourse.Id,
				Interval: interval,
				Location: rawSlot.Location,
				Category: category,
			})
		}
		courses = append(courses, course)
	}

	constraints := make([]Constraint, 0, len(rawInput.Constraints))
	for i, rawConstraint := range rawInput.Constraints {
		constraint, err := processRawConstraint(rawConstraint)
		if err != nil {
			return ModelInput{}, fmt.Errorf("constraint %d: %w", i, err)
		}
		constraints = append(constraints, constraint)
	}

	return ModelInput{Courses: courses, Constraints: constraints}, nil
}

func processRawConstraint(rawConstraint RawConstraint) (Constraint, error) {
	interval, err := parseInterval(*rawConstraint.DayOfWeek, rawConstraint.StartTime, rawConstraint.EndTime)
	if err != nil {
		return Constraint{}, err
	}

	priority := Medium
	if rawConstraint.Priority != "" {
		if priority, err = ParsePriority(rawConstraint.Priority); err != nil {
			return Constraint{}, err
		}
	}

	constraint := Constraint{
		Kind:     ConstraintKind(rawConstraint.ConstraintType),
		Interval: interval,
		Priority: priority,
	}
	return constraint, constraint.Validate()
}

func parseInterval(day int, start, end string) (Interval, error) {
	if day < 0 || day > int(Sunday) {
		return Interval{}, fmt.Errorf("%w: day of week %d is out of range", ErrInvalidInput, day)
	}
	startClock, err := ParseClock(start)
	if err != nil {
		return Interval{}, err
	}
	endClock, err := ParseClock(end)
	if err != nil {
		return Interval{}, err
	}

	interval := Interval{Day: Day(day), Start: startClock, End: endClock}
	return interval, interval.Validate()
}
