package models

import "time"

// Timetable is a named, persisted solution owned by a user.
type Timetable struct {
	ID        string           `db:"id" json:"id"`
	UserID    string           `db:"user_id" json:"user_id"`
	Name      string           `db:"name" json:"name"`
	CreatedAt time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt time.Time        `db:"updated_at" json:"updated_at"`
	Entries   []TimetableEntry `db:"-" json:"entries"`
}

// TimetableEntry links a timetable to one of the chosen time slots.
type TimetableEntry struct {
	ID          string    `db:"id" json:"id"`
	TimetableID string    `db:"timetable_id" json:"timetable_id"`
	TimeslotID  string    `db:"timeslot_id" json:"timeslot_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
