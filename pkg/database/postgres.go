package database

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/limaJavier/coursetable/pkg/config"
)

// NewPostgres returns a configured PostgreSQL client.
func NewPostgres(cfg config.DatabaseConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host,
		cfg.Port,
		cfg.User,
		cfg.Password,
		cfg.Name,
		cfg.SSLMode,
	)

	db, err := sqlx.Open("postgres", dsn)
	if err != nil {
		return nil, err
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}

	db.SetConnMaxLifetime(1 * time.Hour)
	db.SetConnMaxIdleTime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

// Schema holds the tables read by the planning loader and written when a timetable is saved.
// A time slot appears at most once per timetable.
const Schema = `
CREATE TABLE IF NOT EXISTS courses (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	user_id TEXT NOT NULL,
	code TEXT NOT NULL DEFAULT '',
	name TEXT NOT NULL DEFAULT '',
	instructor TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_courses_user_id ON courses (user_id);

CREATE TABLE IF NOT EXISTS time_slots (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	course_id UUID NOT NULL REFERENCES courses (id) ON DELETE CASCADE,
	day_of_week SMALLINT NOT NULL CHECK (day_of_week BETWEEN 0 AND 6),
	start_time TIME NOT NULL,
	end_time TIME NOT NULL CHECK (end_time > start_time),
	location TEXT,
	slot_type TEXT NOT NULL DEFAULT 'lecture'
);

CREATE TABLE IF NOT EXISTS constraints (
	id BIGSERIAL PRIMARY KEY,
	user_id TEXT NOT NULL,
	constraint_type TEXT NOT NULL CHECK (constraint_type IN ('preferred', 'avoid', 'required')),
	day_of_week SMALLINT NOT NULL CHECK (day_of_week BETWEEN 0 AND 6),
	start_time TIME NOT NULL,
	end_time TIME NOT NULL CHECK (end_time > start_time),
	priority TEXT NOT NULL DEFAULT 'medium'
);
CREATE INDEX IF NOT EXISTS idx_constraints_user_id ON constraints (user_id);

CREATE TABLE IF NOT EXISTS timetables (
	id UUID PRIMARY KEY,
	user_id TEXT NOT NULL,
	name TEXT NOT NULL,
	created_at TIMESTAMPTZ NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS timetable_entries (
	id UUID PRIMARY KEY,
	timetable_id UUID NOT NULL REFERENCES timetables (id) ON DELETE CASCADE,
	timeslot_id UUID NOT NULL REFERENCES time_slots (id),
	created_at TIMESTAMPTZ NOT NULL,
	UNIQUE (timetable_id, timeslot_id)
);
`

// EnsureSchema creates any missing table. Existing tables are left untouched.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
