package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/limaJavier/coursetable/internal/models"
	appErrors "github.com/limaJavier/coursetable/pkg/errors"
)

// TimetableRepository persists materialized timetables and their entries.
type TimetableRepository struct {
	db *sqlx.DB
}

// NewTimetableRepository builds repository.
func NewTimetableRepository(db *sqlx.DB) *TimetableRepository {
	return &TimetableRepository{db: db}
}

func (r *TimetableRepository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// Create inserts the timetable row, assigning id and timestamps when missing.
func (r *TimetableRepository) Create(ctx context.Context, exec sqlx.ExtContext, timetable *models.Timetable) error {
	if timetable.ID == "" {
		timetable.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if timetable.CreatedAt.IsZero() {
		timetable.CreatedAt = now
	}
	timetable.UpdatedAt = now

	const query = `
INSERT INTO timetables (id, user_id, name, created_at, updated_at)
VALUES (:id, :user_id, :name, :created_at, :updated_at)`

	if _, err := sqlx.NamedExecContext(ctx, r.exec(exec), query, timetable); err != nil {
		return fmt.Errorf("create timetable: %w", err)
	}
	return nil
}

// CreateEntries inserts one entry per chosen slot.
func (r *TimetableRepository) CreateEntries(ctx context.Context, exec sqlx.ExtContext, entries []models.TimetableEntry) error {
	if len(entries) == 0 {
		return nil
	}
	target := r.exec(exec)
	now := time.Now().UTC()

	const query = `
INSERT INTO timetable_entries (id, timetable_id, timeslot_id, created_at)
VALUES (:id, :timetable_id, :timeslot_id, :created_at)`

	for i := range entries {
		entry := &entries[i]
		if entry.ID == "" {
			entry.ID = uuid.NewString()
		}
		if entry.CreatedAt.IsZero() {
			entry.CreatedAt = now
		}
		if _, err := sqlx.NamedExecContext(ctx, target, query, entry); err != nil {
			return fmt.Errorf("create timetable entry: %w", err)
		}
	}
	return nil
}

// FindByID returns the timetable with its entries.
func (r *TimetableRepository) FindByID(ctx context.Context, id string) (*models.Timetable, error) {
	const query = `SELECT id, user_id, name, created_at, updated_at FROM timetables WHERE id = $1`
	var timetable models.Timetable
	if err := r.db.GetContext(ctx, &timetable, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "timetable not found")
		}
		return nil, fmt.Errorf("get timetable: %w", err)
	}

	const entriesQuery = `SELECT id, timetable_id, timeslot_id, created_at FROM timetable_entries WHERE timetable_id = $1 ORDER BY created_at ASC, id ASC`
	timetable.Entries = []models.TimetableEntry{}
	if err := r.db.SelectContext(ctx, &timetable.Entries, entriesQuery, id); err != nil {
		return nil, fmt.Errorf("list timetable entries: %w", err)
	}
	return &timetable, nil
}

// BeginTxx starts a transaction for multi-row writes.
func (r *TimetableRepository) BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error) {
	return r.db.BeginTxx(ctx, opts)
}
