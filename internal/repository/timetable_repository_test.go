package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/limaJavier/coursetable/internal/models"
	appErrors "github.com/limaJavier/coursetable/pkg/errors"
)

func TestTimetableRepositoryCreate(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO timetables")).
		WithArgs(sqlmock.AnyArg(), "user-1", "Fall", sqlmock.AnyArg(), sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	timetable := &models.Timetable{UserID: "user-1", Name: "Fall"}
	require.NoError(t, repo.Create(context.Background(), nil, timetable))
	assert.NotEmpty(t, timetable.ID)
	assert.False(t, timetable.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryCreateEntries(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO timetable_entries")).
		WithArgs(sqlmock.AnyArg(), "tt-1", "10", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO timetable_entries")).
		WithArgs(sqlmock.AnyArg(), "tt-1", "20", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	entries := []models.TimetableEntry{
		{TimetableID: "tt-1", TimeslotID: "10"},
		{TimetableID: "tt-1", TimeslotID: "20"},
	}
	require.NoError(t, repo.CreateEntries(context.Background(), nil, entries))
	assert.NotEmpty(t, entries[0].ID)
	assert.NotEqual(t, entries[0].ID, entries[1].ID)
	assert.NoError(t, mock.ExpectationsWereMet())

	require.NoError(t, repo.CreateEntries(context.Background(), nil, nil))
}

func TestTimetableRepositoryFindByID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, name, created_at, updated_at FROM timetables WHERE id = $1")).
		WithArgs("tt-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "created_at", "updated_at"}).
			AddRow("tt-1", "user-1", "Fall", now, now))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, timetable_id, timeslot_id, created_at FROM timetable_entries WHERE timetable_id = $1")).
		WithArgs("tt-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "timetable_id", "timeslot_id", "created_at"}).
			AddRow("e-1", "tt-1", "10", now))

	timetable, err := repo.FindByID(context.Background(), "tt-1")

	require.NoError(t, err)
	assert.Equal(t, "Fall", timetable.Name)
	require.Len(t, timetable.Entries, 1)
	assert.Equal(t, "10", timetable.Entries[0].TimeslotID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTimetableRepositoryFindByIDNotFound(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTimetableRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM timetables WHERE id = $1")).
		WithArgs("missing").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "missing")

	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
