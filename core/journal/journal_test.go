package journal_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"experience-manager/core/database"
	"experience-manager/core/journal"
	"experience-manager/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func newSQLiteJournal(t *testing.T) *journal.Journal {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	j := journal.New(db, nil)
	require.NoError(t, j.Migrate())
	return j
}

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func partialReport() reconcile.SaveReport {
	return reconcile.SaveReport{
		Section:      "options",
		ExperienceID: "exp-1",
		Summary:      reconcile.PlanSummary{New: 1, Edited: 1, Unchanged: 3},
		Outcomes: []reconcile.Outcome{
			{Kind: reconcile.OpCreate, ID: reconcile.LocalID(), RemoteID: "opt-9", Succeeded: true},
			{Kind: reconcile.OpUpdate, ID: reconcile.PersistedID("opt-1"), Error: "status 500"},
		},
		StartedAt: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC),
		Duration:  1500 * time.Millisecond,
		Err:       errors.New("update options: status 500"),
	}
}

func TestJournal_RecordAndHistory(t *testing.T) {
	j := newSQLiteJournal(t)
	ctx := context.Background()

	rec, err := j.Record(ctx, partialReport())
	require.NoError(t, err)
	assert.NotZero(t, rec.ID)

	_, err = j.Record(ctx, reconcile.SaveReport{Section: "options", ExperienceID: "exp-1"})
	require.NoError(t, err)
	_, err = j.Record(ctx, reconcile.SaveReport{Section: "pricing", ExperienceID: "exp-1"})
	require.NoError(t, err)

	history, err := j.History(ctx, "options", "exp-1", 10)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.True(t, history[0].Succeeded, "newest first")

	first := history[1]
	assert.False(t, first.Succeeded)
	assert.True(t, first.Partial)
	assert.Equal(t, 1, first.Created)
	assert.Equal(t, 3, first.Unchanged)
	assert.Equal(t, int64(1500), first.DurationMS)
	assert.Equal(t, "update options: status 500", first.Error)
	require.Len(t, first.Operations, 2)
	assert.Equal(t, "persisted:opt-1", first.Operations[1].EntityID)
	assert.Equal(t, "opt-9", first.Operations[0].RemoteID)
}

func TestJournal_CheckSchema(t *testing.T) {
	j := newSQLiteJournal(t)
	missing, err := j.CheckSchema()
	require.NoError(t, err)
	assert.Empty(t, missing)

	db, err := database.Connect(database.Config{Driver: database.DriverSQLite})
	require.NoError(t, err)
	require.NoError(t, db.Exec("CREATE TABLE save_reports (id INTEGER PRIMARY KEY, section TEXT)").Error)

	missing, err = journal.New(db, nil).CheckSchema()
	require.NoError(t, err)
	assert.Contains(t, missing["save_reports"], "experience_id")
	assert.Contains(t, missing["save_operations"], "entity_id")
}

func TestJournal_ObserveSaveSwallowsWriteErrors(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `save_reports`").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	j := journal.New(db, nil)
	_, err := j.Record(context.Background(), partialReport())
	assert.ErrorContains(t, err, "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `save_reports`").WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()
	assert.NotPanics(t, func() { j.ObserveSave(context.Background(), partialReport()) })
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestJournal_NilDatabase(t *testing.T) {
	j := journal.New(nil, nil)
	assert.ErrorIs(t, j.Migrate(), journal.ErrNoDatabase)
	_, err := j.History(context.Background(), "options", "exp-1", 0)
	assert.ErrorIs(t, err, journal.ErrNoDatabase)
	_, err = j.Record(context.Background(), reconcile.SaveReport{})
	assert.ErrorIs(t, err, journal.ErrNoDatabase)
}
