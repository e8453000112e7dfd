package habitlogs

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpetrovs/prodhub/internal/client/models"

	_ "modernc.org/sqlite"
)

func setupDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE habit_logs (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  habit_id TEXT NOT NULL,
  date TIMESTAMP NOT NULL,
  completed INTEGER NOT NULL DEFAULT 1,
  note TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMP NOT NULL,
  updated_at TIMESTAMP NOT NULL,
  sync_status TEXT NOT NULL DEFAULT 'pending'
);
`)
	require.NoError(t, err)
	return db
}

func sampleLog(id, userID, habitID string, date time.Time) *models.HabitLog {
	l := &models.HabitLog{HabitID: habitID, Date: date, Completed: true}
	l.ID = id
	l.UserID = userID
	l.CreatedAt = date
	l.UpdatedAt = date
	l.SyncStatus = models.StatusPending
	return l
}

func TestUpsert_PreservesTempHabitReference(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	tempHabit := models.TempIDPrefix + "habit"
	require.NoError(t, r.Upsert(ctx, sampleLog("l1", "u1", tempHabit, date)))

	got, err := r.GetByID(ctx, "l1")
	require.NoError(t, err)
	assert.Equal(t, tempHabit, got.HabitID)
	assert.True(t, models.IsTempID(got.HabitID))
}

func TestListByHabit(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	d1 := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	d2 := d1.AddDate(0, 0, 1)
	require.NoError(t, r.Upsert(ctx, sampleLog("a", "u1", "h1", d1)))
	require.NoError(t, r.Upsert(ctx, sampleLog("b", "u1", "h1", d2)))
	require.NoError(t, r.Upsert(ctx, sampleLog("c", "u1", "h2", d1)))

	got, err := r.ListByHabit(ctx, "h1")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "b", got[0].ID, "newest first")
}

func TestListByDateRange(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	feb := time.Date(2025, 2, 10, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	require.NoError(t, r.Upsert(ctx, sampleLog("a", "u1", "h1", feb)))
	require.NoError(t, r.Upsert(ctx, sampleLog("b", "u1", "h1", mar)))

	got, err := r.ListByDateRange(ctx, "u1",
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}
