package expenses

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
CREATE TABLE expenses (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  title TEXT NOT NULL,
  amount REAL NOT NULL DEFAULT 0,
  category TEXT NOT NULL DEFAULT '',
  kind TEXT NOT NULL DEFAULT 'expense',
  date TIMESTAMP NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  created_at TIMESTAMP NOT NULL,
  updated_at TIMESTAMP NOT NULL,
  sync_status TEXT NOT NULL DEFAULT 'pending'
);
`)
	require.NoError(t, err)
	return db
}

func sampleExpense(id, userID string, date time.Time, amount float64) *models.Expense {
	e := &models.Expense{Title: "e-" + id, Amount: amount, Category: "food", Kind: models.KindExpense, Date: date}
	e.ID = id
	e.UserID = userID
	e.CreatedAt = date
	e.UpdatedAt = date
	e.SyncStatus = models.StatusSynced
	return e
}

func TestUpsertAndGet(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, r.Upsert(ctx, sampleExpense("e1", "u1", date, 12.50)))

	got, err := r.GetByID(ctx, "e1")
	require.NoError(t, err)
	assert.Equal(t, 12.50, got.Amount)
	assert.Equal(t, models.KindExpense, got.Kind)
	assert.True(t, date.Equal(got.Date))
}

func TestListByDateRange(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	jan := time.Date(2025, 1, 15, 0, 0, 0, 0, time.UTC)
	feb := time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC)
	mar := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	require.NoError(t, r.Upsert(ctx, sampleExpense("a", "u1", jan, 1)))
	require.NoError(t, r.Upsert(ctx, sampleExpense("b", "u1", feb, 2)))
	require.NoError(t, r.Upsert(ctx, sampleExpense("c", "u1", mar, 3)))
	require.NoError(t, r.Upsert(ctx, sampleExpense("d", "u2", feb, 4)))

	got, err := r.ListByDateRange(ctx, "u1",
		time.Date(2025, 2, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "b", got[0].ID)
}

func TestListPending(t *testing.T) {
	db := setupDB(t)
	r := NewSQLiteRepository(db)
	ctx := context.Background()

	date := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	pending := sampleExpense("p", "u1", date, 5)
	pending.SyncStatus = models.StatusPending
	require.NoError(t, r.Upsert(ctx, pending))
	require.NoError(t, r.Upsert(ctx, sampleExpense("s", "u1", date, 6)))

	got, err := r.ListPending(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "p", got[0].ID)
}
