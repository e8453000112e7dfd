package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/mpetrovs/prodhub/internal/client/models"
	"github.com/mpetrovs/prodhub/internal/common"
	"github.com/mpetrovs/prodhub/internal/dbx"
)

const taskColumns = `id, user_id, title, description, completed, priority, due_date, category, created_at, updated_at, sync_status`

// SQLiteRepository implements Repository using a DBTX (either *sql.DB
// or *sql.Tx).
type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, t *models.Task) error {
	query := `INSERT INTO tasks (` + taskColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			title = excluded.title,
			description = excluded.description,
			completed = excluded.completed,
			priority = excluded.priority,
			due_date = excluded.due_date,
			category = excluded.category,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			sync_status = excluded.sync_status
	`
	var due sql.NullTime
	if t.DueDate != nil {
		due = sql.NullTime{Time: *t.DueDate, Valid: true}
	}
	_, err := r.db.ExecContext(ctx, query,
		t.ID, t.UserID, t.Title, t.Description, t.Completed, t.Priority, due, t.Category,
		t.CreatedAt, t.UpdatedAt, t.SyncStatus)
	if err != nil {
		return fmt.Errorf("failed to upsert task: %w", err)
	}
	return nil
}

func scanTask(row interface{ Scan(...any) error }) (*models.Task, error) {
	var t models.Task
	var due sql.NullTime
	err := row.Scan(&t.ID, &t.UserID, &t.Title, &t.Description, &t.Completed, &t.Priority,
		&due, &t.Category, &t.CreatedAt, &t.UpdatedAt, &t.SyncStatus)
	if err != nil {
		return nil, err
	}
	if due.Valid {
		d := due.Time
		t.DueDate = &d
	}
	return &t, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Task, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = ?`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get task: %w", err)
	}
	return t, nil
}

func (r *SQLiteRepository) list(ctx context.Context, query string, args ...any) ([]models.Task, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select tasks: %w", err)
	}
	defer rows.Close()

	var result []models.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string) ([]models.Task, error) {
	return r.list(ctx, `SELECT `+taskColumns+` FROM tasks WHERE user_id = ? ORDER BY created_at DESC`, userID)
}

func (r *SQLiteRepository) ListPending(ctx context.Context, userID string) ([]models.Task, error) {
	return r.list(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = ? AND sync_status = ? ORDER BY created_at`,
		userID, models.StatusPending)
}

func (r *SQLiteRepository) ListDueBefore(ctx context.Context, userID string, cutoff time.Time) ([]models.Task, error) {
	return r.list(ctx,
		`SELECT `+taskColumns+` FROM tasks WHERE user_id = ? AND completed = 0 AND due_date IS NOT NULL AND due_date < ? ORDER BY due_date`,
		userID, cutoff)
}

func (r *SQLiteRepository) Rekey(ctx context.Context, oldID, newID string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE tasks SET id = ? WHERE id = ?`, newID, oldID)
	if err != nil {
		return fmt.Errorf("failed to rekey task: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) SetStatus(ctx context.Context, id string, status models.SyncStatus) error {
	_, err := r.db.ExecContext(ctx, `UPDATE tasks SET sync_status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to set task status: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM tasks WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user tasks: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) BulkUpsertSynced(ctx context.Context, items []models.Task) error {
	if len(items) == 0 {
		return nil
	}
	// Atomic when backed by *sql.DB so a failed pull never leaves a
	// half-replaced collection.
	if db, ok := r.db.(*sql.DB); ok {
		return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			return upsertAllSynced(ctx, tx, items)
		})
	}
	return upsertAllSynced(ctx, r.db, items)
}

func upsertAllSynced(ctx context.Context, db dbx.DBTX, items []models.Task) error {
	repo := &SQLiteRepository{db: db}
	for i := range items {
		t := items[i]
		t.SyncStatus = models.StatusSynced
		if err := repo.Upsert(ctx, &t); err != nil {
			return err
		}
	}
	return nil
}
