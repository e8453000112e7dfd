package habitlogs

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

const logColumns = `id, user_id, habit_id, date, completed, note, created_at, updated_at, sync_status`

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, l *models.HabitLog) error {
	query := `INSERT INTO habit_logs (` + logColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			habit_id = excluded.habit_id,
			date = excluded.date,
			completed = excluded.completed,
			note = excluded.note,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			sync_status = excluded.sync_status
	`
	_, err := r.db.ExecContext(ctx, query,
		l.ID, l.UserID, l.HabitID, l.Date, l.Completed, l.Note,
		l.CreatedAt, l.UpdatedAt, l.SyncStatus)
	if err != nil {
		return fmt.Errorf("failed to upsert habit log: %w", err)
	}
	return nil
}

func scanLog(row interface{ Scan(...any) error }) (*models.HabitLog, error) {
	var l models.HabitLog
	err := row.Scan(&l.ID, &l.UserID, &l.HabitID, &l.Date, &l.Completed, &l.Note,
		&l.CreatedAt, &l.UpdatedAt, &l.SyncStatus)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.HabitLog, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+logColumns+` FROM habit_logs WHERE id = ?`, id)
	l, err := scanLog(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get habit log: %w", err)
	}
	return l, nil
}

func (r *SQLiteRepository) list(ctx context.Context, query string, args ...any) ([]models.HabitLog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select habit logs: %w", err)
	}
	defer rows.Close()

	var result []models.HabitLog
	for rows.Next() {
		l, err := scanLog(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string) ([]models.HabitLog, error) {
	return r.list(ctx, `SELECT `+logColumns+` FROM habit_logs WHERE user_id = ? ORDER BY date DESC`, userID)
}

func (r *SQLiteRepository) ListPending(ctx context.Context, userID string) ([]models.HabitLog, error) {
	return r.list(ctx,
		`SELECT `+logColumns+` FROM habit_logs WHERE user_id = ? AND sync_status = ? ORDER BY created_at`,
		userID, models.StatusPending)
}

func (r *SQLiteRepository) ListByHabit(ctx context.Context, habitID string) ([]models.HabitLog, error) {
	return r.list(ctx, `SELECT `+logColumns+` FROM habit_logs WHERE habit_id = ? ORDER BY date DESC`, habitID)
}

func (r *SQLiteRepository) ListByDateRange(ctx context.Context, userID string, from, to time.Time) ([]models.HabitLog, error) {
	return r.list(ctx,
		`SELECT `+logColumns+` FROM habit_logs WHERE user_id = ? AND date >= ? AND date < ? ORDER BY date DESC`,
		userID, from, to)
}

func (r *SQLiteRepository) Rekey(ctx context.Context, oldID, newID string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE habit_logs SET id = ? WHERE id = ?`, newID, oldID)
	if err != nil {
		return fmt.Errorf("failed to rekey habit log: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) SetStatus(ctx context.Context, id string, status models.SyncStatus) error {
	_, err := r.db.ExecContext(ctx, `UPDATE habit_logs SET sync_status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to set habit log status: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM habit_logs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete habit log: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM habit_logs WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user habit logs: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) BulkUpsertSynced(ctx context.Context, items []models.HabitLog) error {
	if len(items) == 0 {
		return nil
	}
	if db, ok := r.db.(*sql.DB); ok {
		return dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
			return upsertAllSynced(ctx, tx, items)
		})
	}
	return upsertAllSynced(ctx, r.db, items)
}

func upsertAllSynced(ctx context.Context, db dbx.DBTX, items []models.HabitLog) error {
	repo := &SQLiteRepository{db: db}
	for i := range items {
		l := items[i]
		l.SyncStatus = models.StatusSynced
		if err := repo.Upsert(ctx, &l); err != nil {
			return err
		}
	}
	return nil
}
