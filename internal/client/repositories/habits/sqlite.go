package habits

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mpetrovs/prodhub/internal/client/models"
	"github.com/mpetrovs/prodhub/internal/common"
	"github.com/mpetrovs/prodhub/internal/dbx"
)

const habitColumns = `id, user_id, name, description, frequency, goal, color, icon, created_at, updated_at, sync_status`

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, h *models.Habit) error {
	query := `INSERT INTO habits (` + habitColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			name = excluded.name,
			description = excluded.description,
			frequency = excluded.frequency,
			goal = excluded.goal,
			color = excluded.color,
			icon = excluded.icon,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			sync_status = excluded.sync_status
	`
	_, err := r.db.ExecContext(ctx, query,
		h.ID, h.UserID, h.Name, h.Description, h.Frequency, h.Goal, h.Color, h.Icon,
		h.CreatedAt, h.UpdatedAt, h.SyncStatus)
	if err != nil {
		return fmt.Errorf("failed to upsert habit: %w", err)
	}
	return nil
}

func scanHabit(row interface{ Scan(...any) error }) (*models.Habit, error) {
	var h models.Habit
	err := row.Scan(&h.ID, &h.UserID, &h.Name, &h.Description, &h.Frequency, &h.Goal,
		&h.Color, &h.Icon, &h.CreatedAt, &h.UpdatedAt, &h.SyncStatus)
	if err != nil {
		return nil, err
	}
	return &h, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Habit, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+habitColumns+` FROM habits WHERE id = ?`, id)
	h, err := scanHabit(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get habit: %w", err)
	}
	return h, nil
}

func (r *SQLiteRepository) list(ctx context.Context, query string, args ...any) ([]models.Habit, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select habits: %w", err)
	}
	defer rows.Close()

	var result []models.Habit
	for rows.Next() {
		h, err := scanHabit(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *h)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string) ([]models.Habit, error) {
	return r.list(ctx, `SELECT `+habitColumns+` FROM habits WHERE user_id = ? ORDER BY created_at DESC`, userID)
}

func (r *SQLiteRepository) ListPending(ctx context.Context, userID string) ([]models.Habit, error) {
	return r.list(ctx,
		`SELECT `+habitColumns+` FROM habits WHERE user_id = ? AND sync_status = ? ORDER BY created_at`,
		userID, models.StatusPending)
}

func (r *SQLiteRepository) Rekey(ctx context.Context, oldID, newID string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE habits SET id = ? WHERE id = ?`, newID, oldID)
	if err != nil {
		return fmt.Errorf("failed to rekey habit: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) SetStatus(ctx context.Context, id string, status models.SyncStatus) error {
	_, err := r.db.ExecContext(ctx, `UPDATE habits SET sync_status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to set habit status: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete habit: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM habits WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user habits: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) BulkUpsertSynced(ctx context.Context, items []models.Habit) error {
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

func upsertAllSynced(ctx context.Context, db dbx.DBTX, items []models.Habit) error {
	repo := &SQLiteRepository{db: db}
	for i := range items {
		h := items[i]
		h.SyncStatus = models.StatusSynced
		if err := repo.Upsert(ctx, &h); err != nil {
			return err
		}
	}
	return nil
}
