package expenses

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

const expenseColumns = `id, user_id, title, amount, category, kind, date, description, created_at, updated_at, sync_status`

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, e *models.Expense) error {
	query := `INSERT INTO expenses (` + expenseColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			title = excluded.title,
			amount = excluded.amount,
			category = excluded.category,
			kind = excluded.kind,
			date = excluded.date,
			description = excluded.description,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			sync_status = excluded.sync_status
	`
	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.UserID, e.Title, e.Amount, e.Category, e.Kind, e.Date, e.Description,
		e.CreatedAt, e.UpdatedAt, e.SyncStatus)
	if err != nil {
		return fmt.Errorf("failed to upsert expense: %w", err)
	}
	return nil
}

func scanExpense(row interface{ Scan(...any) error }) (*models.Expense, error) {
	var e models.Expense
	err := row.Scan(&e.ID, &e.UserID, &e.Title, &e.Amount, &e.Category, &e.Kind,
		&e.Date, &e.Description, &e.CreatedAt, &e.UpdatedAt, &e.SyncStatus)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Expense, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE id = ?`, id)
	e, err := scanExpense(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get expense: %w", err)
	}
	return e, nil
}

func (r *SQLiteRepository) list(ctx context.Context, query string, args ...any) ([]models.Expense, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select expenses: %w", err)
	}
	defer rows.Close()

	var result []models.Expense
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string) ([]models.Expense, error) {
	return r.list(ctx, `SELECT `+expenseColumns+` FROM expenses WHERE user_id = ? ORDER BY date DESC`, userID)
}

func (r *SQLiteRepository) ListPending(ctx context.Context, userID string) ([]models.Expense, error) {
	return r.list(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE user_id = ? AND sync_status = ? ORDER BY created_at`,
		userID, models.StatusPending)
}

func (r *SQLiteRepository) ListByDateRange(ctx context.Context, userID string, from, to time.Time) ([]models.Expense, error) {
	return r.list(ctx,
		`SELECT `+expenseColumns+` FROM expenses WHERE user_id = ? AND date >= ? AND date < ? ORDER BY date DESC`,
		userID, from, to)
}

func (r *SQLiteRepository) Rekey(ctx context.Context, oldID, newID string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE expenses SET id = ? WHERE id = ?`, newID, oldID)
	if err != nil {
		return fmt.Errorf("failed to rekey expense: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) SetStatus(ctx context.Context, id string, status models.SyncStatus) error {
	_, err := r.db.ExecContext(ctx, `UPDATE expenses SET sync_status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to set expense status: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete expense: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM expenses WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user expenses: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) BulkUpsertSynced(ctx context.Context, items []models.Expense) error {
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

func upsertAllSynced(ctx context.Context, db dbx.DBTX, items []models.Expense) error {
	repo := &SQLiteRepository{db: db}
	for i := range items {
		e := items[i]
		e.SyncStatus = models.StatusSynced
		if err := repo.Upsert(ctx, &e); err != nil {
			return err
		}
	}
	return nil
}
