package notes

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/mpetrovs/prodhub/internal/client/models"
	"github.com/mpetrovs/prodhub/internal/common"
	"github.com/mpetrovs/prodhub/internal/dbx"
)

const noteColumns = `id, user_id, title, content, category, color, is_pinned, created_at, updated_at, sync_status`

type SQLiteRepository struct {
	db dbx.DBTX
}

func NewSQLiteRepository(db dbx.DBTX) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Upsert(ctx context.Context, n *models.Note) error {
	query := `INSERT INTO notes (` + noteColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			user_id = excluded.user_id,
			title = excluded.title,
			content = excluded.content,
			category = excluded.category,
			color = excluded.color,
			is_pinned = excluded.is_pinned,
			created_at = excluded.created_at,
			updated_at = excluded.updated_at,
			sync_status = excluded.sync_status
	`
	_, err := r.db.ExecContext(ctx, query,
		n.ID, n.UserID, n.Title, n.Content, n.Category, n.Color, n.IsPinned,
		n.CreatedAt, n.UpdatedAt, n.SyncStatus)
	if err != nil {
		return fmt.Errorf("failed to upsert note: %w", err)
	}
	return nil
}

func scanNote(row interface{ Scan(...any) error }) (*models.Note, error) {
	var n models.Note
	err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Content, &n.Category, &n.Color,
		&n.IsPinned, &n.CreatedAt, &n.UpdatedAt, &n.SyncStatus)
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (r *SQLiteRepository) GetByID(ctx context.Context, id string) (*models.Note, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+noteColumns+` FROM notes WHERE id = ?`, id)
	n, err := scanNote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get note: %w", err)
	}
	return n, nil
}

func (r *SQLiteRepository) list(ctx context.Context, query string, args ...any) ([]models.Note, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select notes: %w", err)
	}
	defer rows.Close()

	var result []models.Note
	for rows.Next() {
		n, err := scanNote(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, *n)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}

func (r *SQLiteRepository) ListByUser(ctx context.Context, userID string) ([]models.Note, error) {
	return r.list(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE user_id = ? ORDER BY is_pinned DESC, updated_at DESC`,
		userID)
}

func (r *SQLiteRepository) ListPending(ctx context.Context, userID string) ([]models.Note, error) {
	return r.list(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE user_id = ? AND sync_status = ? ORDER BY created_at`,
		userID, models.StatusPending)
}

func (r *SQLiteRepository) ListPinned(ctx context.Context, userID string) ([]models.Note, error) {
	return r.list(ctx,
		`SELECT `+noteColumns+` FROM notes WHERE user_id = ? AND is_pinned = 1 ORDER BY updated_at DESC`,
		userID)
}

func (r *SQLiteRepository) Rekey(ctx context.Context, oldID, newID string) error {
	res, err := r.db.ExecContext(ctx, `UPDATE notes SET id = ? WHERE id = ?`, newID, oldID)
	if err != nil {
		return fmt.Errorf("failed to rekey note: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return common.ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) SetStatus(ctx context.Context, id string, status models.SyncStatus) error {
	_, err := r.db.ExecContext(ctx, `UPDATE notes SET sync_status = ? WHERE id = ?`, status, id)
	if err != nil {
		return fmt.Errorf("failed to set note status: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete note: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) DeleteByUser(ctx context.Context, userID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM notes WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete user notes: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) BulkUpsertSynced(ctx context.Context, items []models.Note) error {
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

func upsertAllSynced(ctx context.Context, db dbx.DBTX, items []models.Note) error {
	repo := &SQLiteRepository{db: db}
	for i := range items {
		n := items[i]
		n.SyncStatus = models.StatusSynced
		if err := repo.Upsert(ctx, &n); err != nil {
			return err
		}
	}
	return nil
}
