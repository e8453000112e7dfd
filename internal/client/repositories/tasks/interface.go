// Package tasks stores Task records in the local cache database.
package tasks

import (
	"context"
	"time"

	"github.com/mpetrovs/prodhub/internal/client/models"
)

// Repository describes storage operations for Task records. All queries
// that return sets are scoped by the owning user.
type Repository interface {
	// Upsert inserts a new task or fully overwrites an existing one by id.
	Upsert(ctx context.Context, t *models.Task) error

	// GetByID returns a task or common.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.Task, error)

	// ListByUser returns the user's tasks ordered by creation time.
	ListByUser(ctx context.Context, userID string) ([]models.Task, error)

	// ListPending returns the user's tasks awaiting a push.
	ListPending(ctx context.Context, userID string) ([]models.Task, error)

	// ListDueBefore returns incomplete tasks with a due date before cutoff.
	ListDueBefore(ctx context.Context, userID string, cutoff time.Time) ([]models.Task, error)

	// Rekey rewrites a task's identifier, used when the server assigns a
	// real id to a record created offline.
	Rekey(ctx context.Context, oldID, newID string) error

	// SetStatus updates only the synchronization state.
	SetStatus(ctx context.Context, id string, status models.SyncStatus) error

	// Delete removes a task unconditionally.
	Delete(ctx context.Context, id string) error

	// DeleteByUser removes every task owned by the user.
	DeleteByUser(ctx context.Context, userID string) error

	// BulkUpsertSynced writes server records into the cache, marking them
	// synced and overwriting any local record with the same id.
	BulkUpsertSynced(ctx context.Context, items []models.Task) error
}
