// Package expenses stores Expense records in the local cache database.
package expenses

import (
	"context"
	"time"

	"github.com/mpetrovs/prodhub/internal/client/models"
)

// Repository describes storage operations for Expense records.
type Repository interface {
	Upsert(ctx context.Context, e *models.Expense) error
	GetByID(ctx context.Context, id string) (*models.Expense, error)
	// ListByUser returns the user's ledger entries, newest date first.
	ListByUser(ctx context.Context, userID string) ([]models.Expense, error)
	ListPending(ctx context.Context, userID string) ([]models.Expense, error)
	// ListByDateRange returns entries with from <= date < to.
	ListByDateRange(ctx context.Context, userID string, from, to time.Time) ([]models.Expense, error)
	Rekey(ctx context.Context, oldID, newID string) error
	SetStatus(ctx context.Context, id string, status models.SyncStatus) error
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) error
	BulkUpsertSynced(ctx context.Context, items []models.Expense) error
}
