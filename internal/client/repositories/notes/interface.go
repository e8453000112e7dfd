// Package notes stores Note records in the local cache database.
package notes

import (
	"context"

	"github.com/mpetrovs/prodhub/internal/client/models"
)

// Repository describes storage operations for Note records.
type Repository interface {
	Upsert(ctx context.Context, n *models.Note) error
	GetByID(ctx context.Context, id string) (*models.Note, error)
	// ListByUser returns the user's notes, pinned first, most recently
	// updated first within each group.
	ListByUser(ctx context.Context, userID string) ([]models.Note, error)
	ListPending(ctx context.Context, userID string) ([]models.Note, error)
	ListPinned(ctx context.Context, userID string) ([]models.Note, error)
	Rekey(ctx context.Context, oldID, newID string) error
	SetStatus(ctx context.Context, id string, status models.SyncStatus) error
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) error
	BulkUpsertSynced(ctx context.Context, items []models.Note) error
}
