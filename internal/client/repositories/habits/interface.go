// Package habits stores Habit records in the local cache database.
package habits

import (
	"context"

	"github.com/mpetrovs/prodhub/internal/client/models"
)

// Repository describes storage operations for Habit records.
type Repository interface {
	Upsert(ctx context.Context, h *models.Habit) error
	GetByID(ctx context.Context, id string) (*models.Habit, error)
	ListByUser(ctx context.Context, userID string) ([]models.Habit, error)
	ListPending(ctx context.Context, userID string) ([]models.Habit, error)
	Rekey(ctx context.Context, oldID, newID string) error
	SetStatus(ctx context.Context, id string, status models.SyncStatus) error
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) error
	BulkUpsertSynced(ctx context.Context, items []models.Habit) error
}
