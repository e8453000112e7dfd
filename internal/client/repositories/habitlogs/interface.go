// Package habitlogs stores HabitLog records in the local cache
// database. A log's habit_id may hold a temporary identifier until the
// referenced habit has been accepted by the server.
package habitlogs

import (
	"context"
	"time"

	"github.com/mpetrovs/prodhub/internal/client/models"
)

// Repository describes storage operations for HabitLog records.
type Repository interface {
	Upsert(ctx context.Context, l *models.HabitLog) error
	GetByID(ctx context.Context, id string) (*models.HabitLog, error)
	ListByUser(ctx context.Context, userID string) ([]models.HabitLog, error)
	ListPending(ctx context.Context, userID string) ([]models.HabitLog, error)
	// ListByHabit returns a habit's logs, newest first.
	ListByHabit(ctx context.Context, habitID string) ([]models.HabitLog, error)
	// ListByDateRange returns the user's logs with from <= date < to.
	ListByDateRange(ctx context.Context, userID string, from, to time.Time) ([]models.HabitLog, error)
	Rekey(ctx context.Context, oldID, newID string) error
	SetStatus(ctx context.Context, id string, status models.SyncStatus) error
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) error
	BulkUpsertSynced(ctx context.Context, items []models.HabitLog) error
}
