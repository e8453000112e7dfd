package sync

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mpetrovs/prodhub/internal/client/models"
	"github.com/mpetrovs/prodhub/internal/client/repositories/expenses"
	"github.com/mpetrovs/prodhub/internal/client/repositories/habitlogs"
	"github.com/mpetrovs/prodhub/internal/client/repositories/habits"
	"github.com/mpetrovs/prodhub/internal/client/repositories/notes"
	"github.com/mpetrovs/prodhub/internal/client/repositories/tasks"
)

// Collection is the uniform surface the Manager uses to drive one local
// table plus its server resource. Each adapter wraps a typed repository.
type Collection interface {
	// Name is the collection identifier and API path segment.
	Name() string

	Get(ctx context.Context, id string) (models.Syncable, error)
	Save(ctx context.Context, rec models.Syncable) error
	Rekey(ctx context.Context, oldID, newID string) error
	Delete(ctx context.Context, id string) error
	DeleteByUser(ctx context.Context, userID string) error
	ListPending(ctx context.Context, userID string) ([]models.Syncable, error)

	// ResolveRefs rewrites references to parent records created in the
	// same offline session using the pass-local remap table. It reports
	// false when a referenced parent has not been synced yet, in which
	// case the record is skipped this pass.
	ResolveRefs(rec models.Syncable, remap map[string]string) bool

	// StoreServerList decodes a server JSON array and writes it into the
	// local table as synced records, overwriting same-id rows.
	StoreServerList(ctx context.Context, data []byte) (int, error)
}

type taskCollection struct{ repo tasks.Repository }

// Tasks adapts a task repository for the sync manager.
func Tasks(repo tasks.Repository) Collection { return &taskCollection{repo: repo} }

func (c *taskCollection) Name() string { return models.CollectionTasks }

func (c *taskCollection) Get(ctx context.Context, id string) (models.Syncable, error) {
	return c.repo.GetByID(ctx, id)
}

func (c *taskCollection) Save(ctx context.Context, rec models.Syncable) error {
	t, ok := rec.(*models.Task)
	if !ok {
		return fmt.Errorf("expected *models.Task, got %T", rec)
	}
	return c.repo.Upsert(ctx, t)
}

func (c *taskCollection) Rekey(ctx context.Context, oldID, newID string) error {
	return c.repo.Rekey(ctx, oldID, newID)
}

func (c *taskCollection) Delete(ctx context.Context, id string) error {
	return c.repo.Delete(ctx, id)
}

func (c *taskCollection) DeleteByUser(ctx context.Context, userID string) error {
	return c.repo.DeleteByUser(ctx, userID)
}

func (c *taskCollection) ListPending(ctx context.Context, userID string) ([]models.Syncable, error) {
	items, err := c.repo.ListPending(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]models.Syncable, 0, len(items))
	for i := range items {
		out = append(out, &items[i])
	}
	return out, nil
}

func (c *taskCollection) ResolveRefs(models.Syncable, map[string]string) bool { return true }

func (c *taskCollection) StoreServerList(ctx context.Context, data []byte) (int, error) {
	var items []models.Task
	if err := json.Unmarshal(data, &items); err != nil {
		return 0, fmt.Errorf("decoding %s response: %w", c.Name(), err)
	}
	return len(items), c.repo.BulkUpsertSynced(ctx, items)
}

type noteCollection struct{ repo notes.Repository }

// Notes adapts a note repository for the sync manager.
func Notes(repo notes.Repository) Collection { return &noteCollection{repo: repo} }

func (c *noteCollection) Name() string { return models.CollectionNotes }

func (c *noteCollection) Get(ctx context.Context, id string) (models.Syncable, error) {
	return c.repo.GetByID(ctx, id)
}

func (c *noteCollection) Save(ctx context.Context, rec models.Syncable) error {
	n, ok := rec.(*models.Note)
	if !ok {
		return fmt.Errorf("expected *models.Note, got %T", rec)
	}
	return c.repo.Upsert(ctx, n)
}

func (c *noteCollection) Rekey(ctx context.Context, oldID, newID string) error {
	return c.repo.Rekey(ctx, oldID, newID)
}

func (c *noteCollection) Delete(ctx context.Context, id string) error {
	return c.repo.Delete(ctx, id)
}

func (c *noteCollection) DeleteByUser(ctx context.Context, userID string) error {
	return c.repo.DeleteByUser(ctx, userID)
}

func (c *noteCollection) ListPending(ctx context.Context, userID string) ([]models.Syncable, error) {
	items, err := c.repo.ListPending(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]models.Syncable, 0, len(items))
	for i := range items {
		out = append(out, &items[i])
	}
	return out, nil
}

func (c *noteCollection) ResolveRefs(models.Syncable, map[string]string) bool { return true }

func (c *noteCollection) StoreServerList(ctx context.Context, data []byte) (int, error) {
	var items []models.Note
	if err := json.Unmarshal(data, &items); err != nil {
		return 0, fmt.Errorf("decoding %s response: %w", c.Name(), err)
	}
	return len(items), c.repo.BulkUpsertSynced(ctx, items)
}

type expenseCollection struct{ repo expenses.Repository }

// Expenses adapts an expense repository for the sync manager.
func Expenses(repo expenses.Repository) Collection { return &expenseCollection{repo: repo} }

func (c *expenseCollection) Name() string { return models.CollectionExpenses }

func (c *expenseCollection) Get(ctx context.Context, id string) (models.Syncable, error) {
	return c.repo.GetByID(ctx, id)
}

func (c *expenseCollection) Save(ctx context.Context, rec models.Syncable) error {
	e, ok := rec.(*models.Expense)
	if !ok {
		return fmt.Errorf("expected *models.Expense, got %T", rec)
	}
	return c.repo.Upsert(ctx, e)
}

func (c *expenseCollection) Rekey(ctx context.Context, oldID, newID string) error {
	return c.repo.Rekey(ctx, oldID, newID)
}

func (c *expenseCollection) Delete(ctx context.Context, id string) error {
	return c.repo.Delete(ctx, id)
}

func (c *expenseCollection) DeleteByUser(ctx context.Context, userID string) error {
	return c.repo.DeleteByUser(ctx, userID)
}

func (c *expenseCollection) ListPending(ctx context.Context, userID string) ([]models.Syncable, error) {
	items, err := c.repo.ListPending(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]models.Syncable, 0, len(items))
	for i := range items {
		out = append(out, &items[i])
	}
	return out, nil
}

func (c *expenseCollection) ResolveRefs(models.Syncable, map[string]string) bool { return true }

func (c *expenseCollection) StoreServerList(ctx context.Context, data []byte) (int, error) {
	var items []models.Expense
	if err := json.Unmarshal(data, &items); err != nil {
		return 0, fmt.Errorf("decoding %s response: %w", c.Name(), err)
	}
	return len(items), c.repo.BulkUpsertSynced(ctx, items)
}

type habitCollection struct{ repo habits.Repository }

// Habits adapts a habit repository for the sync manager.
func Habits(repo habits.Repository) Collection { return &habitCollection{repo: repo} }

func (c *habitCollection) Name() string { return models.CollectionHabits }

func (c *habitCollection) Get(ctx context.Context, id string) (models.Syncable, error) {
	return c.repo.GetByID(ctx, id)
}

func (c *habitCollection) Save(ctx context.Context, rec models.Syncable) error {
	h, ok := rec.(*models.Habit)
	if !ok {
		return fmt.Errorf("expected *models.Habit, got %T", rec)
	}
	return c.repo.Upsert(ctx, h)
}

func (c *habitCollection) Rekey(ctx context.Context, oldID, newID string) error {
	return c.repo.Rekey(ctx, oldID, newID)
}

func (c *habitCollection) Delete(ctx context.Context, id string) error {
	return c.repo.Delete(ctx, id)
}

func (c *habitCollection) DeleteByUser(ctx context.Context, userID string) error {
	return c.repo.DeleteByUser(ctx, userID)
}

func (c *habitCollection) ListPending(ctx context.Context, userID string) ([]models.Syncable, error) {
	items, err := c.repo.ListPending(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]models.Syncable, 0, len(items))
	for i := range items {
		out = append(out, &items[i])
	}
	return out, nil
}

func (c *habitCollection) ResolveRefs(models.Syncable, map[string]string) bool { return true }

func (c *habitCollection) StoreServerList(ctx context.Context, data []byte) (int, error) {
	var items []models.Habit
	if err := json.Unmarshal(data, &items); err != nil {
		return 0, fmt.Errorf("decoding %s response: %w", c.Name(), err)
	}
	return len(items), c.repo.BulkUpsertSynced(ctx, items)
}

type habitLogCollection struct{ repo habitlogs.Repository }

// HabitLogs adapts a habit-log repository for the sync manager. Logs
// referencing a habit that still carries a temporary identifier are
// deferred until the habit has been synced.
func HabitLogs(repo habitlogs.Repository) Collection { return &habitLogCollection{repo: repo} }

func (c *habitLogCollection) Name() string { return models.CollectionHabitLogs }

func (c *habitLogCollection) Get(ctx context.Context, id string) (models.Syncable, error) {
	return c.repo.GetByID(ctx, id)
}

func (c *habitLogCollection) Save(ctx context.Context, rec models.Syncable) error {
	l, ok := rec.(*models.HabitLog)
	if !ok {
		return fmt.Errorf("expected *models.HabitLog, got %T", rec)
	}
	return c.repo.Upsert(ctx, l)
}

func (c *habitLogCollection) Rekey(ctx context.Context, oldID, newID string) error {
	return c.repo.Rekey(ctx, oldID, newID)
}

func (c *habitLogCollection) Delete(ctx context.Context, id string) error {
	return c.repo.Delete(ctx, id)
}

func (c *habitLogCollection) DeleteByUser(ctx context.Context, userID string) error {
	return c.repo.DeleteByUser(ctx, userID)
}

func (c *habitLogCollection) ListPending(ctx context.Context, userID string) ([]models.Syncable, error) {
	items, err := c.repo.ListPending(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]models.Syncable, 0, len(items))
	for i := range items {
		out = append(out, &items[i])
	}
	return out, nil
}

func (c *habitLogCollection) ResolveRefs(rec models.Syncable, remap map[string]string) bool {
	l, ok := rec.(*models.HabitLog)
	if !ok {
		return true
	}
	if !models.IsTempID(l.HabitID) {
		return true
	}
	real, ok := remap[l.HabitID]
	if !ok {
		return false
	}
	l.HabitID = real
	return true
}

func (c *habitLogCollection) StoreServerList(ctx context.Context, data []byte) (int, error) {
	var items []models.HabitLog
	if err := json.Unmarshal(data, &items); err != nil {
		return 0, fmt.Errorf("decoding %s response: %w", c.Name(), err)
	}
	return len(items), c.repo.BulkUpsertSynced(ctx, items)
}
