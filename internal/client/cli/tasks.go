package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/mpetrovs/prodhub/internal/client/models"
)

func (a *App) addTask(ctx context.Context) {
	title, err := GetSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "reading input failed", "error", err)
		return
	}
	priority, err := GetSimpleText(a.reader, "Priority (low/medium/high)", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "reading input failed", "error", err)
		return
	}
	if priority == "" {
		priority = "medium"
	}
	due, err := GetSimpleText(a.reader, "Due date (YYYY-MM-DD, empty for none)", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "reading input failed", "error", err)
		return
	}

	task := &models.Task{
		Meta:     models.Meta{UserID: a.userID},
		Title:    title,
		Priority: priority,
	}
	if due != "" {
		d, err := time.Parse("2006-01-02", due)
		if err != nil {
			fmt.Println("Invalid date:", due)
			return
		}
		task.DueDate = &d
	}

	id, err := a.manager.Add(ctx, models.CollectionTasks, task)
	if err != nil {
		a.log.Error(ctx, "adding task failed", "error", err)
		return
	}
	fmt.Println("Added task", id)
}

func (a *App) listTasks(ctx context.Context) {
	items, err := a.store.Tasks.ListByUser(ctx, a.userID)
	if err != nil {
		a.log.Error(ctx, "listing tasks failed", "error", err)
		return
	}
	for _, t := range items {
		mark := " "
		if t.Completed {
			mark = "x"
		}
		due := ""
		if t.DueDate != nil {
			due = " due " + t.DueDate.Format("2006-01-02")
		}
		fmt.Printf("[%s] %s  %s (%s)%s [%s]\n", mark, t.ID, t.Title, t.Priority, due, t.SyncStatus)
	}
}

func (a *App) completeTask(ctx context.Context, id string) {
	patch := models.TaskPatch{Completed: ptrTo(true)}
	if err := a.manager.Update(ctx, models.CollectionTasks, id, patch); err != nil {
		a.log.Error(ctx, "completing task failed", "id", id, "error", err)
		return
	}
	fmt.Println("Done", id)
}

func (a *App) deleteTask(ctx context.Context, id string) {
	if err := a.manager.Delete(ctx, models.CollectionTasks, id); err != nil {
		a.log.Error(ctx, "deleting task failed", "id", id, "error", err)
		return
	}
	fmt.Println("Deleted", id)
}

func ptrTo[T any](v T) *T { return &v }
