package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/mpetrovs/prodhub/internal/client/models"
)

func (a *App) addHabit(ctx context.Context) {
	name, err := GetSimpleText(a.reader, "Name", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "reading input failed", "error", err)
		return
	}
	frequency, err := GetSimpleText(a.reader, "Frequency (daily/weekly)", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "reading input failed", "error", err)
		return
	}
	if frequency == "" {
		frequency = "daily"
	}
	goalStr, err := GetSimpleText(a.reader, "Goal (times per period)", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "reading input failed", "error", err)
		return
	}
	goal := 1
	if goalStr != "" {
		goal, err = strconv.Atoi(goalStr)
		if err != nil {
			fmt.Println("Invalid goal:", goalStr)
			return
		}
	}

	id, err := a.manager.Add(ctx, models.CollectionHabits, &models.Habit{
		Meta:      models.Meta{UserID: a.userID},
		Name:      name,
		Frequency: frequency,
		Goal:      goal,
		Color:     "#4caf50",
	})
	if err != nil {
		a.log.Error(ctx, "adding habit failed", "error", err)
		return
	}
	fmt.Println("Added habit", id)
}

func (a *App) listHabits(ctx context.Context) {
	items, err := a.store.Habits.ListByUser(ctx, a.userID)
	if err != nil {
		a.log.Error(ctx, "listing habits failed", "error", err)
		return
	}
	for _, h := range items {
		logs, err := a.store.HabitLogs.ListByHabit(ctx, h.ID)
		if err != nil {
			a.log.Error(ctx, "listing habit logs failed", "habit", h.ID, "error", err)
			continue
		}
		done := 0
		for _, l := range logs {
			if l.Completed {
				done++
			}
		}
		fmt.Printf("%s  %s (%s, goal %d) done %d times [%s]\n",
			h.ID, h.Name, h.Frequency, h.Goal, done, h.SyncStatus)
	}
}

// logHabit records today's outcome for a habit. The habit may itself
// still be waiting for its server id; the log follows it through sync.
func (a *App) logHabit(ctx context.Context, habitID string) {
	if _, err := a.store.Habits.GetByID(ctx, habitID); err != nil {
		a.log.Error(ctx, "habit lookup failed", "id", habitID, "error", err)
		return
	}
	note, err := GetSimpleText(a.reader, "Note (optional)", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "reading input failed", "error", err)
		return
	}

	id, err := a.manager.Add(ctx, models.CollectionHabitLogs, &models.HabitLog{
		Meta:      models.Meta{UserID: a.userID},
		HabitID:   habitID,
		Date:      time.Now().UTC().Truncate(24 * time.Hour),
		Completed: true,
		Note:      note,
	})
	if err != nil {
		a.log.Error(ctx, "logging habit failed", "error", err)
		return
	}
	fmt.Println("Logged", id)
}
