package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/mpetrovs/prodhub/internal/client/models"
)

func (a *App) addNote(ctx context.Context) {
	title, err := GetSimpleText(a.reader, "Title", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "reading input failed", "error", err)
		return
	}
	content, err := GetMultiline(a.reader, "Content", os.Stdout)
	if err != nil {
		a.log.Error(ctx, "reading input failed", "error", err)
		return
	}

	id, err := a.manager.Add(ctx, models.CollectionNotes, &models.Note{
		Meta:    models.Meta{UserID: a.userID},
		Title:   title,
		Content: content,
	})
	if err != nil {
		a.log.Error(ctx, "adding note failed", "error", err)
		return
	}
	fmt.Println("Added note", id)
}

func (a *App) listNotes(ctx context.Context) {
	items, err := a.store.Notes.ListByUser(ctx, a.userID)
	if err != nil {
		a.log.Error(ctx, "listing notes failed", "error", err)
		return
	}
	for _, n := range items {
		pin := " "
		if n.IsPinned {
			pin = "*"
		}
		fmt.Printf("%s %s  %s [%s]\n", pin, n.ID, n.Title, n.SyncStatus)
	}
}

func (a *App) pinNote(ctx context.Context, id string) {
	patch := models.NotePatch{IsPinned: ptrTo(true)}
	if err := a.manager.Update(ctx, models.CollectionNotes, id, patch); err != nil {
		a.log.Error(ctx, "pinning note failed", "id", id, "error", err)
		return
	}
	fmt.Println("Pinned", id)
}

func (a *App) deleteNote(ctx context.Context, id string) {
	if err := a.manager.Delete(ctx, models.CollectionNotes, id); err != nil {
		a.log.Error(ctx, "deleting note failed", "id", id, "error", err)
		return
	}
	fmt.Println("Deleted", id)
}
