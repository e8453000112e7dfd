package cli

import (
	"context"
	"fmt"
)

func (a *App) status() {
	if a.checker.Online() {
		fmt.Println("Server: reachable")
	} else {
		fmt.Println("Server: unreachable")
	}
	fmt.Println("Sync:  ", a.manager.Status())
}

func (a *App) sync(ctx context.Context) {
	if err := a.manager.SyncPending(ctx, a.userID); err != nil {
		a.log.Error(ctx, "sync failed", "error", err)
		return
	}
	fmt.Println("Sync:", a.manager.Status())
}

func (a *App) refresh(ctx context.Context) {
	if err := a.manager.Refresh(ctx, a.userID); err != nil {
		a.log.Error(ctx, "refresh failed", "error", err)
		return
	}
	fmt.Println("Refreshed")
}
