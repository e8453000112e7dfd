// Package cli implements the interactive ProdHub client. All commands
// operate on the local cache first; the sync layer reconciles with the
// server in the background whenever it is reachable.
package cli

import (
	"bufio"
	"context"
	"os"

	"github.com/mpetrovs/prodhub/internal/client/api"
	"github.com/mpetrovs/prodhub/internal/client/config"
	"github.com/mpetrovs/prodhub/internal/client/store"
	"github.com/mpetrovs/prodhub/internal/client/sync"
	"github.com/mpetrovs/prodhub/internal/logging"
	"github.com/mpetrovs/prodhub/internal/netx"

	_ "modernc.org/sqlite"
)

type App struct {
	config  *config.Config
	store   *store.Repositories
	api     *api.HTTPClient
	manager *sync.Manager
	checker *netx.Checker
	log     logging.Logger

	userID string
	reader *bufio.Reader
}

func NewApp(c *config.Config, log logging.Logger) (*App, error) {
	ctx := context.Background()

	repos, err := store.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		log.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	apiClient := api.NewHTTPClient(c.ServerBaseURL)
	checker := netx.NewChecker(apiClient, c.OnlineCheckInterval, log)
	manager := sync.NewManager(apiClient, repos, checker.Online, log,
		sync.WithPullTimeout(c.PullTimeout))

	return &App{
		config:  c,
		store:   repos,
		api:     apiClient,
		manager: manager,
		checker: checker,
		log:     log,
		reader:  bufio.NewReader(os.Stdin),
	}, nil
}

func (a *App) isLoggedIn() bool {
	return a.userID != ""
}

// pushThenPull flushes pending mutations and then refreshes the cache.
// Ordering matters: pulling first would briefly show server state that
// is about to be overwritten by the queued pushes.
func (a *App) pushThenPull(ctx context.Context) {
	if !a.isLoggedIn() {
		return
	}
	if err := a.manager.SyncPending(ctx, a.userID); err != nil {
		a.log.Error(ctx, "sync failed", "error", err)
		return
	}
	if err := a.manager.Refresh(ctx, a.userID); err != nil {
		a.log.Error(ctx, "refresh failed", "error", err)
	}
}

// Run starts the connectivity watcher and the sync consumer, then hands
// control to the command loop until the user exits or ctx is cancelled.
func (a *App) Run(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer a.store.Close()

	a.checker.OnOnline(func() { go a.pushThenPull(ctx) })

	go a.checker.Run(ctx)
	go a.manager.Run(ctx)

	a.Root(ctx)
}
