// Package sync reconciles the local cache with the server. Mutations
// always land locally first; the Manager pushes pending records when a
// connection is available and replaces temporary identifiers with the
// ones the server assigns.
package sync

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mpetrovs/prodhub/internal/client/api"
	"github.com/mpetrovs/prodhub/internal/client/models"
	"github.com/mpetrovs/prodhub/internal/client/store"
	"github.com/mpetrovs/prodhub/internal/logging"
)

// DefaultPullTimeout bounds each per-collection server fetch during a
// refresh so one slow endpoint cannot stall the whole pull.
const DefaultPullTimeout = 5 * time.Second

// errDeferred marks a record skipped because a record it references has
// not been assigned a server identifier yet. It is not a failure; the
// record stays pending for the next pass.
var errDeferred = errors.New("referenced record not synced yet")

// Status describes the sync engine state as shown to the user.
type Status string

const (
	StatusOffline Status = "offline"
	StatusSyncing Status = "syncing"
	StatusSynced  Status = "synced"
	StatusFailed  Status = "sync failed"
)

// Manager owns the push and pull loops over all collections.
//
// Collections are processed in a fixed order so that records are pushed
// before anything that references them: tasks, notes, expenses, habits,
// habit-logs.
type Manager struct {
	api         api.Client
	cols        []Collection
	byName      map[string]Collection
	online      func() bool
	log         logging.Logger
	pullTimeout time.Duration
	now         func() time.Time

	syncing atomic.Bool
	failed  atomic.Bool
	trigger chan string

	// idMappings holds temporary-to-server id pairs assigned during the
	// current pass. Only touched by the goroutine that won the syncing
	// flag.
	idMappings map[string]string
}

// Option configures a Manager.
type Option func(*Manager)

// WithPullTimeout overrides the per-collection fetch timeout used by
// Refresh.
func WithPullTimeout(d time.Duration) Option {
	return func(m *Manager) { m.pullTimeout = d }
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// NewManager wires the sync engine over the API client and the local
// repositories. The online func reports current server reachability.
func NewManager(apiClient api.Client, repos *store.Repositories, online func() bool, log logging.Logger, opts ...Option) *Manager {
	cols := []Collection{
		Tasks(repos.Tasks),
		Notes(repos.Notes),
		Expenses(repos.Expenses),
		Habits(repos.Habits),
		HabitLogs(repos.HabitLogs),
	}
	byName := make(map[string]Collection, len(cols))
	for _, c := range cols {
		byName[c.Name()] = c
	}
	m := &Manager{
		api:         apiClient,
		cols:        cols,
		byName:      byName,
		online:      online,
		log:         log,
		pullTimeout: DefaultPullTimeout,
		now:         time.Now,
		trigger:     make(chan string, 1),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Manager) collection(name string) (Collection, error) {
	col, ok := m.byName[name]
	if !ok {
		return nil, fmt.Errorf("unknown collection %q", name)
	}
	return col, nil
}

// Add stores a new record locally under a temporary identifier and
// schedules a push if the server is reachable. It returns the assigned
// temporary id.
func (m *Manager) Add(ctx context.Context, collection string, rec models.Syncable) (string, error) {
	col, err := m.collection(collection)
	if err != nil {
		return "", err
	}
	if rec.Owner() == "" {
		return "", errors.New("record has no owner")
	}
	id := models.NewTempID()
	rec.SetRecordID(id)
	rec.StampNew(m.now())
	rec.SetState(models.StatusPending)
	if err := col.Save(ctx, rec); err != nil {
		return "", err
	}
	if m.online() {
		m.Schedule(rec.Owner())
	}
	return id, nil
}

// Update applies a patch to a stored record, marks it pending and
// schedules a push if the server is reachable.
func (m *Manager) Update(ctx context.Context, collection, id string, patch models.Patch) error {
	col, err := m.collection(collection)
	if err != nil {
		return err
	}
	rec, err := col.Get(ctx, id)
	if err != nil {
		return err
	}
	if !patch.Apply(rec) {
		return fmt.Errorf("patch does not apply to a %s record", collection)
	}
	rec.StampUpdated(m.now())
	rec.SetState(models.StatusPending)
	if err := col.Save(ctx, rec); err != nil {
		return err
	}
	if m.online() {
		m.Schedule(rec.Owner())
	}
	return nil
}

// Delete removes a record from the local cache. When the server is
// reachable and the record has a server-assigned id, the server copy is
// deleted too, best effort: a failed remote delete never blocks the
// local one.
func (m *Manager) Delete(ctx context.Context, collection, id string) error {
	col, err := m.collection(collection)
	if err != nil {
		return err
	}
	if m.online() && !models.IsTempID(id) {
		if err := m.api.Delete(ctx, collection, id); err != nil {
			m.log.Error(ctx, "server delete failed, removing local copy only",
				"collection", collection, "id", id, "error", err)
		}
	}
	return col.Delete(ctx, id)
}

// Schedule requests a push pass for the user's records. Requests made
// while a pass is running coalesce into a single follow-up pass.
func (m *Manager) Schedule(userID string) {
	select {
	case m.trigger <- userID:
	default:
	}
}

// Run consumes scheduled push requests until ctx is cancelled. It is
// meant to run on its own goroutine.
func (m *Manager) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case userID := <-m.trigger:
			if err := m.SyncPending(ctx, userID); err != nil {
				m.log.Error(ctx, "sync pass failed", "error", err)
			}
		}
	}
}

// SyncPending pushes every pending record for the user, collection by
// collection. If a pass is already running the call returns immediately
// without doing anything. Per-record failures are logged and leave the
// record pending; they do not abort the pass.
func (m *Manager) SyncPending(ctx context.Context, userID string) error {
	if !m.syncing.CompareAndSwap(false, true) {
		m.log.Debug(ctx, "sync already in progress, skipping")
		return nil
	}
	defer m.syncing.Store(false)

	if !m.online() {
		m.log.Debug(ctx, "server unreachable, keeping records pending")
		return nil
	}

	m.idMappings = make(map[string]string)

	failures := 0
	for _, col := range m.cols {
		failures += m.syncCollection(ctx, col, userID)
	}
	m.failed.Store(failures > 0)
	if failures == 0 {
		m.log.Info(ctx, "sync pass complete", "user", userID)
	} else {
		m.log.Warn(ctx, "sync pass finished with failures", "user", userID, "failed", failures)
	}
	return nil
}

func (m *Manager) syncCollection(ctx context.Context, col Collection, userID string) int {
	pending, err := col.ListPending(ctx, userID)
	if err != nil {
		m.log.Error(ctx, "listing pending records failed", "collection", col.Name(), "error", err)
		return 1
	}
	if len(pending) == 0 {
		return 0
	}
	m.log.Info(ctx, "pushing pending records", "collection", col.Name(), "count", len(pending))

	failures := 0
	for _, rec := range pending {
		err := m.pushRecord(ctx, col, rec)
		switch {
		case err == nil:
		case errors.Is(err, errDeferred):
			m.log.Debug(ctx, "record deferred to a later pass",
				"collection", col.Name(), "id", rec.RecordID())
		default:
			failures++
			m.log.Error(ctx, "push failed",
				"collection", col.Name(), "id", rec.RecordID(), "error", err)
		}
	}
	return failures
}

// pushRecord sends one pending record to the server. Records with a
// temporary id are created; the server-assigned id then replaces the
// temporary one locally and is recorded in the pass remap table so
// later collections can fix their references. All local mutations
// happen only after the server accepted the record.
func (m *Manager) pushRecord(ctx context.Context, col Collection, rec models.Syncable) error {
	oldID := rec.RecordID()

	if !col.ResolveRefs(rec, m.idMappings) {
		return errDeferred
	}

	if models.IsTempID(oldID) {
		data, err := m.api.Create(ctx, col.Name(), rec)
		if err != nil {
			return err
		}
		serverID, err := extractID(data)
		if err != nil {
			return err
		}
		m.idMappings[oldID] = serverID
		if err := col.Rekey(ctx, oldID, serverID); err != nil {
			return err
		}
		rec.SetRecordID(serverID)
		rec.SetState(models.StatusSynced)
		return col.Save(ctx, rec)
	}

	if _, err := m.api.Update(ctx, col.Name(), oldID, rec); err != nil {
		return err
	}
	rec.SetState(models.StatusSynced)
	return col.Save(ctx, rec)
}

// extractID pulls the record identifier out of a create response. Some
// deployments return it under "_id" instead of "id".
func extractID(data []byte) (string, error) {
	var v struct {
		ID    string `json:"id"`
		AltID string `json:"_id"`
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return "", fmt.Errorf("decoding create response: %w", err)
	}
	if v.ID != "" {
		return v.ID, nil
	}
	if v.AltID != "" {
		return v.AltID, nil
	}
	return "", errors.New("create response carries no record id")
}

// Refresh pulls every collection from the server in parallel and
// replaces the local synced copies. A collection that fails to download
// keeps its cached rows; Refresh only returns an error for local
// storage problems. Offline it is a no-op.
func (m *Manager) Refresh(ctx context.Context, userID string) error {
	if !m.online() {
		m.log.Debug(ctx, "server unreachable, serving cached data", "user", userID)
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	for _, col := range m.cols {
		col := col
		g.Go(func() error {
			fctx, cancel := context.WithTimeout(gctx, m.pullTimeout)
			defer cancel()
			data, err := m.api.List(fctx, col.Name())
			if err != nil {
				m.log.Warn(gctx, "fetch failed, keeping cached data",
					"collection", col.Name(), "error", err)
				return nil
			}
			n, err := col.StoreServerList(gctx, data)
			if err != nil {
				return fmt.Errorf("storing %s: %w", col.Name(), err)
			}
			m.log.Debug(gctx, "collection refreshed", "collection", col.Name(), "count", n)
			return nil
		})
	}
	return g.Wait()
}

// ClearUserData wipes every collection for the user from the local
// cache. Used on logout so the next account starts from an empty cache.
func (m *Manager) ClearUserData(ctx context.Context, userID string) error {
	var errs []error
	for _, col := range m.cols {
		if err := col.DeleteByUser(ctx, userID); err != nil {
			errs = append(errs, fmt.Errorf("clearing %s: %w", col.Name(), err))
		}
	}
	return errors.Join(errs...)
}

// Status reports the engine state for display.
func (m *Manager) Status() Status {
	if !m.online() {
		return StatusOffline
	}
	if m.syncing.Load() {
		return StatusSyncing
	}
	if m.failed.Load() {
		return StatusFailed
	}
	return StatusSynced
}
