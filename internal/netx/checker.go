// Package netx tracks server reachability for the offline-first client.
// The rest of the app treats the Checker's verdict as the single source
// of truth for online versus offline behavior.
package netx

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/mpetrovs/prodhub/internal/logging"
)

// probeTimeout bounds a single reachability probe.
const probeTimeout = 3 * time.Second

// Pinger is the probe target. Satisfied by the API client.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Checker polls the server and fires callbacks on connectivity edges.
// The zero state is offline; the first successful probe flips it and
// runs the online callbacks, which is what triggers the initial sync.
type Checker struct {
	pinger   Pinger
	interval time.Duration
	log      logging.Logger

	online atomic.Bool

	mu        sync.Mutex
	onOnline  []func()
	onOffline []func()
}

// NewChecker returns a Checker probing p every interval.
func NewChecker(p Pinger, interval time.Duration, log logging.Logger) *Checker {
	return &Checker{pinger: p, interval: interval, log: log}
}

// Online reports the result of the most recent probe.
func (c *Checker) Online() bool {
	return c.online.Load()
}

// OnOnline registers fn to run each time connectivity is regained.
// Callbacks run on the probing goroutine and must not block.
func (c *Checker) OnOnline(fn func()) {
	c.mu.Lock()
	c.onOnline = append(c.onOnline, fn)
	c.mu.Unlock()
}

// OnOffline registers fn to run each time connectivity is lost.
func (c *Checker) OnOffline(fn func()) {
	c.mu.Lock()
	c.onOffline = append(c.onOffline, fn)
	c.mu.Unlock()
}

// Probe performs one reachability check and fires edge callbacks when
// the verdict changed since the previous probe.
func (c *Checker) Probe(ctx context.Context) {
	pctx, cancel := context.WithTimeout(ctx, probeTimeout)
	err := c.pinger.Ping(pctx)
	cancel()

	now := err == nil
	prev := c.online.Swap(now)
	if now == prev {
		return
	}

	c.mu.Lock()
	callbacks := c.onOffline
	if now {
		callbacks = c.onOnline
	}
	callbacks = append([]func(){}, callbacks...)
	c.mu.Unlock()

	if now {
		c.log.Info(ctx, "server reachable, resuming sync")
	} else {
		c.log.Warn(ctx, "server unreachable, entering offline mode", "error", err)
	}
	for _, fn := range callbacks {
		fn()
	}
}

// Run probes immediately and then on every interval tick until ctx is
// cancelled. It is meant to run on its own goroutine.
func (c *Checker) Run(ctx context.Context) {
	c.Probe(ctx)

	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			c.Probe(ctx)
		}
	}
}
