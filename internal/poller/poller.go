// Package poller keeps the local collections fresh by reloading them on a
// fixed interval, the same data every connected client converges on.
package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"catalogctl/internal/metrics"
)

// Loader refreshes every collection at once.
type Loader interface {
	LoadAll(ctx context.Context) error
}

// Refresher reloads a Loader on a fixed interval. One refresh runs at a
// time; a slow reload delays the next tick instead of overlapping it.
type Refresher struct {
	interval time.Duration
	loader   Loader
	logger   *slog.Logger

	mu      sync.Mutex
	stop    chan struct{}
	done    chan struct{}
	running bool
}

// New creates a refresher with the given interval.
func New(interval time.Duration, loader Loader, logger *slog.Logger) *Refresher {
	return &Refresher{interval: interval, loader: loader, logger: logger}
}

// Start begins polling. The first refresh happens immediately, then one per
// interval. Start is a no-op if the refresher is already running.
func (r *Refresher) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.running {
		return
	}
	r.running = true
	r.stop = make(chan struct{})
	r.done = make(chan struct{})
	go r.run(ctx, r.stop, r.done)
}

func (r *Refresher) run(ctx context.Context, stop, done chan struct{}) {
	defer close(done)

	r.refresh(ctx)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			r.refresh(ctx)
		case <-stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	metrics.Inc(metrics.PollTicks)
	if err := r.loader.LoadAll(ctx); err != nil {
		// Stores keep their previous collections on failure; polling
		// continues and the next tick retries.
		r.logger.Warn("refresh failed", "error", err)
		return
	}
	r.logger.Debug("collections refreshed")
}

// Stop halts polling and waits for the in-flight refresh, if any, to
// finish. Stop is a no-op if the refresher is not running.
func (r *Refresher) Stop() {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return
	}
	r.running = false
	stop, done := r.stop, r.done
	r.mu.Unlock()

	close(stop)
	<-done
}
