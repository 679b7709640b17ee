// Package store implements the in-memory entity collections and the
// operations that keep them synchronized with the backend. Every record
// type shares one discipline: load replaces the collection wholesale,
// create validates locally before any network call, update swaps the whole
// matching element with the server's response, delete filters by id.
//
// Overlapping operations on the same store are not serialized; the mutex
// guards memory safety only, and whichever response lands last wins.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"

	"catalogctl/internal/metrics"
	"catalogctl/internal/notify"
	"catalogctl/internal/validate"
)

// Entity is any record with a server-assigned identifier.
type Entity interface {
	EntityID() int64
}

// Backend is the slice of the REST client one store needs: a full-collection
// fetch plus the three mutations for its record type.
type Backend[E Entity, W any] interface {
	FetchAll(ctx context.Context) ([]E, error)
	Create(ctx context.Context, w W) (*E, error)
	Update(ctx context.Context, id int64, w W) (*E, error)
	Delete(ctx context.Context, id int64) error
}

// Store owns one entity collection. E is the read shape, W the write payload.
type Store[E Entity, W any] struct {
	mu      sync.RWMutex
	items   []E
	loading bool
	lastErr error

	name     string
	backend  Backend[E, W]
	validate func(W) validate.Violations
	notifier notify.Notifier
	logger   *slog.Logger
}

// New creates a store for the named record type. name appears in notices
// ("failed to load products") and log lines.
func New[E Entity, W any](name string, backend Backend[E, W], validateFn func(W) validate.Violations, notifier notify.Notifier, logger *slog.Logger) *Store[E, W] {
	return &Store[E, W]{
		name:     name,
		backend:  backend,
		validate: validateFn,
		notifier: notifier,
		logger:   logger,
	}
}

// Load fetches the full collection and replaces the local one wholesale.
// On failure the previous collection stays untouched, the error is recorded
// on the store, and a notice is emitted; the returned error is informational
// and safe to ignore.
func (s *Store[E, W]) Load(ctx context.Context) error {
	metrics.Inc(metrics.LoadTotal)

	s.mu.Lock()
	s.loading = true
	s.lastErr = nil
	s.mu.Unlock()

	items, err := s.backend.FetchAll(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading = false

	if err != nil {
		s.lastErr = fmt.Errorf("loading %s: %w", plural(s.name), err)
		s.notifier.Error("failed to load " + plural(s.name))
		s.logger.Warn("load failed", "store", s.name, "error", err)
		return s.lastErr
	}

	s.items = items
	s.logger.Debug("collection replaced", "store", s.name, "count", len(items))
	return nil
}

// Create validates the payload first; violations block the network call
// entirely and are reported as one consolidated notice. On success the
// server's record is merged into the collection: appended, or swapped in
// if a poll already delivered it, so the collection never holds two copies
// of one id.
func (s *Store[E, W]) Create(ctx context.Context, w W) (*E, error) {
	metrics.Inc(metrics.CreateTotal)

	if s.validate != nil {
		if vio := s.validate(w); len(vio) > 0 {
			metrics.Inc(metrics.ValidationFailed)
			s.notifier.Error("validation failed: " + vio.Error())
			return nil, vio
		}
	}

	created, err := s.backend.Create(ctx, w)
	if err != nil {
		s.setErr(fmt.Errorf("creating %s: %w", s.name, err))
		s.notifier.Error("failed to create " + s.name)
		return nil, err
	}

	s.mu.Lock()
	s.upsertLocked(*created)
	s.mu.Unlock()

	s.notifier.Success(s.name + " created")
	return created, nil
}

// Update validates, calls the backend, and swaps the whole matching element
// with the server's response. Fields the server omitted are cleared, not
// retained: the merge is a whole-object swap.
func (s *Store[E, W]) Update(ctx context.Context, id int64, w W) (*E, error) {
	metrics.Inc(metrics.UpdateTotal)

	if s.validate != nil {
		if vio := s.validate(w); len(vio) > 0 {
			metrics.Inc(metrics.ValidationFailed)
			s.notifier.Error("validation failed: " + vio.Error())
			return nil, vio
		}
	}

	updated, err := s.backend.Update(ctx, id, w)
	if err != nil {
		s.setErr(fmt.Errorf("updating %s %d: %w", s.name, id, err))
		s.notifier.Error("failed to update " + s.name)
		return nil, err
	}

	s.mu.Lock()
	for i := range s.items {
		if s.items[i].EntityID() == id {
			s.items[i] = *updated
			break
		}
	}
	s.mu.Unlock()

	s.notifier.Success(s.name + " updated")
	return updated, nil
}

// Delete removes the record on the backend, then filters it out of the
// local collection. No local validation applies.
func (s *Store[E, W]) Delete(ctx context.Context, id int64) error {
	metrics.Inc(metrics.DeleteTotal)

	if err := s.backend.Delete(ctx, id); err != nil {
		s.setErr(fmt.Errorf("deleting %s %d: %w", s.name, id, err))
		s.notifier.Error("failed to delete " + s.name)
		return err
	}

	s.mu.Lock()
	kept := s.items[:0]
	for _, item := range s.items {
		if item.EntityID() != id {
			kept = append(kept, item)
		}
	}
	s.items = kept
	s.mu.Unlock()

	s.notifier.Success(s.name + " deleted")
	return nil
}

// upsertLocked replaces the element with the same id or appends.
func (s *Store[E, W]) upsertLocked(item E) {
	for i := range s.items {
		if s.items[i].EntityID() == item.EntityID() {
			s.items[i] = item
			return
		}
	}
	s.items = append(s.items, item)
}

// Items returns a snapshot copy of the collection.
func (s *Store[E, W]) Items() []E {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]E, len(s.items))
	copy(out, s.items)
	return out
}

// Find resolves an id against the current snapshot. A false result means
// the reference dangles right now and a save against it must be refused.
func (s *Store[E, W]) Find(id int64) (*E, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.items {
		if s.items[i].EntityID() == id {
			item := s.items[i]
			return &item, true
		}
	}
	return nil, false
}

// Err returns the last load/mutation error, or nil.
func (s *Store[E, W]) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastErr
}

// Loading reports whether a load is in flight.
func (s *Store[E, W]) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

func (s *Store[E, W]) setErr(err error) {
	s.mu.Lock()
	s.lastErr = err
	s.mu.Unlock()
	s.logger.Warn("operation failed", "store", s.name, "error", err)
}

func plural(name string) string {
	if strings.HasSuffix(name, "s") {
		return name + "es"
	}
	return name + "s"
}
