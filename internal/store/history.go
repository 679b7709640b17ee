package store

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"catalogctl/internal/models"
	"catalogctl/internal/notify"
	"catalogctl/internal/session"
)

// HistoryAPI is the slice of the REST client the history store needs.
type HistoryAPI interface {
	ImportHistoryAll(ctx context.Context) ([]models.ImportHistory, error)
	ImportHistoryForUser(ctx context.Context, userID int64) ([]models.ImportHistory, error)
}

// HistoryStore caches the import-history audit records. It is read-only:
// records are appended by the backend during bulk imports, never mutated
// from here. Which endpoint serves the load depends on the session's role.
type HistoryStore struct {
	mu      sync.RWMutex
	items   []models.ImportHistory
	lastErr error

	api      HistoryAPI
	gate     *session.Gate
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewHistoryStore creates the import-history store.
func NewHistoryStore(api HistoryAPI, gate *session.Gate, notifier notify.Notifier, logger *slog.Logger) *HistoryStore {
	return &HistoryStore{api: api, gate: gate, notifier: notifier, logger: logger}
}

// Load replaces the cached history. Admins see everyone's records, other
// users only their own.
func (h *HistoryStore) Load(ctx context.Context) error {
	user := h.gate.User()
	if user == nil {
		err := fmt.Errorf("loading import history: %w", session.ErrNoSession)
		h.setErr(err)
		return err
	}

	var (
		items []models.ImportHistory
		err   error
	)
	if user.Role == models.RoleAdmin {
		items, err = h.api.ImportHistoryAll(ctx)
	} else {
		items, err = h.api.ImportHistoryForUser(ctx, user.ID)
	}
	if err != nil {
		h.setErr(fmt.Errorf("loading import history: %w", err))
		h.notifier.Error("failed to load import history")
		return err
	}

	h.mu.Lock()
	h.items = items
	h.lastErr = nil
	h.mu.Unlock()
	return nil
}

// Items returns a snapshot copy of the cached history.
func (h *HistoryStore) Items() []models.ImportHistory {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]models.ImportHistory, len(h.items))
	copy(out, h.items)
	return out
}

// Err returns the last load error, or nil.
func (h *HistoryStore) Err() error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.lastErr
}

func (h *HistoryStore) setErr(err error) {
	h.mu.Lock()
	h.lastErr = err
	h.mu.Unlock()
	h.logger.Warn("import history load failed", "error", err)
}

// HistoryField names a sortable column of the history view.
type HistoryField string

const (
	HistoryByID           HistoryField = "id"
	HistoryByUser         HistoryField = "userId"
	HistoryByStatus       HistoryField = "status"
	HistoryBySuccessCount HistoryField = "successCount"
	HistoryByTimestamp    HistoryField = "timestamp"
)

// SortHistory orders records by the given field. Sorting is stable so
// re-sorting by another field keeps prior order among equals.
func SortHistory(items []models.ImportHistory, field HistoryField, ascending bool) {
	less := func(a, b models.ImportHistory) bool {
		switch field {
		case HistoryByUser:
			return a.UserID < b.UserID
		case HistoryByStatus:
			return a.Status < b.Status
		case HistoryBySuccessCount:
			return a.SuccessCount < b.SuccessCount
		case HistoryByTimestamp:
			return a.Timestamp.Before(b.Timestamp)
		default:
			return a.ID < b.ID
		}
	}
	sort.SliceStable(items, func(i, j int) bool {
		if ascending {
			return less(items[i], items[j])
		}
		return less(items[j], items[i])
	})
}

// FilterHistory keeps records matching the given status and user id.
// A zero status or zero userID leaves that dimension unfiltered.
func FilterHistory(items []models.ImportHistory, status models.ImportStatus, userID int64) []models.ImportHistory {
	out := make([]models.ImportHistory, 0, len(items))
	for _, item := range items {
		if status != "" && item.Status != status {
			continue
		}
		if userID != 0 && item.UserID != userID {
			continue
		}
		out = append(out, item)
	}
	return out
}

// PageHistory returns the 1-based page of the given size.
func PageHistory(items []models.ImportHistory, page, perPage int) []models.ImportHistory {
	if page < 1 || perPage < 1 {
		return nil
	}
	start := (page - 1) * perPage
	if start >= len(items) {
		return nil
	}
	end := start + perPage
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
