// Package session owns the authenticated user and the JWT that decorates
// every outgoing request. The session is the only state persisted outside
// the in-memory stores: it is mirrored to a JSON file so it survives a
// restart, stored under the durable key "user".
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"catalogctl/internal/models"
	"catalogctl/internal/notify"
	"catalogctl/internal/validate"
)

// ErrNoSession is returned when an operation needs an authenticated user
// and none is present.
var ErrNoSession = errors.New("no active session")

// AuthAPI is the slice of the backend client the gate needs.
type AuthAPI interface {
	SignIn(ctx context.Context, username, password string) (*models.User, error)
	SignUp(ctx context.Context, username, password string, role models.Role) (*models.User, error)
}

// persisted is the on-disk shape of the session file.
type persisted struct {
	User *models.User `json:"user"`
}

// Gate holds the current session and persists it across restarts.
type Gate struct {
	mu       sync.Mutex
	user     *models.User
	path     string
	notifier notify.Notifier
	logger   *slog.Logger
}

// NewGate creates a gate persisting to path. Call Restore to pick up a
// previously saved session.
func NewGate(path string, notifier notify.Notifier, logger *slog.Logger) *Gate {
	return &Gate{path: path, notifier: notifier, logger: logger}
}

// Restore loads a previously persisted session, if any. A missing file is
// not an error; a corrupt file is discarded.
func (g *Gate) Restore() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	raw, err := os.ReadFile(g.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("reading session file: %w", err)
	}

	var p persisted
	if err := json.Unmarshal(raw, &p); err != nil || p.User == nil {
		g.logger.Warn("discarding unreadable session file", "path", g.path)
		_ = os.Remove(g.path)
		return nil
	}

	g.user = p.User
	g.logger.Debug("restored session", "username", p.User.Username, "role", p.User.Role)
	return nil
}

// Login validates credentials locally, signs in, and persists the session.
// On failure the notice is emitted here and the error is still returned so
// the calling surface can react as well.
func (g *Gate) Login(ctx context.Context, api AuthAPI, username, password string) error {
	if vio := validate.SignIn(username, password); len(vio) > 0 {
		g.notifier.Error("validation failed: " + vio.Error())
		return vio
	}

	user, err := api.SignIn(ctx, username, password)
	if err != nil {
		g.notifier.Error("sign-in failed")
		return err
	}

	return g.set(user)
}

// Signup validates the requested account locally, registers it, and
// persists the returned session.
func (g *Gate) Signup(ctx context.Context, api AuthAPI, username, password string, role models.Role) error {
	if vio := validate.SignUp(username, password, role); len(vio) > 0 {
		g.notifier.Error("validation failed: " + vio.Error())
		return vio
	}

	user, err := api.SignUp(ctx, username, password, role)
	if err != nil {
		g.notifier.Error("sign-up failed")
		return err
	}

	return g.set(user)
}

func (g *Gate) set(user *models.User) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.user = user

	if err := os.MkdirAll(filepath.Dir(g.path), 0o700); err != nil {
		return fmt.Errorf("creating session directory: %w", err)
	}
	raw, err := json.Marshal(persisted{User: user})
	if err != nil {
		return fmt.Errorf("marshalling session: %w", err)
	}
	if err := os.WriteFile(g.path, raw, 0o600); err != nil {
		return fmt.Errorf("persisting session: %w", err)
	}

	g.logger.Info("session established", "username", user.Username, "role", user.Role)
	return nil
}

// Logout clears the session in memory and on disk.
func (g *Gate) Logout() error {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.user = nil
	if err := os.Remove(g.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("removing session file: %w", err)
	}
	return nil
}

// Token returns the current JWT, or "" when signed out. Satisfies the
// client's TokenSource.
func (g *Gate) Token() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.user == nil {
		return ""
	}
	return g.user.JWT
}

// User returns a copy of the current user, or nil when signed out.
func (g *Gate) User() *models.User {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.user == nil {
		return nil
	}
	u := *g.user
	return &u
}

// UserID returns the current user's id, or ErrNoSession.
func (g *Gate) UserID() (int64, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.user == nil {
		return 0, ErrNoSession
	}
	return g.user.ID, nil
}
