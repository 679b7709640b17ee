package session

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"catalogctl/internal/models"
	"catalogctl/internal/notify"
	"catalogctl/internal/validate"
)

type fakeAuthAPI struct {
	user *models.User
	err  error

	signInCalls int
	signUpCalls int
	lastRole    models.Role
}

func (f *fakeAuthAPI) SignIn(_ context.Context, username, password string) (*models.User, error) {
	f.signInCalls++
	return f.user, f.err
}

func (f *fakeAuthAPI) SignUp(_ context.Context, username, password string, role models.Role) (*models.User, error) {
	f.signUpCalls++
	f.lastRole = role
	return f.user, f.err
}

func tempGate(t *testing.T) (*Gate, *notify.Recorder, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	rec := notify.NewRecorder()
	return NewGate(path, rec, slog.Default()), rec, path
}

func TestLoginPersistsSession(t *testing.T) {
	gate, _, path := tempGate(t)
	api := &fakeAuthAPI{user: &models.User{ID: 7, Username: "alice", Role: models.RoleUser, JWT: "token-abc"}}

	require.NoError(t, gate.Login(context.Background(), api, "alice", "secret1"))
	assert.Equal(t, "token-abc", gate.Token())

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"user"`)
	assert.Contains(t, string(raw), `"alice"`)
}

func TestRestoreAcrossRestart(t *testing.T) {
	gate, _, path := tempGate(t)
	api := &fakeAuthAPI{user: &models.User{ID: 7, Username: "alice", Role: models.RoleAdmin, JWT: "token-abc"}}
	require.NoError(t, gate.Login(context.Background(), api, "alice", "secret1"))

	fresh := NewGate(path, notify.NewRecorder(), slog.Default())
	require.NoError(t, fresh.Restore())

	user := fresh.User()
	require.NotNil(t, user)
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, models.RoleAdmin, user.Role)
	assert.Equal(t, "token-abc", fresh.Token())
}

func TestRestoreMissingFile(t *testing.T) {
	gate, _, _ := tempGate(t)
	require.NoError(t, gate.Restore())
	assert.Nil(t, gate.User())
	assert.Empty(t, gate.Token())
}

func TestRestoreDiscardsCorruptFile(t *testing.T) {
	gate, _, path := tempGate(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	require.NoError(t, gate.Restore())
	assert.Nil(t, gate.User())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestLoginValidationSkipsAPI(t *testing.T) {
	gate, rec, _ := tempGate(t)
	api := &fakeAuthAPI{}

	err := gate.Login(context.Background(), api, "", "short")
	require.Error(t, err)

	var vio validate.Violations
	require.ErrorAs(t, err, &vio)
	assert.Zero(t, api.signInCalls)
	assert.Equal(t, "error", rec.Last().Level)
	assert.Contains(t, rec.Last().Message, "validation failed")
}

func TestLoginAPIFailureNotifiesAndReturns(t *testing.T) {
	gate, rec, _ := tempGate(t)
	wantErr := errors.New("bad credentials")
	api := &fakeAuthAPI{err: wantErr}

	err := gate.Login(context.Background(), api, "alice", "secret1")
	require.ErrorIs(t, err, wantErr)
	assert.Nil(t, gate.User())
	assert.Equal(t, notify.Notice{Level: "error", Message: "sign-in failed"}, rec.Last())
}

func TestSignupPassesRole(t *testing.T) {
	gate, _, _ := tempGate(t)
	api := &fakeAuthAPI{user: &models.User{ID: 8, Username: "bob", Role: models.RoleAdmin, JWT: "t"}}

	require.NoError(t, gate.Signup(context.Background(), api, "bob", "secret1", models.RoleAdmin))
	assert.Equal(t, models.RoleAdmin, api.lastRole)
	assert.Equal(t, 1, api.signUpCalls)
}

func TestSignupInvalidRoleBlocked(t *testing.T) {
	gate, _, _ := tempGate(t)
	api := &fakeAuthAPI{}

	err := gate.Signup(context.Background(), api, "bob", "secret1", "SUPERUSER")
	require.Error(t, err)
	assert.Zero(t, api.signUpCalls)
}

func TestLogoutClearsEverything(t *testing.T) {
	gate, _, path := tempGate(t)
	api := &fakeAuthAPI{user: &models.User{ID: 7, Username: "alice", JWT: "token"}}
	require.NoError(t, gate.Login(context.Background(), api, "alice", "secret1"))

	require.NoError(t, gate.Logout())
	assert.Nil(t, gate.User())
	assert.Empty(t, gate.Token())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Idempotent.
	require.NoError(t, gate.Logout())
}

func TestUserReturnsCopy(t *testing.T) {
	gate, _, _ := tempGate(t)
	api := &fakeAuthAPI{user: &models.User{ID: 7, Username: "alice"}}
	require.NoError(t, gate.Login(context.Background(), api, "alice", "secret1"))

	u := gate.User()
	u.Username = "mallory"
	assert.Equal(t, "alice", gate.User().Username)
}

func TestUserID(t *testing.T) {
	gate, _, _ := tempGate(t)

	_, err := gate.UserID()
	require.ErrorIs(t, err, ErrNoSession)

	api := &fakeAuthAPI{user: &models.User{ID: 7, Username: "alice"}}
	require.NoError(t, gate.Login(context.Background(), api, "alice", "secret1"))

	id, err := gate.UserID()
	require.NoError(t, err)
	assert.Equal(t, int64(7), id)
}
