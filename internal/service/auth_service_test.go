package service

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/projectpulse/pulse/internal/domain"
	"github.com/projectpulse/pulse/internal/localstate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthFixture(t *testing.T) (*fixture, AuthService, *localstate.DB) {
	t.Helper()
	f := newFixture(t)
	state, err := localstate.Open(filepath.Join(t.TempDir(), "pulse.db"))
	require.NoError(t, err)
	t.Cleanup(func() { state.Close() })
	return f, NewAuthService(f.client, state, f.clock.Now), state
}

func TestLogin_Success(t *testing.T) {
	f, auth, _ := newAuthFixture(t)
	f.backend.SeedUser("dana", "hunter2", map[string]any{
		"id": 42, "name": "Dana", "role": "Team Leader",
	})

	member, err := auth.Login(context.Background(), "dana", "hunter2")
	require.NoError(t, err)
	assert.Equal(t, "42", member.ID)
	assert.Equal(t, domain.RoleTeamLeader, member.Role)

	current, ok := auth.CurrentUser()
	require.True(t, ok)
	assert.Equal(t, member, current)
}

func TestLogin_BadCredentials(t *testing.T) {
	f, auth, _ := newAuthFixture(t)
	f.backend.SeedUser("dana", "hunter2", map[string]any{"id": 42, "name": "Dana"})

	_, err := auth.Login(context.Background(), "dana", "wrong")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid username or password")

	_, ok := auth.CurrentUser()
	assert.False(t, ok)
}

func TestLogin_MissingCredentials(t *testing.T) {
	_, auth, _ := newAuthFixture(t)
	_, err := auth.Login(context.Background(), "", "")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestRestoreSession_RoundTrip(t *testing.T) {
	f, auth, state := newAuthFixture(t)
	f.backend.SeedUser("dana", "hunter2", map[string]any{
		"id": 42, "name": "Dana", "role": "Staff",
	})
	_, err := auth.Login(context.Background(), "dana", "hunter2")
	require.NoError(t, err)

	// A new service over the same local state sees the session.
	fresh := NewAuthService(f.client, state, f.clock.Now)
	member, ok := fresh.RestoreSession()
	require.True(t, ok)
	assert.Equal(t, "Dana", member.Name)

	require.NoError(t, fresh.Logout(context.Background()))
	_, ok = fresh.CurrentUser()
	assert.False(t, ok)

	after := NewAuthService(f.client, state, f.clock.Now)
	_, ok = after.RestoreSession()
	assert.False(t, ok, "logout clears the persisted session")
}

func TestRestoreSession_NothingPersisted(t *testing.T) {
	_, auth, _ := newAuthFixture(t)
	_, ok := auth.RestoreSession()
	assert.False(t, ok)
}
