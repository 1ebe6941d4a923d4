package session_test

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MatiasdeBuren/consorcio-console/internal/dtos"
	"github.com/MatiasdeBuren/consorcio-console/internal/session"
	"github.com/MatiasdeBuren/consorcio-console/internal/testhelpers"
)

func newStore(t *testing.T) *session.Store {
	return session.NewStore(filepath.Join(t.TempDir(), "session.json"))
}

func TestStoreRoundTrip(t *testing.T) {
	store := newStore(t)

	_, err := store.Token()
	assert.ErrorIs(t, err, session.ErrNoSession)

	require.NoError(t, store.SaveToken("abc123"))
	token, err := store.Token()
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	apartment := 12
	user := dtos.User{ID: 3, Name: "Ana Gómez", Role: dtos.RoleAdmin, ApartmentID: &apartment}
	require.NoError(t, store.SaveUser(user))

	// Saving the user must not drop the token, and vice versa.
	token, err = store.Token()
	require.NoError(t, err)
	assert.Equal(t, "abc123", token)

	got, err := store.User()
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestStoreClear(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SaveToken("abc123"))

	require.NoError(t, store.Clear())
	_, err := store.Token()
	assert.ErrorIs(t, err, session.ErrNoSession)

	// Clearing an already-empty store is fine.
	require.NoError(t, store.Clear())
}

func TestHandleUnauthorizedDropsSession(t *testing.T) {
	store := newStore(t)
	require.NoError(t, store.SaveToken("abc123"))
	require.NoError(t, store.SaveUser(dtos.User{ID: 1, Name: "Ana"}))

	store.HandleUnauthorized()

	_, err := store.Token()
	assert.ErrorIs(t, err, session.ErrNoSession)
	_, err = store.User()
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestIsTokenExpired(t *testing.T) {
	h := testhelpers.NewTestHelper(t)

	t.Run("valid future expiry", func(t *testing.T) {
		token := h.MintToken("user-1", 10*time.Minute)
		assert.False(t, session.IsTokenExpired(token))
	})

	t.Run("past expiry", func(t *testing.T) {
		token := h.MintToken("user-1", -10*time.Minute)
		assert.True(t, session.IsTokenExpired(token))
	})

	t.Run("missing exp claim", func(t *testing.T) {
		token := h.MintTokenWithoutExpiry("user-1")
		assert.True(t, session.IsTokenExpired(token))
	})

	t.Run("empty token", func(t *testing.T) {
		assert.True(t, session.IsTokenExpired(""))
	})

	t.Run("malformed token", func(t *testing.T) {
		assert.True(t, session.IsTokenExpired("not.a.jwt"))
		assert.True(t, session.IsTokenExpired("garbage"))
	})
}
