package storage

import (
	"context"
	"encoding/hex"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HackhimTech/ticketapp/internal/model"
)

func TestSessionDAO_CreateIssuesHexToken(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dao := NewSessionDAO(testLogger(), newTestStorage(t))

	user := model.User{ID: "user_1", Username: "alice", Password: "p1", Name: "Alice"}

	session, err := dao.Create(ctx, user)
	require.NoError(t, err)

	assert.Len(t, session.Token, 32)
	_, err = hex.DecodeString(session.Token)
	assert.NoError(t, err)

	assert.Equal(t, model.SessionUser{ID: "user_1", Username: "alice", Name: "Alice"}, session.User)
	assert.Equal(t, session.CreatedAt.Add(24*time.Hour), session.ExpiresAt)
}

func TestSessionDAO_TokensAreUnique(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dao := NewSessionDAO(testLogger(), newTestStorage(t))

	user := model.User{ID: "user_1", Username: "alice", Name: "Alice"}

	seen := make(map[string]bool)
	for i := 0; i < 50; i++ {
		session, err := dao.Create(ctx, user)
		require.NoError(t, err)
		require.False(t, seen[session.Token], "token issued twice")
		seen[session.Token] = true
	}
}

func TestSessionDAO_Validate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dao := NewSessionDAO(testLogger(), newTestStorage(t))

	user := model.User{ID: "user_1", Username: "alice", Name: "Alice"}

	session, err := dao.Create(ctx, user)
	require.NoError(t, err)

	got, err := dao.Validate(ctx, session.Token)
	require.NoError(t, err)
	assert.Equal(t, session.Token, got.Token)
	assert.Equal(t, "alice", got.User.Username)

	_, err = dao.Validate(ctx, "")
	assert.ErrorIs(t, err, model.ErrNotFound)

	_, err = dao.Validate(ctx, "0123456789abcdef0123456789abcdef")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestSessionDAO_ValidateRemovesExpiredSession(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStorage(t)
	dao := NewSessionDAO(testLogger(), store)

	expired := model.Session{
		Token:     "0123456789abcdef0123456789abcdef",
		User:      model.SessionUser{ID: "user_1", Username: "alice", Name: "Alice"},
		CreatedAt: time.Now().UTC().Add(-48 * time.Hour),
		ExpiresAt: time.Now().UTC().Add(-24 * time.Hour),
	}
	err := store.Sessions.Save(map[string]model.Session{expired.Token: expired})
	require.NoError(t, err)

	_, err = dao.Validate(ctx, expired.Token)
	assert.ErrorIs(t, err, model.ErrNotFound)

	// Expiry is self-cleaning: the session is gone from the store.
	sessions, err := store.Sessions.Load()
	require.NoError(t, err)
	assert.NotContains(t, sessions, expired.Token)
}

func TestSessionDAO_DestroyIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStorage(t)
	dao := NewSessionDAO(testLogger(), store)

	session, err := dao.Create(ctx, model.User{ID: "user_1", Username: "alice", Name: "Alice"})
	require.NoError(t, err)

	require.NoError(t, dao.Destroy(ctx, session.Token))

	_, err = dao.Validate(ctx, session.Token)
	assert.ErrorIs(t, err, model.ErrNotFound)

	// Destroying again, or destroying a token never issued, is a no-op.
	assert.NoError(t, dao.Destroy(ctx, session.Token))
	assert.NoError(t, dao.Destroy(ctx, "never-issued"))
}
