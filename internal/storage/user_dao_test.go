package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HackhimTech/ticketapp/internal/model"
)

func TestUserDAO_InsertAndGetByCredentials(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dao := NewUserDAO(testLogger(), newTestStorage(t))

	user, err := dao.Insert(ctx, InsertUserDTO{Username: "alice", Password: "p1", Name: "Alice"})
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(user.ID, "user_"))
	assert.Equal(t, "alice", user.Username)
	assert.Equal(t, "Alice", user.Name)

	got, err := dao.GetByCredentials(ctx, "alice", "p1")
	require.NoError(t, err)
	assert.Equal(t, user, got)
}

func TestUserDAO_GetByCredentialsMismatch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dao := NewUserDAO(testLogger(), newTestStorage(t))

	_, err := dao.Insert(ctx, InsertUserDTO{Username: "alice", Password: "p1", Name: "Alice"})
	require.NoError(t, err)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "alice", "p2"},
		{"unknown username", "bob", "p1"},
		{"case sensitive username", "Alice", "p1"},
		{"case sensitive password", "alice", "P1"},
		{"empty credentials", "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := dao.GetByCredentials(ctx, tt.username, tt.password)
			assert.ErrorIs(t, err, model.ErrNotFound)
		})
	}
}

func TestUserDAO_InsertRejectsDuplicateUsername(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	store := newTestStorage(t)
	dao := NewUserDAO(testLogger(), store)

	_, err := dao.Insert(ctx, InsertUserDTO{Username: "alice", Password: "p1", Name: "Alice"})
	require.NoError(t, err)

	// Same username always fails, regardless of the other fields.
	_, err = dao.Insert(ctx, InsertUserDTO{Username: "alice", Password: "other", Name: "Someone Else"})
	assert.ErrorIs(t, err, model.ErrExists)

	users, err := store.Users.Load()
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
