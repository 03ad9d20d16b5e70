package storage

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HackhimTech/ticketapp/internal/model"
)

func TestTicketDAO_InsertDefaults(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dao := NewTicketDAO(testLogger(), newTestStorage(t))

	ticket, err := dao.Insert(ctx, InsertTicketDTO{Title: "Printer broken", Owner: "alice"})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(ticket.ID, "t_"))
	assert.Equal(t, model.StatusOpen, ticket.Status)
	assert.Equal(t, model.DefaultPriority, ticket.Priority)
	assert.Equal(t, "alice", ticket.Owner)
	assert.Equal(t, ticket.CreatedAt, ticket.UpdatedAt)
	assert.False(t, ticket.CreatedAt.IsZero())
}

func TestTicketDAO_InsertKeepsExplicitFields(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dao := NewTicketDAO(testLogger(), newTestStorage(t))

	ticket, err := dao.Insert(ctx, InsertTicketDTO{
		Title:       "Printer broken",
		Description: "Out of toner",
		Status:      model.StatusInProgress,
		Priority:    "high",
		Owner:       "alice",
	})
	require.NoError(t, err)

	assert.Equal(t, model.StatusInProgress, ticket.Status)
	assert.Equal(t, "high", ticket.Priority)
	assert.Equal(t, "Out of toner", ticket.Description)
}

func TestTicketDAO_AllIsMostRecentFirst(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dao := NewTicketDAO(testLogger(), newTestStorage(t))

	for _, title := range []string{"A", "B", "C"} {
		_, err := dao.Insert(ctx, InsertTicketDTO{Title: title, Owner: "alice"})
		require.NoError(t, err)
	}

	all, err := dao.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "C", all[0].Title)
	assert.Equal(t, "B", all[1].Title)
	assert.Equal(t, "A", all[2].Title)
}

func TestTicketDAO_AllEmpty(t *testing.T) {
	t.Parallel()

	dao := NewTicketDAO(testLogger(), newTestStorage(t))

	all, err := dao.All(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, all)
	assert.Empty(t, all)
}

func TestTicketDAO_Get(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dao := NewTicketDAO(testLogger(), newTestStorage(t))

	ticket, err := dao.Insert(ctx, InsertTicketDTO{Title: "Printer broken", Owner: "alice"})
	require.NoError(t, err)

	got, err := dao.Get(ctx, ticket.ID)
	require.NoError(t, err)
	assert.Equal(t, ticket.ID, got.ID)

	_, err = dao.Get(ctx, "t_missing")
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestTicketDAO_UpdatePartialFields(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dao := NewTicketDAO(testLogger(), newTestStorage(t))

	ticket, err := dao.Insert(ctx, InsertTicketDTO{
		Title:       "Printer broken",
		Description: "Out of toner",
		Status:      model.StatusOpen,
		Owner:       "alice",
	})
	require.NoError(t, err)

	status := model.StatusClosed
	updated, err := dao.Update(ctx, ticket.ID, UpdateTicketDTO{Status: &status})
	require.NoError(t, err)

	assert.Equal(t, model.StatusClosed, updated.Status)
	assert.Equal(t, "Printer broken", updated.Title)
	assert.Equal(t, "Out of toner", updated.Description)
	assert.Equal(t, ticket.CreatedAt, updated.CreatedAt)
	assert.False(t, updated.UpdatedAt.Before(ticket.UpdatedAt))
}

func TestTicketDAO_UpdateUnknownID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dao := NewTicketDAO(testLogger(), newTestStorage(t))

	title := "New title"
	_, err := dao.Update(ctx, "t_missing", UpdateTicketDTO{Title: &title})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestTicketDAO_DeleteIsIdempotent(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	dao := NewTicketDAO(testLogger(), newTestStorage(t))

	ticket, err := dao.Insert(ctx, InsertTicketDTO{Title: "Printer broken", Owner: "alice"})
	require.NoError(t, err)
	keep, err := dao.Insert(ctx, InsertTicketDTO{Title: "Keep me", Owner: "alice"})
	require.NoError(t, err)

	require.NoError(t, dao.Delete(ctx, ticket.ID))

	all, err := dao.All(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.Equal(t, keep.ID, all[0].ID)

	// Deleting an id that no longer exists still succeeds and leaves the
	// collection unchanged.
	require.NoError(t, dao.Delete(ctx, ticket.ID))
	require.NoError(t, dao.Delete(ctx, "t_missing"))

	all, err = dao.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}
