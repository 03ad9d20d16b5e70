package storage

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"github.com/HackhimTech/ticketapp/internal/model"
)

type TicketDAO struct {
	Logger *slog.Logger
	store  *Storage
}

func NewTicketDAO(logger *slog.Logger, store *Storage) *TicketDAO {
	return &TicketDAO{
		Logger: logger.With("dao", "ticket"),
		store:  store,
	}
}

// All returns every ticket in stored order. Insert prepends, so the order is
// most-recent-created-first.
func (dao *TicketDAO) All(ctx context.Context) ([]model.Ticket, error) {
	tickets, err := dao.store.Tickets.Load()
	if err != nil {
		dao.Logger.Warn("failed to load tickets", "error", err)
		return nil, err
	}

	if tickets == nil {
		tickets = []model.Ticket{}
	}

	return tickets, nil
}

func (dao *TicketDAO) Get(ctx context.Context, id string) (model.Ticket, error) {
	tickets, err := dao.store.Tickets.Load()
	if err != nil {
		return model.Ticket{}, err
	}

	i := slices.IndexFunc(tickets, func(t model.Ticket) bool { return t.ID == id })
	if i < 0 {
		return model.Ticket{}, model.NewError("ticket", model.ErrNotFound)
	}

	return tickets[i], nil
}

type InsertTicketDTO struct {
	Title       string
	Description string
	Status      model.Status
	Priority    string
	Owner       string
}

// Insert creates a ticket with a fresh id and prepends it to the collection.
// A blank status defaults to open and a blank priority to medium.
func (dao *TicketDAO) Insert(ctx context.Context, dto InsertTicketDTO) (model.Ticket, error) {
	now := time.Now().UTC()

	ticket := model.Ticket{
		ID:          "t_" + uuid.NewString(),
		Title:       dto.Title,
		Description: dto.Description,
		Status:      dto.Status,
		Priority:    dto.Priority,
		CreatedAt:   now,
		UpdatedAt:   now,
		Owner:       dto.Owner,
	}
	if ticket.Status == "" {
		ticket.Status = model.StatusOpen
	}
	if ticket.Priority == "" {
		ticket.Priority = model.DefaultPriority
	}

	err := dao.store.Tickets.Update(func(tickets []model.Ticket) ([]model.Ticket, error) {
		return append([]model.Ticket{ticket}, tickets...), nil
	})
	if err != nil {
		return model.Ticket{}, err
	}

	dao.Logger.Debug("ticket created", "id", ticket.ID, "owner", ticket.Owner)

	return ticket, nil
}

type UpdateTicketDTO struct {
	Title       *string
	Description *string
	Status      *model.Status
}

// Update merges the non-nil fields of dto into the stored ticket and
// refreshes its updated_at stamp. Unknown ids fail with model.ErrNotFound.
func (dao *TicketDAO) Update(ctx context.Context, id string, dto UpdateTicketDTO) (model.Ticket, error) {
	var updated model.Ticket

	err := dao.store.Tickets.Update(func(tickets []model.Ticket) ([]model.Ticket, error) {
		i := slices.IndexFunc(tickets, func(t model.Ticket) bool { return t.ID == id })
		if i < 0 {
			return tickets, model.NewError("ticket", model.ErrNotFound)
		}

		ticket := tickets[i]
		if dto.Title != nil {
			ticket.Title = *dto.Title
		}
		if dto.Description != nil {
			ticket.Description = *dto.Description
		}
		if dto.Status != nil {
			ticket.Status = *dto.Status
		}
		ticket.UpdatedAt = time.Now().UTC()

		tickets[i] = ticket
		updated = ticket

		return tickets, nil
	})
	if err != nil {
		return model.Ticket{}, err
	}

	dao.Logger.Debug("ticket updated", "id", updated.ID)

	return updated, nil
}

// Delete removes the matching ticket if present. Deleting an unknown id
// persists the collection unchanged and still succeeds.
func (dao *TicketDAO) Delete(ctx context.Context, id string) error {
	return dao.store.Tickets.Update(func(tickets []model.Ticket) ([]model.Ticket, error) {
		tickets = slices.DeleteFunc(tickets, func(t model.Ticket) bool { return t.ID == id })
		return tickets, nil
	})
}
