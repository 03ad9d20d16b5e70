// Package storage implements the data access layer over three file-backed
// JSON collections: users and tickets as sequences, sessions as a mapping
// keyed by token.
package storage

import (
	"os"
	"path/filepath"

	"github.com/HackhimTech/ticketapp/internal/jsonstore"
	"github.com/HackhimTech/ticketapp/internal/model"
)

const (
	_usersFile    = "users.json"
	_sessionsFile = "sessions.json"
	_ticketsFile  = "tickets.json"
)

type Storage struct {
	Users    *jsonstore.Collection[[]model.User]
	Sessions *jsonstore.Collection[map[string]model.Session]
	Tickets  *jsonstore.Collection[[]model.Ticket]
}

func New(dir string) (*Storage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	return &Storage{
		Users:    jsonstore.Open[[]model.User](filepath.Join(dir, _usersFile)),
		Sessions: jsonstore.Open[map[string]model.Session](filepath.Join(dir, _sessionsFile)),
		Tickets:  jsonstore.Open[[]model.Ticket](filepath.Join(dir, _ticketsFile)),
	}, nil
}
