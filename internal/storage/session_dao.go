package storage

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"log/slog"
	"time"

	"github.com/HackhimTech/ticketapp/internal/model"
)

// Sessions expire a fixed 24 hours after creation; activity does not renew
// them.
const _sessionTTL = 24 * time.Hour

const _tokenBytes = 16

type SessionDAO struct {
	Logger *slog.Logger
	store  *Storage
}

func NewSessionDAO(logger *slog.Logger, store *Storage) *SessionDAO {
	return &SessionDAO{
		Logger: logger.With("dao", "session"),
		store:  store,
	}
}

// Create issues a new session for the user, keyed by an unguessable random
// token. The stored session embeds only the id, username and name of the
// user, never the password.
func (dao *SessionDAO) Create(ctx context.Context, user model.User) (model.Session, error) {
	token, err := generateToken()
	if err != nil {
		return model.Session{}, err
	}

	now := time.Now().UTC()
	session := model.Session{
		Token: token,
		User: model.SessionUser{
			ID:       user.ID,
			Username: user.Username,
			Name:     user.Name,
		},
		CreatedAt: now,
		ExpiresAt: now.Add(_sessionTTL),
	}

	err = dao.store.Sessions.Update(func(sessions map[string]model.Session) (map[string]model.Session, error) {
		if sessions == nil {
			sessions = make(map[string]model.Session)
		}
		sessions[token] = session
		return sessions, nil
	})
	if err != nil {
		return model.Session{}, err
	}

	dao.Logger.Debug("session created", "user", user.Username, "expiresAt", session.ExpiresAt)

	return session, nil
}

// Validate resolves a token to its session. Expired sessions are removed from
// the store as they are discovered and reported as model.ErrNotFound, the
// same as tokens that were never issued.
func (dao *SessionDAO) Validate(ctx context.Context, token string) (model.Session, error) {
	if token == "" {
		return model.Session{}, model.NewError("session", model.ErrNotFound)
	}

	var (
		session model.Session
		found   bool
		expired bool
	)

	err := dao.store.Sessions.View(func(sessions map[string]model.Session) error {
		session, found = sessions[token]
		return nil
	})
	if err != nil {
		return model.Session{}, err
	}

	if found && time.Now().After(session.ExpiresAt) {
		expired = true
		if err := dao.Destroy(ctx, token); err != nil {
			return model.Session{}, err
		}
	}

	if !found || expired {
		return model.Session{}, model.NewError("session", model.ErrNotFound)
	}

	return session, nil
}

// Destroy removes the session if present. Destroying an unknown token is a
// no-op, not an error.
func (dao *SessionDAO) Destroy(ctx context.Context, token string) error {
	return dao.store.Sessions.Update(func(sessions map[string]model.Session) (map[string]model.Session, error) {
		delete(sessions, token)
		return sessions, nil
	})
}

func generateToken() (string, error) {
	buf := make([]byte, _tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
