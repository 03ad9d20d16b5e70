package storage

import (
	"context"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/exp/slices"

	"github.com/HackhimTech/ticketapp/internal/model"
)

type UserDAO struct {
	Logger *slog.Logger
	store  *Storage
}

func NewUserDAO(logger *slog.Logger, store *Storage) *UserDAO {
	return &UserDAO{
		Logger: logger.With("dao", "user"),
		store:  store,
	}
}

// GetByCredentials returns the first user whose username and password both
// match exactly. Passwords are stored and compared in plain text; see
// DESIGN.md.
func (dao *UserDAO) GetByCredentials(ctx context.Context, username, password string) (model.User, error) {
	logger := dao.Logger.With("query", "getByCredentials")

	users, err := dao.store.Users.Load()
	if err != nil {
		logger.Warn("failed to load users", "error", err)
		return model.User{}, err
	}

	for _, user := range users {
		if user.Username == username && user.Password == password {
			return user, nil
		}
	}

	logger.Debug("no user matched credentials", "username", username)

	return model.User{}, model.NewError("user", model.ErrNotFound)
}

type InsertUserDTO struct {
	Username string
	Password string
	Name     string
}

// Insert appends a new user with a freshly generated id. The username is the
// identity key: inserting a taken username fails with model.ErrExists.
func (dao *UserDAO) Insert(ctx context.Context, dto InsertUserDTO) (model.User, error) {
	logger := dao.Logger.With("query", "insert")

	var user model.User
	err := dao.store.Users.Update(func(users []model.User) ([]model.User, error) {
		taken := slices.ContainsFunc(users, func(u model.User) bool {
			return u.Username == dto.Username
		})
		if taken {
			return users, model.NewError("user", model.ErrExists)
		}

		user = model.User{
			ID:       "user_" + uuid.NewString(),
			Username: dto.Username,
			Password: dto.Password,
			Name:     dto.Name,
		}

		return append(users, user), nil
	})
	if err != nil {
		return model.User{}, err
	}

	logger.Debug("user created", "id", user.ID, "username", user.Username)

	return user, nil
}
