package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/quotebook/quotebook-server/internal/auth"
	"github.com/quotebook/quotebook-server/internal/domain"
	domainerrors "github.com/quotebook/quotebook-server/internal/errors"
	"github.com/quotebook/quotebook-server/internal/store"
)

const msgUsernameTaken = "A user already exists with that username"

// CredentialStore owns user records and their password hashes.
type CredentialStore struct {
	users  store.UserStore
	logger *slog.Logger
}

// NewCredentialStore creates a credential store over users.
func NewCredentialStore(users store.UserStore, logger *slog.Logger) *CredentialStore {
	return &CredentialStore{users: users, logger: logger}
}

// FindByUsername returns the user with username, or nil if there is none.
func (c *CredentialStore) FindByUsername(ctx context.Context, username string) (*domain.User, error) {
	u, err := c.users.GetUserByUsername(ctx, username)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find user: %w", err)
	}
	return u, nil
}

// Create hashes password and stores a new user.
// A taken username yields an AlreadyExists error, even when two signups race.
func (c *CredentialStore) Create(ctx context.Context, username, password string) (*domain.User, error) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &domain.User{Username: username, PasswordHash: hash}
	if err := c.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists(msgUsernameTaken)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	if c.logger != nil {
		c.logger.Info("user created", "user_id", u.ID, "username", u.Username)
	}
	return u, nil
}

// VerifyPassword reports whether password matches hash.
func (c *CredentialStore) VerifyPassword(password, hash string) bool {
	return auth.VerifyPassword(password, hash)
}
