package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/quotebook/quotebook-server/internal/domain"
	"github.com/quotebook/quotebook-server/internal/store"
)

const userColumns = `id, username, password_hash, created_at`

func scanUser(scanner interface{ Scan(dest ...any) error }) (*domain.User, error) {
	var (
		u         domain.User
		createdAt string
	)
	if err := scanner.Scan(&u.ID, &u.Username, &u.PasswordHash, &createdAt); err != nil {
		return nil, err
	}

	var err error
	if u.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts a new user and assigns its ID.
// Returns store.ErrAlreadyExists if the username is taken.
func (r *repo) CreateUser(ctx context.Context, u *domain.User) error {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}

	res, err := r.q.ExecContext(ctx,
		`INSERT INTO users (username, password_hash, created_at) VALUES (?, ?, ?)`,
		u.Username, u.PasswordHash, formatTime(u.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists
		}
		return store.Wrap("create user", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return store.Wrap("create user: last insert id", err)
	}
	u.ID = id
	return nil
}

// GetUserByUsername returns the user with the exact username.
func (r *repo) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = ?`, username)
	u, err := scanUser(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, store.Wrap("get user by username", err)
	}
	return u, nil
}
