// Package store defines the persistence contracts used by quotebook services.
package store

import (
	"context"

	"github.com/quotebook/quotebook-server/internal/domain"
)

// UserStore persists user accounts.
type UserStore interface {
	// CreateUser inserts u and sets its ID. Returns ErrAlreadyExists when the
	// username is taken.
	CreateUser(ctx context.Context, u *domain.User) error
	GetUserByUsername(ctx context.Context, username string) (*domain.User, error)
}

// TagStore persists tags.
type TagStore interface {
	// FindTagsByName returns the tags whose name is in names, in id order.
	FindTagsByName(ctx context.Context, names []string) ([]domain.Tag, error)
	// CreateTags inserts tags, silently skipping names that already exist.
	CreateTags(ctx context.Context, tags []domain.Tag) error
	// DeleteOrphanedTags deletes the tags among ids that no quote references
	// and returns how many were removed.
	DeleteOrphanedTags(ctx context.Context, ids []int64) (int64, error)
	ListTags(ctx context.Context) ([]domain.Tag, error)
}

// QuoteStore persists quotes and their tag links.
type QuoteStore interface {
	// CreateQuote inserts q linked to the existing tags in tagIDs, then fills
	// in q.ID and q.Tags.
	CreateQuote(ctx context.Context, q *domain.Quote, tagIDs []int64) error
	GetQuote(ctx context.Context, id int64) (*domain.Quote, error)
	ListQuotesByOwner(ctx context.Context, ownerID int64) ([]domain.Quote, error)
	DeleteQuote(ctx context.Context, id int64) error
}

// Tx is the set of operations available inside a transaction.
type Tx interface {
	UserStore
	TagStore
	QuoteStore
}

// Store is a transactional quotebook store.
type Store interface {
	Tx

	// WithTx runs fn in a single serializable write transaction. The
	// transaction commits when fn returns nil and rolls back otherwise.
	WithTx(ctx context.Context, fn func(tx Tx) error) error
	Ping(ctx context.Context) error
	Close() error
}
