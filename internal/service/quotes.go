package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/quotebook/quotebook-server/internal/domain"
	domainerrors "github.com/quotebook/quotebook-server/internal/errors"
	"github.com/quotebook/quotebook-server/internal/store"
	"github.com/quotebook/quotebook-server/internal/validation"
)

const (
	msgQuoteNotFound = "Quote not found."
	msgNotQuoteOwner = "You are not allowed to delete this quote."
)

// CreateQuoteRequest is the input to QuoteService.Create.
type CreateQuoteRequest struct {
	Text string   `json:"text" validate:"required,max=10000"`
	Tags []string `json:"tags,omitempty" validate:"max=50,dive,required,max=64"`
}

// QuoteService manages quotes on behalf of their owners.
type QuoteService struct {
	store     store.Store
	tags      *TagReconciler
	validator *validation.Validator
	logger    *slog.Logger
}

// NewQuoteService creates a new quote service.
func NewQuoteService(s store.Store, tags *TagReconciler, logger *slog.Logger) *QuoteService {
	return &QuoteService{
		store:     s,
		tags:      tags,
		validator: validation.New(),
		logger:    logger,
	}
}

// Create stores a new quote for ownerID, creating any tags it names.
// Tag upsert and quote insert commit together.
func (s *QuoteService) Create(ctx context.Context, ownerID int64, req CreateQuoteRequest) (*domain.Quote, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	q := &domain.Quote{Text: req.Text, UserID: ownerID}

	err := s.store.WithTx(ctx, func(tx store.Tx) error {
		tagIDs, err := s.tags.UpsertTagsByName(ctx, tx, req.Tags)
		if err != nil {
			return err
		}
		return tx.CreateQuote(ctx, q, tagIDs)
	})
	if err != nil {
		return nil, fmt.Errorf("create quote: %w", err)
	}

	if s.logger != nil {
		s.logger.Info("quote created", "quote_id", q.ID, "user_id", ownerID, "tags", len(q.Tags))
	}
	return q, nil
}

// List returns the owner's quotes with their tags, oldest first.
func (s *QuoteService) List(ctx context.Context, ownerID int64) ([]domain.Quote, error) {
	quotes, err := s.store.ListQuotesByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("list quotes: %w", err)
	}
	return quotes, nil
}

// Delete removes quoteID if userID owns it and returns the deleted quote.
// Tags left without quotes are removed in the same transaction.
func (s *QuoteService) Delete(ctx context.Context, userID, quoteID int64) (*domain.Quote, error) {
	var deleted *domain.Quote

	err := s.store.WithTx(ctx, func(tx store.Tx) error {
		q, err := tx.GetQuote(ctx, quoteID)
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound(msgQuoteNotFound)
		}
		if err != nil {
			return err
		}

		if !q.OwnedBy(userID) {
			return domainerrors.Forbidden(msgNotQuoteOwner)
		}

		if err := tx.DeleteQuote(ctx, q.ID); err != nil {
			return err
		}

		if len(q.Tags) > 0 {
			if _, err := s.tags.DeleteOrphanedTags(ctx, tx, domain.TagIDs(q.Tags)); err != nil {
				return err
			}
		}

		deleted = q
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("delete quote %d: %w", quoteID, err)
	}

	if s.logger != nil {
		s.logger.Info("quote deleted", "quote_id", quoteID, "user_id", userID)
	}
	return deleted, nil
}
