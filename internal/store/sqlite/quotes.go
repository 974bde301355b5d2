package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/quotebook/quotebook-server/internal/domain"
	"github.com/quotebook/quotebook-server/internal/store"
)

const quoteColumns = `id, text, user_id, created_at`

func scanQuote(scanner interface{ Scan(dest ...any) error }) (domain.Quote, error) {
	var (
		q         domain.Quote
		createdAt string
	)
	if err := scanner.Scan(&q.ID, &q.Text, &q.UserID, &createdAt); err != nil {
		return q, err
	}

	var err error
	q.CreatedAt, err = parseTime(createdAt)
	return q, err
}

// CreateQuote inserts q and links it to tagIDs. Every id must name an
// existing tag; no tags are created here.
func (r *repo) CreateQuote(ctx context.Context, q *domain.Quote, tagIDs []int64) error {
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now()
	}

	res, err := r.q.ExecContext(ctx,
		`INSERT INTO quotes (text, user_id, created_at) VALUES (?, ?, ?)`,
		q.Text, q.UserID, formatTime(q.CreatedAt),
	)
	if err != nil {
		return store.Wrap("create quote", err)
	}
	if q.ID, err = res.LastInsertId(); err != nil {
		return store.Wrap("create quote: last insert id", err)
	}

	for _, tagID := range slices.Compact(slices.Sorted(slices.Values(tagIDs))) {
		if _, err := r.q.ExecContext(ctx,
			`INSERT INTO quote_tags (quote_id, tag_id) VALUES (?, ?)`,
			q.ID, tagID,
		); err != nil {
			return store.Wrap(fmt.Sprintf("link quote %d to tag %d", q.ID, tagID), err)
		}
	}

	quotes := []domain.Quote{*q}
	if err := r.attachTags(ctx, quotes); err != nil {
		return err
	}
	q.Tags = quotes[0].Tags
	return nil
}

// GetQuote returns the quote with its tags.
func (r *repo) GetQuote(ctx context.Context, id int64) (*domain.Quote, error) {
	row := r.q.QueryRowContext(ctx, `SELECT `+quoteColumns+` FROM quotes WHERE id = ?`, id)
	q, err := scanQuote(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, store.Wrap("get quote", err)
	}

	quotes := []domain.Quote{q}
	if err := r.attachTags(ctx, quotes); err != nil {
		return nil, err
	}
	return &quotes[0], nil
}

// ListQuotesByOwner returns the owner's quotes in creation order.
func (r *repo) ListQuotesByOwner(ctx context.Context, ownerID int64) ([]domain.Quote, error) {
	rows, err := r.q.QueryContext(ctx,
		`SELECT `+quoteColumns+` FROM quotes WHERE user_id = ? ORDER BY id`,
		ownerID,
	)
	if err != nil {
		return nil, store.Wrap("list quotes", err)
	}

	quotes := []domain.Quote{}
	for rows.Next() {
		q, err := scanQuote(rows)
		if err != nil {
			rows.Close()
			return nil, store.Wrap("list quotes: scan", err)
		}
		quotes = append(quotes, q)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, store.Wrap("list quotes", err)
	}

	if err := r.attachTags(ctx, quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

// DeleteQuote removes a quote and its tag links. The tags themselves are left
// for DeleteOrphanedTags.
func (r *repo) DeleteQuote(ctx context.Context, id int64) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM quotes WHERE id = ?`, id)
	if err != nil {
		return store.Wrap("delete quote", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return store.Wrap("delete quote: rows affected", err)
	}
	if n == 0 {
		return store.ErrNotFound
	}
	return nil
}

// attachTags loads the tags of every quote in one query per chunk.
func (r *repo) attachTags(ctx context.Context, quotes []domain.Quote) error {
	if len(quotes) == 0 {
		return nil
	}

	index := make(map[int64]int, len(quotes))
	ids := make([]int64, len(quotes))
	for i := range quotes {
		quotes[i].Tags = []domain.Tag{}
		index[quotes[i].ID] = i
		ids[i] = quotes[i].ID
	}

	err := inChunks(ids, maxParamsPerStatement, func(chunk []int64) error {
		rows, err := r.q.QueryContext(ctx,
			`SELECT qt.quote_id, t.id, t.name, t.color
			 FROM quote_tags qt
			 JOIN tags t ON t.id = qt.tag_id
			 WHERE qt.quote_id IN (`+placeholders(len(chunk))+`)
			 ORDER BY qt.quote_id, t.id`,
			int64Args(chunk)...,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var (
				quoteID int64
				t       domain.Tag
			)
			if err := rows.Scan(&quoteID, &t.ID, &t.Name, &t.Color); err != nil {
				return err
			}
			i := index[quoteID]
			quotes[i].Tags = append(quotes[i].Tags, t)
		}
		return rows.Err()
	})
	return store.Wrap("load quote tags", err)
}
