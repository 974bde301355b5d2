package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/quotebook/quotebook-server/internal/domain"
	"github.com/quotebook/quotebook-server/internal/store"
)

const tagColumns = `id, name, color`

func scanTag(scanner interface{ Scan(dest ...any) error }) (domain.Tag, error) {
	var t domain.Tag
	err := scanner.Scan(&t.ID, &t.Name, &t.Color)
	return t, err
}

// FindTagsByName returns the existing tags whose name is in names.
func (r *repo) FindTagsByName(ctx context.Context, names []string) ([]domain.Tag, error) {
	tags := []domain.Tag{}

	err := inChunks(names, maxParamsPerStatement, func(chunk []string) error {
		args := make([]any, len(chunk))
		for i, n := range chunk {
			args[i] = n
		}

		rows, err := r.q.QueryContext(ctx,
			`SELECT `+tagColumns+` FROM tags WHERE name IN (`+placeholders(len(chunk))+`) ORDER BY id`,
			args...,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			t, err := scanTag(rows)
			if err != nil {
				return fmt.Errorf("scan tag: %w", err)
			}
			tags = append(tags, t)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, store.Wrap("find tags by name", err)
	}
	return tags, nil
}

// CreateTags inserts tags in bulk. A name that already exists is left as is,
// so a concurrent creator of the same name never fails the batch.
func (r *repo) CreateTags(ctx context.Context, tags []domain.Tag) error {
	// Two parameters per row.
	err := inChunks(tags, maxParamsPerStatement/2, func(chunk []domain.Tag) error {
		values := make([]string, len(chunk))
		args := make([]any, 0, len(chunk)*2)
		for i, t := range chunk {
			values[i] = "(?, ?)"
			args = append(args, t.Name, t.Color)
		}

		_, err := r.q.ExecContext(ctx,
			`INSERT INTO tags (name, color) VALUES `+strings.Join(values, ", ")+` ON CONFLICT(name) DO NOTHING`,
			args...,
		)
		return err
	})
	return store.Wrap("create tags", err)
}

// DeleteOrphanedTags removes the tags among ids that have no linked quotes.
func (r *repo) DeleteOrphanedTags(ctx context.Context, ids []int64) (int64, error) {
	var deleted int64

	err := inChunks(ids, maxParamsPerStatement, func(chunk []int64) error {
		res, err := r.q.ExecContext(ctx,
			`DELETE FROM tags
			 WHERE id IN (`+placeholders(len(chunk))+`)
			   AND NOT EXISTS (SELECT 1 FROM quote_tags WHERE quote_tags.tag_id = tags.id)`,
			int64Args(chunk)...,
		)
		if err != nil {
			return err
		}
		n, err := res.RowsAffected()
		if err != nil {
			return err
		}
		deleted += n
		return nil
	})
	if err != nil {
		return 0, store.Wrap("delete orphaned tags", err)
	}
	return deleted, nil
}

// ListTags returns every tag ordered by name.
func (r *repo) ListTags(ctx context.Context) ([]domain.Tag, error) {
	rows, err := r.q.QueryContext(ctx, `SELECT `+tagColumns+` FROM tags ORDER BY name`)
	if err != nil {
		return nil, store.Wrap("list tags", err)
	}
	defer rows.Close()

	tags := []domain.Tag{}
	for rows.Next() {
		t, err := scanTag(rows)
		if err != nil {
			return nil, store.Wrap("list tags: scan", err)
		}
		tags = append(tags, t)
	}
	if err := rows.Err(); err != nil {
		return nil, store.Wrap("list tags", err)
	}
	return tags, nil
}
