package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/quotebook/quotebook-server/internal/color"
	"github.com/quotebook/quotebook-server/internal/domain"
	"github.com/quotebook/quotebook-server/internal/metrics"
	"github.com/quotebook/quotebook-server/internal/store"
	"github.com/quotebook/quotebook-server/internal/util"
)

// TagReconciler maintains the global tag set: tags are created on first use by
// name and removed once no quote references them.
//
// Both operations take the caller's transaction. Run inside store.WithTx they
// hold SQLite's single write lock, so two upserts never both create a name; the
// UNIQUE(name) constraint and ON CONFLICT DO NOTHING back this up.
type TagReconciler struct {
	newColor func() string
	metrics  *metrics.Metrics
	logger   *slog.Logger
}

// NewTagReconciler creates a reconciler that colors new tags with color.RandomLight.
func NewTagReconciler(m *metrics.Metrics, logger *slog.Logger) *TagReconciler {
	return &TagReconciler{
		newColor: color.RandomLight,
		metrics:  m,
		logger:   logger,
	}
}

// UpsertTagsByName returns one tag id per distinct normalized name, creating
// the tags that do not exist yet. Ids are in first-seen name order.
func (r *TagReconciler) UpsertTagsByName(ctx context.Context, tx store.TagStore, names []string) ([]int64, error) {
	names = util.NormalizeTagNames(names)
	if len(names) == 0 {
		return []int64{}, nil
	}

	existing, err := tx.FindTagsByName(ctx, names)
	if err != nil {
		return nil, fmt.Errorf("find existing tags: %w", err)
	}

	idByName := make(map[string]int64, len(names))
	for _, t := range existing {
		idByName[t.Name] = t.ID
	}

	var (
		missing      []domain.Tag
		missingNames []string
	)
	for _, name := range names {
		if _, ok := idByName[name]; !ok {
			missing = append(missing, domain.Tag{Name: name, Color: r.newColor()})
			missingNames = append(missingNames, name)
		}
	}

	if len(missing) > 0 {
		if err := tx.CreateTags(ctx, missing); err != nil {
			return nil, fmt.Errorf("create tags: %w", err)
		}

		created, err := tx.FindTagsByName(ctx, missingNames)
		if err != nil {
			return nil, fmt.Errorf("find created tags: %w", err)
		}
		for _, t := range created {
			idByName[t.Name] = t.ID
		}

		r.metrics.RecordTagsCreated(len(created))
		if r.logger != nil {
			r.logger.Debug("tags created", "count", len(created))
		}
	}

	ids := make([]int64, 0, len(names))
	for _, name := range names {
		id, ok := idByName[name]
		if !ok {
			return nil, fmt.Errorf("tag %q missing after upsert", name)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// DeleteOrphanedTags removes the candidates that no quote references any more.
// It must run in the same transaction as the deletion that produced candidateIDs.
func (r *TagReconciler) DeleteOrphanedTags(ctx context.Context, tx store.TagStore, candidateIDs []int64) (int64, error) {
	if len(candidateIDs) == 0 {
		return 0, nil
	}

	deleted, err := tx.DeleteOrphanedTags(ctx, candidateIDs)
	if err != nil {
		return 0, fmt.Errorf("delete orphaned tags: %w", err)
	}

	r.metrics.RecordTagsOrphaned(deleted)
	if r.logger != nil && deleted > 0 {
		r.logger.Debug("orphaned tags deleted", "count", deleted)
	}
	return deleted, nil
}
