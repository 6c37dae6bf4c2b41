package relations

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/uptrace/bun"

	"github.com/ludora/content-service/domain/content"
	"github.com/ludora/content-service/pkg/apperror"
	"github.com/ludora/content-service/pkg/logger"
)

// EdgeFilter selects edges by any combination of endpoint fields.
// Empty fields match everything.
type EdgeFilter struct {
	SourceType content.Variant
	SourceID   string
	TargetType content.Variant
	TargetID   string
}

// EdgeStore is the persistence contract for relationship edges.
type EdgeStore interface {
	Get(ctx context.Context, id string) (*Edge, error)
	Find(ctx context.Context, filter EdgeFilter) ([]*Edge, error)
	// FindTouching returns every edge with ref at either end, each once.
	FindTouching(ctx context.Context, ref content.Ref) ([]*Edge, error)
	// FindPair returns the edges between a and b in either direction.
	FindPair(ctx context.Context, a, b content.Ref) ([]*Edge, error)
	Create(ctx context.Context, edge *Edge) error
	Update(ctx context.Context, edge *Edge) error
	Delete(ctx context.Context, id string) error
}

// Repository implements EdgeStore with bun.
type Repository struct {
	db  bun.IDB
	log *slog.Logger
}

var _ EdgeStore = (*Repository)(nil)

// NewRepository creates a new edge repository.
func NewRepository(db bun.IDB, log *slog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With(logger.Scope("relations.repo")),
	}
}

// Get returns one edge by id.
func (r *Repository) Get(ctx context.Context, id string) (*Edge, error) {
	edge := new(Edge)
	err := r.db.NewSelect().
		Model(edge).
		Where("cr.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NewNotFound("relationship", id)
		}
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return edge, nil
}

// Find returns edges matching filter, oldest first.
func (r *Repository) Find(ctx context.Context, filter EdgeFilter) ([]*Edge, error) {
	var edges []*Edge
	q := r.db.NewSelect().Model(&edges)

	if filter.SourceType != "" {
		q = q.Where("cr.source_type = ?", filter.SourceType)
	}
	if filter.SourceID != "" {
		q = q.Where("cr.source_id = ?", filter.SourceID)
	}
	if filter.TargetType != "" {
		q = q.Where("cr.target_type = ?", filter.TargetType)
	}
	if filter.TargetID != "" {
		q = q.Where("cr.target_id = ?", filter.TargetID)
	}

	if err := q.OrderExpr("cr.created_at ASC, cr.id ASC").Scan(ctx); err != nil {
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return edges, nil
}

// FindTouching runs the as-source and as-target reads and merges them.
func (r *Repository) FindTouching(ctx context.Context, ref content.Ref) ([]*Edge, error) {
	asSource, err := r.Find(ctx, EdgeFilter{SourceType: ref.Type, SourceID: ref.ID})
	if err != nil {
		return nil, err
	}
	asTarget, err := r.Find(ctx, EdgeFilter{TargetType: ref.Type, TargetID: ref.ID})
	if err != nil {
		return nil, err
	}
	return dedupe(asSource, asTarget), nil
}

// FindPair looks up a→b and b→a.
func (r *Repository) FindPair(ctx context.Context, a, b content.Ref) ([]*Edge, error) {
	forward, err := r.Find(ctx, EdgeFilter{SourceType: a.Type, SourceID: a.ID, TargetType: b.Type, TargetID: b.ID})
	if err != nil {
		return nil, err
	}
	backward, err := r.Find(ctx, EdgeFilter{SourceType: b.Type, SourceID: b.ID, TargetType: a.Type, TargetID: a.ID})
	if err != nil {
		return nil, err
	}
	return dedupe(forward, backward), nil
}

// Create inserts edge.
func (r *Repository) Create(ctx context.Context, edge *Edge) error {
	if _, err := r.db.NewInsert().Model(edge).Exec(ctx); err != nil {
		r.log.Error("failed to create relationship", logger.Error(err))
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

// Update persists the label set, approval and updated_at of edge.
func (r *Repository) Update(ctx context.Context, edge *Edge) error {
	res, err := r.db.NewUpdate().
		Model(edge).
		Column("relationship_types", "is_approved", "updated_at").
		WherePK().
		Exec(ctx)
	if err != nil {
		return apperror.ErrDatabase.WithInternal(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NewNotFound("relationship", edge.ID)
	}
	return nil
}

// Delete removes one edge. Deleting a missing edge is not_found.
func (r *Repository) Delete(ctx context.Context, id string) error {
	res, err := r.db.NewDelete().
		Model((*Edge)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return apperror.ErrDatabase.WithInternal(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NewNotFound("relationship", id)
	}
	return nil
}

// dedupe concatenates lists keeping the first occurrence of every id.
func dedupe(lists ...[]*Edge) []*Edge {
	seen := make(map[string]struct{})
	out := make([]*Edge, 0)
	for _, list := range lists {
		for _, e := range list {
			if _, ok := seen[e.ID]; ok {
				continue
			}
			seen[e.ID] = struct{}{}
			out = append(out, e)
		}
	}
	return out
}
