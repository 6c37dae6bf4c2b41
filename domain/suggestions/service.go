package suggestions

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ludora/content-service/domain/content"
	"github.com/ludora/content-service/domain/relations"
	"github.com/ludora/content-service/pkg/logger"
	"github.com/ludora/content-service/pkg/tracing"
)

// LinkedLister returns the visible edges of an item.
type LinkedLister interface {
	ListEdges(ctx context.Context, ref content.Ref) []*relations.Edge
}

// Service answers suggestion requests from the cached snapshot.
type Service struct {
	catalog *content.Catalog
	cache   *SnapshotCache
	engine  *Engine
	linked  LinkedLister
	log     *slog.Logger
}

// NewService creates a new suggestions service.
func NewService(catalog *content.Catalog, cache *SnapshotCache, engine *Engine, linked LinkedLister, log *slog.Logger) *Service {
	return &Service{
		catalog: catalog,
		cache:   cache,
		engine:  engine,
		linked:  linked,
		log:     log.With(logger.Scope("suggestions.svc")),
	}
}

// Suggest proposes relationship targets for ref, leaving out items it is
// already linked to in either direction, so a shared-root word stops being
// suggested once the pair is linked. Engine.Rank still returns it.
// Variants without heuristics get an empty list.
func (s *Service) Suggest(ctx context.Context, ref content.Ref, limit int) ([]Suggestion, error) {
	ctx, span := tracing.Start(ctx, "suggestions.suggest", attribute.String("ref", ref.String()))
	defer span.End()

	entry, ok := s.catalog.Lookup(ref.Type)
	if !ok {
		return []Suggestion{}, nil
	}
	source, err := entry.Accessor.Get(ctx, ref.ID)
	if err != nil {
		return nil, err
	}

	ranked := s.engine.Rank(s.cache.Get(ctx), source)

	linked := make(map[content.Ref]struct{})
	if s.linked != nil {
		for _, e := range s.linked.ListEdges(ctx, ref) {
			linked[e.Counterpart(ref)] = struct{}{}
		}
	}

	if limit <= 0 {
		limit = s.engine.limit
	}
	out := make([]Suggestion, 0, min(limit, len(ranked)))
	for _, sug := range ranked {
		if len(out) == limit {
			break
		}
		if _, ok := linked[sug.Target]; ok {
			continue
		}
		out = append(out, sug)
	}

	span.SetAttributes(attribute.Int("suggestions", len(out)))
	return out, nil
}

// Refresh rebuilds the snapshot now.
func (s *Service) Refresh(ctx context.Context) *Snapshot {
	return s.cache.Refresh(ctx)
}

// RefreshTask is the scheduler entry point.
func (s *Service) RefreshTask(ctx context.Context) error {
	snap := s.Refresh(ctx)
	s.log.Debug("scheduled snapshot refresh",
		slog.Int("words", len(snap.Words)),
		slog.Int("words_en", len(snap.WordsEN)),
	)
	return ctx.Err()
}
