package integrity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"

	"github.com/ludora/content-service/domain/content"
	"github.com/ludora/content-service/domain/relations"
	"github.com/ludora/content-service/domain/tags"
	"github.com/ludora/content-service/pkg/apperror"
	"github.com/ludora/content-service/pkg/logger"
	"github.com/ludora/content-service/pkg/tracing"
)

const (
	kindEdge          = "edge"
	kindTagAssignment = "tag_assignment"
)

// Guard coordinates safe deletion of content items. Every decision is
// made against a fresh read of the stores.
type Guard struct {
	edges   relations.EdgeStore
	tags    tags.Store
	catalog *content.Catalog
	log     *slog.Logger
}

// NewGuard creates a new integrity guard.
func NewGuard(edges relations.EdgeStore, tagStore tags.Store, catalog *content.Catalog, log *slog.Logger) *Guard {
	return &Guard{
		edges:   edges,
		tags:    tagStore,
		catalog: catalog,
		log:     log.With(logger.Scope("integrity.guard")),
	}
}

// HasProtectedReferences reports whether a game uses ref. A failed read is
// returned as an error; it never counts as unprotected.
func (g *Guard) HasProtectedReferences(ctx context.Context, ref content.Ref) (*ProtectedCheck, error) {
	check, _, err := g.check(ctx, ref)
	return check, err
}

func (g *Guard) check(ctx context.Context, ref content.Ref) (*ProtectedCheck, []*relations.Edge, error) {
	edges, err := g.edges.FindTouching(ctx, ref)
	if err != nil {
		return nil, nil, apperror.ErrDatabase.
			WithMessage("could not verify whether the item is used by a game").
			WithInternal(err)
	}

	check := &ProtectedCheck{Ref: ref}
	for _, e := range edges {
		if e.Counterpart(ref).Type == content.VariantGame {
			check.References++
		}
	}
	check.Protected = check.References > 0
	return check, edges, nil
}

func protectedError(check *ProtectedCheck) error {
	return apperror.ErrProtectedReferences.
		WithMessage(fmt.Sprintf("%s is used by %d game(s) and cannot be deleted", check.Ref, check.References)).
		WithDetails(map[string]any{"references": check.References})
}

// CascadeDelete removes every edge and tag assignment of ref, one by one,
// unless a game uses ref, in which case nothing is removed. Per-item
// failures are recorded and the rest continue.
func (g *Guard) CascadeDelete(ctx context.Context, ref content.Ref) (*CascadeResult, error) {
	check, edges, err := g.check(ctx, ref)
	if err != nil {
		return nil, err
	}
	if check.Protected {
		return nil, protectedError(check)
	}
	return g.cascade(ctx, ref, edges), nil
}

func (g *Guard) cascade(ctx context.Context, ref content.Ref, edges []*relations.Edge) *CascadeResult {
	ctx, span := tracing.Start(ctx, "integrity.cascade",
		attribute.String("ref", ref.String()),
		attribute.Int("edges", len(edges)),
	)
	defer span.End()

	res := &CascadeResult{}
	fail := func(kind, id string, err error) {
		cascadeFailuresTotal.WithLabelValues(kind).Inc()
		res.Failures = append(res.Failures, CascadeFailure{Kind: kind, ID: id, Error: err.Error()})
		g.log.Error("cascade step failed",
			slog.String("ref", ref.String()),
			slog.String("kind", kind),
			slog.String("id", id),
			logger.Error(err),
		)
	}

	for _, e := range edges {
		if err := g.edges.Delete(ctx, e.ID); err != nil {
			res.EdgesFailed++
			fail(kindEdge, e.ID, err)
			continue
		}
		res.EdgesRemoved++
	}

	assignments, err := g.tags.FindAssignments(ctx, tags.ForRef(ref))
	if err != nil {
		// Unknown count; one failure keeps the entity from being deleted.
		res.TagsFailed++
		fail(kindTagAssignment, "", err)
		return res
	}
	for _, a := range assignments {
		if err := g.tags.DeleteAssignment(ctx, a.ID); err != nil {
			res.TagsFailed++
			fail(kindTagAssignment, a.ID, err)
			continue
		}
		res.TagsRemoved++
	}

	span.SetAttributes(
		attribute.Int("edges_removed", res.EdgesRemoved),
		attribute.Int("tags_removed", res.TagsRemoved),
	)
	return res
}

// DeleteEntity cascades and then deletes ref through the catalog. The
// entity is only deleted when the cascade left nothing behind; otherwise a
// cascade_incomplete error carries the counts so the delete can be retried.
func (g *Guard) DeleteEntity(ctx context.Context, ref content.Ref) (_ *DeleteResult, err error) {
	defer func() { deletionsTotal.WithLabelValues(outcomeOf(err)).Inc() }()

	entry, ok := g.catalog.Lookup(ref.Type)
	if !ok {
		return nil, apperror.NewValidation(fmt.Sprintf("%s items cannot be deleted here", ref.Type))
	}

	result := &DeleteResult{Ref: ref}
	check, edges, err := g.check(ctx, ref)
	if err != nil {
		return result, err
	}
	result.Check = check
	if check.Protected {
		return result, protectedError(check)
	}

	result.Cascade = g.cascade(ctx, ref, edges)
	if !result.Cascade.Complete() {
		return result, apperror.ErrCascadeIncomplete.WithDetails(result.Cascade.details())
	}

	if err = entry.Accessor.Delete(ctx, ref.ID); err != nil {
		return result, err
	}
	result.Deleted = true

	g.log.Info("content deleted",
		slog.String("ref", ref.String()),
		slog.Int("edges_removed", result.Cascade.EdgesRemoved),
		slog.Int("tags_removed", result.Cascade.TagsRemoved),
	)
	return result, nil
}

// BulkDelete deletes each id of variant in turn. Every id lands in exactly
// one of deleted, skipped (used by a game) or errors.
func (g *Guard) BulkDelete(ctx context.Context, variant content.Variant, ids []string) *BulkDeleteResult {
	ctx, span := tracing.Start(ctx, "integrity.bulk_delete",
		attribute.String("type", string(variant)),
		attribute.Int("candidates", len(ids)),
	)
	defer span.End()

	out := &BulkDeleteResult{
		Deleted: []string{},
		Skipped: []SkippedItem{},
		Errors:  []FailedItem{},
	}

	for _, id := range ids {
		res, err := g.DeleteEntity(ctx, content.Ref{Type: variant, ID: id})
		switch {
		case err == nil:
			out.Deleted = append(out.Deleted, id)
		case errors.Is(err, apperror.ErrProtectedReferences) && res != nil && res.Check != nil:
			out.Skipped = append(out.Skipped, SkippedItem{ID: id, References: res.Check.References})
		default:
			out.Errors = append(out.Errors, FailedItem{ID: id, Error: err.Error()})
		}
	}

	g.log.Info("bulk delete finished",
		slog.String("type", string(variant)),
		slog.Int("deleted", len(out.Deleted)),
		slog.Int("skipped", len(out.Skipped)),
		slog.Int("errors", len(out.Errors)),
	)
	return out
}

func outcomeOf(err error) string {
	switch {
	case err == nil:
		return "deleted"
	case errors.Is(err, apperror.ErrProtectedReferences):
		return "skipped"
	default:
		return "error"
	}
}
