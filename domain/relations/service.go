package relations

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/ludora/content-service/domain/content"
	"github.com/ludora/content-service/pkg/apperror"
	"github.com/ludora/content-service/pkg/logger"
	"github.com/ludora/content-service/pkg/tracing"
)

// Service holds the relationship graph rules: canonical single edge per
// pair, label merging and matrix validation.
type Service struct {
	store   EdgeStore
	catalog *content.Catalog
	log     *slog.Logger
	now     func() time.Time
}

// NewService creates a new relations service.
func NewService(store EdgeStore, catalog *content.Catalog, log *slog.Logger) *Service {
	return &Service{
		store:   store,
		catalog: catalog,
		log:     log.With(logger.Scope("relations.svc")),
		now:     func() time.Time { return time.Now().UTC() },
	}
}

// ListEdges returns the edges touching ref, without game edges, each once.
// A failed read is logged and served as no edges.
func (s *Service) ListEdges(ctx context.Context, ref content.Ref) []*Edge {
	edges, err := s.store.FindTouching(ctx, ref)
	if err != nil {
		edgeReadFailuresTotal.Inc()
		s.log.Warn("failed to list relationships",
			slog.String("ref", ref.String()),
			logger.Error(err),
		)
		return []*Edge{}
	}

	visible := make([]*Edge, 0, len(edges))
	for _, e := range edges {
		if e.TouchesGame() {
			continue
		}
		visible = append(visible, e)
	}
	return dedupe(visible)
}

// ListEdgeViews is ListEdges with each counterpart resolved for display.
func (s *Service) ListEdgeViews(ctx context.Context, ref content.Ref) []EdgeResponse {
	edges := s.ListEdges(ctx, ref)
	out := make([]EdgeResponse, 0, len(edges))
	for _, e := range edges {
		other := e.Counterpart(ref)
		out = append(out, EdgeResponse{Edge: e, Counterpart: other, Display: s.display(ctx, other)})
	}
	return out
}

func (s *Service) display(ctx context.Context, ref content.Ref) string {
	if s.catalog == nil {
		return ""
	}
	entry, ok := s.catalog.Lookup(ref.Type)
	if !ok {
		return ""
	}
	e, err := entry.Accessor.Get(ctx, ref.ID)
	if err != nil {
		return ""
	}
	return s.catalog.Display(e)
}

// GetEdge returns one edge by id.
func (s *Service) GetEdge(ctx context.Context, id string) (*Edge, error) {
	return s.store.Get(ctx, id)
}

// UpsertEdge links ref to target with labels. An existing edge between the
// pair, in either direction, is extended instead of duplicated.
func (s *Service) UpsertEdge(ctx context.Context, actor string, ref, target content.Ref, labels LabelSet) (*UpsertResult, error) {
	ctx, span := tracing.Start(ctx, "relations.upsert_edge",
		attribute.String("source", ref.String()),
		attribute.String("target", target.String()),
	)
	defer span.End()

	if err := validatePair(ref, target, labels); err != nil {
		upsertsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	existing, err := s.store.FindPair(ctx, ref, target)
	if err != nil {
		tracing.RecordError(span, err)
		upsertsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	if len(existing) > 0 {
		if len(existing) > 1 {
			s.log.Warn("duplicate relationships for pair",
				slog.String("source", ref.String()),
				slog.String("target", target.String()),
				slog.Int("count", len(existing)),
			)
		}
		result, err := s.merge(ctx, existing[0], labels)
		if err != nil {
			tracing.RecordError(span, err)
			upsertsTotal.WithLabelValues("failed").Inc()
			return nil, err
		}
		upsertsTotal.WithLabelValues(string(result.Outcome)).Inc()
		return result, nil
	}

	now := s.now()
	edge := &Edge{
		ID:         uuid.NewString(),
		SourceType: ref.Type,
		SourceID:   ref.ID,
		TargetType: target.Type,
		TargetID:   target.ID,
		Types:      NewLabelSet(labels...),
		Provenance: content.ProvenanceManual,
		Approved:   true,
		CreatedBy:  actor,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.store.Create(ctx, edge); err != nil {
		tracing.RecordError(span, err)
		upsertsTotal.WithLabelValues("failed").Inc()
		return nil, err
	}

	upsertsTotal.WithLabelValues(string(OutcomeCreated)).Inc()
	s.log.Debug("relationship created",
		slog.String("id", edge.ID),
		slog.Any("types", edge.Types.Strings()),
	)
	return &UpsertResult{Outcome: OutcomeCreated, Edge: edge}, nil
}

func (s *Service) merge(ctx context.Context, edge *Edge, labels LabelSet) (*UpsertResult, error) {
	union := edge.Types.Union(labels)
	if union.Equal(edge.Types) {
		return &UpsertResult{Outcome: OutcomeUnchanged, Edge: edge}, nil
	}

	edge.Types = union
	edge.UpdatedAt = s.now()
	if err := s.store.Update(ctx, edge); err != nil {
		return nil, err
	}
	return &UpsertResult{Outcome: OutcomeMerged, Edge: edge}, nil
}

func validatePair(ref, target content.Ref, labels LabelSet) error {
	if len(labels) == 0 {
		return apperror.NewValidation("at least one relationship type is required")
	}
	if ref.ID == "" || target.ID == "" {
		return apperror.NewValidation("both items must be identified")
	}
	if ref.Equal(target) {
		return apperror.NewValidation("an item cannot be linked to itself")
	}
	if ref.Type == content.VariantGame || target.Type == content.VariantGame {
		return apperror.NewValidation("game relationships cannot be edited here")
	}

	allowed := AllowedTypes(ref.Type, target.Type)
	if len(allowed) == 0 {
		return apperror.ErrIncompatibleTypes.
			WithMessage(fmt.Sprintf("%s cannot be linked to %s", ref.Type, target.Type)).
			WithDetails(map[string]any{"source": ref.Type, "target": target.Type})
	}
	if extra := labels.Difference(allowed); len(extra) > 0 {
		return apperror.ErrIncompatibleTypes.
			WithMessage(fmt.Sprintf("%v not allowed between %s and %s", extra.Strings(), ref.Type, target.Type)).
			WithDetails(map[string]any{
				"source":      ref.Type,
				"target":      target.Type,
				"allowed":     allowed.Strings(),
				"not_allowed": extra.Strings(),
			})
	}
	return nil
}

// DeleteEdge removes one edge by id.
func (s *Service) DeleteEdge(ctx context.Context, id string) error {
	if err := s.store.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Debug("relationship deleted", slog.String("id", id))
	return nil
}

// BulkUpsert links ref to every target with labels. The selection is
// checked as a whole first; nothing is written when no label fits every
// target. Targets are then processed one by one and failures are counted
// per item.
func (s *Service) BulkUpsert(ctx context.Context, actor string, ref content.Ref, targets []content.Ref, labels LabelSet) (*BulkUpsertResult, error) {
	ctx, span := tracing.Start(ctx, "relations.bulk_upsert",
		attribute.String("source", ref.String()),
		attribute.Int("targets", len(targets)),
	)
	defer span.End()

	if len(labels) == 0 {
		return nil, apperror.NewValidation("at least one relationship type is required")
	}
	if len(targets) == 0 {
		return nil, apperror.NewValidation("no items selected")
	}

	variants := make([]content.Variant, len(targets))
	for i, t := range targets {
		variants[i] = t.Type
	}
	selectable, conflict := SelectableLabels(ref.Type, variants)
	if conflict != nil {
		return nil, apperror.ErrIncompatibleTypes.
			WithMessage(conflict.Error()).
			WithDetails(map[string]any{
				"source": conflict.Source,
				"target": conflict.Target,
			})
	}
	if extra := labels.Difference(selectable); len(extra) > 0 {
		return nil, apperror.ErrIncompatibleTypes.
			WithMessage(fmt.Sprintf("%v cannot be applied to every selected item", extra.Strings())).
			WithDetails(map[string]any{
				"selectable":  selectable.Strings(),
				"not_allowed": extra.Strings(),
			})
	}

	result := &BulkUpsertResult{Results: make([]BulkUpsertItemResult, 0, len(targets))}
	for _, target := range targets {
		item := BulkUpsertItemResult{Target: target}
		res, err := s.UpsertEdge(ctx, actor, ref, target, labels)
		if err != nil {
			msg := err.Error()
			item.Error = &msg
			result.Failed++
			s.log.Warn("bulk relationship item failed",
				slog.String("source", ref.String()),
				slog.String("target", target.String()),
				logger.Error(err),
			)
		} else {
			item.Success = true
			item.Outcome = res.Outcome
			item.EdgeID = res.Edge.ID
			result.Succeeded++
		}
		result.Results = append(result.Results, item)
	}

	if result.Failed > 0 {
		span.SetAttributes(attribute.Int("failed", result.Failed))
	}
	return result, nil
}
