package tags

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ludora/content-service/domain/content"
	"github.com/ludora/content-service/pkg/apperror"
	"github.com/ludora/content-service/pkg/logger"
	"github.com/ludora/content-service/pkg/pgutils"
)

const maxTagNameLength = 64

// Service manages tags and their assignments to content items.
type Service struct {
	store Store
	log   *slog.Logger
	now   func() time.Time
}

// NewService creates a new tags service.
func NewService(store Store, log *slog.Logger) *Service {
	return &Service{
		store: store,
		log:   log.With(logger.Scope("tags.svc")),
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// ListTagsFor returns the tags assigned to ref, each once, in assignment
// order. Assignments whose tag no longer exists are skipped. Read failures
// yield an empty list.
func (s *Service) ListTagsFor(ctx context.Context, ref content.Ref) []*Tag {
	assignments, err := s.store.FindAssignments(ctx, ForRef(ref))
	if err != nil {
		s.log.Warn("failed to list tag assignments", slog.String("ref", ref.String()), logger.Error(err))
		return []*Tag{}
	}

	ids := make([]string, 0, len(assignments))
	seen := make(map[string]struct{}, len(assignments))
	for _, a := range assignments {
		if _, ok := seen[a.TagID]; ok {
			continue
		}
		seen[a.TagID] = struct{}{}
		ids = append(ids, a.TagID)
	}

	found, err := s.store.GetTags(ctx, ids)
	if err != nil {
		s.log.Warn("failed to resolve tags", slog.String("ref", ref.String()), logger.Error(err))
		return []*Tag{}
	}
	byID := make(map[string]*Tag, len(found))
	for _, t := range found {
		byID[t.ID] = t
	}

	out := make([]*Tag, 0, len(ids))
	for _, id := range ids {
		if t, ok := byID[id]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Assign tags ref with tagID. It returns false when the tag was already
// assigned, including when a concurrent request won the insert.
func (s *Service) Assign(ctx context.Context, actor string, ref content.Ref, tagID string) (bool, error) {
	if ref.ID == "" || tagID == "" {
		return false, apperror.NewValidation("content item and tag are required")
	}

	found, err := s.store.GetTags(ctx, []string{tagID})
	if err != nil {
		return false, err
	}
	if len(found) == 0 {
		return false, apperror.NewNotFound("tag", tagID)
	}

	filter := ForRef(ref)
	filter.TagID = tagID
	existing, err := s.store.FindAssignments(ctx, filter)
	if err != nil {
		return false, err
	}
	if len(existing) > 0 {
		return false, nil
	}

	err = s.store.CreateAssignment(ctx, &Assignment{
		ID:          uuid.NewString(),
		ContentType: ref.Type,
		ContentID:   ref.ID,
		TagID:       tagID,
		CreatedBy:   actor,
		CreatedAt:   s.now(),
	})
	if err != nil {
		if pgutils.IsUniqueViolation(err) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// Unassign removes every assignment of tagID to ref and returns how many
// rows went away. Each row is attempted even if an earlier one fails.
func (s *Service) Unassign(ctx context.Context, ref content.Ref, tagID string) (int, error) {
	filter := ForRef(ref)
	filter.TagID = tagID
	existing, err := s.store.FindAssignments(ctx, filter)
	if err != nil {
		return 0, err
	}

	removed := 0
	var errs []error
	for _, a := range existing {
		if err := s.store.DeleteAssignment(ctx, a.ID); err != nil {
			errs = append(errs, err)
			continue
		}
		removed++
	}
	if len(existing) > 1 {
		s.log.Info("removed duplicate tag assignments",
			slog.String("ref", ref.String()),
			slog.String("tag_id", tagID),
			slog.Int("rows", len(existing)),
		)
	}
	return removed, errors.Join(errs...)
}

// CreateTag creates a standalone tag.
func (s *Service) CreateTag(ctx context.Context, actor, name string) (*Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperror.NewValidation("tag name is required")
	}
	if len([]rune(name)) > maxTagNameLength {
		return nil, apperror.NewValidation(fmt.Sprintf("tag name is longer than %d characters", maxTagNameLength))
	}

	tag := &Tag{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedBy: actor,
		CreatedAt: s.now(),
	}
	if err := s.store.CreateTag(ctx, tag); err != nil {
		return nil, err
	}
	return tag, nil
}

// CreateAndAssign tags ref with name, reusing an existing tag of the same
// name (case-insensitive) or creating it.
func (s *Service) CreateAndAssign(ctx context.Context, actor string, ref content.Ref, name string) (*Tag, error) {
	name = strings.TrimSpace(name)
	tag, err := s.store.FindTagByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if tag == nil {
		if tag, err = s.CreateTag(ctx, actor, name); err != nil {
			return nil, err
		}
	}

	if _, err := s.Assign(ctx, actor, ref, tag.ID); err != nil {
		return nil, err
	}
	return tag, nil
}

// ListWithUsage returns every tag with its assignment count across all
// content types. Read failures yield an empty list.
func (s *Service) ListWithUsage(ctx context.Context) []TagUsage {
	all, err := s.store.ListTags(ctx)
	if err != nil {
		s.log.Warn("failed to list tags", logger.Error(err))
		return []TagUsage{}
	}
	counts, err := s.store.CountAssignments(ctx)
	if err != nil {
		s.log.Warn("failed to count tag usage", logger.Error(err))
		counts = map[string]int{}
	}

	out := make([]TagUsage, 0, len(all))
	for _, t := range all {
		out = append(out, TagUsage{Tag: t, Usage: counts[t.ID]})
	}
	return out
}

// DeleteTag removes every assignment of the tag, then the tag. If any
// assignment cannot be removed the tag is kept and the error carries the
// number removed.
func (s *Service) DeleteTag(ctx context.Context, id string) (int, error) {
	assignments, err := s.store.FindAssignments(ctx, AssignmentFilter{TagID: id})
	if err != nil {
		return 0, err
	}

	removed, failed := 0, 0
	for _, a := range assignments {
		if err := s.store.DeleteAssignment(ctx, a.ID); err != nil {
			failed++
			s.log.Error("failed to remove tag assignment",
				slog.String("tag_id", id),
				slog.String("assignment_id", a.ID),
				logger.Error(err),
			)
			continue
		}
		removed++
	}
	if failed > 0 {
		return removed, apperror.ErrCascadeIncomplete.
			WithMessage("some tag assignments could not be removed; the tag was kept").
			WithDetails(map[string]any{"assignments_removed": removed, "assignments_failed": failed})
	}

	if err := s.store.DeleteTag(ctx, id); err != nil {
		return removed, err
	}
	s.log.Info("tag deleted", slog.String("tag_id", id), slog.Int("assignments_removed", removed))
	return removed, nil
}

// PruneOrphans removes assignments whose tag no longer exists and returns
// how many were removed. Removal continues past individual failures.
func (s *Service) PruneOrphans(ctx context.Context) (int, error) {
	all, err := s.store.ListTags(ctx)
	if err != nil {
		return 0, err
	}
	counts, err := s.store.CountAssignments(ctx)
	if err != nil {
		return 0, err
	}

	known := make(map[string]struct{}, len(all))
	for _, t := range all {
		known[t.ID] = struct{}{}
	}

	removed := 0
	var errs []error
	for tagID := range counts {
		if _, ok := known[tagID]; ok {
			continue
		}
		orphans, err := s.store.FindAssignments(ctx, AssignmentFilter{TagID: tagID})
		if err != nil {
			errs = append(errs, err)
			continue
		}
		for _, a := range orphans {
			if err := s.store.DeleteAssignment(ctx, a.ID); err != nil {
				errs = append(errs, fmt.Errorf("assignment %s: %w", a.ID, err))
				continue
			}
			removed++
		}
	}

	if removed > 0 {
		s.log.Info("pruned orphan tag assignments", slog.Int("removed", removed))
	}
	return removed, errors.Join(errs...)
}

// PruneTask is the scheduler entry point for PruneOrphans.
func (s *Service) PruneTask(ctx context.Context) error {
	_, err := s.PruneOrphans(ctx)
	return err
}
