package tags

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

// AssignmentFilter selects assignments. Empty fields match everything.
type AssignmentFilter struct {
	ContentType content.Variant
	ContentID   string
	TagID       string
}

// ForRef returns the filter matching every assignment of ref.
func ForRef(ref content.Ref) AssignmentFilter {
	return AssignmentFilter{ContentType: ref.Type, ContentID: ref.ID}
}

// Store is the persistence contract for tags and their assignments.
type Store interface {
	ListTags(ctx context.Context) ([]*Tag, error)
	GetTags(ctx context.Context, ids []string) ([]*Tag, error)
	// FindTagByName matches case-insensitively and returns nil when absent.
	FindTagByName(ctx context.Context, name string) (*Tag, error)
	CreateTag(ctx context.Context, tag *Tag) error
	DeleteTag(ctx context.Context, id string) error

	FindAssignments(ctx context.Context, filter AssignmentFilter) ([]*Assignment, error)
	CreateAssignment(ctx context.Context, a *Assignment) error
	DeleteAssignment(ctx context.Context, id string) error
	// CountAssignments returns assignment counts keyed by tag id.
	CountAssignments(ctx context.Context) (map[string]int, error)
}

// Repository implements Store with bun.
type Repository struct {
	db  bun.IDB
	log *slog.Logger
}

var _ Store = (*Repository)(nil)

// NewRepository creates a new tags repository.
func NewRepository(db bun.IDB, log *slog.Logger) *Repository {
	return &Repository{
		db:  db,
		log: log.With(logger.Scope("tags.repo")),
	}
}

// ListTags returns every tag ordered by name.
func (r *Repository) ListTags(ctx context.Context) ([]*Tag, error) {
	var out []*Tag
	err := r.db.NewSelect().
		Model(&out).
		OrderExpr("t.name ASC, t.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return out, nil
}

// GetTags returns the tags with the given ids; missing ids are skipped.
func (r *Repository) GetTags(ctx context.Context, ids []string) ([]*Tag, error) {
	if len(ids) == 0 {
		return []*Tag{}, nil
	}
	var out []*Tag
	err := r.db.NewSelect().
		Model(&out).
		Where("t.id IN (?)", bun.In(ids)).
		Scan(ctx)
	if err != nil {
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return out, nil
}

// FindTagByName returns the oldest tag whose name matches, or nil.
func (r *Repository) FindTagByName(ctx context.Context, name string) (*Tag, error) {
	tag := new(Tag)
	err := r.db.NewSelect().
		Model(tag).
		Where("lower(t.name) = lower(?)", name).
		OrderExpr("t.created_at ASC, t.id ASC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return tag, nil
}

// CreateTag inserts tag.
func (r *Repository) CreateTag(ctx context.Context, tag *Tag) error {
	if _, err := r.db.NewInsert().Model(tag).Exec(ctx); err != nil {
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

// DeleteTag removes the tag row only.
func (r *Repository) DeleteTag(ctx context.Context, id string) error {
	res, err := r.db.NewDelete().
		Model((*Tag)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return apperror.ErrDatabase.WithInternal(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NewNotFound("tag", id)
	}
	return nil
}

// FindAssignments returns assignments matching filter, oldest first.
func (r *Repository) FindAssignments(ctx context.Context, filter AssignmentFilter) ([]*Assignment, error) {
	var out []*Assignment
	q := r.db.NewSelect().Model(&out)
	if filter.ContentType != "" {
		q = q.Where("ct.content_type = ?", filter.ContentType)
	}
	if filter.ContentID != "" {
		q = q.Where("ct.content_id = ?", filter.ContentID)
	}
	if filter.TagID != "" {
		q = q.Where("ct.tag_id = ?", filter.TagID)
	}
	if err := q.OrderExpr("ct.created_at ASC, ct.id ASC").Scan(ctx); err != nil {
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return out, nil
}

// CreateAssignment inserts a. A duplicate triple fails with the driver's
// unique violation wrapped in a database error.
func (r *Repository) CreateAssignment(ctx context.Context, a *Assignment) error {
	if _, err := r.db.NewInsert().Model(a).Exec(ctx); err != nil {
		return apperror.ErrDatabase.WithInternal(err)
	}
	return nil
}

// DeleteAssignment removes one assignment row.
func (r *Repository) DeleteAssignment(ctx context.Context, id string) error {
	res, err := r.db.NewDelete().
		Model((*Assignment)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return apperror.ErrDatabase.WithInternal(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NewNotFound("tag assignment", id)
	}
	return nil
}

// CountAssignments groups assignments by tag.
func (r *Repository) CountAssignments(ctx context.Context) (map[string]int, error) {
	var rows []struct {
		TagID string `bun:"tag_id"`
		Count int    `bun:"count"`
	}
	err := r.db.NewSelect().
		Model((*Assignment)(nil)).
		Column("tag_id").
		ColumnExpr("count(*) AS count").
		Group("tag_id").
		Scan(ctx, &rows)
	if err != nil {
		return nil, apperror.ErrDatabase.WithInternal(err)
	}

	counts := make(map[string]int, len(rows))
	for _, row := range rows {
		counts[row.TagID] = row.Count
	}
	return counts, nil
}
