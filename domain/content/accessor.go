package content

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/schema"

	"github.com/ludora/content-service/pkg/apperror"
)

// Sort orders a listing by one column.
type Sort struct {
	Field string
	Desc  bool
}

// ParseSort reads "field" or "-field". An empty string yields the zero Sort.
func ParseSort(s string) Sort {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "-") {
		return Sort{Field: s[1:], Desc: true}
	}
	return Sort{Field: s}
}

// Filter matches rows whose columns equal the given values.
type Filter map[string]any

// Accessor is the typed-record persistence API for one variant.
type Accessor interface {
	Variant() Variant
	// New returns an empty record, e.g. as a decode target.
	New() Entity
	List(ctx context.Context, sort Sort) ([]Entity, error)
	Find(ctx context.Context, filter Filter) ([]Entity, error)
	Get(ctx context.Context, id string) (Entity, error)
	Search(ctx context.Context, query string, fields []string) ([]Entity, error)
	Create(ctx context.Context, e Entity) (Entity, error)
	Update(ctx context.Context, e Entity) (Entity, error)
	Delete(ctx context.Context, id string) error
}

// modelPtr constrains P to be *T and an Entity.
type modelPtr[T any] interface {
	*T
	Entity
}

// BunAccessor implements Accessor over a bun model.
type BunAccessor[T any, P modelPtr[T]] struct {
	db      bun.IDB
	variant Variant
	table   *schema.Table
}

// NewBunAccessor creates an accessor for model T.
func NewBunAccessor[T any, P modelPtr[T]](db bun.IDB) *BunAccessor[T, P] {
	var zero T
	return &BunAccessor[T, P]{
		db:      db,
		variant: P(&zero).Variant(),
		table:   db.Dialect().Tables().Get(reflect.TypeOf(zero)),
	}
}

func (a *BunAccessor[T, P]) Variant() Variant { return a.variant }

func (a *BunAccessor[T, P]) New() Entity { return P(new(T)) }

func (a *BunAccessor[T, P]) column(name string) (string, error) {
	if !a.table.HasField(name) {
		return "", apperror.NewBadRequest(fmt.Sprintf("unknown field %q for %s", name, a.variant))
	}
	return name, nil
}

// List returns every record, newest first unless sort says otherwise.
func (a *BunAccessor[T, P]) List(ctx context.Context, sort Sort) ([]Entity, error) {
	var rows []T
	q := a.db.NewSelect().Model(&rows)

	if sort.Field == "" {
		q = q.OrderExpr("? DESC", bun.Ident("created_at"))
	} else {
		col, err := a.column(sort.Field)
		if err != nil {
			return nil, err
		}
		if sort.Desc {
			q = q.OrderExpr("? DESC", bun.Ident(col))
		} else {
			q = q.OrderExpr("? ASC", bun.Ident(col))
		}
	}
	q = q.OrderExpr("? ASC", bun.Ident("id"))

	if err := q.Scan(ctx); err != nil {
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return a.entities(rows), nil
}

// Find returns records whose columns equal every filter value.
func (a *BunAccessor[T, P]) Find(ctx context.Context, filter Filter) ([]Entity, error) {
	var rows []T
	q := a.db.NewSelect().Model(&rows)
	for name, value := range filter {
		col, err := a.column(name)
		if err != nil {
			return nil, err
		}
		q = q.Where("? = ?", bun.Ident(col), value)
	}
	q = q.OrderExpr("? ASC", bun.Ident("id"))

	if err := q.Scan(ctx); err != nil {
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return a.entities(rows), nil
}

// Get returns one record or a not_found error.
func (a *BunAccessor[T, P]) Get(ctx context.Context, id string) (Entity, error) {
	row := P(new(T))
	err := a.db.NewSelect().
		Model(row).
		Where("? = ?", bun.Ident("id"), id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NewNotFound(string(a.variant), id)
		}
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return row, nil
}

// Search matches query as a case-insensitive substring of any of fields.
// An empty query lists everything.
func (a *BunAccessor[T, P]) Search(ctx context.Context, query string, fields []string) ([]Entity, error) {
	query = strings.TrimSpace(query)
	if query == "" || len(fields) == 0 {
		return a.List(ctx, Sort{})
	}

	cols := make([]string, 0, len(fields))
	for _, f := range fields {
		col, err := a.column(f)
		if err != nil {
			return nil, err
		}
		cols = append(cols, col)
	}

	pattern := "%" + strings.ToLower(query) + "%"
	var rows []T
	err := a.db.NewSelect().
		Model(&rows).
		WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			for _, col := range cols {
				q = q.WhereOr("LOWER(?) LIKE ?", bun.Ident(col), pattern)
			}
			return q
		}).
		OrderExpr("? DESC", bun.Ident("created_at")).
		OrderExpr("? ASC", bun.Ident("id")).
		Scan(ctx)
	if err != nil {
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return a.entities(rows), nil
}

// Create inserts e, filling id, creation time and provenance when unset.
func (a *BunAccessor[T, P]) Create(ctx context.Context, e Entity) (Entity, error) {
	row, err := a.cast(e)
	if err != nil {
		return nil, err
	}

	meta := row.Meta()
	if meta.ID == "" {
		meta.ID = uuid.NewString()
	}
	if meta.CreatedAt.IsZero() {
		meta.CreatedAt = time.Now().UTC()
	}
	if meta.Provenance == "" {
		meta.Provenance = ProvenanceManual
	}

	if _, err := a.db.NewInsert().Model(row).Exec(ctx); err != nil {
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	return row, nil
}

// Update overwrites the variant payload and approval state of an existing record.
func (a *BunAccessor[T, P]) Update(ctx context.Context, e Entity) (Entity, error) {
	row, err := a.cast(e)
	if err != nil {
		return nil, err
	}
	if row.Meta().ID == "" {
		return nil, apperror.NewBadRequest("id is required")
	}

	res, err := a.db.NewUpdate().
		Model(row).
		ExcludeColumn("created_at", "created_by").
		WherePK().
		Exec(ctx)
	if err != nil {
		return nil, apperror.ErrDatabase.WithInternal(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, apperror.NewNotFound(string(a.variant), row.Meta().ID)
	}
	return a.Get(ctx, row.Meta().ID)
}

// Delete removes a record by id.
func (a *BunAccessor[T, P]) Delete(ctx context.Context, id string) error {
	res, err := a.db.NewDelete().
		Model((*T)(nil)).
		Where("? = ?", bun.Ident("id"), id).
		Exec(ctx)
	if err != nil {
		return apperror.ErrDatabase.WithInternal(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return apperror.NewNotFound(string(a.variant), id)
	}
	return nil
}

func (a *BunAccessor[T, P]) cast(e Entity) (P, error) {
	row, ok := e.(P)
	if !ok || row == nil {
		return nil, apperror.NewValidation(fmt.Sprintf("expected %s record, got %T", a.variant, e))
	}
	return row, nil
}

func (a *BunAccessor[T, P]) entities(rows []T) []Entity {
	out := make([]Entity, len(rows))
	for i := range rows {
		out[i] = P(&rows[i])
	}
	return out
}
