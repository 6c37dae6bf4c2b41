package relations

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/ludora/content-service/domain/content"
)

// Edge is the single stored relationship between two entities. Source is
// the entity from which the link was first created.
type Edge struct {
	bun.BaseModel `bun:"table:content_relationships,alias:cr"`

	ID         string          `bun:"id,pk" json:"id"`
	SourceType content.Variant `bun:"source_type,notnull" json:"source_type"`
	SourceID   string          `bun:"source_id,notnull" json:"source_id"`
	TargetType content.Variant `bun:"target_type,notnull" json:"target_type"`
	TargetID   string          `bun:"target_id,notnull" json:"target_id"`

	Types LabelSet `bun:"relationship_types,notnull" json:"relationship_types"`

	Provenance content.Provenance `bun:"provenance,notnull" json:"provenance"`
	Approved   bool               `bun:"is_approved,notnull" json:"is_approved"`
	CreatedBy  string             `bun:"created_by,notnull" json:"created_by"`
	CreatedAt  time.Time          `bun:"created_at,notnull" json:"created_at"`
	UpdatedAt  time.Time          `bun:"updated_at,notnull" json:"updated_at"`
}

// Source returns the source reference.
func (e *Edge) Source() content.Ref {
	return content.Ref{Type: e.SourceType, ID: e.SourceID}
}

// Target returns the target reference.
func (e *Edge) Target() content.Ref {
	return content.Ref{Type: e.TargetType, ID: e.TargetID}
}

// Touches reports whether ref is either endpoint.
func (e *Edge) Touches(ref content.Ref) bool {
	return e.Source().Equal(ref) || e.Target().Equal(ref)
}

// Counterpart returns the endpoint that is not ref. If ref is not an
// endpoint the target is returned.
func (e *Edge) Counterpart(ref content.Ref) content.Ref {
	if e.Target().Equal(ref) {
		return e.Source()
	}
	return e.Target()
}

// TouchesGame reports whether either endpoint is a game.
func (e *Edge) TouchesGame() bool {
	return e.SourceType == content.VariantGame || e.TargetType == content.VariantGame
}
