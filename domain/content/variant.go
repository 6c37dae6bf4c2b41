package content

import (
	"fmt"
	"strings"
)

// Variant is the content-type tag of an entity.
type Variant string

const (
	VariantWord        Variant = "Word"
	VariantWordEN      Variant = "WordEN"
	VariantImage       Variant = "Image"
	VariantQA          Variant = "QA"
	VariantAttribute   Variant = "Attribute"
	VariantContentList Variant = "ContentList"

	// VariantGame marks a playable game consuming content. Edges touching a
	// game are read for integrity checks and never created or shown here.
	VariantGame Variant = "Game"
	// VariantRules is reserved and has no backing store.
	VariantRules Variant = "Rules"
)

var knownVariants = []Variant{
	VariantWord, VariantWordEN, VariantImage, VariantQA,
	VariantAttribute, VariantContentList, VariantGame, VariantRules,
}

// ParseVariant maps a wire name (case-insensitive) to a Variant.
func ParseVariant(s string) (Variant, bool) {
	s = strings.TrimSpace(s)
	for _, v := range knownVariants {
		if strings.EqualFold(s, string(v)) {
			return v, true
		}
	}
	return "", false
}

// IsWordLike reports whether v is one of the mutually translatable variants.
func (v Variant) IsWordLike() bool {
	switch v {
	case VariantWord, VariantWordEN, VariantImage:
		return true
	}
	return false
}

// IsReserved reports whether v is a tag with no catalog entry.
func (v Variant) IsReserved() bool {
	return v == VariantGame || v == VariantRules
}

// Ref identifies one entity by variant and id.
type Ref struct {
	Type Variant `json:"type"`
	ID   string  `json:"id"`
}

// NewRef builds a Ref.
func NewRef(v Variant, id string) Ref {
	return Ref{Type: v, ID: id}
}

// IsZero reports whether the ref names nothing.
func (r Ref) IsZero() bool {
	return r.Type == "" && r.ID == ""
}

// Equal compares variant and id.
func (r Ref) Equal(o Ref) bool {
	return r.Type == o.Type && r.ID == o.ID
}

func (r Ref) String() string {
	return fmt.Sprintf("%s:%s", r.Type, r.ID)
}

// ParseRef parses the "type:id" form produced by String.
func ParseRef(s string) (Ref, error) {
	typ, id, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok || strings.TrimSpace(id) == "" {
		return Ref{}, fmt.Errorf("invalid reference %q, want type:id", s)
	}
	v, ok := ParseVariant(typ)
	if !ok {
		return Ref{}, fmt.Errorf("unknown content type %q", typ)
	}
	return NewRef(v, strings.TrimSpace(id)), nil
}

// Provenance records whether an entity or edge was made by a person or generated.
type Provenance string

const (
	ProvenanceManual Provenance = "manual"
	ProvenanceAI     Provenance = "ai"
)
