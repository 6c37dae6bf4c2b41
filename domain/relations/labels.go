package relations

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
)

// Label is a relationship-type label.
type Label string

const (
	LabelTranslation Label = "translation"
	// LabelAntonym covers both antonyms and inverse pairs.
	LabelAntonym     Label = "antonym"
	LabelAttributeOf Label = "attribute_of"
	LabelListMember  Label = "list_member"
)

// Vocabulary lists every label in canonical order.
var Vocabulary = []Label{LabelTranslation, LabelAntonym, LabelAttributeOf, LabelListMember}

// ParseLabel accepts the wire name and a few legacy spellings.
func ParseLabel(s string) (Label, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "translation":
		return LabelTranslation, true
	case "antonym", "inverse", "antonym/inverse":
		return LabelAntonym, true
	case "attribute_of", "attribute-of", "attribute":
		return LabelAttributeOf, true
	case "list_member", "list-member", "member":
		return LabelListMember, true
	}
	return "", false
}

// ParseLabels parses every name, failing on the first unknown one.
func ParseLabels(names []string) (LabelSet, error) {
	out := make(LabelSet, 0, len(names))
	for _, n := range names {
		l, ok := ParseLabel(n)
		if !ok {
			return nil, fmt.Errorf("unknown relationship type %q", n)
		}
		out = out.Add(l)
	}
	return out, nil
}

// LabelSet is an insertion-ordered set of labels.
// Stored as a JSON array.
type LabelSet []Label

// NewLabelSet builds a set, dropping duplicates.
func NewLabelSet(labels ...Label) LabelSet {
	s := make(LabelSet, 0, len(labels))
	for _, l := range labels {
		s = s.Add(l)
	}
	return s
}

// Contains reports whether l is in s.
func (s LabelSet) Contains(l Label) bool {
	for _, x := range s {
		if x == l {
			return true
		}
	}
	return false
}

// Add returns s with l appended if absent.
func (s LabelSet) Add(l Label) LabelSet {
	if s.Contains(l) {
		return s
	}
	return append(s, l)
}

// Union returns the labels of s followed by those of o not already present.
func (s LabelSet) Union(o LabelSet) LabelSet {
	out := make(LabelSet, 0, len(s)+len(o))
	out = append(out, s...)
	for _, l := range o {
		out = out.Add(l)
	}
	return out
}

// Intersect returns the labels of s that are also in o, in s order.
func (s LabelSet) Intersect(o LabelSet) LabelSet {
	out := LabelSet{}
	for _, l := range s {
		if o.Contains(l) {
			out = out.Add(l)
		}
	}
	return out
}

// Difference returns the labels of s missing from o.
func (s LabelSet) Difference(o LabelSet) LabelSet {
	out := LabelSet{}
	for _, l := range s {
		if !o.Contains(l) {
			out = out.Add(l)
		}
	}
	return out
}

// SubsetOf reports whether every label of s is in o.
func (s LabelSet) SubsetOf(o LabelSet) bool {
	return len(s.Difference(o)) == 0
}

// Equal compares as sets; order is ignored.
func (s LabelSet) Equal(o LabelSet) bool {
	return s.SubsetOf(o) && o.SubsetOf(s)
}

// Strings returns the wire names.
func (s LabelSet) Strings() []string {
	out := make([]string, len(s))
	for i, l := range s {
		out[i] = string(l)
	}
	return out
}

// Value implements driver.Valuer.
func (s LabelSet) Value() (driver.Value, error) {
	if s == nil {
		s = LabelSet{}
	}
	b, err := json.Marshal([]Label(s))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner.
func (s *LabelSet) Scan(value any) error {
	var raw []byte
	switch v := value.(type) {
	case nil:
		*s = LabelSet{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("relations: cannot scan %T into LabelSet", value)
	}

	var labels []Label
	if err := json.Unmarshal(raw, &labels); err != nil {
		return fmt.Errorf("relations: decode relationship_types: %w", err)
	}
	*s = NewLabelSet(labels...)
	return nil
}
