package content

import (
	"fmt"
	"strings"

	"github.com/uptrace/bun"
)

// Entry describes how one variant is stored, searched and shown.
type Entry struct {
	Variant      Variant
	Label        string
	SearchFields []string
	Display      func(Entity) string
	Accessor     Accessor
}

// Catalog is the lookup table from variant tag to Entry.
type Catalog struct {
	entries map[Variant]*Entry
	order   []Variant
}

// NewCatalog builds a catalog from entries, keeping their order.
func NewCatalog(entries ...*Entry) *Catalog {
	c := &Catalog{entries: make(map[Variant]*Entry, len(entries))}
	for _, e := range entries {
		if _, dup := c.entries[e.Variant]; !dup {
			c.order = append(c.order, e.Variant)
		}
		c.entries[e.Variant] = e
	}
	return c
}

// NewBunCatalog registers every content variant backed by db.
func NewBunCatalog(db bun.IDB) *Catalog {
	return NewCatalog(
		&Entry{
			Variant:      VariantWord,
			Label:        "מילים",
			SearchFields: []string{"word", "vocalized", "root", "context"},
			Display:      displayWord,
			Accessor:     NewBunAccessor[Word](db),
		},
		&Entry{
			Variant:      VariantWordEN,
			Label:        "מילים באנגלית",
			SearchFields: []string{"word"},
			Display:      displayWordEN,
			Accessor:     NewBunAccessor[WordEN](db),
		},
		&Entry{
			Variant:      VariantImage,
			Label:        "תמונות",
			SearchFields: []string{"name", "description"},
			Display:      displayImage,
			Accessor:     NewBunAccessor[Image](db),
		},
		&Entry{
			Variant:      VariantQA,
			Label:        "שאלות ותשובות",
			SearchFields: []string{"question", "answer"},
			Display:      displayQA,
			Accessor:     NewBunAccessor[QA](db),
		},
		&Entry{
			Variant:      VariantAttribute,
			Label:        "תכונות",
			SearchFields: []string{"attribute_type", "value"},
			Display:      displayAttribute,
			Accessor:     NewBunAccessor[Attribute](db),
		},
		&Entry{
			Variant:      VariantContentList,
			Label:        "רשימות תוכן",
			SearchFields: []string{"name", "description"},
			Display:      displayContentList,
			Accessor:     NewBunAccessor[ContentList](db),
		},
	)
}

// Lookup returns the entry for v. Reserved and unknown tags are not found.
func (c *Catalog) Lookup(v Variant) (*Entry, bool) {
	e, ok := c.entries[v]
	return e, ok
}

// Variants lists the registered variants in registration order.
func (c *Catalog) Variants() []Variant {
	out := make([]Variant, len(c.order))
	copy(out, c.order)
	return out
}

// Entries lists the registered entries in registration order.
func (c *Catalog) Entries() []*Entry {
	out := make([]*Entry, 0, len(c.order))
	for _, v := range c.order {
		out = append(out, c.entries[v])
	}
	return out
}

// Display formats e with its variant's formatter, falling back to the id.
func (c *Catalog) Display(e Entity) string {
	if e == nil {
		return ""
	}
	if entry, ok := c.entries[e.Variant()]; ok && entry.Display != nil {
		if s := entry.Display(e); s != "" {
			return s
		}
	}
	return e.Meta().ID
}

func displayWord(e Entity) string {
	w, ok := e.(*Word)
	if !ok {
		return ""
	}
	if w.Vocalized != "" && w.Vocalized != w.Word {
		return fmt.Sprintf("%s (%s)", w.Word, w.Vocalized)
	}
	return w.Word
}

func displayWordEN(e Entity) string {
	if w, ok := e.(*WordEN); ok {
		return w.Word
	}
	return ""
}

func displayImage(e Entity) string {
	img, ok := e.(*Image)
	if !ok {
		return ""
	}
	if img.Name != "" {
		return img.Name
	}
	return img.Description
}

func displayQA(e Entity) string {
	if qa, ok := e.(*QA); ok {
		return qa.Question
	}
	return ""
}

func displayAttribute(e Entity) string {
	a, ok := e.(*Attribute)
	if !ok {
		return ""
	}
	return strings.TrimSpace(a.AttributeType + ": " + a.Value)
}

func displayContentList(e Entity) string {
	if l, ok := e.(*ContentList); ok {
		return l.Name
	}
	return ""
}
