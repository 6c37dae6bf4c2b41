package content

import (
	"time"

	"github.com/uptrace/bun"
)

// Entity is one record of a catalog variant.
type Entity interface {
	Variant() Variant
	Meta() *Base
}

// Base holds the fields shared by every variant.
type Base struct {
	ID         string     `bun:"id,pk" json:"id"`
	CreatedAt  time.Time  `bun:"created_at,notnull" json:"created_at"`
	CreatedBy  string     `bun:"created_by,notnull" json:"created_by"`
	Provenance Provenance `bun:"provenance,notnull" json:"provenance"`
	Approved   bool       `bun:"is_approved,notnull" json:"is_approved"`
}

// Meta returns the shared fields.
func (b *Base) Meta() *Base { return b }

// Word is a Hebrew vocabulary item.
type Word struct {
	bun.BaseModel `bun:"table:content_words,alias:cw"`
	Base

	Word       string `bun:"word,notnull" json:"word"`
	Vocalized  string `bun:"vocalized,notnull" json:"vocalized"`
	Root       string `bun:"root,notnull" json:"root"`
	Context    string `bun:"context,notnull" json:"context"`
	Difficulty int    `bun:"difficulty,notnull" json:"difficulty"`
}

func (*Word) Variant() Variant { return VariantWord }

// WordEN is an English vocabulary item.
type WordEN struct {
	bun.BaseModel `bun:"table:content_words_en,alias:cwe"`
	Base

	Word string `bun:"word,notnull" json:"word"`
}

func (*WordEN) Variant() Variant { return VariantWordEN }

// Image is an uploaded picture. The file itself lives elsewhere.
type Image struct {
	bun.BaseModel `bun:"table:content_images,alias:ci"`
	Base

	Name        string `bun:"name,notnull" json:"name"`
	FileURL     string `bun:"file_url,notnull" json:"file_url"`
	Description string `bun:"description,notnull" json:"description"`
}

func (*Image) Variant() Variant { return VariantImage }

// QA is a question and its answer.
type QA struct {
	bun.BaseModel `bun:"table:content_qa,alias:cq"`
	Base

	Question   string `bun:"question,notnull" json:"question"`
	Answer     string `bun:"answer,notnull" json:"answer"`
	Difficulty int    `bun:"difficulty,notnull" json:"difficulty"`
}

func (*QA) Variant() Variant { return VariantQA }

// Attribute is a typed value (e.g. color=red) other content can point at.
type Attribute struct {
	bun.BaseModel `bun:"table:content_attributes,alias:ca"`
	Base

	AttributeType string `bun:"attribute_type,notnull" json:"attribute_type"`
	Value         string `bun:"value,notnull" json:"value"`
}

func (*Attribute) Variant() Variant { return VariantAttribute }

// ContentList groups content items under a name.
type ContentList struct {
	bun.BaseModel `bun:"table:content_lists,alias:cl"`
	Base

	Name        string `bun:"name,notnull" json:"name"`
	Description string `bun:"description,notnull" json:"description"`
}

func (*ContentList) Variant() Variant { return VariantContentList }

// RefOf returns the reference of e.
func RefOf(e Entity) Ref {
	return Ref{Type: e.Variant(), ID: e.Meta().ID}
}
