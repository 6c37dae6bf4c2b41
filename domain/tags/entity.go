package tags

import (
	"time"

	"github.com/uptrace/bun"

	"github.com/ludora/content-service/domain/content"
)

// Tag is a named label independent of any content type.
type Tag struct {
	bun.BaseModel `bun:"table:tags,alias:t"`

	ID        string    `bun:"id,pk" json:"id"`
	Name      string    `bun:"name,notnull" json:"name"`
	CreatedBy string    `bun:"created_by,notnull" json:"created_by"`
	CreatedAt time.Time `bun:"created_at,notnull" json:"created_at"`
}

// Assignment attaches a tag to one content item.
type Assignment struct {
	bun.BaseModel `bun:"table:content_tags,alias:ct"`

	ID          string          `bun:"id,pk" json:"id"`
	ContentType content.Variant `bun:"content_type,notnull" json:"content_type"`
	ContentID   string          `bun:"content_id,notnull" json:"content_id"`
	TagID       string          `bun:"tag_id,notnull" json:"tag_id"`
	CreatedBy   string          `bun:"created_by,notnull" json:"created_by"`
	CreatedAt   time.Time       `bun:"created_at,notnull" json:"created_at"`
}

// Ref returns the tagged item.
func (a *Assignment) Ref() content.Ref {
	return content.Ref{Type: a.ContentType, ID: a.ContentID}
}

// TagUsage is a tag with the number of assignments referencing it.
type TagUsage struct {
	*Tag
	Usage int `json:"usage"`
}
