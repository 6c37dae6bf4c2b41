package integrity

import "github.com/ludora/content-service/domain/content"

// ProtectedCheck is the outcome of a protected-reference lookup.
type ProtectedCheck struct {
	Ref        content.Ref `json:"ref"`
	Protected  bool        `json:"protected"`
	References int         `json:"references"`
}

// CascadeFailure is one edge or assignment that could not be removed.
type CascadeFailure struct {
	Kind  string `json:"kind"`
	ID    string `json:"id,omitempty"`
	Error string `json:"error"`
}

// CascadeResult counts what a cascade removed.
type CascadeResult struct {
	EdgesRemoved int              `json:"edges_removed"`
	EdgesFailed  int              `json:"edges_failed"`
	TagsRemoved  int              `json:"tags_removed"`
	TagsFailed   int              `json:"tags_failed"`
	Failures     []CascadeFailure `json:"failures,omitempty"`
}

// Complete reports whether nothing was left behind.
func (r *CascadeResult) Complete() bool {
	return r.EdgesFailed == 0 && r.TagsFailed == 0
}

func (r *CascadeResult) details() map[string]any {
	return map[string]any{
		"edges_removed": r.EdgesRemoved,
		"edges_failed":  r.EdgesFailed,
		"tags_removed":  r.TagsRemoved,
		"tags_failed":   r.TagsFailed,
	}
}

// DeleteResult describes a single entity delete.
type DeleteResult struct {
	Ref     content.Ref     `json:"ref"`
	Check   *ProtectedCheck `json:"check,omitempty"`
	Cascade *CascadeResult  `json:"cascade,omitempty"`
	Deleted bool            `json:"deleted"`
}

// SkippedItem is a candidate kept because games still use it.
type SkippedItem struct {
	ID         string `json:"id"`
	References int    `json:"references"`
}

// FailedItem is a candidate whose delete broke.
type FailedItem struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// BulkDeleteResult partitions every candidate id into exactly one list.
type BulkDeleteResult struct {
	Deleted []string      `json:"deleted"`
	Skipped []SkippedItem `json:"skipped"`
	Errors  []FailedItem  `json:"errors"`
}

// Total is the number of candidates accounted for.
func (r *BulkDeleteResult) Total() int {
	return len(r.Deleted) + len(r.Skipped) + len(r.Errors)
}

// BulkDeleteRequest is the body of a bulk delete.
type BulkDeleteRequest struct {
	IDs []string `json:"ids"`
}
