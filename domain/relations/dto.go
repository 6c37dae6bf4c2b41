package relations

import "github.com/ludora/content-service/domain/content"

// Outcome describes what an upsert did.
type Outcome string

const (
	OutcomeCreated   Outcome = "created"
	OutcomeMerged    Outcome = "merged"
	OutcomeUnchanged Outcome = "unchanged"
)

// UpsertResult is the result of one upsert.
type UpsertResult struct {
	Outcome Outcome `json:"outcome"`
	Edge    *Edge   `json:"edge"`
}

// BulkUpsertItemResult is the per-target outcome of a bulk upsert.
type BulkUpsertItemResult struct {
	Target  content.Ref `json:"target"`
	Success bool        `json:"success"`
	Outcome Outcome     `json:"outcome,omitempty"`
	EdgeID  string      `json:"edge_id,omitempty"`
	Error   *string     `json:"error,omitempty"`
}

// BulkUpsertResult tallies a bulk upsert. A batch with no failures is a
// success even when every item was unchanged.
type BulkUpsertResult struct {
	Succeeded int                    `json:"succeeded"`
	Failed    int                    `json:"failed"`
	Results   []BulkUpsertItemResult `json:"results"`
}

// OK reports whether no item failed.
func (r *BulkUpsertResult) OK() bool { return r.Failed == 0 }

// EdgeResponse is an edge as seen from one of its endpoints.
type EdgeResponse struct {
	*Edge
	Counterpart content.Ref `json:"counterpart"`
	Display     string      `json:"counterpart_display,omitempty"`
}

// UpsertEdgeRequest is the body of a single or bulk relationship create.
type UpsertEdgeRequest struct {
	Target  *content.Ref  `json:"target,omitempty"`
	Targets []content.Ref `json:"targets,omitempty"`
	Types   []string      `json:"relationship_types"`
}

// SelectableRequest asks which labels fit a selection.
type SelectableRequest struct {
	SourceType content.Variant   `json:"source_type"`
	Targets    []content.Variant `json:"target_types"`
}

// SelectableResponse answers a SelectableRequest.
type SelectableResponse struct {
	Types    LabelSet  `json:"relationship_types"`
	Conflict *Conflict `json:"conflict,omitempty"`
}
