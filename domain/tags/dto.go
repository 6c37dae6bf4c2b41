package tags

// AssignRequest assigns an existing tag by id, or creates-and-assigns by name.
type AssignRequest struct {
	TagID string `json:"tag_id,omitempty"`
	Name  string `json:"name,omitempty"`
}

// AssignResponse reports the tag and whether a new assignment was made.
type AssignResponse struct {
	Tag      *Tag   `json:"tag,omitempty"`
	TagID    string `json:"tag_id"`
	Assigned bool   `json:"assigned"`
}

// CreateTagRequest is the body of a standalone tag create.
type CreateTagRequest struct {
	Name string `json:"name"`
}

// RemovedResponse reports how many rows a delete removed.
type RemovedResponse struct {
	Removed int `json:"removed"`
}
