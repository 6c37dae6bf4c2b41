package content

// ItemResponse wraps one record with its reference and display text.
type ItemResponse struct {
	Ref     Ref    `json:"ref"`
	Display string `json:"display"`
	Record  Entity `json:"record"`
}

// ListResponse is the body of a listing or search.
type ListResponse struct {
	Type  Variant        `json:"type"`
	Label string         `json:"label,omitempty"`
	Items []ItemResponse `json:"items"`
	Total int            `json:"total"`
}

// TypeResponse describes one catalog variant.
type TypeResponse struct {
	Type         Variant  `json:"type"`
	Label        string   `json:"label"`
	SearchFields []string `json:"search_fields"`
}

// ToItemResponse builds the response for e.
func (c *Catalog) ToItemResponse(e Entity) ItemResponse {
	return ItemResponse{Ref: RefOf(e), Display: c.Display(e), Record: e}
}
