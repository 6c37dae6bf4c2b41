package content

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ludora/content-service/pkg/apperror"
)

// ActorHeader carries the acting user's identity. It is recorded, never verified.
const ActorHeader = "X-Actor-Email"

// Actor returns the acting user for the request.
func Actor(c echo.Context) string {
	return strings.TrimSpace(c.Request().Header.Get(ActorHeader))
}

// ParseVariantParam reads a variant from the named path parameter.
func ParseVariantParam(c echo.Context, name string) (Variant, error) {
	raw := c.Param(name)
	v, ok := ParseVariant(raw)
	if !ok {
		return "", apperror.NewBadRequest("unknown content type: " + raw)
	}
	return v, nil
}

// ParseRefParams reads :type and :id.
func ParseRefParams(c echo.Context) (Ref, error) {
	v, err := ParseVariantParam(c, "type")
	if err != nil {
		return Ref{}, err
	}
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		return Ref{}, apperror.NewBadRequest("id is required")
	}
	return Ref{Type: v, ID: id}, nil
}

// Handler serves catalog reads and entity creation.
type Handler struct {
	catalog *Catalog
}

// NewHandler creates a new content handler.
func NewHandler(catalog *Catalog) *Handler {
	return &Handler{catalog: catalog}
}

// ListTypes returns the registered variants.
// GET /api/content/types
func (h *Handler) ListTypes(c echo.Context) error {
	entries := h.catalog.Entries()
	out := make([]TypeResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, TypeResponse{Type: e.Variant, Label: e.Label, SearchFields: e.SearchFields})
	}
	return c.JSON(http.StatusOK, out)
}

// List lists or searches one variant.
// GET /api/content/:type?q=&sort=
func (h *Handler) List(c echo.Context) error {
	v, err := ParseVariantParam(c, "type")
	if err != nil {
		return err
	}

	resp := ListResponse{Type: v, Items: []ItemResponse{}}
	entry, ok := h.catalog.Lookup(v)
	if !ok {
		// Reserved types list as empty.
		return c.JSON(http.StatusOK, resp)
	}
	resp.Label = entry.Label

	var items []Entity
	if q := c.QueryParam("q"); strings.TrimSpace(q) != "" {
		items, err = entry.Accessor.Search(c.Request().Context(), q, entry.SearchFields)
	} else {
		items, err = entry.Accessor.List(c.Request().Context(), ParseSort(c.QueryParam("sort")))
	}
	if err != nil {
		return err
	}

	for _, e := range items {
		resp.Items = append(resp.Items, h.catalog.ToItemResponse(e))
	}
	resp.Total = len(resp.Items)
	return c.JSON(http.StatusOK, resp)
}

// Get returns one record.
// GET /api/content/:type/:id
func (h *Handler) Get(c echo.Context) error {
	ref, err := ParseRefParams(c)
	if err != nil {
		return err
	}
	entry, ok := h.catalog.Lookup(ref.Type)
	if !ok {
		return apperror.NewNotFound(string(ref.Type), ref.ID)
	}

	e, err := entry.Accessor.Get(c.Request().Context(), ref.ID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.catalog.ToItemResponse(e))
}

// Create stores a new record of the path's variant.
// POST /api/content/:type
func (h *Handler) Create(c echo.Context) error {
	v, err := ParseVariantParam(c, "type")
	if err != nil {
		return err
	}
	entry, ok := h.catalog.Lookup(v)
	if !ok {
		return apperror.NewBadRequest("content type cannot be created: " + string(v))
	}

	e := entry.Accessor.New()
	if err := c.Bind(e); err != nil {
		return apperror.ErrBadRequest.WithInternal(err)
	}
	meta := e.Meta()
	meta.ID = ""
	if meta.CreatedBy == "" {
		meta.CreatedBy = Actor(c)
	}

	created, err := entry.Accessor.Create(c.Request().Context(), e)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, h.catalog.ToItemResponse(created))
}

// Update replaces the payload of a record.
// PUT /api/content/:type/:id
func (h *Handler) Update(c echo.Context) error {
	ref, err := ParseRefParams(c)
	if err != nil {
		return err
	}
	entry, ok := h.catalog.Lookup(ref.Type)
	if !ok {
		return apperror.NewNotFound(string(ref.Type), ref.ID)
	}

	e := entry.Accessor.New()
	if err := c.Bind(e); err != nil {
		return apperror.ErrBadRequest.WithInternal(err)
	}
	e.Meta().ID = ref.ID

	updated, err := entry.Accessor.Update(c.Request().Context(), e)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.catalog.ToItemResponse(updated))
}
