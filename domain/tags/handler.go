package tags

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ludora/content-service/domain/content"
	"github.com/ludora/content-service/pkg/apperror"
)

// Handler handles HTTP requests for tags.
type Handler struct {
	svc *Service
}

// NewHandler creates a new tags handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// ListFor returns the tags of one item.
// GET /api/content/:type/:id/tags
func (h *Handler) ListFor(c echo.Context) error {
	ref, err := content.ParseRefParams(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.svc.ListTagsFor(c.Request().Context(), ref))
}

// Assign tags one item by tag id or by name.
// POST /api/content/:type/:id/tags
func (h *Handler) Assign(c echo.Context) error {
	ref, err := content.ParseRefParams(c)
	if err != nil {
		return err
	}
	var req AssignRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ErrBadRequest.WithInternal(err)
	}
	actor := content.Actor(c)

	if id := strings.TrimSpace(req.TagID); id != "" {
		assigned, err := h.svc.Assign(c.Request().Context(), actor, ref, id)
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, AssignResponse{TagID: id, Assigned: assigned})
	}

	if strings.TrimSpace(req.Name) == "" {
		return apperror.NewValidation("tag_id or name is required")
	}
	tag, err := h.svc.CreateAndAssign(c.Request().Context(), actor, ref, req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, AssignResponse{Tag: tag, TagID: tag.ID, Assigned: true})
}

// Unassign removes a tag from one item.
// DELETE /api/content/:type/:id/tags/:tagId
func (h *Handler) Unassign(c echo.Context) error {
	ref, err := content.ParseRefParams(c)
	if err != nil {
		return err
	}
	removed, err := h.svc.Unassign(c.Request().Context(), ref, c.Param("tagId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, RemovedResponse{Removed: removed})
}

// List returns every tag with its usage count.
// GET /api/tags
func (h *Handler) List(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.ListWithUsage(c.Request().Context()))
}

// Create creates a standalone tag.
// POST /api/tags
func (h *Handler) Create(c echo.Context) error {
	var req CreateTagRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ErrBadRequest.WithInternal(err)
	}
	tag, err := h.svc.CreateTag(c.Request().Context(), content.Actor(c), req.Name)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, tag)
}

// Delete removes a tag and all its assignments.
// DELETE /api/tags/:id
func (h *Handler) Delete(c echo.Context) error {
	removed, err := h.svc.DeleteTag(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, RemovedResponse{Removed: removed})
}
