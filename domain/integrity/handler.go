package integrity

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/ludora/content-service/domain/content"
	"github.com/ludora/content-service/pkg/apperror"
)

// Handler handles HTTP requests for guarded deletion.
type Handler struct {
	guard *Guard
}

// NewHandler creates a new integrity handler.
func NewHandler(guard *Guard) *Handler {
	return &Handler{guard: guard}
}

// Protected reports whether a game uses the item.
// GET /api/content/:type/:id/protected
func (h *Handler) Protected(c echo.Context) error {
	ref, err := content.ParseRefParams(c)
	if err != nil {
		return err
	}
	check, err := h.guard.HasProtectedReferences(c.Request().Context(), ref)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, check)
}

// Delete removes an item after cleaning up its edges and tags.
// DELETE /api/content/:type/:id
func (h *Handler) Delete(c echo.Context) error {
	ref, err := content.ParseRefParams(c)
	if err != nil {
		return err
	}
	res, err := h.guard.DeleteEntity(c.Request().Context(), ref)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

// BulkDelete removes many items of one type.
// POST /api/content/:type/bulk-delete
func (h *Handler) BulkDelete(c echo.Context) error {
	v, err := content.ParseVariantParam(c, "type")
	if err != nil {
		return err
	}
	var req BulkDeleteRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ErrBadRequest.WithInternal(err)
	}
	if len(req.IDs) == 0 {
		return apperror.NewValidation("ids is required")
	}
	return c.JSON(http.StatusOK, h.guard.BulkDelete(c.Request().Context(), v, req.IDs))
}
