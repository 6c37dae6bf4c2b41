package relations

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/ludora/content-service/domain/content"
	"github.com/ludora/content-service/pkg/apperror"
)

// Handler handles HTTP requests for relationships.
type Handler struct {
	svc *Service
}

// NewHandler creates a new relations handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// List returns the visible relationships of an item.
// GET /api/content/:type/:id/relationships
func (h *Handler) List(c echo.Context) error {
	ref, err := content.ParseRefParams(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.svc.ListEdgeViews(c.Request().Context(), ref))
}

// Upsert links an item to one target, or to many when "targets" is set.
// POST /api/content/:type/:id/relationships
func (h *Handler) Upsert(c echo.Context) error {
	ref, err := content.ParseRefParams(c)
	if err != nil {
		return err
	}

	var req UpsertEdgeRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ErrBadRequest.WithInternal(err)
	}
	labels, err := ParseLabels(req.Types)
	if err != nil {
		return apperror.NewValidation(err.Error())
	}

	targets, err := normalizeTargets(req)
	if err != nil {
		return err
	}
	actor := content.Actor(c)

	if req.Target != nil && len(req.Targets) == 0 {
		res, err := h.svc.UpsertEdge(c.Request().Context(), actor, ref, targets[0], labels)
		if err != nil {
			return err
		}
		status := http.StatusOK
		if res.Outcome == OutcomeCreated {
			status = http.StatusCreated
		}
		return c.JSON(status, res)
	}

	res, err := h.svc.BulkUpsert(c.Request().Context(), actor, ref, targets, labels)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func normalizeTargets(req UpsertEdgeRequest) ([]content.Ref, error) {
	raw := req.Targets
	if req.Target != nil && len(raw) == 0 {
		raw = []content.Ref{*req.Target}
	}
	if len(raw) == 0 {
		return nil, apperror.NewValidation("target or targets is required")
	}

	out := make([]content.Ref, 0, len(raw))
	for _, t := range raw {
		v, ok := content.ParseVariant(string(t.Type))
		if !ok {
			return nil, apperror.NewValidation("unknown content type: " + string(t.Type))
		}
		id := strings.TrimSpace(t.ID)
		if id == "" {
			return nil, apperror.NewValidation("target id is required")
		}
		out = append(out, content.Ref{Type: v, ID: id})
	}
	return out, nil
}

// Delete removes one relationship.
// DELETE /api/relationships/:id
func (h *Handler) Delete(c echo.Context) error {
	if err := h.svc.DeleteEdge(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Get returns one relationship.
// GET /api/relationships/:id
func (h *Handler) Get(c echo.Context) error {
	edge, err := h.svc.GetEdge(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, edge)
}

// Selectable reports the labels that fit every selected target type.
// POST /api/relationships/selectable
func (h *Handler) Selectable(c echo.Context) error {
	var req SelectableRequest
	if err := c.Bind(&req); err != nil {
		return apperror.ErrBadRequest.WithInternal(err)
	}

	source, ok := content.ParseVariant(string(req.SourceType))
	if !ok {
		return apperror.NewValidation("unknown content type: " + string(req.SourceType))
	}
	targets := make([]content.Variant, 0, len(req.Targets))
	for _, t := range req.Targets {
		v, ok := content.ParseVariant(string(t))
		if !ok {
			return apperror.NewValidation("unknown content type: " + string(t))
		}
		targets = append(targets, v)
	}

	labels, conflict := SelectableLabels(source, targets)
	return c.JSON(http.StatusOK, SelectableResponse{Types: labels, Conflict: conflict})
}
