package suggestions

import (
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/ludora/content-service/domain/content"
	"github.com/ludora/content-service/pkg/apperror"
)

// Handler handles HTTP requests for suggestions.
type Handler struct {
	svc *Service
}

// NewHandler creates a new suggestions handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Suggest lists likely relationship targets for one item.
// GET /api/content/:type/:id/suggestions?limit=
func (h *Handler) Suggest(c echo.Context) error {
	ref, err := content.ParseRefParams(c)
	if err != nil {
		return err
	}

	limit := 0
	if raw := c.QueryParam("limit"); raw != "" {
		if limit, err = strconv.Atoi(raw); err != nil {
			return apperror.NewBadRequest("limit must be a number")
		}
		if err := validLimit(limit); err != nil {
			return err
		}
	}

	out, err := h.svc.Suggest(c.Request().Context(), ref, limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, out)
}

func validLimit(limit int) error {
	if limit < 1 || limit > 100 {
		return apperror.NewBadRequest("limit must be between 1 and 100")
	}
	return nil
}

// RefreshResponse reports the snapshot that was loaded.
type RefreshResponse struct {
	Words    int       `json:"words"`
	WordsEN  int       `json:"words_en"`
	LoadedAt time.Time `json:"loaded_at"`
}

// Refresh rebuilds the snapshot.
// POST /api/suggestions/refresh
func (h *Handler) Refresh(c echo.Context) error {
	snap := h.svc.Refresh(c.Request().Context())
	return c.JSON(http.StatusOK, RefreshResponse{
		Words:    len(snap.Words),
		WordsEN:  len(snap.WordsEN),
		LoadedAt: snap.LoadedAt,
	})
}
