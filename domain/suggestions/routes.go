package suggestions

import "github.com/labstack/echo/v4"

// RegisterRoutes registers suggestion routes.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	e.GET("/api/content/:type/:id/suggestions", h.Suggest)
	e.POST("/api/suggestions/refresh", h.Refresh)
}
