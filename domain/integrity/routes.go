package integrity

import "github.com/labstack/echo/v4"

// RegisterRoutes registers deletion routes.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	g := e.Group("/api/content/:type")
	g.POST("/bulk-delete", h.BulkDelete)
	g.GET("/:id/protected", h.Protected)
	g.DELETE("/:id", h.Delete)
}
