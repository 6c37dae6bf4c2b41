package relations

import "github.com/labstack/echo/v4"

// RegisterRoutes registers relationship routes.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	items := e.Group("/api/content/:type/:id/relationships")
	items.GET("", h.List)
	items.POST("", h.Upsert)

	rel := e.Group("/api/relationships")
	rel.POST("/selectable", h.Selectable)
	rel.GET("/:id", h.Get)
	rel.DELETE("/:id", h.Delete)
}
