package tags

import "github.com/labstack/echo/v4"

// RegisterRoutes registers tag routes.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	items := e.Group("/api/content/:type/:id/tags")
	items.GET("", h.ListFor)
	items.POST("", h.Assign)
	items.DELETE("/:tagId", h.Unassign)

	g := e.Group("/api/tags")
	g.GET("", h.List)
	g.POST("", h.Create)
	g.DELETE("/:id", h.Delete)
}
