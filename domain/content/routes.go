package content

import "github.com/labstack/echo/v4"

// RegisterRoutes registers catalog routes.
func RegisterRoutes(e *echo.Echo, h *Handler) {
	g := e.Group("/api/content")
	g.GET("/types", h.ListTypes)
	g.GET("/:type", h.List)
	g.POST("/:type", h.Create)
	g.GET("/:type/:id", h.Get)
	g.PUT("/:type/:id", h.Update)
}
