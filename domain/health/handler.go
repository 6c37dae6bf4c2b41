package health

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/ludora/content-service/domain/scheduler"
	"github.com/ludora/content-service/internal/config"
	"github.com/ludora/content-service/internal/version"
)

// Pinger checks database connectivity. *bun.DB satisfies it.
type Pinger interface {
	PingContext(ctx context.Context) error
}

// Handler handles health check requests
type Handler struct {
	db        Pinger
	cfg       *config.Config
	scheduler *scheduler.Scheduler
	startAt   time.Time
}

// NewHandler creates a new health handler
func NewHandler(db *bun.DB, cfg *config.Config, s *scheduler.Scheduler) *Handler {
	return newHandler(db, cfg, s)
}

func newHandler(db Pinger, cfg *config.Config, s *scheduler.Scheduler) *Handler {
	return &Handler{
		db:        db,
		cfg:       cfg,
		scheduler: s,
		startAt:   time.Now(),
	}
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string           `json:"status"`
	Timestamp string           `json:"timestamp"`
	Uptime    string           `json:"uptime"`
	Version   string           `json:"version"`
	Checks    map[string]Check `json:"checks"`
}

// Check represents an individual health check result
type Check struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Health returns the overall service health
// GET /health
func (h *Handler) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	db := Check{Status: "healthy"}
	if err := h.db.PingContext(ctx); err != nil {
		db = Check{Status: "unhealthy", Message: err.Error()}
	}

	response := HealthResponse{
		Status:    db.Status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Uptime:    time.Since(h.startAt).String(),
		Version:   version.Info().Version,
		Checks: map[string]Check{
			"database": db,
		},
	}

	statusCode := http.StatusOK
	if response.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}
	return c.JSON(statusCode, response)
}

// Healthz is the liveness probe.
// GET /healthz
func (h *Handler) Healthz(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// Ready is the readiness probe; it fails while the database is unreachable.
// GET /ready
func (h *Handler) Ready(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if err := h.db.PingContext(ctx); err != nil {
		return c.JSON(http.StatusServiceUnavailable, map[string]any{
			"status":  "not_ready",
			"message": "Database connection failed",
		})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"status": "ready",
	})
}

// Debug returns runtime and scheduler details outside production.
// GET /debug
func (h *Handler) Debug(c echo.Context) error {
	if h.cfg.Environment == "production" {
		return echo.NewHTTPError(http.StatusNotFound, "Not found")
	}

	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	out := map[string]any{
		"environment": h.cfg.Environment,
		"debug":       h.cfg.Debug,
		"version":     version.Info(),
		"go_version":  runtime.Version(),
		"goroutines":  runtime.NumGoroutine(),
		"memory": map[string]any{
			"alloc_mb":       mem.Alloc / 1024 / 1024,
			"total_alloc_mb": mem.TotalAlloc / 1024 / 1024,
			"sys_mb":         mem.Sys / 1024 / 1024,
			"num_gc":         mem.NumGC,
		},
		"database": map[string]any{
			"driver": h.cfg.Database.Driver,
		},
	}
	if h.scheduler != nil {
		out["scheduler"] = map[string]any{
			"running": h.scheduler.IsRunning(),
			"tasks":   h.scheduler.GetTaskInfo(),
		}
	}
	return c.JSON(http.StatusOK, out)
}
