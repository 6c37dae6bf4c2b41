// Package suggestions proposes likely relationship targets for an item by
// matching word forms and roots against a catalog snapshot.
package suggestions

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/ludora/content-service/domain/content"
	"github.com/ludora/content-service/domain/relations"
	"github.com/ludora/content-service/domain/scheduler"
	"github.com/ludora/content-service/internal/config"
)

// Module provides suggestions domain dependencies.
var Module = fx.Module("suggestions",
	fx.Provide(
		provideCache,
		provideEngine,
		func(svc *relations.Service) LinkedLister { return svc },
		NewService,
		NewHandler,
	),
	fx.Invoke(RegisterRoutes, RegisterRefreshTask),
)

func provideCache(catalog *content.Catalog, cfg *config.Config, log *slog.Logger) *SnapshotCache {
	return NewSnapshotCache(catalog, cfg.Suggestions.SnapshotTTL, log)
}

func provideEngine(cfg *config.Config) *Engine {
	return NewEngine(cfg.Suggestions.Limit)
}

// RegisterRefreshTask schedules the periodic snapshot refresh.
func RegisterRefreshTask(s *scheduler.Scheduler, svc *Service, cfg *config.Config, log *slog.Logger) error {
	interval := cfg.Suggestions.RefreshInterval
	if interval <= 0 {
		log.Info("suggestion snapshot refresh disabled")
		return nil
	}
	return s.AddIntervalTask("suggestions_snapshot_refresh", interval, svc.RefreshTask)
}
