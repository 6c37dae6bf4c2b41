// Package tags assigns named tags to content items.
package tags

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/ludora/content-service/domain/scheduler"
	"github.com/ludora/content-service/internal/config"
)

// Module provides tags domain dependencies.
var Module = fx.Module("tags",
	fx.Provide(
		fx.Annotate(NewRepository, fx.As(new(Store))),
	),
	fx.Provide(NewService),
	fx.Provide(NewHandler),
	fx.Invoke(RegisterRoutes, RegisterPruneTask),
)

const pruneTaskName = "tag_orphan_cleanup"

// RegisterPruneTask schedules the orphan assignment cleanup. A cron
// schedule in config takes precedence over the interval.
func RegisterPruneTask(s *scheduler.Scheduler, svc *Service, cfg *config.Config, log *slog.Logger) error {
	sc := cfg.Scheduler
	switch {
	case sc.TagOrphanCleanupSchedule != "":
		return s.AddCronTask(pruneTaskName, sc.TagOrphanCleanupSchedule, svc.PruneTask)
	case sc.TagOrphanCleanupInterval > 0:
		return s.AddIntervalTask(pruneTaskName, sc.TagOrphanCleanupInterval, svc.PruneTask)
	default:
		log.Info("tag orphan cleanup disabled")
		return nil
	}
}
