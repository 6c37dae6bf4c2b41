// Package scheduler runs periodic maintenance tasks such as the suggestion
// snapshot refresh and the orphan tag assignment cleanup.
package scheduler

import (
	"context"

	"go.uber.org/fx"

	"github.com/ludora/content-service/internal/config"
)

// Module provides the scheduler. Domain modules register their own tasks.
var Module = fx.Module("scheduler",
	fx.Provide(NewScheduler),
	fx.Invoke(RegisterSchedulerLifecycle),
)

// RegisterSchedulerLifecycle starts the scheduler with the app unless it
// is disabled in config.
func RegisterSchedulerLifecycle(lc fx.Lifecycle, s *Scheduler, cfg *config.Config) {
	if !cfg.Scheduler.Enabled {
		s.log.Info("scheduler disabled")
		return
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return s.Start(ctx)
		},
		OnStop: func(ctx context.Context) error {
			return s.Stop(ctx)
		},
	})
}
