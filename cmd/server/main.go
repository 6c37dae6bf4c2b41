// Package main runs the content relationship and tagging API.
package main

import (
	"log/slog"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/ludora/content-service/domain/content"
	"github.com/ludora/content-service/domain/health"
	"github.com/ludora/content-service/domain/integrity"
	"github.com/ludora/content-service/domain/relations"
	"github.com/ludora/content-service/domain/scheduler"
	"github.com/ludora/content-service/domain/suggestions"
	"github.com/ludora/content-service/domain/tags"
	"github.com/ludora/content-service/domain/tracing"
	"github.com/ludora/content-service/internal/config"
	"github.com/ludora/content-service/internal/database"
	"github.com/ludora/content-service/internal/migrate"
	"github.com/ludora/content-service/internal/server"
	"github.com/ludora/content-service/pkg/logger"
)

func main() {
	// Local development: .env.local takes precedence over .env.
	_ = godotenv.Load(".env")
	_ = godotenv.Overload(".env.local")

	fx.New(
		fx.WithLogger(func(log *slog.Logger) fxevent.Logger {
			return &fxevent.SlogLogger{Logger: log}
		}),

		// Infrastructure
		logger.Module,
		config.Module,
		database.Module,
		migrate.Module,
		server.Module,
		tracing.Module,
		scheduler.Module,

		// Domain
		health.Module,
		content.Module,
		relations.Module,
		tags.Module,
		integrity.Module,
		suggestions.Module,
	).Run()
}
