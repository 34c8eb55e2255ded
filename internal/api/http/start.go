package http

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/securewave/securewave_backend/config"
	"github.com/securewave/securewave_backend/internal/api/http/router"
	"github.com/securewave/securewave_backend/internal/app"
)

// Start runs the dispatcher until it receives a stop signal.
func Start(cfg *config.Config, logger *slog.Logger, timeout time.Duration) {
	fx.New(
		fx.Supply(cfg),
		fx.Supply(logger),
		app.InfraModule,
		app.ServiceModule,
		router.Module,
		Module, // This is the http.Module from server.go

		// Invoke *fiber.App because that's what NewServer returns.
		// This forces the creation of fiber.App, triggering the OnStart hook
		fx.Invoke(func(*fiber.App) {}),

		fx.StopTimeout(timeout),
		fx.WithLogger(func() fxevent.Logger { return &fxevent.SlogLogger{Logger: logger} }),
	).Run()
}
