package http

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"github.com/gofiber/fiber/v3/middleware/helmet"
	"github.com/gofiber/fiber/v3/middleware/logger"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"
	"go.uber.org/fx"

	"github.com/securewave/securewave_backend/config"
	"github.com/securewave/securewave_backend/internal/api/http/middleware"
	"github.com/securewave/securewave_backend/internal/api/http/router"
	"github.com/securewave/securewave_backend/pkg/constants"
	"github.com/securewave/securewave_backend/pkg/observability"
)

// Module provides the HTTP Server to the fx graph.
var Module = fx.Module("http", fx.Provide(NewServer))

type Params struct {
	fx.In

	Lifecycle fx.Lifecycle
	Cfg       *config.Config
	Logger    *slog.Logger
	Router    *router.Router
	OTel      *observability.Provider `optional:"true"`
}

func NewServer(p Params) *fiber.App {
	app := NewApp(p.Cfg, p.Router, p.OTel != nil && p.Cfg.Observability.Tracing.Enabled)

	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			addr := fmt.Sprintf(":%d", p.Cfg.Server.Port)
			p.Logger.Info("HTTP server listening", "addr", addr, "static_dir", p.Cfg.Server.StaticDir)
			go func() {
				if err := app.Listen(addr, fiber.ListenConfig{DisableStartupMessage: true}); err != nil {
					p.Logger.Error("HTTP server error", "error", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			return app.ShutdownWithContext(ctx)
		},
	})

	return app
}

// NewApp builds the fiber application with global middleware and routes.
func NewApp(cfg *config.Config, r *router.Router, tracing bool) *fiber.App {
	timeout := time.Duration(cfg.Server.TimeoutSeconds) * time.Second
	app := fiber.New(fiber.Config{
		AppName:      cfg.Site.Name,
		ReadTimeout:  timeout,
		WriteTimeout: timeout,
	})

	if tracing {
		app.Use(observability.FiberMiddleware())
	}

	configureGlobalMiddleware(app, cfg)

	r.Register(app)

	return app
}

func configureGlobalMiddleware(app *fiber.App, cfg *config.Config) {
	app.Use(middleware.RequestID())
	app.Use(recoverer.New())

	if cfg.Server.Environment == constants.EnvProduction {
		app.Use(helmet.New())
	}
	// The landing page may be served from another origin than the API.
	if cfg.Server.CORS.Enabled {
		app.Use(cors.New(corsConfig(cfg.Server.CORS)))
	}

	app.Use(logger.New(logger.Config{
		Format: "${ip} - [${time}] [req_id=${locals:request_id}] ${method} ${url} ${status}\n",
	}))
}

func corsConfig(c config.CORSConfig) cors.Config {
	cc := cors.Config{
		AllowOrigins:     c.AllowOrigins,
		AllowMethods:     c.AllowMethods,
		AllowHeaders:     c.AllowHeaders,
		AllowCredentials: c.AllowCredentials,
		MaxAge:           c.MaxAgeSeconds,
	}
	if len(cc.AllowMethods) == 0 {
		cc.AllowMethods = []string{fiber.MethodGet, fiber.MethodPost, fiber.MethodOptions}
	}
	return cc
}
