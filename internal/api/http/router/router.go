package router

import (
	"log/slog"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gofiber/fiber/v3/middleware/healthcheck"
	"github.com/gofiber/fiber/v3/middleware/static"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/securewave/securewave_backend/config"
	"github.com/securewave/securewave_backend/internal/api/http/handler"
	"github.com/securewave/securewave_backend/internal/service/dispatch"
	"github.com/securewave/securewave_backend/pkg/widget"
)

// Module provides the Router to the fx graph.
var Module = fx.Module("router", fx.Provide(NewRouter))

type Params struct {
	fx.In

	Cfg         *config.Config
	Logger      *slog.Logger
	Redis       *redis.Client `optional:"true"`
	DispatchSvc dispatch.Service
}

type Router struct {
	p Params
}

func NewRouter(p Params) *Router {
	return &Router{p: p}
}

func (r *Router) Register(app *fiber.App) {
	// 1. Health & Metrics
	r.registerSystemRoutes(app)

	// 2. Initialize Handlers
	leadH := handler.NewLeadHandler(r.p.DispatchSvc, r.p.Cfg.Notification.ConfirmationPath)
	widgetH := handler.NewWidgetHandler(widget.FromConfig(r.p.Cfg.Widgets))
	if err := widgetH.Err(); err != nil {
		r.p.Logger.Warn("some widgets are misconfigured and will not be served", "error", err)
	}

	// 3. Delegate to sub-files
	r.registerLeadRoutes(app, leadH)
	r.registerSiteRoutes(app, widgetH)

	// 4. Static site, last so API routes win
	if dir := r.p.Cfg.Server.StaticDir; dir != "" {
		app.Use("/", static.New(dir))
	}
}

func (r *Router) registerSystemRoutes(app *fiber.App) {
	app.Get(healthcheck.LivenessEndpoint, healthcheck.New())
	app.Get(healthcheck.ReadinessEndpoint, healthcheck.New())
	app.Get(healthcheck.StartupEndpoint, healthcheck.New())

	if r.p.Cfg.Observability.Enabled && r.p.Cfg.Observability.Metrics.Enabled {
		path := r.p.Cfg.Observability.Metrics.Path
		if path == "" {
			path = "/metrics"
		}
		app.Get(path, adaptor.HTTPHandler(promhttp.Handler()))
	}
}
