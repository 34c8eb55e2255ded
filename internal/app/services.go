package app

import (
	"context"
	"log/slog"

	"go.uber.org/fx"

	"github.com/securewave/securewave_backend/config"
	"github.com/securewave/securewave_backend/internal/service/dispatch"
	"github.com/securewave/securewave_backend/pkg/email"
	"github.com/securewave/securewave_backend/pkg/observability"
)

// ServiceModule provides all application service dependencies.
var ServiceModule = fx.Module("services",
	fx.Provide(
		ProvideDispatchService,
	),
)

func ProvideDispatchService(
	lc fx.Lifecycle,
	cfg *config.Config,
	sender email.Sender,
	logger *slog.Logger,
	metrics *observability.DispatchMetrics,
) dispatch.Service {
	svc := dispatch.New(dispatch.OptionsFromConfig(cfg), sender, logger, metrics)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			return svc.Shutdown(ctx)
		},
	})
	return svc
}
