package app

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"

	"github.com/securewave/securewave_backend/config"
	"github.com/securewave/securewave_backend/pkg/email"
	"github.com/securewave/securewave_backend/pkg/observability"
	redispkg "github.com/securewave/securewave_backend/pkg/redis"
)

// InfraModule provides all infrastructure dependencies.
var InfraModule = fx.Module("infra",
	fx.Provide(ProvideRedis),
	fx.Provide(ProvideEmailSender),
	fx.Provide(ProvideOTel),
	fx.Provide(ProvideDispatchMetrics),
)

// ProvideRedis connects to Redis when it is enabled. A nil client means the
// rate limiter keeps its counters in memory.
func ProvideRedis(lc fx.Lifecycle, cfg *config.Config) (*redis.Client, error) {
	if !cfg.Redis.Enabled {
		return nil, nil
	}
	rdb, err := redispkg.NewRedisFromCentral(context.Background(), cfg.Redis)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("closing Redis connection")
			return rdb.Close()
		},
	})
	return rdb, nil
}

func ProvideEmailSender(cfg *config.Config, logger *slog.Logger) (email.Sender, error) {
	return email.NewFromCentral(cfg.Email, logger)
}

func ProvideOTel(lc fx.Lifecycle, cfg *config.Config) (*observability.Provider, error) {
	if !cfg.Observability.Enabled {
		return nil, nil
	}
	provider, err := observability.InitTelemetry(context.Background(), observability.FromCentralConfig(cfg))
	if err != nil {
		return nil, err
	}
	slog.Info("observability initialized",
		"tracing", cfg.Observability.Tracing.Enabled,
		"metrics", cfg.Observability.Metrics.Enabled,
	)
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			slog.Debug("shutting down observability providers")
			return provider.Shutdown(ctx)
		},
	})
	return provider, nil
}

// ProvideDispatchMetrics depends on the OTel provider so the counters are
// created against the installed meter provider.
func ProvideDispatchMetrics(_ *observability.Provider) *observability.DispatchMetrics {
	return observability.NewDispatchMetrics()
}
