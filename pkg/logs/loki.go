package logs

import (
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/grafana/loki-client-go/loki"
	slogloki "github.com/samber/slog-loki/v3"

	"github.com/securewave/securewave_backend/config"
)

const lokiPushPath = "/loki/api/v1/push"

// newLokiHandler builds a batching Loki handler. The returned func stops the
// client and flushes pending batches.
func newLokiHandler(cfg config.LokiConfig, level slog.Level) (slog.Handler, func(), error) {
	pushURL, err := lokiPushURL(cfg)
	if err != nil {
		return nil, nil, err
	}

	lokiCfg, err := loki.NewDefaultConfig(pushURL)
	if err != nil {
		return nil, nil, fmt.Errorf("loki config: %w", err)
	}
	lokiCfg.TenantID = cfg.TenantID

	client, err := loki.New(lokiCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("loki client: %w", err)
	}

	h := slogloki.Option{Level: level, Client: client}.NewLokiHandler()
	return h, client.Stop, nil
}

// lokiPushURL returns the push endpoint, carrying basic auth credentials (for
// Grafana Cloud) as URL user info.
func lokiPushURL(cfg config.LokiConfig) (string, error) {
	u, err := url.Parse(strings.TrimRight(cfg.Endpoint, "/"))
	if err != nil {
		return "", fmt.Errorf("loki endpoint: %w", err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("loki endpoint %q must be an absolute URL", cfg.Endpoint)
	}
	if !strings.HasSuffix(u.Path, lokiPushPath) {
		u.Path += lokiPushPath
	}
	if cfg.Username != "" {
		u.User = url.UserPassword(cfg.Username, cfg.Password)
	}
	return u.String(), nil
}
