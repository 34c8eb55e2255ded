package logs

import (
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/securewave/securewave_backend/config"
	"github.com/securewave/securewave_backend/pkg/constants"
)

// New builds a logger from config, supporting multi-output fan-out. The
// returned func flushes outputs that buffer (Loki); call it before exit.
func New(cfg *config.Config) (*slog.Logger, func()) {
	level := parseLevel(cfg.Logging.Level)
	isDev := strings.EqualFold(cfg.Server.Environment, constants.EnvDevelopment)
	var closers []func()

	var writers []io.Writer

	// Always write to stdout if enabled or nothing else is configured
	if cfg.Logging.Output.Stdout || (!cfg.Logging.Output.File.Enabled && !cfg.Logging.Output.Loki.Enabled) {
		writers = append(writers, os.Stdout)
	}

	// File output with rotation via lumberjack
	if cfg.Logging.Output.File.Enabled {
		rotator := &lumberjack.Logger{
			Filename:   cfg.Logging.Output.File.Path,
			MaxSize:    cfg.Logging.Output.File.MaxSizeMB,
			MaxBackups: cfg.Logging.Output.File.MaxBackups,
			MaxAge:     cfg.Logging.Output.File.MaxAgeDays,
			Compress:   cfg.Logging.Output.File.Compress,
		}
		writers = append(writers, rotator)
		closers = append(closers, func() { _ = rotator.Close() })
	}

	var handlers []slog.Handler

	if len(writers) > 0 {
		w := io.MultiWriter(writers...)
		opts := &slog.HandlerOptions{
			Level:     level,
			AddSource: isDev,
		}
		if strings.EqualFold(cfg.Logging.Format, "json") || !isDev {
			handlers = append(handlers, slog.NewJSONHandler(w, opts))
		} else {
			handlers = append(handlers, slog.NewTextHandler(w, opts))
		}
	}

	var lokiErr error
	if cfg.Logging.Output.Loki.Enabled {
		h, stop, err := newLokiHandler(cfg.Logging.Output.Loki, level)
		if err != nil {
			lokiErr = err
		} else {
			handlers = append(handlers, h)
			closers = append(closers, stop)
		}
	}

	logger := slog.New(fanOut(handlers)).With(
		slog.String("service", cfg.Observability.ServiceName),
		slog.String("version", cfg.Observability.ServiceVersion),
		slog.String("env", cfg.Server.Environment),
	)
	if lokiErr != nil {
		logger.Warn("loki output disabled", "error", lokiErr)
	}
	return logger, func() {
		for _, c := range closers {
			c()
		}
	}
}

func Default() *slog.Logger {
	h := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level:     slog.LevelInfo,
		AddSource: false,
	})
	return slog.New(h).With(slog.String("service", "securewave_backend"))
}

func fanOut(handlers []slog.Handler) slog.Handler {
	switch len(handlers) {
	case 0:
		return slog.NewJSONHandler(os.Stdout, nil)
	case 1:
		return handlers[0]
	default:
		return &multiHandler{handlers: handlers}
	}
}

func parseLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
