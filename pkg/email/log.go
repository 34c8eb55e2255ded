package email

import (
	"context"
	"log/slog"
)

// LogSender writes messages to the logger instead of delivering them. It is
// meant for local development where no relay is available.
type LogSender struct {
	cfg    Config
	logger *slog.Logger
}

func NewLogSender(cfg Config, logger *slog.Logger) *LogSender {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSender{cfg: cfg, logger: logger}
}

func (s *LogSender) Send(ctx context.Context, m Message) error {
	if !s.cfg.Enabled {
		return ErrDisabled{}
	}
	if _, err := buildMessage(s.cfg.From, m); err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "email (log driver)",
		"from", s.cfg.From,
		"to", m.To,
		"subject", m.Subject,
		"body", m.TextBody,
	)
	return nil
}
