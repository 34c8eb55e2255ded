package email

import (
	"strings"
	"time"

	"github.com/securewave/securewave_backend/config"
)

const (
	DriverSMTP = "smtp"
	DriverLog  = "log"
)

// Config holds email service configuration
type Config struct {
	Enabled bool
	Driver  string
	From    string

	// SMTP settings
	SMTPHost           string
	SMTPPort           int
	SMTPUsername       string
	SMTPPassword       string
	SMTPUseTLS         bool
	SMTPTimeoutSeconds int
}

// DefaultConfig returns sensible defaults for email configuration
func DefaultConfig() Config {
	return Config{
		Enabled:            false,
		Driver:             DriverSMTP,
		SMTPPort:           587,
		SMTPTimeoutSeconds: 30,
	}
}

// SMTPTimeout returns the SMTP timeout as a duration
func (c Config) SMTPTimeout() time.Duration {
	if c.SMTPTimeoutSeconds <= 0 {
		return 30 * time.Second
	}
	return time.Duration(c.SMTPTimeoutSeconds) * time.Second
}

// FromCentralConfig converts central config.EmailConfig to package Config,
// keeping DefaultConfig values for an unset driver, port or timeout.
func FromCentralConfig(c config.EmailConfig) Config {
	cfg := DefaultConfig()
	cfg.Enabled = c.Enabled
	cfg.From = c.From
	cfg.SMTPHost = c.SMTP.Host
	cfg.SMTPUsername = c.SMTP.Username
	cfg.SMTPPassword = c.SMTP.Password
	cfg.SMTPUseTLS = c.SMTP.UseTLS

	if driver := strings.ToLower(strings.TrimSpace(c.Driver)); driver != "" {
		cfg.Driver = driver
	}
	if c.SMTP.Port > 0 {
		cfg.SMTPPort = c.SMTP.Port
	}
	if c.SMTP.TimeoutSeconds > 0 {
		cfg.SMTPTimeoutSeconds = c.SMTP.TimeoutSeconds
	}
	return cfg
}
