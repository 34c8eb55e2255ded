package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"server"`
	Site          SiteConfig          `mapstructure:"site"`
	Notification  NotificationConfig  `mapstructure:"notification"`
	Email         EmailConfig         `mapstructure:"email"`
	Redis         RedisConfig         `mapstructure:"redis"`
	RateLimit     RateLimitConfig     `mapstructure:"rate_limit"`
	Widgets       WidgetsConfig       `mapstructure:"widgets"`
	Observability ObservabilityConfig `mapstructure:"observability"`
	Logging       LoggingConfig       `mapstructure:"logging"`
}

type ServerConfig struct {
	Port           int        `mapstructure:"port"`
	TimeoutSeconds int        `mapstructure:"timeout_seconds"`
	Environment    string     `mapstructure:"environment"`
	Domain         string     `mapstructure:"domain"`
	StaticDir      string     `mapstructure:"static_dir"`
	CORS           CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	Enabled          bool     `mapstructure:"enabled"`
	AllowOrigins     []string `mapstructure:"allow_origins"`
	AllowMethods     []string `mapstructure:"allow_methods"`
	AllowHeaders     []string `mapstructure:"allow_headers"`
	AllowCredentials bool     `mapstructure:"allow_credentials"`
	MaxAgeSeconds    int      `mapstructure:"max_age_seconds"`
}

// SiteConfig describes the public website the forms live on.
type SiteConfig struct {
	Name string `mapstructure:"name"`
	// BackendURL is the base URL form submissions are posted to. It is
	// edited per deployment; there is no runtime discovery.
	BackendURL            string `mapstructure:"backend_url"`
	RequestTimeoutSeconds int    `mapstructure:"request_timeout_seconds"`
}

type NotificationConfig struct {
	// OperatorMailbox receives the internal alert for every submission.
	OperatorMailbox string `mapstructure:"operator_mailbox"`
	// ConfirmationPath is where the legacy subscription endpoint redirects on success.
	ConfirmationPath string `mapstructure:"confirmation_path"`
	// PhoneRegion is the default region used to normalize phone numbers in alerts.
	PhoneRegion string `mapstructure:"phone_region"`
	TeamName    string `mapstructure:"team_name"`
}

type EmailConfig struct {
	Enabled bool       `mapstructure:"enabled"`
	Driver  string     `mapstructure:"driver"` // smtp, log
	From    string     `mapstructure:"from"`
	SMTP    SMTPConfig `mapstructure:"smtp"`
}

type SMTPConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Username       string `mapstructure:"username"`
	Password       string `mapstructure:"password"`
	UseTLS         bool   `mapstructure:"use_tls"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type RedisConfig struct {
	Enabled             bool   `mapstructure:"enabled"`
	Addr                string `mapstructure:"addr"`
	DB                  int    `mapstructure:"db"`
	Username            string `mapstructure:"username"`
	Password            string `mapstructure:"password"`
	PoolSize            int    `mapstructure:"pool_size"`
	MinIdleConns        int    `mapstructure:"min_idle_conns"`
	DialTimeoutSeconds  int    `mapstructure:"dial_timeout_seconds"`
	ReadTimeoutSeconds  int    `mapstructure:"read_timeout_seconds"`
	WriteTimeoutSeconds int    `mapstructure:"write_timeout_seconds"`
}

type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerWindow int  `mapstructure:"requests_per_window"`
	WindowSeconds     int  `mapstructure:"window_seconds"`
}

type WidgetsConfig struct {
	Animation AnimationWidgetConfig `mapstructure:"animation"`
	Map       MapWidgetConfig       `mapstructure:"map"`
	Chat      ChatWidgetConfig      `mapstructure:"chat"`
}

type AnimationWidgetConfig struct {
	DurationMs int    `mapstructure:"duration_ms"`
	OffsetPx   int    `mapstructure:"offset_px"`
	Once       bool   `mapstructure:"once"`
	Easing     string `mapstructure:"easing"`
}

type MapWidgetConfig struct {
	ContainerID string  `mapstructure:"container_id"`
	Latitude    float64 `mapstructure:"latitude"`
	Longitude   float64 `mapstructure:"longitude"`
	Zoom        int     `mapstructure:"zoom"`
	MaxZoom     int     `mapstructure:"max_zoom"`
	TileURL     string  `mapstructure:"tile_url"`
	Attribution string  `mapstructure:"attribution"`
	PopupTitle  string  `mapstructure:"popup_title"`
	PopupText   string  `mapstructure:"popup_text"`
}

type ChatWidgetConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	ScriptURL    string `mapstructure:"script_url"`
	Intent       string `mapstructure:"intent"`
	ChatTitle    string `mapstructure:"chat_title"`
	AgentID      string `mapstructure:"agent_id"`
	LanguageCode string `mapstructure:"language_code"`
}

type ObservabilityConfig struct {
	Enabled        bool          `mapstructure:"enabled"`
	ServiceName    string        `mapstructure:"service_name"`
	ServiceVersion string        `mapstructure:"service_version"`
	Tracing        TracingConfig `mapstructure:"tracing"`
	Metrics        MetricsConfig `mapstructure:"metrics"`
}

type TracingConfig struct {
	Enabled      bool    `mapstructure:"enabled"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	OTLPInsecure bool    `mapstructure:"otlp_insecure"`
	SamplingRate float64 `mapstructure:"sampling_rate"`
}

type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

type LoggingConfig struct {
	Level  string       `mapstructure:"level"`  // debug, info, warn, error
	Format string       `mapstructure:"format"` // text, json
	Output OutputConfig `mapstructure:"output"`
}

type OutputConfig struct {
	Stdout bool          `mapstructure:"stdout"`
	File   FileLogConfig `mapstructure:"file"`
	Loki   LokiConfig    `mapstructure:"loki"`
}

type FileLogConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Path       string `mapstructure:"path"`        // e.g. "logs/app.log"
	MaxSizeMB  int    `mapstructure:"max_size_mb"` // rotate after N MB
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

type LokiConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Endpoint string `mapstructure:"endpoint"` // e.g. "http://localhost:3100"
	TenantID string `mapstructure:"tenant_id"`
	Username string `mapstructure:"username"` // for Grafana Cloud basic auth
	Password string `mapstructure:"password"`
}

// Validate checks the values every command needs. Server-only values are
// checked by ValidateServer.
func (c *Config) Validate() error {
	var errs []error

	if c.Site.BackendURL != "" {
		if _, err := url.ParseRequestURI(c.Site.BackendURL); err != nil {
			errs = append(errs, fmt.Errorf("site.backend_url: %w", err))
		}
	}
	switch strings.ToLower(c.Email.Driver) {
	case "", "smtp", "log":
	default:
		errs = append(errs, fmt.Errorf("email.driver: unknown driver %q", c.Email.Driver))
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		errs = append(errs, errors.New("redis.addr is required when redis is enabled"))
	}

	return errors.Join(errs...)
}

// ValidateServer checks the startup configuration of the notification
// dispatcher. Values are checked for presence only.
func (c *Config) ValidateServer() error {
	var errs []error

	if strings.TrimSpace(c.Notification.OperatorMailbox) == "" {
		errs = append(errs, errors.New("notification.operator_mailbox is required"))
	}
	if strings.TrimSpace(c.Email.From) == "" {
		errs = append(errs, errors.New("email.from is required"))
	}
	if c.Email.Enabled && !strings.EqualFold(c.Email.Driver, "log") && c.Email.SMTP.Host == "" {
		errs = append(errs, errors.New("email.smtp.host is required for the smtp driver"))
	}

	return errors.Join(errs...)
}
