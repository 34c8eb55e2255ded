package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/securewave/securewave_backend/pkg/constants"
)

func ReadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigName(constants.ConfigName)
	v.SetConfigType(constants.ConfigFormat)
	v.AddConfigPath(configPath)

	setDefaults(v)

	// Allow env vars to override config values.
	// e.g. SECUREWAVE_EMAIL_SMTP_HOST overrides email.smtp.host
	v.SetEnvPrefix(constants.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The config file is optional; deployments may configure everything via env.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &config, nil
}

// Load reads the configuration from the directory holding cfgFile, the value
// of the --config flag.
func Load(cfgFile string) (*Config, error) {
	return ReadConfig(filepath.Dir(cfgFile))
}

// setDefaults registers every key so AutomaticEnv can override keys that are
// absent from the file.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 3000)
	v.SetDefault("server.timeout_seconds", 15)
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.static_dir", "public")
	v.SetDefault("server.cors.enabled", true)
	v.SetDefault("server.cors.allow_origins", []string{"*"})

	v.SetDefault("site.name", "SecureWave")
	v.SetDefault("site.backend_url", "http://localhost:3000")
	v.SetDefault("site.request_timeout_seconds", 30)

	v.SetDefault("notification.operator_mailbox", "")
	v.SetDefault("notification.confirmation_path", "/thank_you.html")
	v.SetDefault("notification.phone_region", "ZA")
	v.SetDefault("notification.team_name", "The Securewave Team")

	v.SetDefault("email.enabled", true)
	v.SetDefault("email.driver", "smtp")
	v.SetDefault("email.from", "")
	v.SetDefault("email.smtp.host", "")
	v.SetDefault("email.smtp.port", 587)
	v.SetDefault("email.smtp.username", "")
	v.SetDefault("email.smtp.password", "")
	v.SetDefault("email.smtp.use_tls", false)
	v.SetDefault("email.smtp.timeout_seconds", 30)

	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_window", 20)
	v.SetDefault("rate_limit.window_seconds", 30)

	v.SetDefault("widgets.animation.duration_ms", 700)
	v.SetDefault("widgets.animation.offset_px", 100)
	v.SetDefault("widgets.animation.once", true)
	v.SetDefault("widgets.animation.easing", "ease-out-cubic")
	v.SetDefault("widgets.map.container_id", "leaflet-map")
	v.SetDefault("widgets.map.latitude", -34.002546)
	v.SetDefault("widgets.map.longitude", 18.531969)
	v.SetDefault("widgets.map.zoom", 15)
	v.SetDefault("widgets.map.max_zoom", 19)
	v.SetDefault("widgets.map.tile_url", "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png")
	v.SetDefault("widgets.map.attribution", `&copy; <a href="https://www.openstreetmap.org/copyright">OpenStreetMap</a> contributors`)
	v.SetDefault("widgets.map.popup_title", "SecureWave Office")
	v.SetDefault("widgets.map.popup_text", "11 Hilton Road, Lansdowne")
	v.SetDefault("widgets.chat.enabled", true)
	v.SetDefault("widgets.chat.script_url", "https://www.gstatic.com/dialogflow-console/fast/df-messenger/bootstrap.js?v=1")
	v.SetDefault("widgets.chat.intent", "WELCOME")
	v.SetDefault("widgets.chat.chat_title", "SecureWave AI Chatbot")
	v.SetDefault("widgets.chat.agent_id", "securewave-bot-project")
	v.SetDefault("widgets.chat.language_code", "en")

	v.SetDefault("observability.enabled", false)
	v.SetDefault("observability.service_name", "securewave_backend")
	v.SetDefault("observability.service_version", "dev")
	v.SetDefault("observability.metrics.path", "/metrics")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.output.stdout", true)
}
