package redis

import (
	"time"

	"github.com/samber/lo"

	"github.com/securewave/securewave_backend/config"
)

// Config holds Redis connection settings for the rate limiter store.
type Config struct {
	Addr     string
	DB       int
	Username string
	Password string

	PoolSize     int
	MinIdleConns int

	DialTimeoutSeconds  int
	ReadTimeoutSeconds  int
	WriteTimeoutSeconds int
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		Addr:                "localhost:6379",
		DB:                  0,
		PoolSize:            10,
		MinIdleConns:        2,
		DialTimeoutSeconds:  5,
		ReadTimeoutSeconds:  3,
		WriteTimeoutSeconds: 3,
	}
}

func (c Config) DialTimeout() time.Duration {
	return seconds(c.DialTimeoutSeconds, 5)
}

func (c Config) ReadTimeout() time.Duration {
	return seconds(c.ReadTimeoutSeconds, 3)
}

func (c Config) WriteTimeout() time.Duration {
	return seconds(c.WriteTimeoutSeconds, 3)
}

// FromCentralConfig converts central config.RedisConfig to package Config,
// filling unset pool and timeout values from DefaultConfig.
func FromCentralConfig(c config.RedisConfig) Config {
	def := DefaultConfig()
	return Config{
		Addr:                c.Addr,
		DB:                  c.DB,
		Username:            c.Username,
		Password:            c.Password,
		PoolSize:            positiveOr(c.PoolSize, def.PoolSize),
		MinIdleConns:        positiveOr(c.MinIdleConns, def.MinIdleConns),
		DialTimeoutSeconds:  positiveOr(c.DialTimeoutSeconds, def.DialTimeoutSeconds),
		ReadTimeoutSeconds:  positiveOr(c.ReadTimeoutSeconds, def.ReadTimeoutSeconds),
		WriteTimeoutSeconds: positiveOr(c.WriteTimeoutSeconds, def.WriteTimeoutSeconds),
	}
}

func positiveOr(v, fallback int) int {
	return lo.Ternary(v > 0, v, fallback)
}

func seconds(v, fallback int) time.Duration {
	return time.Duration(positiveOr(v, fallback)) * time.Second
}
