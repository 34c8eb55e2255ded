package middleware

import (
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/limiter"
	fiberredis "github.com/gofiber/storage/redis/v3"
	"github.com/redis/go-redis/v9"

	"github.com/securewave/securewave_backend/config"
)

const msgRateLimited = "Too many requests. Please try again later."

// NewLimiter limits submissions per client IP with a sliding window. Counters
// live in Redis when rdb is set so several instances share them, and in
// process memory otherwise.
func NewLimiter(cfg config.RateLimitConfig, rdb *redis.Client) fiber.Handler {
	max := cfg.RequestsPerWindow
	if max <= 0 {
		max = 20
	}
	window := time.Duration(cfg.WindowSeconds) * time.Second
	if window <= 0 {
		window = 30 * time.Second
	}

	lc := limiter.Config{
		// sliding window
		Max:               max,
		Expiration:        window,
		LimiterMiddleware: limiter.SlidingWindow{},
		LimitReached: func(c fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{"error": msgRateLimited})
		},
	}
	if rdb != nil {
		lc.Storage = fiberredis.NewFromConnection(rdb)
	}
	return limiter.New(lc)
}
