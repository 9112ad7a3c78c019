package config

import "time"

// RateLimitConfig tunes the Redis token-bucket limiter. Each key gets a
// bucket of Capacity tokens refilled with RefillTokens every RefillInterval.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration // expiry of idle bucket state in Redis
	Prefix         string
}

// LoadRateLimitConfig builds a RateLimitConfig from environment variables.
// The defaults allow a small burst with a steady one-request-per-second
// refill, which is enough for interactive API use.
func LoadRateLimitConfig() RateLimitConfig {
	return RateLimitConfig{
		Enabled:        getenv("RATELIMIT_ENABLED", "true") == "true",
		Capacity:       atoi(getenv("RATELIMIT_CAPACITY", "20")),
		RefillTokens:   atoi(getenv("RATELIMIT_REFILL_TOKENS", "1")),
		RefillInterval: parseDur(getenv("RATELIMIT_REFILL_INTERVAL", "1s")),
		TTL:            parseDur(getenv("RATELIMIT_TTL", "10m")),
		Prefix:         getenv("RATELIMIT_PREFIX", "ratelimit"),
	}
}
