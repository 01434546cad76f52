package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	Port            string
	UpstreamTimeout time.Duration

	// Backend REST API (order placement, reference data, history)
	APIBaseURL string

	// Payment processor
	StripePublishableKey string
	StripeBaseURL        string

	// Session cache; empty means in-memory
	RedisAddr  string
	SessionTTL time.Duration

	// Checkout events; empty disables publishing
	RabbitURL string
}

func Load() Config {
	return Config{
		Port:            getenv("PORT", "8084"),
		UpstreamTimeout: parseDuration(getenv("UPSTREAM_TIMEOUT", "10s"), 10*time.Second),

		APIBaseURL: getenv("API_BASE_URL", "http://api-gateway-go:8080"),

		StripePublishableKey: getenv("STRIPE_PUBLISHABLE_KEY", ""),
		StripeBaseURL:        getenv("STRIPE_BASE_URL", ""),

		RedisAddr:  getenv("REDIS_ADDR", ""),
		SessionTTL: parseDuration(getenv("SESSION_TTL", "30m"), 30*time.Minute),

		RabbitURL: getenv("RABBITMQ_URL", ""),
	}
}

func getenv(k, def string) string {
	if v := os.Getenv(k); strings.TrimSpace(v) != "" {
		return v
	}
	return def
}

func parseDuration(v string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
