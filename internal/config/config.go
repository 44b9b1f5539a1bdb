package config

import (
	"fmt"

	pkgconfig "github.com/vivass/storefront/pkg/config"
)

// Config holds all configuration for the storefront service.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Remote collaborators
	ProductServiceURL string `env:"PRODUCT_SERVICE_URL" envDefault:"http://localhost:8001"`
	OrderServiceURL   string `env:"ORDER_SERVICE_URL" envDefault:"http://localhost:8002"`

	// Redis (session carts)
	RedisAddr string `env:"REDIS_ADDR" envDefault:"localhost:6379"`
	RedisPass string `env:"REDIS_PASSWORD" envDefault:""`
	RedisDB   int    `env:"REDIS_DB" envDefault:"0"`

	// Cart TTL in hours. 0 means carts never expire.
	CartTTL int `env:"CART_TTL_HOURS" envDefault:"0"`

	// Kafka
	KafkaBrokers []string `env:"KAFKA_BROKERS" envDefault:"localhost:9092" envSeparator:","`

	// Admin access
	AdminPassword string `env:"ADMIN_PASSWORD" envDefault:"vivass2024"`
	JWTSecret     string `env:"JWT_SECRET" envDefault:"dev-secret-change-me"`

	// Login rate limit (per IP)
	LoginRateRPS   int `env:"LOGIN_RATE_RPS" envDefault:"1"`
	LoginRateBurst int `env:"LOGIN_RATE_BURST" envDefault:"5"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Tracing
	TracingEnabled  bool    `env:"TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint    string  `env:"OTLP_ENDPOINT" envDefault:"localhost:4318"`
	TraceSampleRate float64 `env:"TRACE_SAMPLE_RATE" envDefault:"1.0"`
}

// Load reads configuration from environment variables. Invariant checks run
// through the loader's Validate hook.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load storefront config: %w", err)
	}
	return cfg, nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid HTTP port: %d", c.HTTPPort)
	}
	if c.ProductServiceURL == "" {
		return fmt.Errorf("product service URL is required")
	}
	if c.OrderServiceURL == "" {
		return fmt.Errorf("order service URL is required")
	}
	if c.AdminPassword == "" {
		return fmt.Errorf("admin password is required")
	}
	if c.JWTSecret == "" {
		return fmt.Errorf("JWT secret is required")
	}
	if c.CartTTL < 0 {
		return fmt.Errorf("cart TTL must not be negative: %d", c.CartTTL)
	}
	return nil
}
