// Package config loads app config from env and an optional .env file using Viper.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/labstack/gommon/random"
	"github.com/spf13/viper"
)

// Config holds application configuration loaded from the environment.
type Config struct {
	// HTTPAddr is the address the Echo server listens on.
	HTTPAddr string `mapstructure:"HTTP_ADDR"`
	// DatabaseURL is the Postgres DSN. Required.
	DatabaseURL string `mapstructure:"DATABASE_URL"`
	DBMaxConns  int32  `mapstructure:"DB_MAX_CONNS"`

	// JWTSecret verifies HS256 tokens when JWTJWKSURL is empty.
	JWTSecret string `mapstructure:"JWT_SECRET"`
	// JWTJWKSURL switches verification to keys fetched from the identity provider.
	JWTJWKSURL    string `mapstructure:"JWT_JWKS_URL"`
	JWTCookieName string `mapstructure:"JWT_COOKIE_NAME"`

	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	AccountCacheTTL     time.Duration `mapstructure:"ACCOUNT_CACHE_TTL"`
	OrgCacheTTL         time.Duration `mapstructure:"ORG_CACHE_TTL"`
	AdminReportInterval time.Duration `mapstructure:"ADMIN_REPORT_INTERVAL"`
	ShutdownTimeout     time.Duration `mapstructure:"SHUTDOWN_TIMEOUT"`

	// Env is the application environment ("development", "production").
	Env      string `mapstructure:"APP_ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// GeneratedSecret is set when JWTSecret was filled with a random value.
	GeneratedSecret bool `mapstructure:"-"`
}

// Load reads .env (if present), then builds and validates Config from the
// environment. Env vars override .env.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigFile(".env")
	v.SetConfigType("env")
	_ = v.ReadInConfig() // ignore missing .env

	v.AutomaticEnv()

	v.SetDefault("HTTP_ADDR", ":8080")
	v.SetDefault("DATABASE_URL", "")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("JWT_JWKS_URL", "")
	v.SetDefault("JWT_COOKIE_NAME", "jwt")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("ACCOUNT_CACHE_TTL", "5m")
	v.SetDefault("ORG_CACHE_TTL", "10m")
	v.SetDefault("ADMIN_REPORT_INTERVAL", "1h")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("config: DATABASE_URL must be set")
	}
	if cfg.HTTPAddr == "" {
		return nil, errors.New("config: HTTP_ADDR must be set")
	}
	if cfg.DBMaxConns <= 0 {
		return nil, fmt.Errorf("config: DB_MAX_CONNS must be positive, got %d", cfg.DBMaxConns)
	}
	if cfg.AdminReportInterval <= 0 {
		return nil, errors.New("config: ADMIN_REPORT_INTERVAL must be positive")
	}

	if cfg.JWTSecret == "" && cfg.JWTJWKSURL == "" {
		if cfg.IsProduction() {
			return nil, errors.New("config: JWT_SECRET or JWT_JWKS_URL must be set when APP_ENV=production")
		}
		cfg.JWTSecret = random.String(32)
		cfg.GeneratedSecret = true
	}

	return &cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
