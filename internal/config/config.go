package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	HTTP struct {
		Addr string
	}
	DB struct {
		Driver string
		DSN    string
	}
	JWT struct {
		Secret   string
		Lifetime time.Duration
	}
	Log struct {
		Level string
	}
	RateLimit RateLimit
	Env       string
}

// RateLimit configures the per-client token bucket applied to all API routes.
type RateLimit struct {
	RPS   float64
	Burst int
}

// IsProduction reports whether internal error detail should be masked in responses.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads config from environment (BOOKMARKD_ prefix) and optional bookmarkd.yaml.
func Load() (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("BOOKMARKD")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	v.SetConfigName("bookmarkd")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional config file

	v.SetDefault("http.addr", ":8080")
	v.SetDefault("jwt.lifetime", "24h")
	v.SetDefault("log.level", "info")
	v.SetDefault("env", "development")
	v.SetDefault("ratelimit.rps", 10.0)
	v.SetDefault("ratelimit.burst", 30)

	cfg := &Config{}
	cfg.HTTP.Addr = v.GetString("http.addr")
	cfg.DB.Driver = v.GetString("db.driver")
	cfg.DB.DSN = v.GetString("db.dsn")
	cfg.JWT.Secret = v.GetString("jwt.secret")
	cfg.Log.Level = v.GetString("log.level")
	cfg.Env = v.GetString("env")
	cfg.RateLimit.RPS = v.GetFloat64("ratelimit.rps")
	cfg.RateLimit.Burst = v.GetInt("ratelimit.burst")

	lifetime, err := time.ParseDuration(v.GetString("jwt.lifetime"))
	if err != nil {
		return nil, fmt.Errorf("invalid BOOKMARKD_JWT_LIFETIME: %w", err)
	}
	cfg.JWT.Lifetime = lifetime

	if cfg.DB.Driver == "" {
		return nil, fmt.Errorf("BOOKMARKD_DB_DRIVER is required (sqlite3, mysql, postgres)")
	}
	if cfg.DB.DSN == "" {
		return nil, fmt.Errorf("BOOKMARKD_DB_DSN is required")
	}
	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("BOOKMARKD_JWT_SECRET is required")
	}

	return cfg, nil
}
