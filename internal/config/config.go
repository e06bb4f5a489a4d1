// Package config loads service settings from an optional config.yaml, a .env
// file and ERP_* environment variables, in increasing order of precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rogerio-castellano/erp-analytics/internal/analytics"
	"github.com/spf13/viper"
)

const (
	DriverMemory   = "memory"
	DriverPostgres = "postgres"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	HTTP      HTTPConfig      `mapstructure:"http"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"ratelimit"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Alerts    AlertsConfig    `mapstructure:"alerts"`
}

type HTTPConfig struct {
	Addr string `mapstructure:"addr"`
}

type StorageConfig struct {
	Driver string `mapstructure:"driver"`
}

type DatabaseConfig struct {
	URL     string `mapstructure:"url"`
	Migrate bool   `mapstructure:"migrate"`
}

type RedisConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Addr    string `mapstructure:"addr"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	TokenTTL  time.Duration `mapstructure:"token_ttl"`
}

type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

type RateLimitConfig struct {
	RPS   float64 `mapstructure:"rps"`
	Burst int     `mapstructure:"burst"`
}

type AnalyticsConfig struct {
	DefaultWindow int `mapstructure:"default_window"`
	TopProducts   int `mapstructure:"top_products"`
}

type AlertsConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	From             string        `mapstructure:"from"`
	To               string        `mapstructure:"to"`
	SMTPServer       string        `mapstructure:"smtp_server"`
	SMTPPort         string        `mapstructure:"smtp_port"`
	SMTPUser         string        `mapstructure:"smtp_user"`
	SMTPPassword     string        `mapstructure:"smtp_pass"`
	SMTPAuthDisabled bool          `mapstructure:"smtp_auth_disabled"`
	Interval         time.Duration `mapstructure:"interval"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("http.addr", ":8080")
	v.SetDefault("storage.driver", DriverMemory)
	v.SetDefault("database.url", "")
	v.SetDefault("database.migrate", true)
	v.SetDefault("redis.enabled", false)
	v.SetDefault("redis.addr", "erp-redis:6379")
	v.SetDefault("auth.jwt_secret", "super-secret-key")
	v.SetDefault("auth.token_ttl", 15*time.Minute)
	v.SetDefault("cache.ttl", 5*time.Minute)
	v.SetDefault("ratelimit.rps", 5)
	v.SetDefault("ratelimit.burst", 10)
	v.SetDefault("analytics.default_window", int(analytics.Month))
	v.SetDefault("analytics.top_products", analytics.DefaultTopProducts)
	v.SetDefault("alerts.enabled", false)
	v.SetDefault("alerts.from", "")
	v.SetDefault("alerts.to", "")
	v.SetDefault("alerts.smtp_server", "")
	v.SetDefault("alerts.smtp_port", "587")
	v.SetDefault("alerts.smtp_user", "")
	v.SetDefault("alerts.smtp_pass", "")
	v.SetDefault("alerts.smtp_auth_disabled", false)
	v.SetDefault("alerts.interval", 24*time.Hour)
}

// Load reads the configuration. configPaths replaces the default search
// locations for config.yaml.
func Load(configPaths ...string) (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	if len(configPaths) == 0 {
		configPaths = []string{".", "/etc/erp-analytics/"}
	}
	for _, p := range configPaths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix("ERP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory:
	case DriverPostgres:
		if c.Database.URL == "" {
			return fmt.Errorf("%w: database.url is required for the postgres driver", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown storage driver %q", ErrInvalidConfig, c.Storage.Driver)
	}

	if _, err := analytics.ParseWindow(c.Analytics.DefaultWindow); err != nil {
		return fmt.Errorf("%w: analytics.default_window: %v", ErrInvalidConfig, err)
	}
	if c.Analytics.TopProducts <= 0 {
		return fmt.Errorf("%w: analytics.top_products must be positive", ErrInvalidConfig)
	}
	if c.RateLimit.RPS <= 0 || c.RateLimit.Burst <= 0 {
		return fmt.Errorf("%w: ratelimit.rps and ratelimit.burst must be positive", ErrInvalidConfig)
	}
	if c.Auth.JWTSecret == "" || c.Auth.TokenTTL <= 0 {
		return fmt.Errorf("%w: auth.jwt_secret and auth.token_ttl are required", ErrInvalidConfig)
	}
	if c.Alerts.Enabled && (c.Alerts.Interval <= 0 || c.Alerts.From == "" || c.Alerts.To == "") {
		return fmt.Errorf("%w: alerts need from, to and a positive interval", ErrInvalidConfig)
	}
	return nil
}
