package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// envPrefix is the prefix for environment variable overrides, e.g.
// MENTORHUB_SERVER_PORT or MENTORHUB_DATABASE_URL.
const envPrefix = "MENTORHUB"

// Load reads configuration from environment variables and an optional
// config.yaml in the working directory. Environment variables take precedence
// over values from config files. Returns a populated Config struct or an
// error if loading/validation fails.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	// A missing config file is fine; env vars and defaults cover everything.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only resolves keys viper already knows about, so bind the
	// nested keys explicitly.
	for _, key := range []string{
		"server.port", "server.log_level",
		"database.url",
		"auth.jwt_secret", "auth.token_lifetime_minutes",
		"calendar.base_url", "calendar.api_key", "calendar.timeout_seconds",
		"cache.enabled", "cache.addr", "cache.password", "cache.db", "cache.ttl_seconds",
		"task.queue_size", "task.worker_count",
		"task.sweep_interval_seconds", "task.sweep_batch_size",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind env for %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// setDefaults registers defaults for everything that has a sane one. Secrets
// and connection URLs deliberately have no default.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")

	v.SetDefault("auth.token_lifetime_minutes", 60)

	v.SetDefault("calendar.timeout_seconds", 10)

	v.SetDefault("cache.enabled", false)
	v.SetDefault("cache.db", 0)
	v.SetDefault("cache.ttl_seconds", 300)

	v.SetDefault("task.queue_size", 100)
	v.SetDefault("task.worker_count", 2)
	v.SetDefault("task.sweep_interval_seconds", 60)
	v.SetDefault("task.sweep_batch_size", 50)
}
