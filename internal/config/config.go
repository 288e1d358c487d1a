// Package config loads and validates application configuration from
// environment variables and optional config files.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"     validate:"required"`
	Calendar CalendarConfig `mapstructure:"calendar" validate:"required"`
	Cache    CacheConfig    `mapstructure:"cache"`
	Task     TaskConfig     `mapstructure:"task"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required,url"`
}

// AuthConfig contains the settings for validating bearer tokens. Token
// issuance is owned by the account service; this backend only verifies.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret"             validate:"required,min=32"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"required,gt=0"`
}

// CalendarConfig contains the settings for the external calendar event
// provider invoked when a session request is accepted.
type CalendarConfig struct {
	BaseURL        string `mapstructure:"base_url"        validate:"required,url"`
	APIKey         string `mapstructure:"api_key"         validate:"required"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds" validate:"gte=0"`
}

// CacheConfig contains the settings for the optional Redis profile-stats
// cache. When Enabled is false the stats endpoint reads straight from the
// database.
type CacheConfig struct {
	Enabled    bool   `mapstructure:"enabled"`
	Addr       string `mapstructure:"addr"        validate:"required_if=Enabled true"`
	Password   string `mapstructure:"password"`
	DB         int    `mapstructure:"db"          validate:"gte=0"`
	TTLSeconds int    `mapstructure:"ttl_seconds" validate:"gte=0"`
}

// TaskConfig contains the settings for the background task runner and the
// session completion sweeper.
type TaskConfig struct {
	QueueSize            int `mapstructure:"queue_size"             validate:"gt=0"`
	WorkerCount          int `mapstructure:"worker_count"           validate:"gt=0"`
	SweepIntervalSeconds int `mapstructure:"sweep_interval_seconds" validate:"gt=0"`
	SweepBatchSize       int `mapstructure:"sweep_batch_size"       validate:"gt=0"`
}
