package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Focus    FocusConfig    `mapstructure:"focus" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port            int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel        string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	LogFormat       string `mapstructure:"log_format" validate:"oneof=json text"`
	ShutdownSeconds int    `mapstructure:"shutdown_seconds" validate:"gte=1"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	// Driver selects the storage backend.
	Driver string `mapstructure:"driver" validate:"required,oneof=postgres sqlite"`
	// URL is a Postgres connection URL or a SQLite file path (":memory:" allowed).
	URL          string `mapstructure:"url" validate:"required"`
	MaxOpenConns int    `mapstructure:"max_open_conns" validate:"gte=1"`
	// AutoMigrate applies pending migrations on startup.
	AutoMigrate bool `mapstructure:"auto_migrate"`
}

// AuthConfig contains token verification settings.
// JWTSecret is only required by the HTTP server; it is checked there.
type AuthConfig struct {
	JWTSecret            string `mapstructure:"jwt_secret" validate:"omitempty,min=32"`
	Issuer               string `mapstructure:"issuer"`
	TokenLifetimeMinutes int    `mapstructure:"token_lifetime_minutes" validate:"gte=1,lte=44640"`
}

// FocusConfig contains the caller-facing defaults of the focus list.
type FocusConfig struct {
	DefaultFocusLimit   int    `mapstructure:"default_focus_limit" validate:"gte=0,ltefield=MaxLimit"`
	DefaultWaitingLimit int    `mapstructure:"default_waiting_limit" validate:"gte=0,ltefield=MaxLimit"`
	MaxLimit            int    `mapstructure:"max_limit" validate:"gte=1"`
	DefaultMode         string `mapstructure:"default_mode" validate:"oneof=priority deadline successor_impact default"`
	// ConsistentSnapshot reads candidates and successor counts inside one
	// read-only transaction instead of two independent reads.
	ConsistentSnapshot bool `mapstructure:"consistent_snapshot"`
}
