package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server     ServerConfig     `mapstructure:"server" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database" validate:"required"`
	Validation ValidationConfig `mapstructure:"validation"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port                   int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel               string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	ShutdownTimeoutSeconds int    `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`
}

// Database drivers understood by the bootstrap layer.
const (
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// DatabaseConfig selects and addresses the post store.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=redis postgres memory"`
	// URL is a redis:// or postgres:// connection string; unused by the memory driver.
	URL       string `mapstructure:"url" validate:"required_unless=Driver memory,omitempty,url"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

// ValidationConfig tunes the request validation gate.
type ValidationConfig struct {
	// ForbidUnknownFields rejects request properties that no schema declares.
	ForbidUnknownFields bool `mapstructure:"forbid_unknown_fields"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path" validate:"required_if=Enabled true,omitempty,startswith=/"`
}
