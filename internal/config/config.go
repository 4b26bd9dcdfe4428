package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Auth     AuthConfig     `mapstructure:"auth" validate:"required"`
	Log      LogConfig      `mapstructure:"log" validate:"required"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
}

// ServerConfig contains HTTP server settings.
type ServerConfig struct {
	Port            int           `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	GinMode         string        `mapstructure:"gin_mode" validate:"required,oneof=debug release test"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// DatabaseConfig contains database connection settings.
// DSN is only consulted by the sqlite driver, where it is the database file (or ":memory:").
type DatabaseConfig struct {
	Driver   string `mapstructure:"driver" validate:"required,oneof=mysql postgres sqlite"`
	Host     string `mapstructure:"host" validate:"required_unless=Driver sqlite"`
	Port     string `mapstructure:"port" validate:"required_unless=Driver sqlite"`
	User     string `mapstructure:"user" validate:"required_unless=Driver sqlite"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name" validate:"required_unless=Driver sqlite"`
	DSN      string `mapstructure:"dsn" validate:"required_if=Driver sqlite"`
}

// AuthConfig contains token signing settings.
type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret" validate:"required"`
	TokenTTL  time.Duration `mapstructure:"token_ttl" validate:"gt=0"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level string `mapstructure:"level" validate:"required,oneof=debug info warn error"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

var validate = validator.New()

// envBindings maps configuration keys to the environment variables that override them.
var envBindings = map[string]string{
	"server.port":             "PORT",
	"server.gin_mode":         "GIN_MODE",
	"server.shutdown_timeout": "SHUTDOWN_TIMEOUT",
	"database.driver":         "DB_DRIVER",
	"database.host":           "DB_HOST",
	"database.port":           "DB_PORT",
	"database.user":           "DB_USER",
	"database.password":       "DB_PASSWORD",
	"database.name":           "DB_NAME",
	"database.dsn":            "DB_DSN",
	"auth.jwt_secret":         "JWT_SECRET",
	"auth.token_ttl":          "JWT_TTL",
	"log.level":               "LOG_LEVEL",
	"metrics.enabled":         "METRICS_ENABLED",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.gin_mode", "debug")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "3306")
	v.SetDefault("database.user", "root")
	v.SetDefault("database.password", "")
	v.SetDefault("database.name", "nest_db")
	v.SetDefault("database.dsn", "")
	v.SetDefault("auth.jwt_secret", "default_secret")
	v.SetDefault("auth.token_ttl", "1h")
	v.SetDefault("log.level", "info")
	v.SetDefault("metrics.enabled", true)
}

// Load reads configuration from defaults, an optional config file and the environment,
// in increasing order of precedence. An empty path skips the config file.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := validate.Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}
