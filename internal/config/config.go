package config

import (
	"fmt"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// Supported database drivers.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Server   Server   `yaml:"server"`
	Database Database `yaml:"database"`
	LogLevel int      `yaml:"log_level" env:"LOG_LEVEL"`
}

// Server contains HTTP server parameters.
type Server struct {
	Port           string   `yaml:"port" env:"SERVER_PORT"`
	GinMode        string   `yaml:"gin_mode" env:"GIN_MODE"`
	AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" envSeparator:","`
}

// Database contains database connection parameters. DSN, when set, is used
// verbatim instead of the one composed from the individual fields.
type Database struct {
	Driver     string `yaml:"driver" env:"DB_DRIVER"`
	Host       string `yaml:"host" env:"DB_HOST"`
	Port       string `yaml:"port" env:"DB_PORT"`
	User       string `yaml:"user" env:"DB_USER"`
	Password   string `yaml:"password" env:"DB_PASSWORD"`
	Name       string `yaml:"name" env:"DB_NAME"`
	DSN        string `yaml:"dsn" env:"DB_DSN"`
	LogQueries bool   `yaml:"log_queries" env:"DB_LOG_QUERIES"`
}

// Default returns the configuration used when neither a file nor the
// environment says otherwise.
func Default() *Config {
	return &Config{
		Server: Server{
			Port:           "8080",
			GinMode:        "debug",
			AllowedOrigins: []string{"*"},
		},
		Database: Database{
			Driver:   DriverMySQL,
			Host:     "localhost",
			Port:     "3306",
			User:     "taskuser",
			Password: "taskpassword",
			Name:     "task_management",
		},
	}
}

// Load builds the configuration from defaults, then the YAML file at path
// (skipped when path is empty), then environment variables.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file: %w", err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	switch cfg.Database.Driver {
	case DriverMySQL, DriverPostgres, DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Database.Driver)
	}

	return cfg, nil
}
