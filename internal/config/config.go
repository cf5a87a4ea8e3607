package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the complete application configuration
type Config struct {
	Workspace WorkspaceConfig `mapstructure:"workspace"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Export    ExportConfig    `mapstructure:"export"`
}

// WorkspaceConfig identifies the workspace all commands operate on. The
// identity is fixed at startup; nothing creates workspaces lazily mid-run.
type WorkspaceConfig struct {
	ID   string `mapstructure:"id"`
	Name string `mapstructure:"name"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir          string        `mapstructure:"dir"`
	Filename     string        `mapstructure:"filename"`
	QueryTimeout time.Duration `mapstructure:"query_timeout"`
}

// LoggingConfig defines logging behavior
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ExportConfig holds export command defaults
type ExportConfig struct {
	DefaultFormat string `mapstructure:"default_format"`
}

// Path returns the full path to the database file.
func (d DatabaseConfig) Path() string {
	return filepath.Join(d.Dir, d.Filename)
}

// Load reads configuration from an optional config file and RT_* environment
// variables. An empty configPath falls back to the default search location.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(defaultConfigDir())
	}
	v.SetEnvPrefix("RT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// Missing files are fine, the defaults and environment cover everything.
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !notFound && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("workspace.id", "default")
	v.SetDefault("workspace.name", "Default Workspace")

	v.SetDefault("database.dir", defaultConfigDir())
	v.SetDefault("database.filename", "rt.db")
	v.SetDefault("database.query_timeout", 10*time.Second)

	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "console")

	v.SetDefault("export.default_format", "csv")
}

func defaultConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return filepath.Join(homeDir, ".rt")
}

func validate(config *Config) error {
	if config.Workspace.ID == "" {
		return fmt.Errorf("workspace.id must not be empty")
	}
	if config.Workspace.Name == "" {
		return fmt.Errorf("workspace.name must not be empty")
	}
	if config.Database.Filename == "" {
		return fmt.Errorf("database.filename must not be empty")
	}
	if config.Database.QueryTimeout <= 0 {
		return fmt.Errorf("database.query_timeout must be positive")
	}
	switch config.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("logging.level must be one of debug, info, warn, error")
	}
	switch config.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format must be console or json")
	}
	return nil
}
