// Package config provides Viper-based configuration for jamajira
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/tomyedwab/jamajira/database"
)

// DefaultDatabaseFile is looked up in the parent of the working directory
// unless database.path is set.
const DefaultDatabaseFile = "JamaJiraConnectDataBase.db"

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	Database DatabaseConfig `mapstructure:"database"`
	Logging  LoggingConfig  `mapstructure:"logging"`
	Output   OutputConfig   `mapstructure:"output"`
}

type DatabaseConfig struct {
	Path   string `mapstructure:"path"`
	Driver string `mapstructure:"driver"`
}

type LoggingConfig struct {
	Level     string `mapstructure:"level"`
	Format    string `mapstructure:"format"`
	File      string `mapstructure:"file"`
	MaxSizeMB int    `mapstructure:"max_size_mb"`
	MaxFiles  int    `mapstructure:"max_files"`
}

type OutputConfig struct {
	Colors bool `mapstructure:"colors"`
}

// Overrides carries command line values that win over file and environment.
// Empty fields are ignored.
type Overrides struct {
	DatabasePath string
	Driver       string
	LogLevel     string
}

// Load reads configuration from file, JAMAJIRA_* environment variables and
// defaults, in that order of precedence after overrides.
func Load(cfgFile string, overrides Overrides) (*Config, error) {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(".jamajira")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/jamajira")
	}

	v.SetEnvPrefix("JAMAJIRA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	if overrides.DatabasePath != "" {
		v.Set("database.path", overrides.DatabasePath)
	}
	if overrides.Driver != "" {
		v.Set("database.driver", overrides.Driver)
	}
	if overrides.LogLevel != "" {
		v.Set("logging.level", overrides.LogLevel)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.path", DefaultDatabasePath())
	v.SetDefault("database.driver", database.DefaultDriver)

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")
	v.SetDefault("logging.file", "")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_files", 5)

	v.SetDefault("output.colors", true)
}

// DefaultDatabasePath places the database file next to the working
// directory, in its parent.
func DefaultDatabasePath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return DefaultDatabaseFile
	}
	return filepath.Join(filepath.Dir(cwd), DefaultDatabaseFile)
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.Database.Path) == "" {
		return fmt.Errorf("%w: database.path must not be empty", ErrInvalidConfig)
	}
	if !slices.Contains(database.SupportedDrivers(), cfg.Database.Driver) {
		return fmt.Errorf("%w: database.driver %q (must be one of %s)",
			ErrInvalidConfig, cfg.Database.Driver, strings.Join(database.SupportedDrivers(), ", "))
	}

	validLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("%w: logging.level %q (must be debug, info, warn, or error)", ErrInvalidConfig, cfg.Logging.Level)
	}
	validFormats := map[string]bool{"text": true, "json": true}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("%w: logging.format %q (must be text or json)", ErrInvalidConfig, cfg.Logging.Format)
	}
	if cfg.Logging.MaxSizeMB < 0 || cfg.Logging.MaxFiles < 0 {
		return fmt.Errorf("%w: logging.max_size_mb and logging.max_files must not be negative", ErrInvalidConfig)
	}
	return nil
}
