package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/quantmind-br/pri3o/internal/core"
	"github.com/quantmind-br/pri3o/internal/paths"
	"github.com/quantmind-br/pri3o/internal/security"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	Paths    PathsConfig    `mapstructure:"paths"`
	Launcher LauncherConfig `mapstructure:"launcher"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// PathsConfig contains path-related configuration
type PathsConfig struct {
	ConfigDir string `mapstructure:"config_dir"`
	DBFile    string `mapstructure:"db_file"`
	LogFile   string `mapstructure:"log_file"`
}

// LauncherConfig contains the session defaults that flags can override
type LauncherConfig struct {
	EntryType string `mapstructure:"entry_type"`
	Locale    string `mapstructure:"locale"`
	Picker    string `mapstructure:"picker"`
	Terminal  string `mapstructure:"terminal"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level string `mapstructure:"level"`
	Color string `mapstructure:"color"`
}

// Load loads configuration from file and environment using the global viper
func Load() (*Config, error) {
	return LoadWith(viper.GetViper(), paths.NewResolver())
}

// LoadWith loads configuration into v, resolving default paths with r
func LoadWith(v *viper.Viper, r *paths.Resolver) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("toml")

	v.AddConfigPath(r.ConfigDir())
	v.AddConfigPath(".")

	setDefaults(v, r)

	v.SetEnvPrefix("PRI3O")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: read config: %w", core.ErrInvalidConfig, err)
		}
		// Config file not found - use defaults
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("%w: unmarshal config: %w", core.ErrInvalidConfig, err)
	}

	cfg.Paths.ConfigDir = ExpandPath(r, cfg.Paths.ConfigDir)
	cfg.Paths.DBFile = ExpandPath(r, cfg.Paths.DBFile)
	cfg.Paths.LogFile = ExpandPath(r, cfg.Paths.LogFile)

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper, r *paths.Resolver) {
	configDir := r.ConfigDir()

	v.SetDefault("paths.config_dir", configDir)
	v.SetDefault("paths.db_file", filepath.Join(configDir, "dmenu.db"))
	v.SetDefault("paths.log_file", filepath.Join(configDir, "pri3o.log"))

	v.SetDefault("launcher.entry_type", string(core.EntryTypeName))
	v.SetDefault("launcher.locale", "")
	v.SetDefault("launcher.picker", "dmenu -i")
	v.SetDefault("launcher.terminal", "i3-sensible-terminal -e")

	// stdout belongs to the picker; keep stderr quiet by default
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.color", "auto")
}

// Validate checks values that would otherwise fail deep inside a session
func (c *Config) Validate() error {
	if _, err := core.ParseEntryType(c.Launcher.EntryType); err != nil {
		return err
	}

	if err := security.ValidatePath(c.Paths.DBFile); err != nil {
		return fmt.Errorf("%w: database: %w", core.ErrInvalidConfig, err)
	}

	if err := security.ValidateCommandLine(c.Launcher.Picker); err != nil {
		return fmt.Errorf("%w: picker: %w", core.ErrInvalidConfig, err)
	}

	if err := security.ValidateCommandLine(c.Launcher.Terminal); err != nil {
		return fmt.Errorf("%w: terminal: %w", core.ErrInvalidConfig, err)
	}

	switch c.Logging.Color {
	case "auto", "always", "never":
	default:
		return fmt.Errorf("%w: invalid logging color: %s", core.ErrInvalidConfig, c.Logging.Color)
	}

	return nil
}

// ExpandPath expands ~ and environment variables in paths
func ExpandPath(r *paths.Resolver, path string) string {
	if path == "" {
		return path
	}

	path = r.ExpandHome(path)

	return os.ExpandEnv(path)
}
