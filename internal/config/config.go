package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config represents the complete Pulse configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Reminder ReminderConfig `mapstructure:"reminder"`
	Paths    PathsConfig    `mapstructure:"paths"`
	UI       UIConfig       `mapstructure:"ui"`
	Logging  LoggingConfig  `mapstructure:"logging"`
}

// ServerConfig points the client at the dashboard backend
type ServerConfig struct {
	// Endpoint is the base URL of the backend, e.g. "http://localhost:3000"
	Endpoint string `mapstructure:"endpoint"`
	// TimeoutSeconds bounds each request (default: 10)
	TimeoutSeconds int `mapstructure:"timeout_seconds"`
}

// ReminderConfig controls the to-do reminder scanner
type ReminderConfig struct {
	// IntervalSeconds is how often the scanner wakes (default: 30)
	IntervalSeconds int `mapstructure:"interval_seconds"`
	// LeadMinutes is how far ahead of the due instant a reminder fires (default: 30)
	LeadMinutes int `mapstructure:"lead_minutes"`
}

// PathsConfig controls where Pulse stores local state
type PathsConfig struct {
	// StateFile is the SQLite file holding session and UI state.
	// If empty, defaults to <config dir>/state.db.
	// Supports ~ for home directory expansion.
	StateFile string `mapstructure:"state_file"`
}

// UIConfig controls terminal rendering
type UIConfig struct {
	// Color enables lipgloss styling; disabled automatically when
	// stdout is not a terminal (default: true)
	Color bool `mapstructure:"color"`
}

// LoggingConfig controls structured log output
type LoggingConfig struct {
	// Level is the slog level: "debug", "info", "warn", "error" (default: "warn")
	Level string `mapstructure:"level"`
}

func (s *ServerConfig) Timeout() time.Duration {
	return time.Duration(s.TimeoutSeconds) * time.Second
}

func (r *ReminderConfig) Interval() time.Duration {
	return time.Duration(r.IntervalSeconds) * time.Second
}

func (r *ReminderConfig) Lead() time.Duration {
	return time.Duration(r.LeadMinutes) * time.Minute
}

// ResolveStateFile returns the resolved local state path. An empty
// setting falls back to state.db inside the config directory.
func (p *PathsConfig) ResolveStateFile() string {
	if p.StateFile == "" {
		return filepath.Join(Dir(), "state.db")
	}
	path := p.StateFile
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	}
	return path
}

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Endpoint:       "http://localhost:3000",
			TimeoutSeconds: 10,
		},
		Reminder: ReminderConfig{
			IntervalSeconds: 30,
			LeadMinutes:     30,
		},
		Paths: PathsConfig{
			StateFile: "",
		},
		UI: UIConfig{
			Color: true,
		},
		Logging: LoggingConfig{
			Level: "warn",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults(v *viper.Viper) {
	defaults := Default()

	v.SetDefault("server.endpoint", defaults.Server.Endpoint)
	v.SetDefault("server.timeout_seconds", defaults.Server.TimeoutSeconds)

	v.SetDefault("reminder.interval_seconds", defaults.Reminder.IntervalSeconds)
	v.SetDefault("reminder.lead_minutes", defaults.Reminder.LeadMinutes)

	v.SetDefault("paths.state_file", defaults.Paths.StateFile)

	v.SetDefault("ui.color", defaults.UI.Color)

	v.SetDefault("logging.level", defaults.Logging.Level)
}

// Load reads the configuration from the config file and PULSE_*
// environment variables, falling back to defaults. A missing config
// file is not an error.
func Load() (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(Dir())
	v.SetEnvPrefix("PULSE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Dir returns the path to the user's config directory
func Dir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "pulse")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".pulse"
	}
	return filepath.Join(home, ".config", "pulse")
}

// File returns the path to the config file
func File() string {
	return filepath.Join(Dir(), "config.yaml")
}
