// Package config provides configuration management for the payoff calculator.
package config

import (
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/spf13/viper"

	"options-payoff/internal/errors"
)

// Config holds all application configuration.
type Config struct {
	Engine  EngineConfig  `mapstructure:"engine"`
	Chart   ChartConfig   `mapstructure:"chart"`
	UI      UIConfig      `mapstructure:"ui"`
	History HistoryConfig `mapstructure:"history"`
	Server  ServerConfig  `mapstructure:"server"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// EngineConfig holds evaluation engine configuration.
type EngineConfig struct {
	Step                float64 `mapstructure:"step"`
	RangePaddingPercent float64 `mapstructure:"range_padding_percent"`
}

// ChartConfig holds ASCII chart configuration.
type ChartConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// UIConfig holds UI-related configuration.
type UIConfig struct {
	ColorEnabled bool `mapstructure:"color_enabled"`
}

// HistoryConfig holds evaluation history configuration.
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DBPath  string `mapstructure:"db_path"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

// Addr returns the listen address in host:port form.
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Console    bool   `mapstructure:"console"`
	File       bool   `mapstructure:"file"`
	FilePath   string `mapstructure:"file_path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
}

// DefaultConfigDir returns the default configuration directory.
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".config/options-payoff"
	}
	return filepath.Join(home, ".config", "options-payoff")
}

// Default returns the configuration used when no config file exists.
func Default() *Config {
	configDir := DefaultConfigDir()
	return &Config{
		Engine: EngineConfig{
			Step:                1.0,
			RangePaddingPercent: 20.0,
		},
		Chart: ChartConfig{
			Width:  72,
			Height: 18,
		},
		UI: UIConfig{
			ColorEnabled: true,
		},
		History: HistoryConfig{
			Enabled: true,
			DBPath:  filepath.Join(configDir, "history.db"),
		},
		Server: ServerConfig{
			Host: "127.0.0.1",
			Port: 8080,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Console:    true,
			File:       true,
			FilePath:   filepath.Join(configDir, "logs", "payoff.log"),
			MaxSizeMB:  100,
			MaxBackups: 7,
			MaxAgeDays: 30,
		},
	}
}

// Load loads configuration from the specified directory.
// If configDir is empty, uses the default config directory.
func Load(configDir string) (*Config, error) {
	if configDir == "" {
		configDir = DefaultConfigDir()
	}

	cfg := Default()

	// Load main config
	if err := loadConfigFile(configDir, "config", cfg); err != nil {
		return nil, fmt.Errorf("loading config.toml: %w", err)
	}

	// Apply environment variable overrides
	applyEnvOverrides(cfg)

	// Expand ~ in file paths from the config file
	cfg.History.DBPath = expandPath(cfg.History.DBPath)
	cfg.Logging.FilePath = expandPath(cfg.Logging.FilePath)

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

func loadConfigFile(configDir, name string, target *Config) error {
	v := viper.New()
	v.SetConfigName(name)
	v.SetConfigType("toml")
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// First run: write a template for the user to edit and
			// continue with defaults.
			_ = createTemplateConfig(configDir, name)
			return nil
		}
		return err
	}

	return v.Unmarshal(target)
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("PAYOFF_DB_PATH"); v != "" {
		cfg.History.DBPath = v
	}
	if v := os.Getenv("PAYOFF_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("PAYOFF_SERVER_ADDR"); v != "" {
		if host, port, err := net.SplitHostPort(v); err == nil {
			if p, err := strconv.Atoi(port); err == nil {
				cfg.Server.Host = host
				cfg.Server.Port = p
			}
		}
	}
}

// Validate validates the configuration. Failures wrap ErrConfigInvalid.
func (c *Config) Validate() error {
	if c.Engine.Step <= 0 {
		return fmt.Errorf("%w: engine step must be positive, got %v", errors.ErrConfigInvalid, c.Engine.Step)
	}
	if c.Engine.RangePaddingPercent < 0 {
		return fmt.Errorf("%w: range_padding_percent must be non-negative, got %v", errors.ErrConfigInvalid, c.Engine.RangePaddingPercent)
	}

	if c.Chart.Width < 16 {
		return fmt.Errorf("%w: chart width must be at least 16, got %d", errors.ErrConfigInvalid, c.Chart.Width)
	}
	if c.Chart.Height < 4 {
		return fmt.Errorf("%w: chart height must be at least 4, got %d", errors.ErrConfigInvalid, c.Chart.Height)
	}

	if c.History.Enabled && c.History.DBPath == "" {
		return fmt.Errorf("%w: history.db_path must be set when history is enabled", errors.ErrConfigInvalid)
	}

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("%w: server port must be between 1 and 65535, got %d", errors.ErrConfigInvalid, c.Server.Port)
	}

	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: invalid log level %q (must be debug, info, warn or error)", errors.ErrConfigInvalid, c.Logging.Level)
	}

	return nil
}
