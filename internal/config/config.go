// Package config handles configuration loading for MarketMind.
// It supports YAML config files with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment override.
const EnvPrefix = "MARKETMIND"

// Config represents the complete application configuration.
type Config struct {
	Provider ProviderConfig `mapstructure:"provider" yaml:"provider"`
	News     NewsConfig     `mapstructure:"news"     yaml:"news"`
	Analysis AnalysisConfig `mapstructure:"analysis" yaml:"analysis"`
	API      APIConfig      `mapstructure:"api"      yaml:"api"`
	Logging  LoggingConfig  `mapstructure:"logging"  yaml:"logging"`
}

// ProviderConfig holds market-data provider settings.
type ProviderConfig struct {
	QuoteURL           string  `mapstructure:"quote_url"            yaml:"quote_url"`
	ChartURL           string  `mapstructure:"chart_url"            yaml:"chart_url"`
	TimeoutSec         int     `mapstructure:"timeout_sec"          yaml:"timeout_sec"`
	RequestsPerSec     float64 `mapstructure:"requests_per_sec"     yaml:"requests_per_sec"`
	Burst              int     `mapstructure:"burst"                yaml:"burst"`
	BreakerMaxRequests uint32  `mapstructure:"breaker_max_requests" yaml:"breaker_max_requests"`
	BreakerTimeoutSec  int     `mapstructure:"breaker_timeout_sec"  yaml:"breaker_timeout_sec"`
	UserAgent          string  `mapstructure:"user_agent"           yaml:"user_agent"`
}

// NewsConfig holds news feed settings.
type NewsConfig struct {
	SearchURL    string `mapstructure:"search_url"    yaml:"search_url"`
	Language     string `mapstructure:"language"      yaml:"language"` // e.g., "en-IN"
	Region       string `mapstructure:"region"        yaml:"region"`   // e.g., "IN"
	MaxHeadlines int    `mapstructure:"max_headlines" yaml:"max_headlines"`
	TimeoutSec   int    `mapstructure:"timeout_sec"   yaml:"timeout_sec"`
}

// AnalysisConfig holds analysis window settings, in calendar days.
type AnalysisConfig struct {
	PsychologyWindowDays int `mapstructure:"psychology_window_days" yaml:"psychology_window_days"`
	AlertWindowDays      int `mapstructure:"alert_window_days"      yaml:"alert_window_days"`
}

// APIConfig holds HTTP API server settings.
type APIConfig struct {
	Host        string   `mapstructure:"host"         yaml:"host"`
	Port        int      `mapstructure:"port"         yaml:"port"`
	CORSOrigins []string `mapstructure:"cors_origins" yaml:"cors_origins"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `mapstructure:"format" yaml:"format"` // "text" or "json"
}

// Addr returns the listen address of the API server.
func (c APIConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// Load reads the configuration from file and environment variables.
// Config file search order:
//  1. ./config/config.yaml (project root)
//  2. ~/.marketmind/config.yaml (home directory)
//  3. /etc/marketmind/config.yaml (system)
//
// A .env file in the working directory is loaded first, if present.
// Environment variables override config file values.
// Format: MARKETMIND_<SECTION>_<KEY>, e.g., MARKETMIND_API_PORT
func Load() (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(filepath.Join(homeDir(), ".marketmind"))
	v.AddConfigPath("/etc/marketmind")

	// Read config file (not required to exist)
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	return unmarshal(v)
}

// LoadFromFile reads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	if err := loadDotEnv(); err != nil {
		return nil, err
	}

	v := newViper()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	return unmarshal(v)
}

// Validate rejects configurations the analyzer cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.Provider.TimeoutSec <= 0 {
		errs = append(errs, fmt.Errorf("provider.timeout_sec must be positive, got %d", c.Provider.TimeoutSec))
	}
	if c.Provider.RequestsPerSec <= 0 {
		errs = append(errs, fmt.Errorf("provider.requests_per_sec must be positive, got %g", c.Provider.RequestsPerSec))
	}
	if c.Provider.Burst <= 0 {
		errs = append(errs, fmt.Errorf("provider.burst must be positive, got %d", c.Provider.Burst))
	}
	if c.News.TimeoutSec <= 0 {
		errs = append(errs, fmt.Errorf("news.timeout_sec must be positive, got %d", c.News.TimeoutSec))
	}
	if c.News.MaxHeadlines <= 0 {
		errs = append(errs, fmt.Errorf("news.max_headlines must be positive, got %d", c.News.MaxHeadlines))
	}
	if c.Analysis.PsychologyWindowDays <= 0 {
		errs = append(errs, fmt.Errorf("analysis.psychology_window_days must be positive, got %d", c.Analysis.PsychologyWindowDays))
	}
	if c.Analysis.AlertWindowDays <= 0 {
		errs = append(errs, fmt.Errorf("analysis.alert_window_days must be positive, got %d", c.Analysis.AlertWindowDays))
	}
	if c.Analysis.AlertWindowDays > c.Analysis.PsychologyWindowDays {
		errs = append(errs, fmt.Errorf("analysis.alert_window_days (%d) exceeds psychology_window_days (%d)",
			c.Analysis.AlertWindowDays, c.Analysis.PsychologyWindowDays))
	}
	if c.API.Port <= 0 || c.API.Port > 65535 {
		errs = append(errs, fmt.Errorf("api.port out of range: %d", c.API.Port))
	}
	switch c.Logging.Format {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format))
	}

	return errors.Join(errs...)
}

func newViper() *viper.Viper {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// setDefaults sets sensible defaults for all config values.
func setDefaults(v *viper.Viper) {
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
}

// defaults maps every config key to its default value.
var defaults = map[string]any{
	// Provider defaults
	"provider.quote_url":            "https://query1.finance.yahoo.com/v10/finance/quoteSummary",
	"provider.chart_url":            "https://query1.finance.yahoo.com/v8/finance/chart",
	"provider.timeout_sec":          15,
	"provider.requests_per_sec":     5.0,
	"provider.burst":                5,
	"provider.breaker_max_requests": 3,
	"provider.breaker_timeout_sec":  30,
	"provider.user_agent":           "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/131.0.0.0 Safari/537.36",

	// News defaults
	"news.search_url":    "https://news.google.com/rss/search",
	"news.language":      "en-IN",
	"news.region":        "IN",
	"news.max_headlines": 5,
	"news.timeout_sec":   15,

	// Analysis defaults
	"analysis.psychology_window_days": 30,
	"analysis.alert_window_days":      7,

	// API defaults
	"api.host":         "0.0.0.0",
	"api.port":         8080,
	"api.cors_origins": []string{"*"},

	// Logging defaults
	"logging.level":  "info",
	"logging.format": "text",
}

// loadDotEnv loads ./.env into the process environment. A missing file is
// not an error; existing variables are not overwritten.
func loadDotEnv() error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("error loading .env: %w", err)
	}
	return nil
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
