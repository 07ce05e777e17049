package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// SettingSource represents where a setting's value comes from.
type SettingSource string

const (
	SourceEnv     SettingSource = "env"
	SourceConfig  SettingSource = "config"
	SourceDefault SettingSource = "default"
)

// SettingStatus describes one effective configuration value.
type SettingStatus struct {
	Key    string        `json:"key"`
	Value  string        `json:"value"`
	Source SettingSource `json:"source"`
}

// Describe returns the effective value and source of every setting, sorted
// by key.
func Describe(cfg *Config) []SettingStatus {
	values := map[string]any{
		"provider.quote_url":              cfg.Provider.QuoteURL,
		"provider.chart_url":              cfg.Provider.ChartURL,
		"provider.timeout_sec":            cfg.Provider.TimeoutSec,
		"provider.requests_per_sec":       cfg.Provider.RequestsPerSec,
		"provider.burst":                  cfg.Provider.Burst,
		"provider.breaker_max_requests":   cfg.Provider.BreakerMaxRequests,
		"provider.breaker_timeout_sec":    cfg.Provider.BreakerTimeoutSec,
		"provider.user_agent":             cfg.Provider.UserAgent,
		"news.search_url":                 cfg.News.SearchURL,
		"news.language":                   cfg.News.Language,
		"news.region":                     cfg.News.Region,
		"news.max_headlines":              cfg.News.MaxHeadlines,
		"news.timeout_sec":                cfg.News.TimeoutSec,
		"analysis.psychology_window_days": cfg.Analysis.PsychologyWindowDays,
		"analysis.alert_window_days":      cfg.Analysis.AlertWindowDays,
		"api.host":                        cfg.API.Host,
		"api.port":                        cfg.API.Port,
		"api.cors_origins":                cfg.API.CORSOrigins,
		"logging.level":                   cfg.Logging.Level,
		"logging.format":                  cfg.Logging.Format,
	}

	out := make([]SettingStatus, 0, len(values))
	for key, value := range values {
		out = append(out, checkSetting(key, value))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// EnvVar returns the environment variable that overrides key.
func EnvVar(key string) string {
	return EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

// checkSetting works out whether value came from the environment, a config
// file or the built-in default.
func checkSetting(key string, value any) SettingStatus {
	status := SettingStatus{Key: key, Value: render(value)}

	switch {
	case os.Getenv(EnvVar(key)) != "":
		status.Source = SourceEnv
	case render(defaults[key]) == status.Value:
		status.Source = SourceDefault
	default:
		status.Source = SourceConfig
	}
	return status
}

func render(v any) string {
	switch t := v.(type) {
	case []string:
		return strings.Join(t, ",")
	case float64:
		return fmt.Sprintf("%g", t)
	default:
		return fmt.Sprint(t)
	}
}
