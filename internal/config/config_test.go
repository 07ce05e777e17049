package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

// ── Load / Defaults ──

func TestLoadReturnsDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "https://query1.finance.yahoo.com/v10/finance/quoteSummary", cfg.Provider.QuoteURL)
	assert.Equal(t, "https://query1.finance.yahoo.com/v8/finance/chart", cfg.Provider.ChartURL)
	assert.Equal(t, 15, cfg.Provider.TimeoutSec)
	assert.Equal(t, 5.0, cfg.Provider.RequestsPerSec)
	assert.Equal(t, 5, cfg.Provider.Burst)
	assert.Equal(t, uint32(3), cfg.Provider.BreakerMaxRequests)
	assert.Equal(t, 30, cfg.Provider.BreakerTimeoutSec)
	assert.NotEmpty(t, cfg.Provider.UserAgent)

	assert.Equal(t, "https://news.google.com/rss/search", cfg.News.SearchURL)
	assert.Equal(t, "en-IN", cfg.News.Language)
	assert.Equal(t, "IN", cfg.News.Region)
	assert.Equal(t, 5, cfg.News.MaxHeadlines)
	assert.Equal(t, 15, cfg.News.TimeoutSec)

	assert.Equal(t, 30, cfg.Analysis.PsychologyWindowDays)
	assert.Equal(t, 7, cfg.Analysis.AlertWindowDays)

	assert.Equal(t, "0.0.0.0", cfg.API.Host)
	assert.Equal(t, 8080, cfg.API.Port)
	assert.Equal(t, []string{"*"}, cfg.API.CORSOrigins)

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)

	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
provider:
  timeout_sec: 5
  requests_per_sec: 2.5
news:
  max_headlines: 3
analysis:
  psychology_window_days: 60
api:
  port: 9000
  cors_origins:
    - http://localhost:3000
logging:
  level: debug
  format: json
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, 5, cfg.Provider.TimeoutSec)
	assert.Equal(t, 2.5, cfg.Provider.RequestsPerSec)
	assert.Equal(t, 3, cfg.News.MaxHeadlines)
	assert.Equal(t, 60, cfg.Analysis.PsychologyWindowDays)
	assert.Equal(t, 7, cfg.Analysis.AlertWindowDays, "unset keys keep their default")
	assert.Equal(t, 9000, cfg.API.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.API.CORSOrigins)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadFromFileMissing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfig(t, "api:\n  port: 9000\n")
	t.Setenv("MARKETMIND_API_PORT", "9191")
	t.Setenv("MARKETMIND_LOGGING_LEVEL", "warn")
	t.Setenv("MARKETMIND_NEWS_REGION", "US")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 9191, cfg.API.Port)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "US", cfg.News.Region)
}

func TestAPIAddr(t *testing.T) {
	assert.Equal(t, "127.0.0.1:8081", APIConfig{Host: "127.0.0.1", Port: 8081}.Addr())
}

// ── Validate ──

func TestValidate(t *testing.T) {
	base, err := Load()
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"zero provider timeout", func(c *Config) { c.Provider.TimeoutSec = 0 }},
		{"negative rate", func(c *Config) { c.Provider.RequestsPerSec = -1 }},
		{"zero burst", func(c *Config) { c.Provider.Burst = 0 }},
		{"zero news timeout", func(c *Config) { c.News.TimeoutSec = 0 }},
		{"zero headlines", func(c *Config) { c.News.MaxHeadlines = 0 }},
		{"zero psychology window", func(c *Config) { c.Analysis.PsychologyWindowDays = 0 }},
		{"negative alert window", func(c *Config) { c.Analysis.AlertWindowDays = -7 }},
		{"alert window wider than history", func(c *Config) { c.Analysis.AlertWindowDays = 45 }},
		{"port out of range", func(c *Config) { c.API.Port = 70000 }},
		{"unknown log format", func(c *Config) { c.Logging.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := *base
			tt.mutate(&cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

// ── Describe ──

func TestEnvVar(t *testing.T) {
	assert.Equal(t, "MARKETMIND_PROVIDER_TIMEOUT_SEC", EnvVar("provider.timeout_sec"))
	assert.Equal(t, "MARKETMIND_API_PORT", EnvVar("api.port"))
}

func TestDescribe(t *testing.T) {
	path := writeConfig(t, "news:\n  max_headlines: 4\n")
	t.Setenv("MARKETMIND_API_PORT", "9191")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	got := map[string]SettingStatus{}
	for _, s := range Describe(cfg) {
		got[s.Key] = s
	}
	assert.Len(t, got, len(defaults), "every default key is described")

	assert.Equal(t, SettingStatus{Key: "api.port", Value: "9191", Source: SourceEnv}, got["api.port"])
	assert.Equal(t, SettingStatus{Key: "news.max_headlines", Value: "4", Source: SourceConfig}, got["news.max_headlines"])
	assert.Equal(t, SettingStatus{Key: "news.region", Value: "IN", Source: SourceDefault}, got["news.region"])
	assert.Equal(t, "5", got["provider.requests_per_sec"].Value)
}

func TestDescribeSorted(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	list := Describe(cfg)
	for i := 1; i < len(list); i++ {
		assert.Less(t, list[i-1].Key, list[i].Key)
	}
}
