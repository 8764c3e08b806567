package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeYAML(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_DefaultsFromEnv(t *testing.T) {
	t.Setenv("EVODEX_CONFIG", "")
	t.Setenv("EVODEX_STATE_DIR", "/tmp/evodex-state")
	t.Setenv("EVODEX_DB_PATH", "/tmp/evodex.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, "data", cfg.Data.Dir)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "/tmp/evodex.db", cfg.Store.SQLitePath)
	assert.Equal(t, 5*time.Second, cfg.Client.PersistInterval)
	assert.Equal(t, "/tmp/evodex-state", cfg.Client.StateDir)
	assert.Equal(t, 5, cfg.Scraper.FlushEvery)
	assert.Equal(t, "https://bulbapedia.bulbagarden.net", cfg.Scraper.BaseURL)
}

func TestLoad_YAMLWithEnvOverride(t *testing.T) {
	path := writeYAML(t, `
server:
  addr: ":9090"
store:
  driver: redis
  redis_url: "redis://localhost:6379/0"
client:
  persist_interval: "2s"
  state_dir: "/tmp/state"
`)
	t.Setenv("EVODEX_CONFIG", path)
	t.Setenv("EVODEX_HTTP_ADDR", ":7070")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, DriverRedis, cfg.Store.Driver)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Store.RedisURL)
	assert.Equal(t, "dex_caught:", cfg.Store.RedisPrefix)
	assert.Equal(t, 2*time.Second, cfg.Client.PersistInterval)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Setenv("EVODEX_CONFIG", filepath.Join(t.TempDir(), "nope.yaml"))
	_, err := Load()
	require.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"unknown driver", func(c *Config) { c.Store.Driver = "dynamo" }},
		{"redis without url", func(c *Config) { c.Store.Driver = DriverRedis }},
		{"zero persist interval", func(c *Config) { c.Client.PersistInterval = 0 }},
		{"zero flush", func(c *Config) { c.Scraper.FlushEvery = 0 }},
		{"empty data dir", func(c *Config) { c.Data.Dir = "" }},
		{"sample ratio above one", func(c *Config) { c.Trace.SampleRatio = 1.5 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}

	c := validConfig()
	require.NoError(t, c.Validate())
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"GET", "PUT"}, SplitList(" GET, ,PUT "))
	assert.Nil(t, SplitList(""))
}

func validConfig() Config {
	return Config{
		Data:    DataConfig{Dir: "data"},
		Store:   StoreConfig{Driver: DriverSQLite, SQLitePath: "/tmp/x.db"},
		Client:  ClientConfig{PersistInterval: time.Second, StateDir: "/tmp"},
		Scraper: ScraperConfig{FlushEvery: 5, Limit: 10},
	}
}
