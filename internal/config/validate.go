package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	DriverSQLite = "sqlite"
	DriverRedis  = "redis"
)

// Validate checks the loaded configuration and fills path defaults that
// depend on the user's home directory.
func (c *Config) Validate() error {
	c.Store.Driver = strings.ToLower(strings.TrimSpace(c.Store.Driver))
	switch c.Store.Driver {
	case DriverSQLite:
		if c.Store.SQLitePath == "" {
			c.Store.SQLitePath = filepath.Join(homeDir(), ".evodex", "data.db")
		}
	case DriverRedis:
		if c.Store.RedisURL == "" {
			return fmt.Errorf("store.redis_url is required for the redis driver")
		}
	default:
		return fmt.Errorf("store.driver must be %q or %q (got %q)", DriverSQLite, DriverRedis, c.Store.Driver)
	}

	if c.Data.Dir == "" {
		return fmt.Errorf("data.dir must not be empty")
	}
	if c.Client.PersistInterval <= 0 {
		return fmt.Errorf("client.persist_interval must be > 0 (got %s)", c.Client.PersistInterval)
	}
	if c.Client.StateDir == "" {
		c.Client.StateDir = filepath.Join(homeDir(), ".evodex")
	}
	if c.Scraper.FlushEvery <= 0 {
		return fmt.Errorf("scraper.flush_every must be > 0 (got %d)", c.Scraper.FlushEvery)
	}
	if c.Scraper.Limit <= 0 {
		return fmt.Errorf("scraper.limit must be > 0 (got %d)", c.Scraper.Limit)
	}
	if c.Trace.SampleRatio < 0 || c.Trace.SampleRatio > 1 {
		return fmt.Errorf("trace.sample_ratio must be within [0, 1] (got %g)", c.Trace.SampleRatio)
	}
	return nil
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return home
}
