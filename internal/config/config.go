package config

import (
	"strings"
	"time"
)

// Config is the root configuration shared by every evodex binary. Each binary
// only reads the sections it needs.
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	Data    DataConfig    `yaml:"data"`
	Store   StoreConfig   `yaml:"store"`
	Log     LogConfig     `yaml:"log"`
	CORS    CORSConfig    `yaml:"cors"`
	Client  ClientConfig  `yaml:"client"`
	Scraper ScraperConfig `yaml:"scraper"`
	Trace   TraceConfig   `yaml:"trace"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"             env:"EVODEX_HTTP_ADDR"        env-default:":8080"`
	TrustedProxies  string        `yaml:"trusted_proxies"  env:"EVODEX_TRUSTED_PROXIES"  env-default:"127.0.0.1"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"EVODEX_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"EVODEX_WRITE_TIMEOUT"    env-default:"30s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"EVODEX_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DataConfig points at the scraped dataset directory.
type DataConfig struct {
	Dir string `yaml:"dir" env:"EVODEX_DATA_DIR" env-default:"data"`
}

// StoreConfig selects the backend for remotely saved records.
type StoreConfig struct {
	Driver      string `yaml:"driver"       env:"EVODEX_STORE_DRIVER" env-default:"sqlite"`
	SQLitePath  string `yaml:"sqlite_path"  env:"EVODEX_DB_PATH"`
	RedisURL    string `yaml:"redis_url"    env:"EVODEX_REDIS_URL"`
	RedisPrefix string `yaml:"redis_prefix" env:"EVODEX_REDIS_PREFIX" env-default:"dex_caught:"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Mode  string `yaml:"mode"  env:"EVODEX_LOG_MODE"  env-default:"dev"`
	Level string `yaml:"level" env:"EVODEX_LOG_LEVEL" env-default:"info"`
}

// TraceConfig controls OpenTelemetry tracing. With no endpoint, spans go
// to stdout.
type TraceConfig struct {
	Enabled     bool    `yaml:"enabled"      env:"EVODEX_TRACE_ENABLED"      env-default:"false"`
	ServiceName string  `yaml:"service_name" env:"EVODEX_TRACE_SERVICE"      env-default:"evodex"`
	Endpoint    string  `yaml:"endpoint"     env:"EVODEX_TRACE_ENDPOINT"`
	Insecure    bool    `yaml:"insecure"     env:"EVODEX_TRACE_INSECURE"     env-default:"false"`
	SampleRatio float64 `yaml:"sample_ratio" env:"EVODEX_TRACE_SAMPLE_RATIO" env-default:"0.1"`
}

// CORSConfig holds CORS settings for browser clients.
type CORSConfig struct {
	AllowedOrigins string        `yaml:"allowed_origins" env:"EVODEX_CORS_ALLOWED_ORIGINS" env-default:"*"`
	AllowedMethods string        `yaml:"allowed_methods" env:"EVODEX_CORS_ALLOWED_METHODS" env-default:"GET,PUT,OPTIONS"`
	AllowedHeaders string        `yaml:"allowed_headers" env:"EVODEX_CORS_ALLOWED_HEADERS" env-default:"Content-Type,X-Request-ID"`
	MaxAge         time.Duration `yaml:"max_age"         env:"EVODEX_CORS_MAX_AGE"         env-default:"12h"`
}

// ClientConfig configures the visitor CLI.
type ClientConfig struct {
	APIURL          string        `yaml:"api_url"          env:"EVODEX_API_URL"          env-default:"http://localhost:8080"`
	StateDir        string        `yaml:"state_dir"        env:"EVODEX_STATE_DIR"`
	PersistInterval time.Duration `yaml:"persist_interval" env:"EVODEX_PERSIST_INTERVAL" env-default:"5s"`
	Timeout         time.Duration `yaml:"timeout"          env:"EVODEX_CLIENT_TIMEOUT"   env-default:"15s"`
}

// ScraperConfig configures the offline dataset scraper.
type ScraperConfig struct {
	BaseURL    string        `yaml:"base_url"    env:"EVODEX_SCRAPE_BASE_URL"    env-default:"https://bulbapedia.bulbagarden.net"`
	CachePath  string        `yaml:"cache_path"  env:"EVODEX_SCRAPE_CACHE"       env-default:"data/cache/html-cache.json"`
	RulesPath  string        `yaml:"rules_path"  env:"EVODEX_SCRAPE_RULES"       env-default:"configs/curation.yaml"`
	Limit      int           `yaml:"limit"       env:"EVODEX_SCRAPE_LIMIT"       env-default:"10000"`
	FlushEvery int           `yaml:"flush_every" env:"EVODEX_SCRAPE_FLUSH_EVERY" env-default:"5"`
	Timeout    time.Duration `yaml:"timeout"     env:"EVODEX_SCRAPE_TIMEOUT"     env-default:"30s"`
	UserAgent  string        `yaml:"user_agent"  env:"EVODEX_SCRAPE_USER_AGENT"  env-default:"evodex-scraper/1.0"`
}

// SplitList splits a comma-separated config value, dropping blanks.
func SplitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
