// Package config assembles the client's runtime settings from, in order of
// increasing precedence: built-in defaults, a JSON config file (-c/-config),
// environment variables, and command-line flags.
package config

import "time"

// Config holds runtime settings for the photokeeper CLI.
type Config struct {
	// APIBaseURL is the backend root, e.g. "http://localhost:8000/api".
	APIBaseURL string `env:"PHOTOKEEPER_API_URL"`
	// RequestTimeout bounds every HTTP call. Zero disables the timeout.
	RequestTimeout time.Duration `env:"PHOTOKEEPER_TIMEOUT"`
	// SessionDBPath locates the sqlite file holding persisted tokens.
	SessionDBPath string `env:"PHOTOKEEPER_SESSION_DB"`
	// DetailCacheTTL bounds how long image detail records are served from
	// the local cache.
	DetailCacheTTL time.Duration `env:"PHOTOKEEPER_DETAIL_TTL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://localhost:8000/api"
	c.RequestTimeout = 30 * time.Second
	c.SessionDBPath = "photokeeper.db"
	c.DetailCacheTTL = 5 * time.Minute
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON, environment and flags. Later sources win.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
