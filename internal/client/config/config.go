package config

import "time"

// Config holds runtime settings for the profcli client.
//
// Fields:
//   - ServerEndpointURL: base URL of the account service.
//   - RequestTimeout: per-request timeout for API calls.
//   - DatabasePath: path of the local SQLite database holding the token slot.
type Config struct {
	ServerEndpointURL string
	RequestTimeout    time.Duration
	DatabasePath      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerEndpointURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 10 * time.Second
	c.DatabasePath = "profcli.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
