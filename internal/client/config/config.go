package config

import "time"

// Config holds runtime settings for the ProdHub client.
//
// Fields:
//   - ServerBaseURL: scheme://host:port of the backend REST API.
//   - DatabasePath: location of the local SQLite cache file.
//   - OnlineCheckInterval: how often the client probes server reachability.
//   - PullTimeout: upper bound for each per-collection download during a refresh.
type Config struct {
	ServerBaseURL       string
	DatabasePath        string
	OnlineCheckInterval time.Duration
	PullTimeout         time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://127.0.0.1:3000"
	c.DatabasePath = "prodhub.db"
	c.OnlineCheckInterval = 3 * time.Second
	c.PullTimeout = 5 * time.Second
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if present) and command-line flags (if present). Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
