package config

import "time"

// Config holds runtime settings for the Sweet Shop CLI.
//
// Fields:
//   - BaseURL: base URL of the backend REST API, including the path prefix.
//   - RequestTimeout: upper bound for a single backend request.
//   - DatabaseFile: path of the local sqlite database holding the session.
type Config struct {
	BaseURL        string
	RequestTimeout time.Duration
	DatabaseFile   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.BaseURL = "http://127.0.0.1:8000/api"
	c.RequestTimeout = 10 * time.Second
	c.DatabaseFile = "sweetshop.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a config file is given) and command-line flags. Later
// sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
