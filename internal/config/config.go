package config

import (
	"os"
	"time"
)

// Config holds runtime settings for the pokedex CLI.
//
// Units: CatalogTimeout and SessionTTL are time.Duration values; a zero
// SessionTTL means sessions never expire.
type Config struct {
	StorageBackend string
	DatabaseDSN    string
	KVPath         string
	CatalogBaseURL string
	CatalogTimeout time.Duration
	CatalogRPS     float64
	SessionSecret  string
	SessionTTL     time.Duration
	LogLevel       string
	LogDriver      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StorageBackend = "auto"
	c.DatabaseDSN = "pokedex.db"
	c.KVPath = "pokedex.kv.json"
	c.CatalogBaseURL = "https://pokeapi.co/api/v2"
	c.CatalogTimeout = 10 * time.Second
	c.CatalogRPS = 10
	c.SessionSecret = "pokedex-local-session"
	c.SessionTTL = 0
	c.LogLevel = "warn"
	c.LogDriver = "slog"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	return load(os.Args[1:])
}

func load(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg, args)
	parseFlags(cfg, args)
	return cfg
}
