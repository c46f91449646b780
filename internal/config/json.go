package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/pokedex/internal/flagx"
	"github.com/dmitrijs2005/pokedex/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// Durations go through timex.Duration so they may be written either as
// strings like "10s" or as integer nanoseconds.
type JsonConfig struct {
	StorageBackend string         `json:"storage_backend"`
	DatabaseDSN    string         `json:"database_dsn"`
	KVPath         string         `json:"kv_path"`
	CatalogBaseURL string         `json:"catalog_base_url"`
	CatalogTimeout timex.Duration `json:"catalog_timeout"`
	CatalogRPS     float64        `json:"catalog_rps"`
	SessionSecret  string         `json:"session_secret"`
	SessionTTL     timex.Duration `json:"session_ttl"`
	LogLevel       string         `json:"log_level"`
	LogDriver      string         `json:"log_driver"`
}

// parseJson overlays cfg with the non-empty values of the JSON file named by
// -c or -config. Without either flag it does nothing. Read and decode errors
// panic.
func parseJson(cfg *Config, args []string) {
	jsonConfigFile := flagx.ConfigPath(args)
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.StorageBackend, jc.StorageBackend)
	setString(&cfg.DatabaseDSN, jc.DatabaseDSN)
	setString(&cfg.KVPath, jc.KVPath)
	setString(&cfg.CatalogBaseURL, jc.CatalogBaseURL)
	setString(&cfg.SessionSecret, jc.SessionSecret)
	setString(&cfg.LogLevel, jc.LogLevel)
	setString(&cfg.LogDriver, jc.LogDriver)

	if jc.CatalogTimeout.Duration > 0 {
		cfg.CatalogTimeout = jc.CatalogTimeout.Duration
	}
	if jc.CatalogRPS > 0 {
		cfg.CatalogRPS = jc.CatalogRPS
	}
	if jc.SessionTTL.Duration > 0 {
		cfg.SessionTTL = jc.SessionTTL.Duration
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
