package config

import (
	"flag"
	"io"
	"time"

	"github.com/dmitrijs2005/pokedex/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-b string      storage backend: auto, sqlite or kv
//	-d string      SQLite database file
//	-k string      key-value store file
//	-u string      catalog API base URL
//	-t int         catalog request timeout (seconds)
//	-r float       catalog requests per second
//	-s string      session signing secret
//	-ttl int       session lifetime (minutes), 0 for none
//	-l string      log level
//	-log-driver    slog, slog-json or zap
//
// Only these flags are considered; everything else in args is ignored.
func parseFlags(cfg *Config, args []string) {
	args = flagx.FilterArgs(args, []string{
		"-b", "-d", "-k", "-u", "-t", "-r", "-s", "-ttl", "-l", "-log-driver",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.StorageBackend, "b", cfg.StorageBackend, "storage backend (auto, sqlite, kv)")
	fs.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "sqlite database file")
	fs.StringVar(&cfg.KVPath, "k", cfg.KVPath, "key-value store file")
	fs.StringVar(&cfg.CatalogBaseURL, "u", cfg.CatalogBaseURL, "catalog API base URL")
	timeout := fs.Int("t", int(cfg.CatalogTimeout.Seconds()), "catalog request timeout (in seconds)")
	fs.Float64Var(&cfg.CatalogRPS, "r", cfg.CatalogRPS, "catalog requests per second")
	fs.StringVar(&cfg.SessionSecret, "s", cfg.SessionSecret, "session signing secret")
	ttl := fs.Int("ttl", int(cfg.SessionTTL.Minutes()), "session lifetime (in minutes), 0 for none")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.StringVar(&cfg.LogDriver, "log-driver", cfg.LogDriver, "log driver (slog, slog-json, zap)")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	// whole-unit flags must not round values that came from JSON
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "t":
			cfg.CatalogTimeout = time.Duration(*timeout) * time.Second
		case "ttl":
			cfg.SessionTTL = time.Duration(*ttl) * time.Minute
		}
	})
}
