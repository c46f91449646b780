// Package config loads runtime configuration for the pokedex CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Command-line flags, which override earlier values.
//
// # JSON schema
//
//	{
//	  "storage_backend": "sqlite",
//	  "database_dsn": "/var/lib/pokedex/pokedex.db",
//	  "kv_path": "/var/lib/pokedex/pokedex.kv.json",
//	  "catalog_base_url": "https://pokeapi.co/api/v2",
//	  "catalog_timeout": "10s",
//	  "catalog_rps": 10,
//	  "session_secret": "change-me",
//	  "session_ttl": "720h",
//	  "log_level": "info",
//	  "log_driver": "zap"
//	}
//
// Empty JSON values leave the previous value in place. Environment variables
// are not read.
package config
