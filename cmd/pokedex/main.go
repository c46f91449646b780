package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/pokedex/internal/buildinfo"
	"github.com/dmitrijs2005/pokedex/internal/catalog"
	"github.com/dmitrijs2005/pokedex/internal/cli"
	"github.com/dmitrijs2005/pokedex/internal/config"
	"github.com/dmitrijs2005/pokedex/internal/logging"
	"github.com/dmitrijs2005/pokedex/internal/storage"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()

	cfg := config.LoadConfig()

	logger, err := logging.New(cfg.LogDriver, cfg.LogLevel, os.Stderr)
	if err != nil {
		log.Fatalf("%v", err)
	}
	if s, ok := logger.(interface{ Sync() error }); ok {
		defer func() { _ = s.Sync() }()
	}

	store, err := storage.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	cat := catalog.NewPokeAPIClient(cfg.CatalogBaseURL, cfg.CatalogTimeout, cfg.CatalogRPS, logger)
	app := cli.NewApp(cfg, store, cat, logger)

	if err := app.Run(ctx); err != nil {
		logger.Error(ctx, "pokedex stopped", "error", err)
	}

}
