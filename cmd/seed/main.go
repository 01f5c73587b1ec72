// Command seed imports a JSON resource catalog into Postgres.
//
//	go run ./cmd/seed -file seed/resources.json
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"mindwell/database"
	"mindwell/internal/config"
	"mindwell/internal/logging"
	httpapi "mindwell/internal/microservices/http-api"
	"mindwell/internal/seed"
)

func main() {
	file := flag.String("file", "seed/resources.json", "path to the catalog JSON")
	flag.Parse()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	logger := logging.New(os.Stdout, cfg.LogLevel, cfg.LogFormat)

	catalog, err := seed.ReadFile(*file)
	if err != nil {
		log.Fatalf("Failed to read catalog: %v", err)
	}
	logger.Info("seed_catalog_loaded", "file", *file, "entries", len(catalog.Resources))

	gdb, err := database.OpenGorm(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.Close(gdb)

	// no cache: a running API server picks up the rows once its TTL lapses
	svcs := httpapi.NewServices(httpapi.PostgresRepositories(gdb), nil, logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	res, err := seed.Import(ctx, svcs.Resources, catalog, logger)
	if err != nil {
		logger.Error("seed_import_failed", "error", err.Error(), "imported", res.Imported)
		os.Exit(1)
	}
	slog.Info("seed_done", "imported", res.Imported, "skipped", res.Skipped)
}
