package main

import (
	"database/sql"
	"flag"
	"log"
	"net/http"

	_ "github.com/lib/pq"

	api "rentmate-client-core/internal/api/http"
	"rentmate-client-core/internal/config"
	"rentmate-client-core/internal/identity"
	"rentmate-client-core/internal/logger"
	"rentmate-client-core/internal/repository/postgres"
)

func main() {
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting RentMate stub marketplace server...", "address", cfg.GetServerAddress())

	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established", "host", cfg.Database.Host, "database", cfg.Database.Database)

	store := postgres.NewStore(db)
	tokens := identity.NewTokenManager(cfg.JWT.Secret)

	srv := api.NewAPI(
		store.RequestRepository,
		store.TransactionRepository,
		store.EvidenceRepository,
		store.ItemRepository,
		tokens,
		cfg.Storage.UploadDir,
		cfg.Storage.BaseURL,
	)

	logger.Info("Stub marketplace API listening", "address", cfg.GetServerAddress())
	if err := http.ListenAndServe(cfg.GetServerAddress(), srv.Router()); err != nil {
		logger.Error("HTTP server error", "error", err)
		log.Fatalf("Failed to serve: %v", err)
	}
}
