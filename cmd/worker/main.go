package main

import (
	"context"
	"database/sql"
	"os/signal"
	"syscall"

	"app/internal/config"
	"app/internal/logger"
	"app/internal/peppol"
	"app/internal/pgmq"
	"app/internal/repository"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
)

// The worker drains the Peppol delivery queue: it takes rendered invoice
// documents enqueued by the API and pushes them to the access point.
func main() {
	logger := logger.New()

	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("Warning: no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Msgf("Error loading config: %v", err)
	}

	db, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Fatal().Msgf("Failed to open DB connection: %v", err)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Fatal().Msgf("Failed to ping DB: %v", err)
	}
	logger.Info().Msg("Database connection established")

	queue := pgmq.New(db)
	invoiceRepo := repository.NewInvoiceRepo(db)
	accessPoint := peppol.NewLoopbackAccessPoint()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := peppol.RunWorker(ctx, logger, queue, accessPoint, invoiceRepo); err != nil {
		logger.Fatal().Msgf("Peppol delivery worker failed: %v", err)
	}
	logger.Info().Msg("Peppol delivery worker stopped gracefully")
}
