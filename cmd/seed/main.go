// Command seed loads the demo dataset into a PostgreSQL database.
package main

import (
	"context"
	"os"
	"time"

	"github.com/joho/godotenv"

	"defter/internal/infrastructure/storage/postgres"
	"defter/internal/infrastructure/storage/seed"
	"defter/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{Level: "info"})
	if err != nil {
		os.Exit(1)
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatalw("DATABASE_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(dsn))
	if err != nil {
		log.Fatalw("failed to connect to database", "error", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatalw("failed to run migrations", "error", err)
	}

	txm := postgres.NewTxManager(pool)
	customers := postgres.NewCustomerRepo(txm)
	invoices := postgres.NewInvoiceRepo(txm)
	seqs := postgres.NewSequences(txm)

	err = txm.RunInTransaction(ctx, func(ctx context.Context) error {
		return seed.Load(ctx, customers, invoices, seqs)
	})
	if err != nil {
		log.Fatalw("failed to seed demo data", "error", err)
	}

	log.Infow("demo data seeded")
}
