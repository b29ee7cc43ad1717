package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"defter/internal/domain/catalogs/customer"
	"defter/internal/domain/documents/invoice"
	"defter/internal/domain/reports"
	v1 "defter/internal/infrastructure/http/v1"
	"defter/internal/infrastructure/http/v1/handlers"
	"defter/internal/infrastructure/storage/memory"
	"defter/internal/infrastructure/storage/postgres"
	"defter/internal/infrastructure/storage/seed"
	"defter/pkg/logger"
	"defter/pkg/numerator"
)

func main() {
	// .env is optional, real env always wins
	_ = godotenv.Load()

	log, err := logger.New(logger.Config{
		Level:       getEnv("LOG_LEVEL", "info"),
		Development: getEnv("APP_ENV", "production") == "development",
	})
	if err != nil {
		os.Exit(1)
	}

	ctx := context.Background()

	var (
		customerRepo customer.Repository
		invoiceRepo  invoice.Repository
		seqs         numerator.Sequences
		pinger       handlers.Pinger
		cleanup      func()
	)

	switch storage := getEnv("STORAGE", "memory"); storage {
	case "postgres":
		pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(mustEnv(log, "DATABASE_URL")))
		if err != nil {
			log.Fatalw("failed to connect to database", "error", err)
		}
		if err := postgres.Migrate(ctx, pool); err != nil {
			log.Fatalw("failed to run migrations", "error", err)
		}
		txm := postgres.NewTxManager(pool)
		customerRepo = postgres.NewCustomerRepo(txm)
		invoiceRepo = postgres.NewInvoiceRepo(txm)
		seqs = postgres.NewSequences(txm)
		pinger = pool
		cleanup = pool.Close
		log.Infow("storage initialized", "backend", "postgres")

	case "memory":
		customers := memory.NewCustomerRepo()
		invoices := memory.NewInvoiceRepo()
		sequences := memory.NewSequences()
		if getEnv("SEED_DEMO_DATA", "true") == "true" {
			if err := seed.Load(ctx, customers, invoices, sequences); err != nil {
				log.Fatalw("failed to seed demo data", "error", err)
			}
			log.Infow("demo data seeded")
		}
		customerRepo = customers
		invoiceRepo = invoices
		seqs = sequences
		cleanup = func() {}
		log.Infow("storage initialized", "backend", "memory")

	default:
		log.Fatalw("unknown storage backend", "storage", storage)
	}
	defer cleanup()

	customerService := customer.NewService(customerRepo)
	invoiceService := invoice.NewService(invoiceRepo, numerator.New(seqs))
	reportsService := reports.NewService(customerRepo, invoiceRepo)

	base := handlers.NewBaseHandler()
	router := v1.NewRouter(log, v1.Handlers{
		Customers: handlers.NewCustomerHandler(base, customerService),
		Invoices:  handlers.NewInvoiceHandler(base, invoiceService),
		Reports:   handlers.NewReportsHandler(base, reportsService),
		Health:    handlers.NewHealthHandler(pinger),
	})

	srv := &http.Server{
		Addr:         ":" + getEnv("HTTP_PORT", "8080"),
		Handler:      router,
		ReadTimeout:  getDurationEnv("HTTP_READ_TIMEOUT", 15*time.Second),
		WriteTimeout: getDurationEnv("HTTP_WRITE_TIMEOUT", 15*time.Second),
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("http server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("http server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Infow("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("http server shutdown failed", "error", err)
	}
	log.Infow("server stopped")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func mustEnv(log *logger.Logger, key string) string {
	v := os.Getenv(key)
	if v == "" {
		log.Fatalw("required environment variable is not set", "key", key)
	}
	return v
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
