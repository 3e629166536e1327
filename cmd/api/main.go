package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/AigennA/EventBokningApp/internal/app"
	"github.com/AigennA/EventBokningApp/internal/clock"
	"github.com/AigennA/EventBokningApp/internal/config"
	"github.com/AigennA/EventBokningApp/internal/storage/postgres"
	transporthttp "github.com/AigennA/EventBokningApp/internal/transport/http"
	"github.com/AigennA/EventBokningApp/migrations"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const txRetryAttempts = 3

func main() {
	// Missing .env is fine in production; config falls back to env vars.
	_ = godotenv.Load()

	cfg, err := config.New()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger, err := newLogger(cfg.Log.Level)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.Postgres.URL)
	if err != nil {
		logger.Fatal("connect to db", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		logger.Fatal("db ping", zap.Error(err))
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		logger.Fatal("apply migrations", zap.Error(err))
	}

	ticketRepo := postgres.NewTicketRepository(pool)
	bookingRepo := postgres.NewBookingRepository(pool)
	catalogRepo := postgres.NewCatalogRepository(pool)

	bookingSvc := app.NewBookingService(ticketRepo, bookingRepo, clock.NewSystem(), logger,
		app.WithTxRetry(txRetryAttempts, postgres.IsSerializationFailure))
	catalogSvc := app.NewCatalogService(catalogRepo, clock.NewSystem())

	handler := transporthttp.NewRouter(bookingSvc, catalogSvc, cfg.HTTP.CORSOrigins, logger)

	server := &http.Server{
		Addr:    ":" + cfg.HTTP.Port,
		Handler: handler,
	}

	logger.Info("api listening", zap.String("port", cfg.HTTP.Port))

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", zap.Error(err))
		}
	case <-stopCtx.Done():
		logger.Info("shutdown signal received, stopping server")
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSeconds)*time.Second)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("server shutdown error", zap.Error(err))
	}
	logger.Info("server stopped")
}

func newLogger(level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	return cfg.Build()
}
