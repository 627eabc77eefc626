package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/amqp"
	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/backend"
	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/config"
	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/core"
	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/finance"
	apphttp "github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/http"
	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/log"
)

func main() {
	// Load .env for local development; ignore errors in production.
	_ = godotenv.Load()

	cfg := config.Load()

	logger := log.New(log.Config{Level: log.ParseLevel(cfg.LogLevel), Component: log.ComponentApp})
	log.SetDefault(logger)
	appLogger := logger.WithComponent(log.ComponentApp)

	if err := cfg.Validate(); err != nil {
		appLogger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}

	if cfg.CategoryFile != "" {
		if err := core.LoadCategoryFile(cfg.CategoryFile); err != nil {
			appLogger.Error("Failed to load category file",
				log.FieldError, err, "path", cfg.CategoryFile)
			os.Exit(1)
		}
		appLogger.Info("Loaded category overrides", "path", cfg.CategoryFile)
	}

	res, err := backend.Open(cfg, logger)
	if err != nil {
		appLogger.Error("Failed to open persistence backend",
			log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	defer res.Cleanup()

	opts := []finance.Option{finance.WithLogger(logger)}

	// AMQP is optional: without it the ledger export pipeline is disabled.
	if cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			appLogger.Warn("Failed to connect to AMQP, continuing without export",
				log.FieldError, err)
		} else {
			defer amqpClient.Close()
			opts = append(opts, finance.WithPublisher(amqpClient))
			appLogger.Info("AMQP publisher connected",
				"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
		}
	}

	store := finance.New(context.Background(), res.KV, opts...)

	srv := apphttp.NewServer(":"+cfg.Port, store, logger)
	srv.ReadTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		appLogger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			appLogger.Error("Server shutdown error", log.FieldError, err)
		}
		cancel()
	}()

	appLogger.Info("Starting guardian server",
		"port", cfg.Port, log.FieldBackend, cfg.DataBackend)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		appLogger.Error("Server error", log.FieldError, err)
		os.Exit(1)
	}

	<-ctx.Done()
	appLogger.Info("Server stopped gracefully")
}
