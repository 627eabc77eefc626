package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/amqp"
	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/backend"
	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/config"
	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/ledger"
	ledgergoogle "github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/ledger/google"
	ledgermemory "github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/ledger/memory"
	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/log"
	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/worker"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	logger := log.New(log.Config{Level: log.ParseLevel(cfg.LogLevel), Component: log.ComponentApp})
	log.SetDefault(logger)
	appLogger := logger.WithComponent(log.ComponentWorker)

	if err := cfg.Validate(); err != nil {
		appLogger.Error("Configuration validation failed", log.FieldError, err)
		os.Exit(1)
	}
	if cfg.AMQPURL == "" {
		appLogger.Error("AMQP_URL is required for the export worker")
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// The worker shares the persistence backend with the server, so it reads
	// the same state the server just wrote.
	res, err := backend.Open(cfg, logger)
	if err != nil {
		appLogger.Error("Failed to open persistence backend",
			log.FieldError, err, log.FieldBackend, cfg.DataBackend)
		os.Exit(1)
	}
	defer res.Cleanup()

	var appender ledger.EntryAppender
	if cfg.GoogleSpreadsheetID != "" {
		client, err := ledgergoogle.NewFromEnv(ctx)
		if err != nil {
			appLogger.Error("Failed to initialize Google Sheets ledger", log.FieldError, err)
			os.Exit(1)
		}
		appender = client
		appLogger.Info("Google Sheets ledger initialized",
			"spreadsheet_id", cfg.GoogleSpreadsheetID,
			"sheet", cfg.GoogleSheetName)
	} else {
		appender = ledgermemory.New()
		appLogger.Info("No GOOGLE_SPREADSHEET_ID set, using in-memory ledger")
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		appLogger.Error("Failed to connect to AMQP", log.FieldError, err)
		os.Exit(1)
	}
	defer amqpClient.Close()

	exportWorker := worker.NewExportWorker(res.KV, appender, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeTransactionEvents(gctx, exportWorker.HandleTransactionEvent)
	})
	g.Go(func() error {
		<-gctx.Done()
		appLogger.Info("Shutting down export worker")
		return nil
	})

	appLogger.Info("Export worker started",
		"exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		appLogger.Error("Worker stopped with error", log.FieldError, err)
		os.Exit(1)
	}
	appLogger.Info("Worker stopped gracefully")
}
