package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"golang.org/x/sync/errgroup"

	"budget/internal/amqp"
	"budget/internal/cli"
	"budget/internal/config"
	applog "budget/internal/log"
	gsheet "budget/internal/sheets/google"
	"budget/internal/storage"
	"budget/internal/worker"
)

func main() {
	configPath := flag.String("config", "", "optional config file (yaml, json or toml)")
	flag.Parse()

	// Load .env file for local development (ignore errors in production/docker)
	cli.LoadEnvFile()

	if err := run(*configPath); err != nil {
		cli.Fatal(err)
	}
}

func run(configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.ValidateWorker(); err != nil {
		return err
	}

	logger := cli.SetupLogger(cfg.LogLevel, applog.ComponentWorker)
	logger.Info("Starting budget-worker", applog.FieldOperation, applog.OpStartup)

	ctx, stop := cli.SignalContext(context.Background())
	defer stop()

	// The worker reads transactions published by the CLI from the same database
	repo, err := storage.Open(cfg.SQLiteDBPath)
	if err != nil {
		return fmt.Errorf("initialize SQLite repository: %w", err)
	}
	defer repo.Close()

	sheetsClient, err := gsheet.NewFromConfig(ctx, gsheet.Config{
		SpreadsheetID:   cfg.GoogleSpreadsheetID,
		SheetName:       cfg.GoogleSheetName,
		CredentialsJSON: cfg.GoogleServiceAccountJSON,
		CredentialsFile: cfg.GoogleServiceAccountFile,
	})
	if err != nil {
		return fmt.Errorf("initialize Google Sheets client: %w", err)
	}

	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		return fmt.Errorf("initialize AMQP client: %w", err)
	}
	defer amqpClient.Close()

	syncWorker := worker.NewSyncWorker(repo, sheetsClient)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return amqpClient.ConsumeTransactionRecorded(gctx, syncWorker.HandleRecorded)
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down worker...",
			applog.FieldOperation, applog.OpShutdown,
			"reason", context.Cause(gctx))
		return nil
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("message consumption failed: %w", err)
	}

	logger.Info("Worker shutdown complete")
	return nil
}

func init() {
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [-config file]\n\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "Mirrors recorded transactions from AMQP into Google Sheets.")
		flag.PrintDefaults()
	}
}
