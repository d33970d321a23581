package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"budget/internal/core"
	"budget/internal/csvio"
	applog "budget/internal/log"
	"budget/internal/ports"
)

// EventPublisher announces transactions after they are stored.
type EventPublisher interface {
	PublishTransactionRecorded(ctx context.Context, id int64, batchID string) error
	Close() error
}

// TransactionService orchestrates transaction operations across the store and AMQP
type TransactionService struct {
	store     ports.Store
	publisher EventPublisher
}

// NewTransactionService wires a store with an optional publisher (nil disables events).
func NewTransactionService(store ports.Store, publisher EventPublisher) *TransactionService {
	return &TransactionService{
		store:     store,
		publisher: publisher,
	}
}

// Record applies defaults, validates, saves the transaction and publishes a
// recorded event. A publish failure is logged; the transaction stays saved.
func (s *TransactionService) Record(ctx context.Context, t core.Transaction) (int64, error) {
	t = t.Normalize()
	if err := t.Validate(); err != nil {
		return 0, fmt.Errorf("validate transaction: %w", err)
	}
	return s.insert(ctx, t, "")
}

// ImportCSV runs a bulk import; every inserted row is published with the batch ID.
func (s *TransactionService) ImportCSV(ctx context.Context, r io.Reader) (csvio.Result, error) {
	dst := csvio.InsertFunc(func(ctx context.Context, t core.Transaction) (int64, error) {
		return s.insert(ctx, t, csvio.BatchIDFromContext(ctx))
	})

	slog.InfoContext(ctx, "Starting CSV import",
		applog.FieldComponent, applog.ComponentService,
		applog.FieldOperation, applog.OpImport)

	res, err := csvio.Import(ctx, dst, r)
	if err != nil {
		return res, fmt.Errorf("import csv: %w", err)
	}
	return res, nil
}

// ExportCSV writes every stored transaction, oldest first.
func (s *TransactionService) ExportCSV(ctx context.Context, w io.Writer) (int, error) {
	txs, err := s.store.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("export csv: %w", err)
	}
	if err := csvio.Export(w, txs); err != nil {
		return 0, fmt.Errorf("export csv: %w", err)
	}
	slog.InfoContext(ctx, "Transactions exported",
		applog.FieldComponent, applog.ComponentService,
		applog.FieldOperation, applog.OpExport,
		applog.FieldCount, len(txs))
	return len(txs), nil
}

func (s *TransactionService) ListRecent(ctx context.Context, limit int) ([]core.Transaction, error) {
	slog.DebugContext(ctx, "Listing recent transactions",
		applog.FieldComponent, applog.ComponentService,
		applog.FieldOperation, applog.OpList,
		applog.FieldLimit, limit)
	return s.store.ListRecent(ctx, limit)
}

func (s *TransactionService) ListAll(ctx context.Context) ([]core.Transaction, error) {
	return s.store.ListAll(ctx)
}

func (s *TransactionService) MonthlySummary(ctx context.Context, year, month int) (core.MonthlySummary, error) {
	slog.DebugContext(ctx, "Computing monthly summary",
		applog.FieldComponent, applog.ComponentService,
		applog.FieldOperation, applog.OpSummary,
		applog.FieldYear, year,
		applog.FieldMonth, month)
	return s.store.MonthlySummary(ctx, year, month)
}

func (s *TransactionService) CategoryTotals(ctx context.Context, year, month int) (core.CategoryTotals, error) {
	slog.DebugContext(ctx, "Computing category totals",
		applog.FieldComponent, applog.ComponentService,
		applog.FieldOperation, applog.OpTotals,
		applog.FieldYear, year,
		applog.FieldMonth, month)
	return s.store.CategoryTotals(ctx, year, month)
}

func (s *TransactionService) MonthlyTrend(ctx context.Context) ([]core.MonthlySummary, error) {
	return s.store.MonthlyTrend(ctx)
}

func (s *TransactionService) insert(ctx context.Context, t core.Transaction, batchID string) (int64, error) {
	id, err := s.store.Insert(ctx, t)
	if err != nil {
		return 0, fmt.Errorf("save transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction recorded",
		applog.FieldComponent, applog.ComponentService,
		applog.FieldOperation, applog.OpRecord,
		applog.FieldTransactionID, id,
		applog.FieldType, t.Type,
		applog.FieldAmount, t.Amount.String())

	if err := s.publishRecorded(ctx, id, batchID); err != nil {
		slog.ErrorContext(ctx, "Failed to publish transaction recorded message",
			applog.FieldTransactionID, id,
			applog.FieldError, err)
		// Don't fail the write - the transaction is stored locally
	}

	return id, nil
}

func (s *TransactionService) publishRecorded(ctx context.Context, id int64, batchID string) error {
	if s.publisher == nil {
		slog.DebugContext(ctx, "AMQP publisher not configured, skipping recorded message")
		return nil
	}
	return s.publisher.PublishTransactionRecorded(ctx, id, batchID)
}

// Close closes both store and publisher connections
func (s *TransactionService) Close() error {
	var errs []error

	if s.store != nil {
		if err := s.store.Close(); err != nil {
			errs = append(errs, fmt.Errorf("store: %w", err))
		}
	}

	if s.publisher != nil {
		if err := s.publisher.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("close transaction service: %w", err)
	}

	return nil
}
