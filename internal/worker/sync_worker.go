package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"budget/internal/amqp"
	"budget/internal/core"
	applog "budget/internal/log"
	"budget/internal/ports"
	"budget/internal/sheets"
)

// SyncWorker mirrors recorded transactions from the store into Google Sheets
type SyncWorker struct {
	reader ports.TransactionReader
	sheets sheets.TransactionAppender
}

func NewSyncWorker(reader ports.TransactionReader, appender sheets.TransactionAppender) *SyncWorker {
	return &SyncWorker{
		reader: reader,
		sheets: appender,
	}
}

// HandleRecorded processes one recorded message. A transaction that no longer
// exists is skipped so the message is acked instead of requeued forever.
func (w *SyncWorker) HandleRecorded(ctx context.Context, msg *amqp.TransactionRecordedMessage) error {
	logger := slog.With(
		applog.FieldComponent, applog.ComponentWorker,
		applog.FieldOperation, applog.OpSync,
		applog.FieldTransactionID, msg.ID,
		applog.FieldBatchID, msg.BatchID)

	logger.InfoContext(ctx, "Processing recorded message")

	t, err := w.reader.Get(ctx, msg.ID)
	if errors.Is(err, core.ErrNotFound) {
		logger.WarnContext(ctx, "Transaction not found, skipping sync")
		return nil
	}
	if err != nil {
		return fmt.Errorf("get transaction from storage: %w", err)
	}

	ref, err := w.sheets.AppendTransaction(ctx, t)
	if err != nil {
		return fmt.Errorf("sync transaction to sheets: %w", err)
	}

	logger.InfoContext(ctx, "Transaction synced to Google Sheets", applog.FieldSheetsRef, ref)
	return nil
}
