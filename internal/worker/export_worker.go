// Package worker exports transactions to an external ledger in response to
// AMQP transaction events.
package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/amqp"
	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/core"
	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/finance"
	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/kv"
	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/ledger"
	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/log"
)

// ExportWorker appends newly created transactions to the ledger. It reads
// transaction state from the shared key-value backend on every event, so it
// always sees the row the publishing process just persisted.
type ExportWorker struct {
	kv     kv.Store
	ledger ledger.EntryAppender
	logger *log.Logger
}

func NewExportWorker(kvs kv.Store, appender ledger.EntryAppender, logger *log.Logger) *ExportWorker {
	if logger == nil {
		logger = log.New(log.DefaultConfig())
	}
	return &ExportWorker{
		kv:     kvs,
		ledger: appender,
		logger: logger.WithComponent(log.ComponentWorker),
	}
}

// HandleTransactionEvent processes a single transaction event. Created
// transactions are appended to the ledger; updates and deletes are logged and
// skipped because the ledger is append-only.
func (w *ExportWorker) HandleTransactionEvent(ctx context.Context, event *amqp.TransactionEvent) error {
	switch event.Action {
	case amqp.ActionCreated:
		return w.exportTransaction(ctx, event.ID)
	case amqp.ActionUpdated, amqp.ActionDeleted:
		w.logger.Info("Skipping event for append-only ledger",
			log.FieldTransactionID, event.ID,
			"action", event.Action)
		return nil
	default:
		w.logger.Warn("Unknown event action, dropping",
			log.FieldTransactionID, event.ID,
			"action", event.Action)
		return nil
	}
}

func (w *ExportWorker) exportTransaction(ctx context.Context, id string) error {
	tx, err := w.lookup(ctx, id)
	if err != nil {
		return fmt.Errorf("lookup transaction %s: %w", id, err)
	}

	ref, err := w.ledger.Append(ctx, tx)
	if err != nil {
		return fmt.Errorf("append transaction %s to ledger: %w", id, err)
	}

	w.logger.Info("Exported transaction to ledger",
		log.FieldTransactionID, id,
		log.FieldLedgerRef, ref,
		log.FieldAmount, tx.Amount)
	return nil
}

// lookup reads the current transaction list from the backend and finds the
// transaction by id.
func (w *ExportWorker) lookup(ctx context.Context, id string) (core.Transaction, error) {
	raw, ok, err := w.kv.Get(ctx, finance.KeyTransactions)
	if err != nil {
		return core.Transaction{}, fmt.Errorf("read %s: %w", finance.KeyTransactions, err)
	}
	if !ok {
		return core.Transaction{}, fmt.Errorf("no transactions persisted yet")
	}

	var txs []core.Transaction
	if err := json.Unmarshal([]byte(raw), &txs); err != nil {
		return core.Transaction{}, fmt.Errorf("decode transactions: %w", err)
	}

	for _, tx := range txs {
		if tx.ID == id {
			return tx, nil
		}
	}
	return core.Transaction{}, fmt.Errorf("transaction %s not found", id)
}
