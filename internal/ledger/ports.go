// Package ledger defines the outbound port for exporting transactions to an
// external append-only ledger.
package ledger

import (
	"context"

	"github.com/Farheen-Banu26/PersonalFinanceGuardian/internal/core"
)

// EntryAppender writes a transaction to the ledger and returns a reference to
// the written row.
type EntryAppender interface {
	Append(ctx context.Context, tx core.Transaction) (rowRef string, err error)
}
