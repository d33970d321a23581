package sheets

import (
	"context"

	"budget/internal/core"
)

// Ports for outbound adapters.
type (
	// TransactionAppender mirrors a stored transaction as a spreadsheet row.
	TransactionAppender interface {
		AppendTransaction(ctx context.Context, t core.Transaction) (rowRef string, err error)
	}
)
