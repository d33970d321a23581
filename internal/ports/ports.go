package ports

import (
	"context"

	"budget/internal/core"
)

// Ports implemented by transaction stores.
type (
	TransactionWriter interface {
		// Insert persists t and returns the ID assigned by the store.
		Insert(ctx context.Context, t core.Transaction) (id int64, err error)
	}

	TransactionReader interface {
		// ListRecent returns at most limit transactions, most recent (highest ID) first.
		ListRecent(ctx context.Context, limit int) ([]core.Transaction, error)
		// ListAll returns the whole collection, oldest first.
		ListAll(ctx context.Context) ([]core.Transaction, error)
		Get(ctx context.Context, id int64) (core.Transaction, error)
	}

	// Aggregator provides derived monthly views; every call re-reads the store.
	Aggregator interface {
		MonthlySummary(ctx context.Context, year, month int) (core.MonthlySummary, error)
		CategoryTotals(ctx context.Context, year, month int) (core.CategoryTotals, error)
		// MonthlyTrend returns one summary per month present, oldest first.
		MonthlyTrend(ctx context.Context) ([]core.MonthlySummary, error)
	}

	Store interface {
		TransactionWriter
		TransactionReader
		Aggregator
		Close() error
	}
)
