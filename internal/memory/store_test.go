package memory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budget/internal/core"
)

func TestStoreInsertAndList(t *testing.T) {
	s := New()
	ctx := context.Background()

	for i, d := range []string{"2026-01-03", "2026-01-01", "2026-01-02"} {
		id, err := s.Insert(ctx, core.Transaction{Date: d, Amount: decimal.NewFromInt(int64(i + 1)), Category: "A", Type: core.Expense})
		require.NoError(t, err)
		assert.Equal(t, int64(i+1), id)
	}

	recent, err := s.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, int64(3), recent[0].ID)
	assert.Equal(t, int64(2), recent[1].ID)

	all, err := s.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, int64(1), all[0].ID)

	everything, err := s.ListRecent(ctx, 50)
	require.NoError(t, err)
	assert.Len(t, everything, 3)

	_, err = s.ListRecent(ctx, 0)
	assert.ErrorIs(t, err, core.ErrInvalidLimit)
}

func TestStoreGet(t *testing.T) {
	s := New()
	ctx := context.Background()
	id, err := s.Insert(ctx, core.Transaction{Date: "2026-01-01", Amount: decimal.NewFromInt(5), Category: "A", Type: core.Income})
	require.NoError(t, err)

	got, err := s.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "2026-01-01", got.Date)

	_, err = s.Get(ctx, id+1)
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestStoreAggregates(t *testing.T) {
	s := New()
	ctx := context.Background()
	insert := func(date, amount, cat string, typ core.Type) {
		_, err := s.Insert(ctx, core.Transaction{Date: date, Amount: decimal.RequireFromString(amount), Category: cat, Type: typ})
		require.NoError(t, err)
	}
	insert("2026-01-01", "1000", "Salary", core.Income)
	insert("2026-01-05", "200", "Groceries", core.Expense)
	insert("2026-02-05", "70", "Groceries", core.Expense)

	sum, err := s.MonthlySummary(ctx, 2026, 1)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(800).Equal(sum.Net))

	ct, err := s.CategoryTotals(ctx, 2026, 2)
	require.NoError(t, err)
	assert.Empty(t, ct.Income)
	assert.True(t, decimal.NewFromInt(70).Equal(ct.Expense["Groceries"]))

	trend, err := s.MonthlyTrend(ctx)
	require.NoError(t, err)
	require.Len(t, trend, 2)
	assert.Equal(t, 1, trend[0].Month)
	assert.True(t, decimal.NewFromInt(70).Equal(trend[1].Expense))
}

func TestStoreRejectsOverflowingAmount(t *testing.T) {
	s := New()
	_, err := s.Insert(context.Background(), core.Transaction{Date: "2026-01-01", Amount: decimal.RequireFromString("1e400"), Type: core.Income})
	assert.ErrorIs(t, err, core.ErrInvalidAmount)

	all, err := s.ListAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}
