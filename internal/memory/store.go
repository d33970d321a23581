package memory

import (
	"context"
	"fmt"
	"sync"

	"budget/internal/core"
	"budget/internal/ports"
)

var _ ports.Store = (*Store)(nil)

// Store keeps transactions in process memory. Like the SQLite store it trusts
// its caller and does not validate.
type Store struct {
	mu     sync.Mutex
	nextID int64
	items  []core.Transaction
}

func New() *Store {
	return &Store{nextID: 1}
}

// Insert stores the transaction and assigns the next ID. Amounts the SQLite
// store could not hold are refused the same way.
func (s *Store) Insert(_ context.Context, t core.Transaction) (int64, error) {
	if !core.Representable(t.Amount) {
		return 0, fmt.Errorf("insert transaction: %w %s: out of range", core.ErrInvalidAmount, t.Amount)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	t.ID = s.nextID
	s.nextID++
	s.items = append(s.items, t)
	return t.ID, nil
}

func (s *Store) ListRecent(_ context.Context, limit int) ([]core.Transaction, error) {
	if limit < 1 {
		return nil, core.ErrInvalidLimit
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	n := min(limit, len(s.items))
	out := make([]core.Transaction, 0, n)
	for i := len(s.items) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.items[i])
	}
	return out, nil
}

func (s *Store) ListAll(_ context.Context) ([]core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Transaction(nil), s.items...), nil
}

func (s *Store) Get(_ context.Context, id int64) (core.Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, t := range s.items {
		if t.ID == id {
			return t, nil
		}
	}
	return core.Transaction{}, fmt.Errorf("get transaction %d: %w", id, core.ErrNotFound)
}

func (s *Store) MonthlySummary(_ context.Context, year, month int) (core.MonthlySummary, error) {
	return core.Summarize(year, month, s.month(year, month)), nil
}

func (s *Store) CategoryTotals(_ context.Context, year, month int) (core.CategoryTotals, error) {
	return core.TotalsByCategory(year, month, s.month(year, month)), nil
}

func (s *Store) MonthlyTrend(ctx context.Context) ([]core.MonthlySummary, error) {
	all, _ := s.ListAll(ctx)
	return core.Trend(all), nil
}

func (s *Store) Close() error {
	return nil
}

func (s *Store) month(year, month int) []core.Transaction {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Transaction
	for _, t := range s.items {
		if t.InMonth(year, month) {
			out = append(out, t)
		}
	}
	return out
}
