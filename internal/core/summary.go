package core

import (
	"cmp"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// MonthlySummary is the income, expense and net for a specific year+month.
type MonthlySummary struct {
	Year    int
	Month   int
	Income  decimal.Decimal
	Expense decimal.Decimal
	Net     decimal.Decimal
}

// CategoryTotals holds per-category sums within a month, split by type.
// Categories with no matching transactions are absent from the maps.
type CategoryTotals struct {
	Year    int
	Month   int
	Expense map[string]decimal.Decimal
	Income  map[string]decimal.Decimal
}

// MonthPrefix returns the date prefix selecting a year+month. The values are
// not range checked: month 13 yields "YYYY-13", which matches no stored date.
func MonthPrefix(year, month int) string {
	return fmt.Sprintf("%04d-%02d", year, month)
}

// InMonth reports whether t falls inside the given year+month.
func (t Transaction) InMonth(year, month int) bool {
	return strings.HasPrefix(t.Date, MonthPrefix(year, month))
}

// Summarize folds transactions into a MonthlySummary. Callers pass only the
// rows of the month; rows with an unknown type are skipped.
func Summarize(year, month int, txs []Transaction) MonthlySummary {
	s := MonthlySummary{
		Year:    year,
		Month:   month,
		Income:  decimal.Zero,
		Expense: decimal.Zero,
	}
	for _, t := range txs {
		switch t.Type {
		case Income:
			s.Income = s.Income.Add(t.Amount)
		case Expense:
			s.Expense = s.Expense.Add(t.Amount)
		}
	}
	s.Net = s.Income.Sub(s.Expense)
	return s
}

// TotalsByCategory folds transactions into per-category sums.
func TotalsByCategory(year, month int, txs []Transaction) CategoryTotals {
	ct := CategoryTotals{
		Year:    year,
		Month:   month,
		Expense: map[string]decimal.Decimal{},
		Income:  map[string]decimal.Decimal{},
	}
	for _, t := range txs {
		var m map[string]decimal.Decimal
		switch t.Type {
		case Income:
			m = ct.Income
		case Expense:
			m = ct.Expense
		default:
			continue
		}
		m[t.Category] = m[t.Category].Add(t.Amount)
	}
	return ct
}

type yearMonth struct {
	year, month int
}

// Trend folds transactions into one MonthlySummary per month that has income
// or expense rows, oldest month first. Rows whose date does not start with a
// valid YYYY-MM are skipped.
func Trend(txs []Transaction) []MonthlySummary {
	byMonth := map[yearMonth][]Transaction{}
	for _, t := range txs {
		if !t.Type.Valid() || len(t.Date) < 7 {
			continue
		}
		d, err := time.Parse("2006-01", t.Date[:7])
		if err != nil {
			continue
		}
		k := yearMonth{d.Year(), int(d.Month())}
		byMonth[k] = append(byMonth[k], t)
	}

	keys := slices.SortedFunc(maps.Keys(byMonth), func(a, b yearMonth) int {
		return cmp.Or(cmp.Compare(a.year, b.year), cmp.Compare(a.month, b.month))
	})
	out := make([]MonthlySummary, 0, len(keys))
	for _, k := range keys {
		out = append(out, Summarize(k.year, k.month, byMonth[k]))
	}
	return out
}
