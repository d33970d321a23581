package core

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func TestParseType(t *testing.T) {
	for _, ok := range []string{"income", "expense"} {
		if _, err := ParseType(ok); err != nil {
			t.Fatalf("%q expected ok, got %v", ok, err)
		}
	}
	for _, bad := range []string{"", "Income", "expenses", " income", "transfer"} {
		if _, err := ParseType(bad); !errors.Is(err, ErrInvalidType) {
			t.Fatalf("%q expected ErrInvalidType, got %v", bad, err)
		}
	}
}

func TestValidateDate(t *testing.T) {
	cases := []struct {
		in  string
		err error
	}{
		{"2026-01-01", nil},
		{"2024-02-29", nil},
		{"", ErrMissingDate},
		{"2026-1-1", ErrInvalidDate},
		{"2026-02-30", ErrInvalidDate},
		{"01/02/2026", ErrInvalidDate},
	}
	for _, tc := range cases {
		err := ValidateDate(tc.in)
		if tc.err == nil && err != nil {
			t.Fatalf("%q expected ok, got %v", tc.in, err)
		}
		if tc.err != nil && !errors.Is(err, tc.err) {
			t.Fatalf("%q expected %v, got %v", tc.in, tc.err, err)
		}
	}
}

func TestFormatDate(t *testing.T) {
	d := time.Date(2026, time.March, 7, 23, 59, 0, 0, time.UTC)
	if got := FormatDate(d); got != "2026-03-07" {
		t.Fatalf("expected 2026-03-07, got %s", got)
	}
}

func TestTransactionNormalizeAndValidate(t *testing.T) {
	good := Transaction{
		Date:   "2026-01-01",
		Amount: decimal.NewFromInt(100),
		Type:   Income,
	}.Normalize()
	if good.Category != DefaultCategory {
		t.Fatalf("expected default category, got %q", good.Category)
	}
	if err := good.Validate(); err != nil {
		t.Fatalf("expected ok, got %v", err)
	}

	bads := []struct {
		tx  Transaction
		err error
	}{
		{Transaction{Date: "", Amount: decimal.NewFromInt(1), Type: Expense}, ErrMissingDate},
		{Transaction{Date: "2026-13-01", Amount: decimal.NewFromInt(1), Type: Expense}, ErrInvalidDate},
		{Transaction{Date: "2026-01-01", Amount: decimal.NewFromInt(-1), Type: Expense}, ErrNegativeAmount},
		{Transaction{Date: "2026-01-01", Amount: decimal.RequireFromString("1e400"), Type: Expense}, ErrInvalidAmount},
		{Transaction{Date: "2026-01-01", Amount: decimal.NewFromInt(1), Type: "refund"}, ErrInvalidType},
	}
	for i, tc := range bads {
		if err := tc.tx.Validate(); !errors.Is(err, tc.err) {
			t.Fatalf("case %d expected %v, got %v", i, tc.err, err)
		}
	}
}
