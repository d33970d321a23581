package core

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	Income  Type = "income"
	Expense Type = "expense"
)

// DefaultCategory is applied when a transaction is recorded without a category.
const DefaultCategory = "General"

// DateLayout is the on-disk representation of a transaction date.
const DateLayout = "2006-01-02"

type (
	// Type tells how an amount contributes to aggregates.
	Type string

	// Transaction is one recorded income or expense event.
	Transaction struct {
		ID          int64
		Date        string // YYYY-MM-DD
		Amount      decimal.Decimal
		Category    string
		Description string
		Type        Type
	}
)

var (
	ErrInvalidType    = errors.New("type must be 'income' or 'expense'")
	ErrMissingDate    = errors.New("missing date")
	ErrInvalidDate    = errors.New("invalid date")
	ErrMissingAmount  = errors.New("missing amount")
	ErrInvalidAmount  = errors.New("invalid amount")
	ErrNegativeAmount = errors.New("amount must not be negative")
	ErrInvalidLimit   = errors.New("limit must be a positive integer")
	ErrNotFound       = errors.New("transaction not found")
)

// ParseType accepts exactly "income" or "expense".
func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case Income, Expense:
		return t, nil
	default:
		return "", ErrInvalidType
	}
}

func (t Type) Valid() bool {
	return t == Income || t == Expense
}

func (t Type) String() string {
	return string(t)
}

// ValidateDate checks that s is a real calendar date in YYYY-MM-DD form.
func ValidateDate(s string) error {
	if s == "" {
		return ErrMissingDate
	}
	if _, err := time.Parse(DateLayout, s); err != nil {
		return fmt.Errorf("%w %q: want YYYY-MM-DD", ErrInvalidDate, s)
	}
	return nil
}

// FormatDate renders t in the on-disk date layout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// Normalize fills in defaults for optional fields.
func (t Transaction) Normalize() Transaction {
	if strings.TrimSpace(t.Category) == "" {
		t.Category = DefaultCategory
	}
	return t
}

func (t Transaction) Validate() error {
	if err := ValidateDate(t.Date); err != nil {
		return err
	}
	if t.Amount.IsNegative() {
		return ErrNegativeAmount
	}
	if !Representable(t.Amount) {
		return fmt.Errorf("%w %s: out of range", ErrInvalidAmount, t.Amount)
	}
	if !t.Type.Valid() {
		return ErrInvalidType
	}
	return nil
}
