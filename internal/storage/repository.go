package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"

	"budget/internal/core"
	applog "budget/internal/log"

	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

func init() {
	sqlx.BindDriver(driverName, sqlx.QUESTION)
}

const (
	insertTransaction = `INSERT INTO transactions (date, amount, category, description, type) VALUES (?, ?, ?, ?, ?)`
	selectColumns     = `SELECT id, date, amount, category, description, type FROM transactions`
	selectRecent      = selectColumns + ` ORDER BY id DESC LIMIT ?`
	selectAll         = selectColumns + ` ORDER BY id ASC`
	selectByID        = selectColumns + ` WHERE id = ?`
	selectMonth       = selectColumns + ` WHERE date LIKE ? ORDER BY id ASC`
)

// transactionRow mirrors the transactions table.
type transactionRow struct {
	ID          int64           `db:"id"`
	Date        string          `db:"date"`
	Amount      decimal.Decimal `db:"amount"`
	Category    string          `db:"category"`
	Description sql.NullString  `db:"description"`
	Type        string          `db:"type"`
}

func (r transactionRow) toCore() core.Transaction {
	return core.Transaction{
		ID:          r.ID,
		Date:        r.Date,
		Amount:      r.Amount,
		Category:    r.Category,
		Description: r.Description.String,
		Type:        core.Type(r.Type),
	}
}

func toCore(rows []transactionRow) []core.Transaction {
	out := make([]core.Transaction, len(rows))
	for i, r := range rows {
		out[i] = r.toCore()
	}
	return out
}

// SQLiteRepository is the transaction store backed by a SQLite file.
type SQLiteRepository struct {
	db *sqlx.DB
}

// Open opens (creating if needed) the database at dbPath and ensures the
// schema before returning.
func Open(dbPath string) (*SQLiteRepository, error) {
	if dir := filepath.Dir(dbPath); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create db directory: %w", err)
		}
	}

	db, err := sqlx.Open(driverName, dbPath+"?_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := EnsureSchema(db.DB); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	slog.Info("Transaction store opened",
		applog.FieldComponent, applog.ComponentStorage,
		"db_path", dbPath)

	return NewRepository(db), nil
}

// NewRepository wraps an already prepared handle. The schema is assumed to exist.
func NewRepository(db *sqlx.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Insert persists t and returns its new ID. Type is stored as given;
// validation belongs to the caller. An amount that would overflow the REAL
// column is refused so it can never poison later reads.
func (r *SQLiteRepository) Insert(ctx context.Context, t core.Transaction) (int64, error) {
	if !core.Representable(t.Amount) {
		return 0, fmt.Errorf("insert transaction: %w %s: out of range", core.ErrInvalidAmount, t.Amount)
	}

	res, err := r.db.ExecContext(ctx, insertTransaction,
		t.Date, t.Amount.InexactFloat64(), t.Category, t.Description, string(t.Type))
	if err != nil {
		return 0, fmt.Errorf("insert transaction: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("read inserted id: %w", err)
	}

	slog.DebugContext(ctx, "Transaction saved to SQLite",
		applog.FieldTransactionID, id,
		applog.FieldDate, t.Date,
		applog.FieldAmount, t.Amount.String(),
		applog.FieldCategory, t.Category,
		applog.FieldType, t.Type)

	return id, nil
}

// ListRecent returns at most limit transactions, highest ID first.
func (r *SQLiteRepository) ListRecent(ctx context.Context, limit int) ([]core.Transaction, error) {
	if limit < 1 {
		return nil, core.ErrInvalidLimit
	}
	var rows []transactionRow
	if err := r.db.SelectContext(ctx, &rows, selectRecent, limit); err != nil {
		return nil, fmt.Errorf("list recent transactions: %w", err)
	}
	return toCore(rows), nil
}

// ListAll returns every transaction, lowest ID first.
func (r *SQLiteRepository) ListAll(ctx context.Context) ([]core.Transaction, error) {
	var rows []transactionRow
	if err := r.db.SelectContext(ctx, &rows, selectAll); err != nil {
		return nil, fmt.Errorf("list all transactions: %w", err)
	}
	return toCore(rows), nil
}

// Get retrieves a single transaction by ID.
func (r *SQLiteRepository) Get(ctx context.Context, id int64) (core.Transaction, error) {
	var row transactionRow
	if err := r.db.GetContext(ctx, &row, selectByID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return core.Transaction{}, fmt.Errorf("get transaction %d: %w", id, core.ErrNotFound)
		}
		return core.Transaction{}, fmt.Errorf("get transaction %d: %w", id, err)
	}
	return row.toCore(), nil
}

// MonthlySummary sums income and expense for the month. Out-of-range months
// select nothing and produce zeros.
func (r *SQLiteRepository) MonthlySummary(ctx context.Context, year, month int) (core.MonthlySummary, error) {
	txs, err := r.listMonth(ctx, year, month)
	if err != nil {
		return core.MonthlySummary{}, fmt.Errorf("monthly summary: %w", err)
	}
	return core.Summarize(year, month, txs), nil
}

// CategoryTotals sums amounts per category and type for the month.
func (r *SQLiteRepository) CategoryTotals(ctx context.Context, year, month int) (core.CategoryTotals, error) {
	txs, err := r.listMonth(ctx, year, month)
	if err != nil {
		return core.CategoryTotals{}, fmt.Errorf("category totals: %w", err)
	}
	return core.TotalsByCategory(year, month, txs), nil
}

// MonthlyTrend summarises every month present in the store, oldest first.
func (r *SQLiteRepository) MonthlyTrend(ctx context.Context) ([]core.MonthlySummary, error) {
	txs, err := r.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("monthly trend: %w", err)
	}
	return core.Trend(txs), nil
}

func (r *SQLiteRepository) listMonth(ctx context.Context, year, month int) ([]core.Transaction, error) {
	var rows []transactionRow
	if err := r.db.SelectContext(ctx, &rows, selectMonth, core.MonthPrefix(year, month)+"%"); err != nil {
		return nil, fmt.Errorf("select month %s: %w", core.MonthPrefix(year, month), err)
	}
	return toCore(rows), nil
}
