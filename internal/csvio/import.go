// Package csvio moves transactions in and out of CSV text.
//
// Import is header driven and isolates rows: a bad row is recorded with its
// physical line number and the batch carries on. Rows inserted before a
// failure stay inserted; there is no batch-wide transaction.
package csvio

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"budget/internal/core"
	applog "budget/internal/log"
)

// Column names recognised in the header row.
const (
	ColumnID          = "id"
	ColumnDate        = "date"
	ColumnAmount      = "amount"
	ColumnCategory    = "category"
	ColumnDescription = "description"
	ColumnType        = "type"
)

// Inserter receives every row that passes validation.
type Inserter interface {
	Insert(ctx context.Context, t core.Transaction) (int64, error)
}

// InsertFunc adapts a function to an Inserter.
type InsertFunc func(ctx context.Context, t core.Transaction) (int64, error)

func (f InsertFunc) Insert(ctx context.Context, t core.Transaction) (int64, error) {
	return f(ctx, t)
}

type batchKey struct{}

// BatchIDFromContext returns the import batch ID carried by ctx, if any.
// Import sets it on the context handed to Inserter.Insert.
func BatchIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(batchKey{}).(string)
	return id
}

// RowError describes one rejected row. Line counts the header as line 1.
// Row holds the cells by column name; for a record that is not valid CSV it
// is empty and Raw holds the physical lines the record spans instead.
type RowError struct {
	Line int
	Row  map[string]string
	Raw  string
	Err  error
}

func (e RowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e RowError) Unwrap() error {
	return e.Err
}

// Result summarises an import run.
type Result struct {
	BatchID  string
	Imported int
	Errors   []RowError
}

// Import reads CSV from r and inserts each valid row through dst. Row
// validation failures are collected in Result.Errors. A read failure or an
// insert failure stops the run and is returned together with the partial result.
// The input is held in memory so malformed records can be reported verbatim.
func Import(ctx context.Context, dst Inserter, r io.Reader) (Result, error) {
	res := Result{BatchID: uuid.NewString()}
	ctx = context.WithValue(ctx, batchKey{}, res.BatchID)

	data, err := io.ReadAll(r)
	if err != nil {
		return res, fmt.Errorf("read csv: %w", err)
	}
	lines := strings.Split(string(data), "\n")

	cr := csv.NewReader(bytes.NewReader(data))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return res, nil
	}
	if err != nil {
		return res, fmt.Errorf("read header: %w", err)
	}
	header = normalizeHeader(header)

	for {
		if err := ctx.Err(); err != nil {
			return res, err
		}

		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				res.Errors = append(res.Errors, RowError{
					Line: perr.StartLine,
					Row:  map[string]string{},
					Raw:  rawLines(lines, perr.StartLine, perr.Line),
					Err:  perr.Err,
				})
				continue
			}
			return res, fmt.Errorf("read csv: %w", err)
		}

		line, _ := cr.FieldPos(0)
		row := rowMap(header, record)

		t, err := parseRow(row)
		if err != nil {
			res.Errors = append(res.Errors, RowError{Line: line, Row: row, Err: err})
			slog.DebugContext(ctx, "Import row rejected",
				applog.FieldBatchID, res.BatchID,
				applog.FieldLine, line,
				applog.FieldError, err)
			continue
		}

		if _, err := dst.Insert(ctx, t); err != nil {
			return res, fmt.Errorf("insert line %d: %w", line, err)
		}
		res.Imported++
	}

	slog.InfoContext(ctx, "CSV import finished",
		applog.FieldComponent, applog.ComponentImport,
		applog.FieldBatchID, res.BatchID,
		applog.FieldImported, res.Imported,
		applog.FieldFailed, len(res.Errors))

	return res, nil
}

// parseRow applies the row checks in order; the first failure wins. Date and
// amount are trimmed; the type must match exactly.
func parseRow(row map[string]string) (core.Transaction, error) {
	date := strings.TrimSpace(row[ColumnDate])
	if err := core.ValidateDate(date); err != nil {
		return core.Transaction{}, err
	}

	amount, err := core.ParseAmount(row[ColumnAmount])
	if err != nil {
		return core.Transaction{}, err
	}

	typ, err := core.ParseType(row[ColumnType])
	if err != nil {
		return core.Transaction{}, err
	}

	return core.Transaction{
		Date:        date,
		Amount:      amount,
		Category:    row[ColumnCategory],
		Description: row[ColumnDescription],
		Type:        typ,
	}.Normalize(), nil
}

// rawLines returns physical lines first..last (1-based, inclusive) without
// line terminators.
func rawLines(lines []string, first, last int) string {
	if first < 1 {
		first = 1
	}
	if last > len(lines) {
		last = len(lines)
	}
	if first > last {
		return ""
	}
	out := make([]string, 0, last-first+1)
	for _, l := range lines[first-1 : last] {
		out = append(out, strings.TrimSuffix(l, "\r"))
	}
	return strings.Join(out, "\n")
}

func normalizeHeader(header []string) []string {
	out := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		out[i] = strings.TrimSpace(h)
	}
	return out
}

// rowMap pairs header names with cell values as read. Cells beyond the header
// are dropped and missing trailing cells are absent from the map.
func rowMap(header, record []string) map[string]string {
	row := make(map[string]string, len(header))
	for i, name := range header {
		if i >= len(record) {
			break
		}
		row[name] = record[i]
	}
	return row
}
