package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"budget/internal/core"
)

// ExportHeader is the column layout written by Export.
var ExportHeader = []string{ColumnID, ColumnDate, ColumnAmount, ColumnCategory, ColumnDescription, ColumnType}

// Export writes txs to w in the given order. The output can be fed back to
// Import; the id column is ignored there.
func Export(w io.Writer, txs []core.Transaction) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(ExportHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, t := range txs {
		record := []string{
			strconv.FormatInt(t.ID, 10),
			t.Date,
			t.Amount.String(),
			t.Category,
			t.Description,
			string(t.Type),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write transaction %d: %w", t.ID, err)
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flush csv: %w", err)
	}
	return nil
}
