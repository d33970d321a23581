package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"budget/internal/core"
)

func setupEnv(t *testing.T) string {
	t.Helper()
	t.Setenv("DATA_BACKEND", "sqlite")
	t.Setenv("AMQP_URL", "")
	t.Setenv("GOOGLE_SPREADSHEET_ID", "")
	t.Setenv("LIST_LIMIT", "50")
	t.Setenv("LOG_LEVEL", "error")
	return filepath.Join(t.TempDir(), "cli_budget.db")
}

func run(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := execute(args, strings.NewReader(stdin), &out)
	return out.String(), err
}

func TestAddAndList(t *testing.T) {
	db := setupEnv(t)

	out, err := run(t, "", "--db", db, "add", "--type", "income", "--amount", "50", "--category", "Gift", "--desc", "Birthday", "--date", "2026-02-01")
	require.NoError(t, err)
	assert.Contains(t, out, "Added transaction id=1")

	out, err = run(t, "", "--db", db, "list")
	require.NoError(t, err)
	assert.Equal(t, "  1 | 2026-02-01 | income  |    50.00 | Gift | Birthday\n", out)
}

func TestAddRejectsBadInput(t *testing.T) {
	db := setupEnv(t)

	_, err := run(t, "", "--db", db, "add", "--type", "gift", "--amount", "5")
	assert.ErrorContains(t, err, "type must be 'income' or 'expense'")

	_, err = run(t, "", "--db", db, "add", "--type", "expense", "--amount", "-5")
	assert.Error(t, err)

	_, err = run(t, "", "--db", db, "add", "--type", "expense", "--amount", "1,000")
	assert.ErrorIs(t, err, core.ErrInvalidAmount)

	_, err = run(t, "", "--db", db, "add", "--type", "expense", "--amount", "1e400")
	assert.ErrorIs(t, err, core.ErrInvalidAmount)

	out, err := run(t, "", "--db", db, "list")
	require.NoError(t, err)
	assert.Empty(t, out)

	_, err = run(t, "", "--db", db, "add", "--type", "expense")
	assert.ErrorContains(t, err, `required flag(s) "amount" not set`)
}

func TestListLimit(t *testing.T) {
	db := setupEnv(t)
	for i := 0; i < 3; i++ {
		_, err := run(t, "", "--db", db, "add", "--type", "expense", "--amount", "1", "--date", "2026-01-01")
		require.NoError(t, err)
	}

	out, err := run(t, "", "--db", db, "list", "--limit", "2")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "  3 |"))

	_, err = run(t, "", "--db", db, "list", "--limit", "0")
	assert.Error(t, err)
}

func TestSummaryAndCategories(t *testing.T) {
	db := setupEnv(t)
	csv := "date,amount,category,description,type\n" +
		"2026-01-01,1000,Salary,Jan salary,income\n" +
		"2026-01-05,200,Groceries,Weekly shop,expense\n" +
		"2026-02-01,999,Salary,Feb salary,income\n"

	out, err := run(t, csv, "--db", db, "import", "-")
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 3 transactions")

	out, err = run(t, "", "--db", db, "summary", "--year", "2026", "--month", "1")
	require.NoError(t, err)
	assert.Equal(t, "Year: 2026, Month: 01\nIncome:  1000.00\nExpense: 200.00\nNet:     800.00\n", out)

	out, err = run(t, "", "--db", db, "categories", "--year", "2026", "--month", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "Groceries")
	assert.Contains(t, out, "200.00")
	assert.NotContains(t, out, "999.00")

	out, err = run(t, "", "--db", db, "trend")
	require.NoError(t, err)
	assert.Equal(t, "Month   |     Income |    Expense |        Net\n"+
		"2026-01 |    1000.00 |     200.00 |     800.00\n"+
		"2026-02 |     999.00 |       0.00 |     999.00\n", out)
}

func TestImportReportsRowErrors(t *testing.T) {
	db := setupEnv(t)
	path := filepath.Join(t.TempDir(), "in.csv")
	require.NoError(t, os.WriteFile(path, []byte("date,amount,category,description,type\n"+
		"2026-02-01,50,Gift,Birthday,income\n"+
		"2026-02-02,,Food,Lunch,expense\n"), 0600))

	out, err := run(t, "", "--db", db, "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 transactions")
	assert.Contains(t, out, "1 rows rejected:")
	assert.Contains(t, out, "line 3: missing amount")
}

func TestExportToFile(t *testing.T) {
	db := setupEnv(t)
	_, err := run(t, "", "--db", db, "add", "--type", "expense", "--amount", "9.99", "--category", "Food", "--date", "2026-03-01")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "out.csv")
	out, err := run(t, "", "--db", db, "export", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 transactions")

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "id,date,amount,category,description,type\n1,2026-03-01,9.99,Food,,expense\n", string(data))
}
