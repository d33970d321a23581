package storage

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openRawDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open(driverName, filepath.Join(t.TempDir(), "schema.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func countObjects(t *testing.T, db *sql.DB, kind, name string) int {
	t.Helper()
	var n int
	err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = ? AND name = ?`, kind, name).Scan(&n)
	require.NoError(t, err)
	return n
}

func TestEnsureSchemaIsIdempotent(t *testing.T) {
	db := openRawDB(t)

	require.NoError(t, EnsureSchema(db))
	require.NoError(t, EnsureSchema(db))

	assert.Equal(t, 1, countObjects(t, db, "table", "transactions"))
	// The caller's handle must survive schema management.
	assert.NoError(t, db.Ping())
}

func TestEnsureSchemaColumns(t *testing.T) {
	db := openRawDB(t)
	require.NoError(t, EnsureSchema(db))

	rows, err := db.Query(`SELECT name, type, "notnull", pk FROM pragma_table_info('transactions') ORDER BY cid`)
	require.NoError(t, err)
	defer rows.Close()

	type column struct {
		name, typ   string
		notNull, pk int
	}
	var got []column
	for rows.Next() {
		var c column
		require.NoError(t, rows.Scan(&c.name, &c.typ, &c.notNull, &c.pk))
		got = append(got, c)
	}
	require.NoError(t, rows.Err())

	assert.Equal(t, []column{
		{"id", "INTEGER", 0, 1},
		{"date", "TEXT", 1, 0},
		{"amount", "REAL", 1, 0},
		{"category", "TEXT", 1, 0},
		{"description", "TEXT", 0, 0},
		{"type", "TEXT", 1, 0},
	}, got)
}

func TestEnsureSchemaAdoptsExistingTable(t *testing.T) {
	db := openRawDB(t)

	_, err := db.Exec(`CREATE TABLE transactions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		date TEXT NOT NULL,
		amount REAL NOT NULL,
		category TEXT NOT NULL,
		description TEXT,
		type TEXT NOT NULL
	)`)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO transactions (date, amount, category, description, type) VALUES ('2026-01-01', 5, 'A', NULL, 'income')`)
	require.NoError(t, err)

	require.NoError(t, EnsureSchema(db))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM transactions`).Scan(&n))
	assert.Equal(t, 1, n)
}
