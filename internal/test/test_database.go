package test

import (
	"database/sql"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	// postgres driver
	_ "github.com/lib/pq"
)

var testTables = []string{
	"report_messages",
	"reports",
	"organization_links",
	"organization_settings",
	"audit_events",
}

// WithTestDatabase connects to the database named by TEST_DATABASE_URL,
// applies the schema and hands the closure a clean database. Tests are
// skipped when no test database is configured.
func WithTestDatabase(t *testing.T, closure func(db *sql.DB)) {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL is not set, skipping database test")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	if err := db.Ping(); err != nil {
		t.Skipf("test database is not reachable: %v", err)
	}

	schema, err := os.ReadFile(filepath.Join(projectRoot(), "migrations", "001_init.up.sql"))
	require.NoError(t, err)

	_, err = db.Exec(string(schema))
	require.NoError(t, err)

	for _, table := range testTables {
		_, err = db.Exec("TRUNCATE TABLE " + table + " CASCADE")
		require.NoError(t, err)
	}

	closure(db)
}

// projectRoot resolves the repository root from this file's location.
func projectRoot() string {
	_, file, _, _ := runtime.Caller(0)
	return filepath.Join(filepath.Dir(file), "..", "..")
}
