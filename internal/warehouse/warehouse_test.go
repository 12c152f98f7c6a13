package warehouse

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openSQLite(t *testing.T) *sql.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "warehouse.db")
	db, err := Open(context.Background(), Config{Driver: DriverSQLite, DSN: dsn, MaxConns: 1})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func writeScript(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name+".sql")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestRunner_ExecutesStatementsInOrder(t *testing.T) {
	db := openSQLite(t)
	dir := t.TempDir()
	paths := map[string]string{
		"setup": writeScript(t, dir, "setup", `
-- creates the base table
CREATE TABLE raw_orders (id INTEGER, note TEXT);
INSERT INTO raw_orders VALUES (1, 'a;b'), (2, 'c');
`),
		"fact": writeScript(t, dir, "fact", `CREATE TABLE fact_order AS SELECT id FROM raw_orders WHERE id > 1`),
	}
	r := NewRunner(db, paths)

	require.NoError(t, r.Execute(context.Background(), "setup"))
	require.NoError(t, r.Execute(context.Background(), "fact"))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM raw_orders`).Scan(&n))
	assert.Equal(t, 2, n)
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM fact_order`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestRunner_ReportsFailingStatement(t *testing.T) {
	db := openSQLite(t)
	dir := t.TempDir()
	r := NewRunner(db, map[string]string{
		"bad": writeScript(t, dir, "bad", "CREATE TABLE ok_table (id INTEGER);\nSELECT * FROM missing_table;"),
	})

	err := r.Execute(context.Background(), "bad")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "statement 2 of 2")
}

func TestRunner_UnknownScript(t *testing.T) {
	db := openSQLite(t)
	r := NewRunner(db, map[string]string{})
	err := r.Execute(context.Background(), "ghost")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ghost")
}

func TestOpen_PingFailureIsConnectionError(t *testing.T) {
	orig := sqlOpen
	t.Cleanup(func() { sqlOpen = orig })
	sqlOpen = func(driver, dsn string) (*sql.DB, error) {
		return nil, errors.New("boom")
	}

	_, err := Open(context.Background(), Config{Driver: DriverPgx, DSN: "postgres://nowhere"})
	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
	assert.Equal(t, DriverPgx, connErr.Driver)
	assert.Contains(t, err.Error(), "boom")
}

func TestOpen_MissingDSN(t *testing.T) {
	_, err := Open(context.Background(), Config{Driver: DriverSQLite})
	var connErr *ConnectionError
	require.ErrorAs(t, err, &connErr)
}

func TestDatabricksFromEnv(t *testing.T) {
	t.Setenv("DATABRICKS_SERVER_HOSTNAME", "adb-1.azuredatabricks.net")
	t.Setenv("DATABRICKS_HTTP_PATH", "sql/1.0/warehouses/abc")
	t.Setenv("DATABRICKS_TOKEN", "dapi123")

	c, err := DatabricksFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 443, c.Port)

	dsn, err := c.DSN()
	require.NoError(t, err)
	assert.Equal(t, "token:dapi123@adb-1.azuredatabricks.net:443/sql/1.0/warehouses/abc", dsn)
}

func TestDatabricksDSN_Missing(t *testing.T) {
	_, err := DatabricksConfig{HTTPPath: "/p"}.DSN()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABRICKS_SERVER_HOSTNAME")
	assert.Contains(t, err.Error(), "DATABRICKS_TOKEN")
	assert.NotContains(t, err.Error(), "DATABRICKS_HTTP_PATH")
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("SQLGRIDGO_TEST_VALUE=from-file\n"), 0o644))
	t.Setenv("SQLGRIDGO_TEST_VALUE", "")
	require.NoError(t, os.Unsetenv("SQLGRIDGO_TEST_VALUE"))

	require.NoError(t, LoadEnvFile(path))
	assert.Equal(t, "from-file", os.Getenv("SQLGRIDGO_TEST_VALUE"))

	assert.Error(t, LoadEnvFile(filepath.Join(t.TempDir(), "absent.env")))
	assert.NoError(t, LoadEnvFile(""))
}
