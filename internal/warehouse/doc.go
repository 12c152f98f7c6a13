// Package warehouse is the execution channel: it opens a database/sql pool
// for Databricks, Postgres (pgx) or SQLite and runs snapshot scripts on it,
// one borrowed connection per task.
package warehouse
