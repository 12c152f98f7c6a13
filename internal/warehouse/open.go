package warehouse

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/databricks/databricks-sql-go" // register the databricks database/sql driver
	_ "github.com/jackc/pgx/v5/stdlib"          // register pgx as a database/sql driver
	_ "modernc.org/sqlite"                      // register the pure-Go sqlite driver

	"github.com/specialistvlad/sqlgridgo/internal/ctxlog"
)

var sqlOpen = sql.Open

// ConnectionError reports a warehouse that could not be reached. It aborts
// the run before any script executes.
type ConnectionError struct {
	Driver string
	Err    error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to %s warehouse: %v", e.Driver, e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// Open opens a connection pool for cfg and verifies it with a ping.
func Open(ctx context.Context, cfg Config) (*sql.DB, error) {
	logger := ctxlog.FromContext(ctx)

	dsn, err := cfg.dataSource()
	if err != nil {
		return nil, &ConnectionError{Driver: cfg.Driver, Err: err}
	}

	db, err := sqlOpen(cfg.Driver, dsn)
	if err != nil {
		return nil, &ConnectionError{Driver: cfg.Driver, Err: err}
	}
	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.MaxConns)
		db.SetMaxIdleConns(cfg.MaxConns)
	}

	logger.Debug("Pinging warehouse.", "driver", cfg.Driver)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, &ConnectionError{Driver: cfg.Driver, Err: err}
	}
	logger.Info("🔌 Connected to warehouse.", "driver", cfg.Driver)
	return db, nil
}
