package warehouse

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/specialistvlad/sqlgridgo/internal/ctxlog"
	"github.com/specialistvlad/sqlgridgo/internal/sqlparse"
)

// Runner executes scripts against a connection pool. Each call borrows its
// own connection for the whole script, so session state set by one
// statement (USE, SET) is seen by the next and never leaks across tasks.
type Runner struct {
	db    *sql.DB
	paths map[string]string
}

// NewRunner returns a Runner that reads each script from paths[name].
func NewRunner(db *sql.DB, paths map[string]string) *Runner {
	return &Runner{db: db, paths: paths}
}

// Execute runs the named script statement by statement. It has the
// executor.TaskFunc signature.
func (r *Runner) Execute(ctx context.Context, name string) error {
	logger := ctxlog.FromContext(ctx)

	path, ok := r.paths[name]
	if !ok {
		return fmt.Errorf("no script registered for '%s'", name)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	stmts, err := sqlparse.SplitStatements(string(data))
	if err != nil {
		// Let the warehouse report the syntax problem.
		stmts = []string{string(data)}
	}

	conn, err := r.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("failed to acquire connection: %w", err)
	}
	defer func() { _ = conn.Close() }()

	for i, stmt := range stmts {
		logger.Debug("Executing statement.", "index", i+1, "of", len(stmts))
		if _, err := conn.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("statement %d of %d: %w", i+1, len(stmts), err)
		}
	}
	return nil
}
