package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/sqlgridgo/internal/app"
	"github.com/specialistvlad/sqlgridgo/internal/config"
	"github.com/specialistvlad/sqlgridgo/internal/executor"
	"github.com/specialistvlad/sqlgridgo/internal/warehouse"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
	Err     error
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

func (e *ExitError) Unwrap() error { return e.Err }

func usageError(format string, args ...any) *ExitError {
	return &ExitError{Code: 2, Message: fmt.Sprintf(format, args...)}
}

// Parse processes command-line arguments, the optional run file and the
// environment, in that order of precedence. It returns a validated
// app.Config, a boolean indicating if the program should exit cleanly, or
// an ExitError.
func Parse(ctx context.Context, args []string, output io.Writer, loader config.Loader) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("sqlgridgo", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
sqlgridgo - Run a directory of SQL scripts in dependency order, concurrently.

Usage:
  sqlgridgo [options] [SOURCE_DIR]

Arguments:
  SOURCE_DIR
    Directory tree of .sql scripts. Each file name is the table it builds.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "", "Path to an HCL run file.")
	sourceFlag := flagSet.String("source", "", "Directory tree of .sql scripts.")
	runsDirFlag := flagSet.String("runs-dir", app.DefaultRunsDir, "Root directory for snapshots and run artifacts.")
	workersFlag := flagSet.Int("workers", app.DefaultWorkers, "Number of concurrent workers for the executor.")
	onFailureFlag := flagSet.String("on-failure", "attempt", "What happens to dependents of a failed script. Options: 'attempt' or 'skip'.")
	driverFlag := flagSet.String("driver", app.DefaultDriver, "Warehouse driver. Options: 'databricks', 'pgx', 'sqlite'.")
	dsnFlag := flagSet.String("dsn", "", "Data source name. Derived from DATABRICKS_* variables when empty.")
	taskTimeoutFlag := flagSet.Duration("task-timeout", 0, "Maximum run time of a single script. 0 is unlimited.")
	dryRunFlag := flagSet.Bool("dry-run", false, "Snapshot, analyse and write artifacts without executing.")
	envFileFlag := flagSet.String("env-file", warehouse.DefaultEnvFile, "Dotenv file loaded before reading the environment.")
	healthPortFlag := flagSet.Int("healthcheck-port", 0, "Port for the HTTP health check server. 0 is disabled.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error(), Err: err}
	}
	slog.Debug("Arguments parsed successfully.")

	explicit := map[string]bool{}
	flagSet.Visit(func(f *flag.Flag) { explicit[f.Name] = true })
	isExplicit := func(name string) bool { return explicit[name] }

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, usageError("invalid log-format: must be 'text' or 'json'")
	}
	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, usageError("invalid log-level: must be 'debug', 'info', 'warn', or 'error'")
	}
	policy, err := executor.ParseFailurePolicy(*onFailureFlag)
	if err != nil {
		return nil, false, usageError("invalid on-failure: %v", err)
	}

	if err := warehouse.LoadEnvFile(*envFileFlag); err != nil {
		return nil, false, &ExitError{Code: 1, Message: err.Error(), Err: err}
	}
	databricks, err := warehouse.DatabricksFromEnv()
	if err != nil {
		return nil, false, usageError("%v", err)
	}

	cfg := app.Config{
		SourceDir:   *sourceFlag,
		RunsDir:     *runsDirFlag,
		Workers:     *workersFlag,
		OnFailure:   policy,
		TaskTimeout: *taskTimeoutFlag,
		DryRun:      *dryRunFlag,
		Warehouse: warehouse.Config{
			Driver:     strings.ToLower(*driverFlag),
			DSN:        *dsnFlag,
			Databricks: databricks,
		},
		LogFormat:       logFormat,
		LogLevel:        logLevel,
		HealthcheckPort: *healthPortFlag,
	}
	if cfg.SourceDir == "" && flagSet.NArg() > 0 {
		cfg.SourceDir = flagSet.Arg(0)
		explicit["source"] = true
	}

	if *configFlag != "" {
		slog.Debug("Loading run file.", "path", *configFlag)
		rf, err := loader.Load(ctx, *configFlag)
		if err != nil {
			return nil, false, &ExitError{Code: 1, Message: fmt.Sprintf("failed to load run file: %v", err), Err: err}
		}
		if err := cfg.ApplyRunFile(rf, isExplicit); err != nil {
			return nil, false, usageError("invalid run file %s: %v", *configFlag, err)
		}
	}

	if cfg.SourceDir == "" {
		slog.Debug("No source directory provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	validated, err := app.NewConfig(cfg)
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error(), Err: err}
	}

	slog.Debug("CLI parser finished successfully.", "source", validated.SourceDir, "driver", validated.Warehouse.Driver)
	return validated, false, nil
}
