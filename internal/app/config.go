package app

import (
	"errors"
	"fmt"
	"time"

	"github.com/specialistvlad/sqlgridgo/internal/config"
	"github.com/specialistvlad/sqlgridgo/internal/dag"
	"github.com/specialistvlad/sqlgridgo/internal/executor"
	"github.com/specialistvlad/sqlgridgo/internal/warehouse"
)

// Defaults applied when neither a flag nor the run file sets a value.
const (
	DefaultRunsDir = "runs"
	DefaultWorkers = 4
	DefaultDriver  = warehouse.DriverDatabricks
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	SourceDir   string // directory tree of .sql scripts
	RunsDir     string // root for snapshots and artifacts
	Workers     int
	OnFailure   executor.FailurePolicy
	TaskTimeout time.Duration
	DryRun      bool

	Warehouse  warehouse.Config
	GraphStyle dag.Style

	LogFormat       string
	LogLevel        string
	HealthcheckPort int
}

// NewConfig validates cfg and fills in defaults.
func NewConfig(cfg Config) (*Config, error) {
	if cfg.SourceDir == "" {
		return nil, errors.New("SourceDir is a required configuration field and cannot be empty")
	}
	if cfg.RunsDir == "" {
		cfg.RunsDir = DefaultRunsDir
	}
	if cfg.Workers < 1 {
		return nil, fmt.Errorf("workers must be at least 1, got %d", cfg.Workers)
	}
	if cfg.TaskTimeout < 0 {
		return nil, fmt.Errorf("task timeout cannot be negative, got %s", cfg.TaskTimeout)
	}

	switch cfg.Warehouse.Driver {
	case "":
		cfg.Warehouse.Driver = DefaultDriver
	case warehouse.DriverDatabricks, warehouse.DriverPgx, warehouse.DriverSQLite:
	default:
		return nil, fmt.Errorf("unsupported driver %q: must be 'databricks', 'pgx' or 'sqlite'", cfg.Warehouse.Driver)
	}
	if !cfg.DryRun && cfg.Warehouse.Driver != warehouse.DriverDatabricks && cfg.Warehouse.DSN == "" {
		return nil, fmt.Errorf("driver %q requires a DSN", cfg.Warehouse.Driver)
	}
	cfg.Warehouse.MaxConns = cfg.Workers

	if cfg.GraphStyle.NodeColor == "" {
		cfg.GraphStyle.NodeColor = dag.DefaultStyle.NodeColor
	}
	if cfg.GraphStyle.EdgeColor == "" {
		cfg.GraphStyle.EdgeColor = dag.DefaultStyle.EdgeColor
	}
	return &cfg, nil
}

// ApplyRunFile copies every setting from rf that isExplicit does not report
// as already set on the command line. isExplicit receives flag names.
func (c *Config) ApplyRunFile(rf *config.RunFile, isExplicit func(flag string) bool) error {
	if rf == nil {
		return nil
	}
	if rf.SourceDir != "" && !isExplicit("source") {
		c.SourceDir = rf.SourceDir
	}
	if rf.RunsDir != "" && !isExplicit("runs-dir") {
		c.RunsDir = rf.RunsDir
	}
	if rf.Workers != nil && !isExplicit("workers") {
		c.Workers = *rf.Workers
	}
	if rf.OnFailure != "" && !isExplicit("on-failure") {
		p, err := executor.ParseFailurePolicy(rf.OnFailure)
		if err != nil {
			return err
		}
		c.OnFailure = p
	}
	if rf.TaskTimeout != nil && !isExplicit("task-timeout") {
		c.TaskTimeout = *rf.TaskTimeout
	}
	if rf.DryRun != nil && !isExplicit("dry-run") {
		c.DryRun = *rf.DryRun
	}
	if conn := rf.Connection; conn != nil {
		if conn.Driver != "" && !isExplicit("driver") {
			c.Warehouse.Driver = conn.Driver
		}
		if conn.DSN != "" && !isExplicit("dsn") {
			c.Warehouse.DSN = conn.DSN
		}
		db := &c.Warehouse.Databricks
		if conn.Host != "" {
			db.ServerHostname = conn.Host
		}
		if conn.HTTPPath != "" {
			db.HTTPPath = conn.HTTPPath
		}
		if conn.Token != "" {
			db.Token = conn.Token
		}
		if conn.Port != nil {
			db.Port = *conn.Port
		}
	}
	if g := rf.Graph; g != nil {
		if g.NodeColor != "" {
			c.GraphStyle.NodeColor = g.NodeColor
		}
		if g.EdgeColor != "" {
			c.GraphStyle.EdgeColor = g.EdgeColor
		}
	}
	return nil
}
