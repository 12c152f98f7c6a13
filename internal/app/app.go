package app

import (
	"context"
	"database/sql"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/specialistvlad/sqlgridgo/internal/executor"
	"github.com/specialistvlad/sqlgridgo/internal/warehouse"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW   io.Writer
	logger *slog.Logger
	config *Config

	openDB func(ctx context.Context, cfg warehouse.Config) (*sql.DB, error)
	now    func() time.Time

	httpServer *http.Server
	progress   progress
	report     *executor.Report
}

// NewApp is the constructor for the main application. It returns an App
// with its own isolated logger.
func NewApp(outW io.Writer, cfg *Config) *App {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, outW)
	logger.Debug("Logger configured successfully.")

	return &App{
		outW:   outW,
		logger: logger,
		config: cfg,
		openDB: warehouse.Open,
		now:    time.Now,
	}
}

// Report returns the report of the last completed run, or nil. This is
// primarily for testing.
func (a *App) Report() *executor.Report {
	return a.report
}
