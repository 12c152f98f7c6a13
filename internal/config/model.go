package config

import (
	"context"
	"time"
)

// Loader is the interface for a format-specific run-file loader.
type Loader interface {
	// Load reads the run file at path and translates it into the model.
	Load(ctx context.Context, path string) (*RunFile, error)
}

// RunFile is the unified representation of a run file.
type RunFile struct {
	SourceDir   string
	RunsDir     string
	Workers     *int
	OnFailure   string
	TaskTimeout *time.Duration
	DryRun      *bool

	Connection *Connection
	Graph      *GraphStyle
}

// Connection describes the warehouse to run scripts against.
type Connection struct {
	Driver string
	DSN    string

	// Databricks coordinates. Any that are set override the environment.
	Host     string
	HTTPPath string
	Token    string
	Port     *int
}

// GraphStyle sets the colours of the rendered graph.
type GraphStyle struct {
	NodeColor string
	EdgeColor string
}
