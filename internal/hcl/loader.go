package hcl

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/sqlgridgo/internal/config"
	"github.com/specialistvlad/sqlgridgo/internal/ctxlog"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct{}

// NewLoader creates a new HCL run-file loader.
func NewLoader() *Loader {
	return &Loader{}
}

var _ config.Loader = (*Loader)(nil)

// Load parses and evaluates the run file at path. Relative directories in
// the file are resolved against the file's own directory.
func (l *Loader) Load(ctx context.Context, path string) (*config.RunFile, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", path, diags)
	}

	var root fileRoot
	diags = gohcl.DecodeBody(file.Body, evalContext(), &root)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", path, diags)
	}

	rf, err := translate(&root, filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("invalid run file %s: %w", path, err)
	}
	logger.Debug("HCL loader finished.", "path", path)
	return rf, nil
}

// translate converts the decoded schema into the agnostic model.
func translate(root *fileRoot, baseDir string) (*config.RunFile, error) {
	rf := &config.RunFile{
		SourceDir: resolveDir(baseDir, deref(root.SourceDir)),
		RunsDir:   resolveDir(baseDir, deref(root.RunsDir)),
		Workers:   root.Workers,
		OnFailure: strings.ToLower(deref(root.OnFailure)),
		DryRun:    root.DryRun,
	}
	if root.TaskTimeout != nil && *root.TaskTimeout != "" {
		d, err := time.ParseDuration(*root.TaskTimeout)
		if err != nil {
			return nil, fmt.Errorf("task_timeout: %w", err)
		}
		rf.TaskTimeout = &d
	}
	if c := root.Connection; c != nil {
		rf.Connection = &config.Connection{
			Driver:   c.Driver,
			DSN:      deref(c.DSN),
			Host:     deref(c.Host),
			HTTPPath: deref(c.HTTPPath),
			Token:    deref(c.Token),
			Port:     c.Port,
		}
	}
	if g := root.Graph; g != nil {
		rf.Graph = &config.GraphStyle{
			NodeColor: deref(g.NodeColor),
			EdgeColor: deref(g.EdgeColor),
		}
	}
	return rf, nil
}

func resolveDir(base, dir string) string {
	if dir == "" || filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(base, dir)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
