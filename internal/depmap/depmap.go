package depmap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"github.com/specialistvlad/sqlgridgo/internal/ctxlog"
	"github.com/specialistvlad/sqlgridgo/internal/fsutil"
	"github.com/specialistvlad/sqlgridgo/internal/sqlparse"
	"golang.org/x/sync/errgroup"
)

// DefaultExtension is the file extension recognised as a script.
const DefaultExtension = ".sql"

// Map associates each script name with the sorted table names it reads.
type Map map[string][]string

// Script is one discovered SQL file.
type Script struct {
	Name         string
	SourcePath   string
	SnapshotPath string
	// Description is the leading comment block, if any.
	Description  string
	Dependencies []string
	// ParseErr is set when the script could not be parsed; Dependencies is
	// then empty.
	ParseErr error
}

// Options controls a Build.
type Options struct {
	SourceDir string
	// SnapshotDir receives a copy of every script. It must not exist yet.
	// Empty disables snapshotting.
	SnapshotDir string
	Extension   string
	// Concurrency bounds parallel extraction. Zero means GOMAXPROCS.
	Concurrency int
}

// Result is the outcome of a Build.
type Result struct {
	// Scripts is sorted by name.
	Scripts []*Script
	Deps    Map
}

// Build discovers every script under opts.SourceDir, snapshots it, and
// extracts its table dependencies. A script that fails to parse is kept with
// no dependencies. Two scripts with the same name are a fatal error.
func Build(ctx context.Context, opts Options) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	ext := opts.Extension
	if ext == "" {
		ext = DefaultExtension
	}

	logger.Debug("Discovering scripts.", "source", opts.SourceDir, "extension", ext)
	files, err := fsutil.FindFilesByExtension(opts.SourceDir, ext)
	if err != nil {
		return nil, fmt.Errorf("failed to scan source directory %s: %w", opts.SourceDir, err)
	}

	scripts := make([]*Script, 0, len(files))
	byName := make(map[string]*Script, len(files))
	for _, path := range files {
		name := fsutil.TrimExt(path)
		if prev, ok := byName[name]; ok {
			return nil, &DuplicateScriptError{Name: name, Paths: []string{prev.SourcePath, path}}
		}
		s := &Script{Name: name, SourcePath: path}
		byName[name] = s
		scripts = append(scripts, s)
	}
	logger.Debug("Scripts discovered.", "count", len(scripts))

	if opts.SnapshotDir != "" {
		if err := fsutil.CreateRunDir(opts.SnapshotDir); err != nil {
			return nil, err
		}
	}

	limit := opts.Concurrency
	if limit <= 0 {
		limit = runtime.GOMAXPROCS(0)
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for _, s := range scripts {
		s := s
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			return analyse(gctx, s, opts.SnapshotDir)
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(scripts, func(i, j int) bool { return scripts[i].Name < scripts[j].Name })
	deps := make(Map, len(scripts))
	for _, s := range scripts {
		deps[s.Name] = s.Dependencies
	}
	return &Result{Scripts: scripts, Deps: deps}, nil
}

func analyse(ctx context.Context, s *Script, snapshotDir string) error {
	logger := ctxlog.FromContext(ctx).With("script", s.Name)

	if snapshotDir != "" {
		s.SnapshotPath = filepath.Join(snapshotDir, filepath.Base(s.SourcePath))
		if err := fsutil.CopyFile(s.SourcePath, s.SnapshotPath); err != nil {
			return fmt.Errorf("failed to snapshot script '%s': %w", s.Name, err)
		}
	}

	data, err := os.ReadFile(s.SourcePath)
	if err != nil {
		return fmt.Errorf("failed to read script '%s': %w", s.Name, err)
	}
	src := string(data)
	s.Description = sqlparse.LeadingComments(src)

	deps, err := sqlparse.ExtractTables(src, s.Name)
	if err != nil {
		logger.Warn("Script could not be parsed, recording no dependencies.", "error", err)
		s.ParseErr = err
		s.Dependencies = []string{}
		return nil
	}
	s.Dependencies = deps
	logger.Debug("Dependencies extracted.", "dependencies", deps)
	return nil
}

// Metadata returns the description of every script that has one.
func (r *Result) Metadata() map[string]string {
	out := make(map[string]string)
	for _, s := range r.Scripts {
		if s.Description != "" {
			out[s.Name] = s.Description
		}
	}
	return out
}

// ParseErrors returns the parse failure of every script that failed.
func (r *Result) ParseErrors() map[string]error {
	out := make(map[string]error)
	for _, s := range r.Scripts {
		if s.ParseErr != nil {
			out[s.Name] = s.ParseErr
		}
	}
	return out
}

// Paths returns the path each script should be executed from: the snapshot
// copy when one was taken, otherwise the source file.
func (r *Result) Paths() map[string]string {
	out := make(map[string]string, len(r.Scripts))
	for _, s := range r.Scripts {
		if s.SnapshotPath != "" {
			out[s.Name] = s.SnapshotPath
		} else {
			out[s.Name] = s.SourcePath
		}
	}
	return out
}
