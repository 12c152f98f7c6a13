// Package runlayout names every path a run writes. A Layout is computed once
// at startup from the runs directory and a single timestamp, so all
// artifacts of one run share the same identity.
package runlayout

import (
	"path/filepath"
	"strconv"
	"time"
)

// Layout holds the run identity and the artifact paths derived from it.
type Layout struct {
	Root string
	// RunID is the Unix-epoch timestamp of the run start.
	RunID string

	SnapshotDir      string
	DependenciesFile string
	MetadataFile     string
	ReportFile       string
	GraphFile        string
}

// New derives the layout for a run started at now.
func New(root string, now time.Time) Layout {
	id := strconv.FormatInt(now.Unix(), 10)
	return Layout{
		Root:             root,
		RunID:            id,
		SnapshotDir:      filepath.Join(root, "executed_sql", id),
		DependenciesFile: filepath.Join(root, "dependencies", id+"_dependencies.yaml"),
		MetadataFile:     filepath.Join(root, "metadata", id+"_metadata.yaml"),
		ReportFile:       filepath.Join(root, "reports", id+"_report.json"),
		GraphFile:        filepath.Join(root, "DAGs", id+"_dag_run.dot"),
	}
}
