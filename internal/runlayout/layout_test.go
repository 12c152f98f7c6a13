package runlayout

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestNew(t *testing.T) {
	root := filepath.Join("var", "runs")
	got := New(root, time.Unix(1700000000, 999))

	want := Layout{
		Root:             root,
		RunID:            "1700000000",
		SnapshotDir:      filepath.Join(root, "executed_sql", "1700000000"),
		DependenciesFile: filepath.Join(root, "dependencies", "1700000000_dependencies.yaml"),
		MetadataFile:     filepath.Join(root, "metadata", "1700000000_metadata.yaml"),
		ReportFile:       filepath.Join(root, "reports", "1700000000_report.json"),
		GraphFile:        filepath.Join(root, "DAGs", "1700000000_dag_run.dot"),
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("New() mismatch (-want +got):\n%s", diff)
	}
}
