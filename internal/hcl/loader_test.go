package hcl

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/sqlgridgo/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRunFile(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "run.hcl")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func fakeEnv(t *testing.T, vars map[string]string) {
	t.Helper()
	orig := lookupEnv
	t.Cleanup(func() { lookupEnv = orig })
	lookupEnv = func(name string) (string, bool) {
		v, ok := vars[name]
		return v, ok
	}
}

func TestLoad_FullRunFile(t *testing.T) {
	fakeEnv(t, map[string]string{
		"DATABRICKS_SERVER_HOSTNAME": "adb-1.azuredatabricks.net",
		"DATABRICKS_TOKEN":           "dapi123",
	})
	path := writeRunFile(t, `
source_dir   = "sql"
runs_dir     = "/var/runs"
workers      = 6
on_failure   = "SKIP"
task_timeout = "90s"

connection {
  driver    = "databricks"
  host      = env("DATABRICKS_SERVER_HOSTNAME")
  http_path = env("DATABRICKS_HTTP_PATH", "/sql/1.0/warehouses/abc")
  token     = env("DATABRICKS_TOKEN")
  port      = env("DATABRICKS_PORT", "8443")
}

graph {
  node_color = lower("#AABBCC")
}
`)

	rf, err := NewLoader().Load(context.Background(), path)
	require.NoError(t, err)

	workers := 6
	port := 8443
	timeout := 90 * time.Second
	want := &config.RunFile{
		SourceDir:   filepath.Join(filepath.Dir(path), "sql"),
		RunsDir:     "/var/runs",
		Workers:     &workers,
		OnFailure:   "skip",
		TaskTimeout: &timeout,
		Connection: &config.Connection{
			Driver:   "databricks",
			Host:     "adb-1.azuredatabricks.net",
			HTTPPath: "/sql/1.0/warehouses/abc",
			Token:    "dapi123",
			Port:     &port,
		},
		Graph: &config.GraphStyle{NodeColor: "#aabbcc"},
	}
	if diff := cmp.Diff(want, rf); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_EmptyFile(t *testing.T) {
	rf, err := NewLoader().Load(context.Background(), writeRunFile(t, ""))
	require.NoError(t, err)
	assert.Empty(t, rf.SourceDir)
	assert.Nil(t, rf.Workers)
	assert.Nil(t, rf.Connection)
	assert.Nil(t, rf.TaskTimeout)
}

func TestLoad_MissingEnvWithoutDefault(t *testing.T) {
	fakeEnv(t, map[string]string{})
	path := writeRunFile(t, `
connection {
  driver = "pgx"
  dsn    = env("PG_DSN")
}
`)
	_, err := NewLoader().Load(context.Background(), path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PG_DSN")
}

func TestLoad_Errors(t *testing.T) {
	testCases := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "syntax", content: `workers = `, wantErr: "failed to parse HCL file"},
		{name: "unknown attribute", content: `threads = 4`, wantErr: "failed to decode HCL file"},
		{name: "wrong type", content: `workers = "many"`, wantErr: "failed to decode HCL file"},
		{name: "connection without driver", content: "connection {\n dsn = \"x\"\n}", wantErr: "failed to decode HCL file"},
		{name: "bad duration", content: `task_timeout = "soon"`, wantErr: "task_timeout"},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewLoader().Load(context.Background(), writeRunFile(t, tc.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "absent.hcl"))
	require.Error(t, err)
}
