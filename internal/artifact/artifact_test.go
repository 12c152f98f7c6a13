package artifact

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/sqlgridgo/internal/dag"
	"github.com/specialistvlad/sqlgridgo/internal/executor"
)

func TestEncodeDependencies(t *testing.T) {
	deps := map[string][]string{
		"fact_order":    {"dim_customer", "raw_orders"},
		"raw_customers": {},
		"dim_customer":  {"raw_customers"},
	}
	data, err := EncodeDependencies(deps)
	require.NoError(t, err)

	text := string(data)
	assert.Less(t, strings.Index(text, "dim_customer:"), strings.Index(text, "fact_order:"))
	assert.Less(t, strings.Index(text, "fact_order:"), strings.Index(text, "raw_customers:"))

	var decoded map[string]any
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Nil(t, decoded["raw_customers"])
	assert.Equal(t, []any{"dim_customer", "raw_orders"}, decoded["fact_order"])
}

func TestEncodeDependencies_Empty(t *testing.T) {
	data, err := EncodeDependencies(nil)
	require.NoError(t, err)
	assert.Equal(t, "{}\n", string(data))
}

func TestWriteMetadata_SkipsScriptsWithoutComments(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metadata", "1_metadata.yaml")
	require.NoError(t, WriteMetadata(path, map[string]string{
		"dim_customer": "Customer dimension.\nOwner: data team",
		"fact_order":   "",
	}))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded map[string]string
	require.NoError(t, yaml.Unmarshal(data, &decoded))
	assert.Equal(t, map[string]string{"dim_customer": "Customer dimension.\nOwner: data team"}, decoded)
}

func TestWriteGraph(t *testing.T) {
	g, err := dag.Build(context.Background(), map[string][]string{"fact": {"dim"}, "dim": nil})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "DAGs", "1_dag_run.dot")
	require.NoError(t, WriteGraph(path, g, dag.DefaultStyle))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "digraph")
	assert.Contains(t, string(data), `"fact"`)
}

func TestRunReport(t *testing.T) {
	g, err := dag.Build(context.Background(), map[string][]string{
		"dim_customer": {"raw_customers"},
		"fact_order":   {"dim_customer", "raw_orders"},
	})
	require.NoError(t, err)

	task := func(ctx context.Context, name string) error {
		if name == "dim_customer" {
			return errors.New("table not found")
		}
		return nil
	}
	rep, err := executor.New(g, task, executor.Options{Workers: 2}).Run(context.Background())
	require.NoError(t, err)

	doc := NewRunReport("1700000000", rep, map[string]error{"broken": errors.New("parse error")})
	assert.Equal(t, 1, doc.Counts["failed"])
	assert.Equal(t, 1, doc.Counts["succeeded"])
	assert.Equal(t, 2, doc.Counts["no-script"])
	require.Len(t, doc.Tasks, 4)

	path := filepath.Join(t.TempDir(), "reports", "1700000000_report.json")
	require.NoError(t, WriteReport(path, doc))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var decoded struct {
		RunID string `json:"run_id"`
		Tasks []struct {
			Name   string `json:"name"`
			Status string `json:"status"`
			Error  string `json:"error"`
			Worker *int   `json:"worker"`
		} `json:"tasks"`
		ParseErrors map[string]string `json:"parse_errors"`
	}
	require.NoError(t, sonic.Unmarshal(data, &decoded))
	assert.Equal(t, "1700000000", decoded.RunID)
	assert.Equal(t, "parse error", decoded.ParseErrors["broken"])
	for _, task := range decoded.Tasks {
		switch task.Name {
		case "dim_customer":
			assert.Equal(t, "failed", task.Status)
			assert.Contains(t, task.Error, "table not found")
		case "raw_orders", "raw_customers":
			assert.Equal(t, "no-script", task.Status)
			assert.Nil(t, task.Worker)
		case "fact_order":
			assert.Equal(t, "succeeded", task.Status)
			assert.NotNil(t, task.Worker)
		}
	}
}
