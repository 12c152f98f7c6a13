package dag

import (
	"context"
	"sort"

	"github.com/specialistvlad/sqlgridgo/internal/ctxlog"
)

// Build creates the dependency graph for a dependency map (script name to
// the tables it reads). Every script and every referenced table becomes a
// node; each dependency gets an edge to the script that reads it. A cyclic
// map is rejected with a *GraphError wrapping ErrCycle.
func Build(ctx context.Context, deps map[string][]string) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)

	scripts := make([]string, 0, len(deps))
	for name := range deps {
		scripts = append(scripts, name)
	}
	sort.Strings(scripts)

	g := New()
	for _, name := range scripts {
		g.AddScript(name)
	}
	edges := 0
	for _, name := range scripts {
		for _, dep := range deps[name] {
			if dep == name {
				// Extraction already drops self references; a hand-built map
				// may not.
				logger.Debug("Ignoring self dependency.", "script", name)
				continue
			}
			g.AddNode(dep)
			if err := g.AddEdge(dep, name); err != nil {
				return nil, err
			}
			edges++
		}
	}
	logger.Debug("Dependency graph assembled.", "nodes", g.Len(), "edges", edges)

	if err := g.DetectCycles(); err != nil {
		logger.Error("Dependency graph is not acyclic.", "error", err)
		return nil, err
	}
	return g, nil
}
