package dag

import "sync"

// Graph is a set of tables and the dependencies between them. An edge
// runs from a dependency to its dependent. All operations on the graph are
// concurrency-safe; a graph returned by Build is never mutated again.
type Graph struct {
	// mutex protects the nodes map during concurrent access.
	mutex sync.RWMutex
	// nodes stores all nodes in the graph, keyed by table name.
	nodes map[string]*node
}

// node is a single table. It is un-exported to enforce interaction with the
// graph via the public API (using names), not by direct struct manipulation.
type node struct {
	id string
	// hasScript is false for tables that are only referenced, never built.
	hasScript bool
	// deps holds the set of nodes that this node depends on (predecessors).
	deps map[string]*node
	// dependents holds the set of nodes that depend on this node (successors).
	dependents map[string]*node
}

// Edge is a dependency from From to To: To reads From.
type Edge struct {
	From string
	To   string
}
