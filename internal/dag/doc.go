// Package dag turns a dependency map into a Directed Acyclic Graph of tables,
// rejects cyclic maps, and computes the deterministic execution order the
// executor follows. It can also render the graph as Graphviz DOT.
package dag
