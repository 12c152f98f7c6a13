package dag

import (
	"container/heap"
)

// DetectCycles checks the graph for cycles. When one exists it returns a
// *GraphError wrapping ErrCycle with a single deterministic witness path.
func (g *Graph) DetectCycles() error {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	if path := g.findCycle(); path != nil {
		return cycleError(path)
	}
	return nil
}

// findCycle runs a depth-first search over nodes and dependents in lexical
// order and returns the first cycle it closes, or nil.
func (g *Graph) findCycle() []string {
	const (
		white = iota
		grey
		black
	)
	color := make(map[string]int, len(g.nodes))
	var stack []string
	onStack := make(map[string]int)

	var visit func(id string) []string
	visit = func(id string) []string {
		color[id] = grey
		onStack[id] = len(stack)
		stack = append(stack, id)

		for _, next := range sortedKeys(g.nodes[id].dependents) {
			switch color[next] {
			case grey:
				path := append([]string{}, stack[onStack[next]:]...)
				return append(path, next)
			case white:
				if path := visit(next); path != nil {
					return path
				}
			}
		}

		stack = stack[:len(stack)-1]
		delete(onStack, id)
		color[id] = black
		return nil
	}

	for _, id := range sortedKeys(g.nodes) {
		if color[id] != white {
			continue
		}
		if path := visit(id); path != nil {
			return path
		}
	}
	return nil
}

type nameHeap []string

func (h nameHeap) Len() int           { return len(h) }
func (h nameHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h nameHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *nameHeap) Push(x any)        { *h = append(*h, x.(string)) }
func (h *nameHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Order returns a topological order of all nodes: every dependency comes
// before its dependents. Among nodes that are ready at the same time the
// lexically smallest goes first, so the order is stable across runs.
func (g *Graph) Order() ([]string, error) {
	g.mutex.RLock()
	defer g.mutex.RUnlock()

	indeg := make(map[string]int, len(g.nodes))
	ready := &nameHeap{}
	for id, n := range g.nodes {
		indeg[id] = len(n.deps)
		if len(n.deps) == 0 {
			*ready = append(*ready, id)
		}
	}
	heap.Init(ready)

	order := make([]string, 0, len(g.nodes))
	for ready.Len() > 0 {
		id := heap.Pop(ready).(string)
		order = append(order, id)
		for next := range g.nodes[id].dependents {
			indeg[next]--
			if indeg[next] == 0 {
				heap.Push(ready, next)
			}
		}
	}

	if len(order) != len(g.nodes) {
		return nil, cycleError(g.findCycle())
	}
	return order, nil
}
