// Package executor runs the scripts of a dependency graph on a bounded
// worker pool. A single driver goroutine owns all scheduling state: it
// submits each node exactly once, when its last predecessor resolves, and
// collects completion results from the workers over a channel.
package executor

import (
	"container/heap"
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/specialistvlad/sqlgridgo/internal/ctxlog"
	"github.com/specialistvlad/sqlgridgo/internal/dag"
)

// TaskFunc runs the script of the named node.
type TaskFunc func(ctx context.Context, name string) error

// Options configures an Executor.
type Options struct {
	// Workers bounds concurrent tasks. Zero means GOMAXPROCS.
	Workers int
	Policy  FailurePolicy
	// TaskTimeout bounds each task. Zero means no limit.
	TaskTimeout time.Duration
	// OnResolve is called from the driver goroutine each time a node
	// resolves.
	OnResolve func(o Outcome, resolved, total int)
}

// Executor schedules the nodes of a graph.
type Executor struct {
	graph *dag.Graph
	task  TaskFunc
	opts  Options
}

// New creates an Executor for graph g.
func New(g *dag.Graph, task TaskFunc, opts Options) *Executor {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Executor{graph: g, task: task, opts: opts}
}

type indexHeap []int

func (h indexHeap) Len() int           { return len(h) }
func (h indexHeap) Less(i, j int) bool { return h[i] < h[j] }
func (h indexHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *indexHeap) Push(x any)        { *h = append(*h, x.(int)) }
func (h *indexHeap) Pop() any {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// Run executes the graph and returns once every node has resolved. Task
// failures never abort the run; they are recorded in the Report. The
// returned error is non-nil only when the graph has no valid order.
//
// When ctx is cancelled, nodes not yet submitted resolve as Skipped while
// running tasks are left to finish.
func (e *Executor) Run(ctx context.Context) (*Report, error) {
	logger := ctxlog.FromContext(ctx)

	order, err := e.graph.Order()
	if err != nil {
		return nil, err
	}
	report := newReport(order)
	report.Started = time.Now()
	total := len(order)

	index := make(map[string]int, total)
	unmet := make(map[string]int, total)
	for i, name := range order {
		index[name] = i
		deps, err := e.graph.Dependencies(name)
		if err != nil {
			return nil, err
		}
		unmet[name] = len(deps)
	}

	ready := &indexHeap{}
	for i, name := range order {
		if unmet[name] == 0 {
			heap.Push(ready, i)
		}
	}

	// upstream maps a node to the first failed ancestor that reached it.
	upstream := make(map[string]string)

	work := make(chan string, e.opts.Workers)
	results := make(chan Outcome, e.opts.Workers)
	logger.Debug("Starting worker pool.", "workers", e.opts.Workers, "nodes", total)
	done := make(chan struct{})
	for i := 0; i < e.opts.Workers; i++ {
		i := i
		go func() {
			e.worker(ctx, i, work, results)
			done <- struct{}{}
		}()
	}

	resolve := func(o Outcome) {
		report.add(o)
		if e.opts.OnResolve != nil {
			e.opts.OnResolve(o, len(report.Resolved), total)
		}
		dependents, _ := e.graph.Dependents(o.Name)
		for _, next := range dependents {
			if _, seen := upstream[next]; !seen {
				switch o.Status {
				case Failed:
					upstream[next] = o.Name
				case Skipped:
					if cause, ok := upstream[o.Name]; ok {
						upstream[next] = cause
					}
				}
			}
			unmet[next]--
			if unmet[next] == 0 {
				heap.Push(ready, index[next])
			}
		}
	}

	inFlight := 0
	for len(report.Resolved) < total {
	dispatch:
		for ready.Len() > 0 {
			name := order[(*ready)[0]]
			switch {
			case !e.graph.HasScript(name):
				heap.Pop(ready)
				logger.Debug("Node has no script, resolving immediately.", "node", name)
				resolve(Outcome{Name: name, Status: NoScript, Worker: -1})
			case ctx.Err() != nil:
				heap.Pop(ready)
				logger.Warn("Context canceled, skipping node execution.", "node", name)
				resolve(Outcome{Name: name, Status: Skipped, Err: ctx.Err(), Worker: -1})
			case e.opts.Policy == Skip && upstream[name] != "":
				heap.Pop(ready)
				cause := upstream[name]
				logger.Warn("Skipping dependent node due to upstream failure.", "node", name, "dependency", cause)
				resolve(Outcome{
					Name:   name,
					Status: Skipped,
					Err:    fmt.Errorf("skipped due to upstream failure of '%s'", cause),
					Worker: -1,
				})
			case inFlight < e.opts.Workers:
				heap.Pop(ready)
				logger.Debug("Submitting node.", "node", name)
				work <- name
				inFlight++
			default:
				break dispatch
			}
		}

		if len(report.Resolved) == total {
			break
		}
		if inFlight == 0 {
			// Unreachable for an acyclic graph: something must be ready or running.
			close(work)
			return nil, fmt.Errorf("executor stalled with %d of %d nodes unresolved", total-len(report.Resolved), total)
		}
		o := <-results
		inFlight--
		resolve(o)
	}

	close(work)
	for i := 0; i < e.opts.Workers; i++ {
		<-done
	}
	report.Finished = time.Now()
	logger.Debug("All nodes resolved.",
		"succeeded", report.Count(Succeeded),
		"failed", report.Count(Failed),
		"no_script", report.Count(NoScript),
		"skipped", report.Count(Skipped),
	)
	return report, nil
}
