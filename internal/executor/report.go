package executor

import (
	"errors"
	"time"
)

// Outcome is the resolution of a single node.
type Outcome struct {
	Name   string
	Status Status
	Err    error
	// Worker is the pool worker that ran the task, -1 if it never ran.
	Worker   int
	Started  time.Time
	Finished time.Time
}

// Duration is how long the task ran. It is zero for nodes that never ran.
func (o Outcome) Duration() time.Duration {
	if o.Started.IsZero() {
		return 0
	}
	return o.Finished.Sub(o.Started)
}

// Report is the end-of-run summary.
type Report struct {
	// Order is the execution order the run followed.
	Order []string
	// Resolved lists node names in the order they resolved.
	Resolved []string
	Started  time.Time
	Finished time.Time

	outcomes map[string]Outcome
}

func newReport(order []string) *Report {
	return &Report{
		Order:    order,
		Resolved: make([]string, 0, len(order)),
		outcomes: make(map[string]Outcome, len(order)),
	}
}

func (r *Report) add(o Outcome) {
	r.outcomes[o.Name] = o
	r.Resolved = append(r.Resolved, o.Name)
}

// Outcome returns the resolution of the named node.
func (r *Report) Outcome(name string) (Outcome, bool) {
	o, ok := r.outcomes[name]
	return o, ok
}

// Outcomes returns every outcome in execution order.
func (r *Report) Outcomes() []Outcome {
	out := make([]Outcome, 0, len(r.Order))
	for _, name := range r.Order {
		if o, ok := r.outcomes[name]; ok {
			out = append(out, o)
		}
	}
	return out
}

// Count returns the number of nodes resolved with the given status.
func (r *Report) Count(s Status) int {
	n := 0
	for _, o := range r.outcomes {
		if o.Status == s {
			n++
		}
	}
	return n
}

// Failed returns the failed outcomes in execution order.
func (r *Report) Failed() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes() {
		if o.Status == Failed {
			out = append(out, o)
		}
	}
	return out
}

// Err joins the errors of all failed tasks, or returns nil if none failed.
func (r *Report) Err() error {
	var errs []error
	for _, o := range r.Failed() {
		errs = append(errs, o.Err)
	}
	return errors.Join(errs...)
}

// Succeeded returns the succeeded outcomes in execution order.
func (r *Report) Succeeded() []Outcome {
	var out []Outcome
	for _, o := range r.Outcomes() {
		if o.Status == Succeeded {
			out = append(out, o)
		}
	}
	return out
}
