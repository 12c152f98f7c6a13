package artifact

import (
	"fmt"
	"time"

	"github.com/bytedance/sonic"

	"github.com/specialistvlad/sqlgridgo/internal/executor"
)

// RunReport is the JSON document written at the end of a run.
type RunReport struct {
	RunID       string            `json:"run_id"`
	Started     time.Time         `json:"started"`
	Finished    time.Time         `json:"finished"`
	DurationMS  int64             `json:"duration_ms"`
	Order       []string          `json:"order"`
	Counts      map[string]int    `json:"counts"`
	Tasks       []TaskRecord      `json:"tasks"`
	ParseErrors map[string]string `json:"parse_errors,omitempty"`
}

// TaskRecord is one node of the run report.
type TaskRecord struct {
	Name       string     `json:"name"`
	Status     string     `json:"status"`
	Error      string     `json:"error,omitempty"`
	Worker     *int       `json:"worker,omitempty"`
	Started    *time.Time `json:"started,omitempty"`
	DurationMS int64      `json:"duration_ms"`
}

// NewRunReport summarises an executor report together with the scripts whose
// dependencies could not be parsed.
func NewRunReport(runID string, r *executor.Report, parseErrors map[string]error) RunReport {
	out := RunReport{
		RunID:      runID,
		Started:    r.Started,
		Finished:   r.Finished,
		DurationMS: r.Finished.Sub(r.Started).Milliseconds(),
		Order:      r.Order,
		Counts:     map[string]int{},
		Tasks:      make([]TaskRecord, 0, len(r.Order)),
	}
	if out.Order == nil {
		out.Order = []string{}
	}
	for _, s := range []executor.Status{executor.Succeeded, executor.Failed, executor.NoScript, executor.Skipped} {
		out.Counts[s.String()] = r.Count(s)
	}
	for _, o := range r.Outcomes() {
		rec := TaskRecord{
			Name:       o.Name,
			Status:     o.Status.String(),
			DurationMS: o.Duration().Milliseconds(),
		}
		if o.Err != nil {
			rec.Error = o.Err.Error()
		}
		if o.Worker >= 0 {
			w := o.Worker
			rec.Worker = &w
		}
		if !o.Started.IsZero() {
			started := o.Started
			rec.Started = &started
		}
		out.Tasks = append(out.Tasks, rec)
	}
	if len(parseErrors) > 0 {
		out.ParseErrors = make(map[string]string, len(parseErrors))
		for name, err := range parseErrors {
			out.ParseErrors[name] = err.Error()
		}
	}
	return out
}

// WriteReport writes rep as indented JSON to path.
func WriteReport(path string, rep RunReport) error {
	data, err := sonic.ConfigStd.MarshalIndent(rep, "", "  ")
	if err != nil {
		return fmt.Errorf("artifact: encode report: %w", err)
	}
	return write(path, append(data, '\n'))
}
