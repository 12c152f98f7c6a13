package executor

import (
	"fmt"
	"strings"
)

// Status is how a node was resolved.
type Status int

const (
	// Succeeded means the node's script ran without error.
	Succeeded Status = iota
	// Failed means the node's script returned an error or panicked.
	Failed
	// NoScript means the node is a referenced table with nothing to run.
	NoScript
	// Skipped means the node never ran: an upstream node failed under the
	// skip policy, or the run was cancelled first.
	Skipped
)

var statusNames = map[Status]string{
	Succeeded: "succeeded",
	Failed:    "failed",
	NoScript:  "no-script",
	Skipped:   "skipped",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// MarshalText renders the status by name in reports.
func (s Status) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// FailurePolicy decides what happens to the dependents of a failed node.
type FailurePolicy int

const (
	// Attempt runs every dependent once its predecessors have resolved,
	// whether they succeeded or not.
	Attempt FailurePolicy = iota
	// Skip resolves every transitive dependent of a failed node as Skipped.
	Skip
)

func (p FailurePolicy) String() string {
	if p == Skip {
		return "skip"
	}
	return "attempt"
}

// ParseFailurePolicy accepts "attempt" or "skip" in any case.
func ParseFailurePolicy(s string) (FailurePolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "attempt":
		return Attempt, nil
	case "skip":
		return Skip, nil
	default:
		return Attempt, fmt.Errorf("invalid failure policy %q: must be 'attempt' or 'skip'", s)
	}
}
