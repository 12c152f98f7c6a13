package dag

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidGraph = errors.New("invalid dependency graph")
	ErrCycle        = errors.New("cycle detected")
)

// GraphError reports a graph that cannot be executed.
type GraphError struct {
	Kind error
	Msg  string
	// Cycle is one witness cycle, first node repeated at the end.
	Cycle []string
}

func (e *GraphError) Error() string {
	if e.Msg == "" {
		return e.Kind.Error()
	}
	return fmt.Sprintf("%s: %s", e.Kind.Error(), e.Msg)
}

func (e *GraphError) Unwrap() error { return e.Kind }

func invalidf(format string, args ...any) error {
	return &GraphError{Kind: ErrInvalidGraph, Msg: fmt.Sprintf(format, args...)}
}

func cycleError(path []string) error {
	return &GraphError{
		Kind:  ErrCycle,
		Msg:   "no valid execution order exists: " + strings.Join(path, " -> "),
		Cycle: path,
	}
}
