package executor

import (
	"errors"
	"fmt"
)

// ErrTaskFailed matches every *TaskError with errors.Is.
var ErrTaskFailed = errors.New("task failed")

// TaskError records the failure of one script.
type TaskError struct {
	Script string
	Err    error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("script '%s' failed: %v", e.Script, e.Err)
}

func (e *TaskError) Unwrap() error { return e.Err }

func (e *TaskError) Is(target error) bool { return target == ErrTaskFailed }
