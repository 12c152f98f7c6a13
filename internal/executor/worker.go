package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/specialistvlad/sqlgridgo/internal/ctxlog"
)

// worker is the core processing loop for a single concurrent worker.
func (e *Executor) worker(ctx context.Context, workerID int, work <-chan string, results chan<- Outcome) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Worker started.", "workerID", workerID)

	for name := range work {
		results <- e.execute(ctx, workerID, name)
	}
	logger.Debug("Worker finished.", "workerID", workerID)
}

// execute runs one task, converting an error or panic into a failed Outcome.
func (e *Executor) execute(ctx context.Context, workerID int, name string) (o Outcome) {
	workerLogger := ctxlog.FromContext(ctx).With("workerID", workerID, "node", name)
	taskCtx := ctxlog.WithLogger(ctx, workerLogger)
	if e.opts.TaskTimeout > 0 {
		var cancel context.CancelFunc
		taskCtx, cancel = context.WithTimeout(taskCtx, e.opts.TaskTimeout)
		defer cancel()
	}

	o = Outcome{Name: name, Worker: workerID, Started: time.Now()}
	defer func() {
		if r := recover(); r != nil {
			workerLogger.Error("Task panicked.", "panic", r)
			o.Status = Failed
			o.Err = &TaskError{Script: name, Err: fmt.Errorf("panic: %v", r)}
		}
		o.Finished = time.Now()
	}()

	workerLogger.Debug("Worker picked up node for execution.")
	if err := e.task(taskCtx, name); err != nil {
		workerLogger.Error("Node execution failed.", "error", err)
		o.Status = Failed
		o.Err = &TaskError{Script: name, Err: err}
		return o
	}

	workerLogger.Debug("Node execution succeeded.")
	o.Status = Succeeded
	return o
}
