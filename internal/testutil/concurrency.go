// Package testutil holds shared helpers for concurrency tests of the
// executor and the app.
package testutil

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// ExecutionRecord holds the start and end times of a single task.
type ExecutionRecord struct {
	Start time.Time
	End   time.Time
}

// Sleeper is a task that sleeps for a fixed duration and records when each
// named task ran and how many ran at once.
type Sleeper struct {
	sleep time.Duration
	fail  map[string]error

	mu      sync.Mutex
	records map[string]*ExecutionRecord

	running atomic.Int32
	peak    atomic.Int32
}

// NewSleeper creates a Sleeper. Tasks named in fail return that error after
// sleeping.
func NewSleeper(sleep time.Duration, fail map[string]error) *Sleeper {
	return &Sleeper{
		sleep:   sleep,
		fail:    fail,
		records: make(map[string]*ExecutionRecord),
	}
}

// Task has the executor.TaskFunc signature.
func (s *Sleeper) Task(ctx context.Context, name string) error {
	now := s.running.Add(1)
	defer s.running.Add(-1)
	for {
		old := s.peak.Load()
		if now <= old || s.peak.CompareAndSwap(old, now) {
			break
		}
	}

	start := time.Now()
	select {
	case <-time.After(s.sleep):
	case <-ctx.Done():
	}
	end := time.Now()

	s.mu.Lock()
	s.records[name] = &ExecutionRecord{Start: start, End: end}
	s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	return s.fail[name]
}

// Record returns the execution record of the named task.
func (s *Sleeper) Record(name string) (ExecutionRecord, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.records[name]
	if !ok {
		return ExecutionRecord{}, false
	}
	return *r, true
}

// Ran returns the number of tasks that ran.
func (s *Sleeper) Ran() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.records)
}

// Peak is the highest number of tasks observed running at once.
func (s *Sleeper) Peak() int {
	return int(s.peak.Load())
}
