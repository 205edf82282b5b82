package scenario

import (
	"fmt"
	"sync"
)

// Status is the lifecycle state of one scenario run.
type Status int32

const (
	NotStarted Status = iota
	Running
	Passed
	Failed
)

func (s Status) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Running:
		return "running"
	case Passed:
		return "passed"
	case Failed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int32(s))
	}
}

// Terminal reports whether no further transition is possible.
func (s Status) Terminal() bool {
	return s == Passed || s == Failed
}

// Run tracks NotStarted → Running(step) → Passed | Failed(reason) for one
// (project, scenario) pair. It is written by the owning worker and may be read
// concurrently, e.g. by the status endpoint.
type Run struct {
	Project  string
	Scenario *Scenario

	mu     sync.RWMutex
	status Status
	step   int
	reason error
}

// NewRun returns a run in the NotStarted state.
func NewRun(project string, sc *Scenario) *Run {
	return &Run{Project: project, Scenario: sc, step: -1}
}

// Start moves the run to Running.
func (r *Run) Start() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status != NotStarted {
		return fmt.Errorf("run %s: cannot start from %s", r.key(), r.status)
	}
	r.status = Running
	return nil
}

// Advance records that step i is executing.
func (r *Run) Advance(i int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status != Running {
		return fmt.Errorf("run %s: cannot advance to step %d from %s", r.key(), i, r.status)
	}
	r.step = i
	return nil
}

// Pass moves a running run to Passed.
func (r *Run) Pass() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status != Running {
		return fmt.Errorf("run %s: cannot pass from %s", r.key(), r.status)
	}
	r.status = Passed
	return nil
}

// Fail moves a run to Failed with reason. A run that never started may fail
// directly, e.g. when its browser could not be launched.
func (r *Run) Fail(reason error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.status.Terminal() {
		return fmt.Errorf("run %s: cannot fail from %s", r.key(), r.status)
	}
	r.status = Failed
	r.reason = reason
	return nil
}

// State returns the current status and, while running, the step index.
func (r *Run) State() (Status, int) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.status, r.step
}

// Reason returns the failure reason of a Failed run.
func (r *Run) Reason() error {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.reason
}

func (r *Run) key() string {
	return fmt.Sprintf("[%s] %s", r.Project, r.Scenario.ID())
}
