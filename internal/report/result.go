package report

import (
	"errors"
	"time"

	"github.com/specialistvlad/uiprobe/internal/scenario"
)

// Result is the outcome of one (project, scenario) pair.
type Result struct {
	RunID    string
	Project  string
	Scenario string
	Status   scenario.Status
	// Err is the failure reason, nil when Status is Passed.
	Err error
	// FailedStep is the index of the step that failed, -1 otherwise.
	FailedStep int
	StartedAt  time.Time
	Duration   time.Duration
}

// Passed reports whether the pair passed.
func (r Result) Passed() bool {
	return r.Status == scenario.Passed
}

// Category names the error class of a failure: config, timeout, step,
// assertion, or error for anything else.
func (r Result) Category() string {
	if r.Err == nil {
		return ""
	}
	var af *scenario.AssertionFailure
	var sf *scenario.StepFailure
	var te *scenario.TimeoutError
	switch {
	case errors.As(r.Err, &af):
		return "assertion"
	case errors.As(r.Err, &sf) && errors.As(r.Err, &te):
		return "timeout"
	case errors.As(r.Err, &sf):
		return "step"
	case errors.As(r.Err, &te):
		return "timeout"
	default:
		return "error"
	}
}

// FromRun builds a Result from a run that reached a terminal state.
func FromRun(runID string, run *scenario.Run, started time.Time, elapsed time.Duration) Result {
	status, _ := run.State()
	res := Result{
		RunID:      runID,
		Project:    run.Project,
		Scenario:   run.Scenario.ID(),
		Status:     status,
		Err:        run.Reason(),
		FailedStep: -1,
		StartedAt:  started,
		Duration:   elapsed,
	}
	var sf *scenario.StepFailure
	if errors.As(res.Err, &sf) {
		res.FailedStep = sf.Index
	}
	return res
}

// Summary aggregates the results of a whole run.
type Summary struct {
	RunID     string
	StartedAt time.Time
	Duration  time.Duration
	Results   []Result
}

// Counts returns the number of passed and failed results.
func (s *Summary) Counts() (passed, failed int) {
	for _, r := range s.Results {
		if r.Passed() {
			passed++
		} else {
			failed++
		}
	}
	return passed, failed
}

// OK reports whether every pair passed.
func (s *Summary) OK() bool {
	_, failed := s.Counts()
	return failed == 0
}
