package scenario

import (
	"fmt"
	"time"
)

// TimeoutError reports that a single action or assertion exceeded its bound.
type TimeoutError struct {
	Op    string
	After time.Duration
	Err   error
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("timed out after %s waiting for %s", e.After, e.Op)
}

func (e *TimeoutError) Unwrap() error { return e.Err }

// StepFailure reports that the action at Index could not complete. Later
// steps were not executed.
type StepFailure struct {
	Index  int
	Action Action
	Err    error
}

func (e *StepFailure) Error() string {
	return fmt.Sprintf("step %d (%s) failed: %v", e.Index, e.Action, e.Err)
}

func (e *StepFailure) Unwrap() error { return e.Err }

// AssertionFailure reports that the terminal check did not hold before the
// timeout elapsed, or that a negated check was violated. Actual is the last
// text read, empty when the element was never found.
type AssertionFailure struct {
	Target   ElementRef
	Expected string
	Actual   string
	Negate   bool
	Found    bool
	Err      error
}

func (e *AssertionFailure) Error() string {
	switch {
	case e.Negate:
		return fmt.Sprintf("expected %s not to contain %q, actual %q", e.Target, e.Expected, e.Actual)
	case !e.Found:
		return fmt.Sprintf("expected %s to contain %q, element not found", e.Target, e.Expected)
	default:
		return fmt.Sprintf("expected %s to contain %q, actual %q", e.Target, e.Expected, e.Actual)
	}
}

func (e *AssertionFailure) Unwrap() error { return e.Err }
