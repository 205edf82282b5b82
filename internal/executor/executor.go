// Package executor runs scenarios against driver sessions: one scenario per
// session, steps in order, each bounded by the run's action timeout, followed
// by a polled assertion.
package executor

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/uiprobe/internal/config"
	"github.com/specialistvlad/uiprobe/internal/ctxlog"
	"github.com/specialistvlad/uiprobe/internal/driver"
	"github.com/specialistvlad/uiprobe/internal/scenario"
)

// Executor executes a single scenario run. It holds no per-run state and is
// safe for concurrent use.
type Executor struct {
	Config *config.RunConfiguration
}

// New creates an Executor for cfg.
func New(cfg *config.RunConfiguration) *Executor {
	return &Executor{Config: cfg}
}

// Execute drives run to a terminal state using sess, which the caller owns
// exclusively for the duration of the call. The returned error is the same
// reason recorded on run, nil when the run passed.
func (e *Executor) Execute(ctx context.Context, sess driver.Session, run *scenario.Run) error {
	logger := ctxlog.FromContext(ctx).With("project", run.Project, "scenario", run.Scenario.ID())

	if err := run.Start(); err != nil {
		return err
	}
	logger.Debug("Scenario run started.", "steps", len(run.Scenario.Steps), "timeout", e.Config.ActionTimeout())

	for i, action := range run.Scenario.Steps {
		if err := run.Advance(i); err != nil {
			return err
		}
		logger.Debug("Executing step.", "index", i, "action", action)
		if err := e.step(ctx, sess, action); err != nil {
			failure := &scenario.StepFailure{Index: i, Action: action, Err: err}
			logger.Debug("Step failed.", "index", i, "error", err)
			return e.fail(run, failure)
		}
	}

	logger.Debug("All steps completed, checking assertion.", "assertion", run.Scenario.Expect)
	if err := e.assert(ctx, sess, run.Scenario.Expect); err != nil {
		logger.Debug("Assertion failed.", "error", err)
		return e.fail(run, err)
	}

	if err := run.Pass(); err != nil {
		return err
	}
	logger.Debug("Scenario run passed.")
	return nil
}

func (e *Executor) fail(run *scenario.Run, reason error) error {
	if err := run.Fail(reason); err != nil {
		return errors.Join(reason, err)
	}
	return reason
}

// step performs one action within its own timeout.
func (e *Executor) step(ctx context.Context, sess driver.Session, action scenario.Action) error {
	timeout := e.Config.ActionTimeout()
	stepCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var err error
	switch a := action.(type) {
	case scenario.Navigate:
		target, rerr := e.Config.ResolveURL(a.URL)
		if rerr != nil {
			return rerr
		}
		err = sess.Navigate(stepCtx, target)
	case scenario.Click:
		err = sess.Click(stepCtx, string(a.Target))
	case scenario.Fill:
		err = sess.Fill(stepCtx, string(a.Target), a.Value)
	default:
		return fmt.Errorf("unsupported action %T", action)
	}
	if err == nil {
		return nil
	}
	if ctx.Err() != nil {
		return fmt.Errorf("run interrupted: %w", errors.Join(ctx.Err(), err))
	}
	if isTimeout(stepCtx, err) {
		return &scenario.TimeoutError{Op: action.String(), After: timeout, Err: err}
	}
	return err
}

// isTimeout reports whether err was caused by the step's own bound.
func isTimeout(stepCtx context.Context, err error) bool {
	return errors.Is(err, driver.ErrTimeout) ||
		errors.Is(err, context.DeadlineExceeded) ||
		errors.Is(stepCtx.Err(), context.DeadlineExceeded)
}
