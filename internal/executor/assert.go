package executor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/specialistvlad/uiprobe/internal/config"
	"github.com/specialistvlad/uiprobe/internal/driver"
	"github.com/specialistvlad/uiprobe/internal/scenario"
)

// assert reads the target's text every poll interval. A positive assertion
// passes on the first read that holds and fails when the action timeout
// elapses. A negated assertion must hold on every read for the whole timeout:
// it fails on the first read that contains the text and passes when the
// timeout elapses. The text is read at least once.
func (e *Executor) assert(ctx context.Context, sess driver.Session, a scenario.Assertion) error {
	timeout := e.Config.ActionTimeout()
	interval := e.Config.PollInterval
	if interval <= 0 {
		interval = config.DefaultPollInterval
	}

	assertCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	var (
		actual string
		found  bool
	)
	failure := func(err error) *scenario.AssertionFailure {
		return &scenario.AssertionFailure{
			Target:   a.Target,
			Expected: a.Contains,
			Actual:   actual,
			Negate:   a.Negate,
			Found:    found,
			Err:      err,
		}
	}

	for {
		text, err := sess.Text(assertCtx, string(a.Target))
		observed := true
		switch {
		case err == nil:
			actual, found = text, true
		case errors.Is(err, driver.ErrNotFound):
			actual, found = "", false
		case assertCtx.Err() != nil:
			// Deadline reached mid-read; decide on the last observation below.
			observed = false
		default:
			return fmt.Errorf("reading %s: %w", a.Target, err)
		}

		if observed {
			holds := a.Holds(actual, found)
			switch {
			case holds && !a.Negate:
				return nil
			case !holds && a.Negate:
				return failure(nil)
			}
		}

		select {
		case <-ticker.C:
		case <-assertCtx.Done():
			if ctx.Err() != nil {
				return fmt.Errorf("run interrupted: %w", ctx.Err())
			}
			if a.Negate {
				return nil
			}
			return failure(&scenario.TimeoutError{Op: a.String(), After: timeout, Err: assertCtx.Err()})
		}
	}
}
