package executor

import (
	"context"
	"fmt"
	"time"

	"github.com/specialistvlad/uiprobe/internal/ctxlog"
	"github.com/specialistvlad/uiprobe/internal/report"
)

// worker is the processing loop for a single concurrent worker.
func (p *Pool) worker(
	ctx context.Context,
	workerID int,
	exec *Executor,
	browsers *browserSet,
	jobChan <-chan int,
	jobs []job,
	results []report.Result,
	runID string,
) {
	defer p.wg.Done()
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Worker started.", "workerID", workerID)

	for i := range jobChan {
		results[i] = p.runJob(ctx, workerID, exec, browsers, jobs[i], runID)
		p.emit(results[i])
	}
	logger.Debug("Worker finished.", "workerID", workerID)
}

// runJob executes one pair in a fresh session and always returns a terminal result.
func (p *Pool) runJob(ctx context.Context, workerID int, exec *Executor, browsers *browserSet, j job, runID string) report.Result {
	ctx, logger := ctxlog.With(ctx, "workerID", workerID, "project", j.project.Name, "scenario", j.run.Scenario.ID())
	started := time.Now()
	finish := func() report.Result {
		return report.FromRun(runID, j.run, started, time.Since(started))
	}

	if err := ctx.Err(); err != nil {
		logger.Warn("Context canceled, skipping scenario.")
		_ = j.run.Fail(fmt.Errorf("run interrupted: %w", err))
		return finish()
	}

	browser, err := browsers.get(ctx, j.project)
	if err != nil {
		logger.Error("Browser launch failed.", "error", err)
		_ = j.run.Fail(fmt.Errorf("launching browser for project %q: %w", j.project.Name, err))
		return finish()
	}

	sess, err := browser.NewSession(ctx)
	if err != nil {
		logger.Error("Failed to open browser session.", "error", err)
		_ = j.run.Fail(fmt.Errorf("opening session: %w", err))
		return finish()
	}

	logger.Info("▶️ Running scenario")
	_ = exec.Execute(ctx, sess, j.run)
	if err := sess.Close(); err != nil {
		logger.Warn("Failed to close browser session.", "error", err)
	}

	res := finish()
	if res.Passed() {
		logger.Info("✅ Scenario passed", "duration", res.Duration)
	} else {
		logger.Info("❌ Scenario failed", "duration", res.Duration, "error", res.Err)
	}
	return res
}
