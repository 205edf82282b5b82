package executor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/specialistvlad/uiprobe/internal/config"
	"github.com/specialistvlad/uiprobe/internal/ctxlog"
	"github.com/specialistvlad/uiprobe/internal/driver"
	"github.com/specialistvlad/uiprobe/internal/report"
	"github.com/specialistvlad/uiprobe/internal/scenario"
)

// DefaultWorkers is used when Pool.Workers is not positive.
const DefaultWorkers = 4

// Pool runs every (project, scenario) pair of a configuration concurrently.
// Each pair gets its own session; one browser per project is launched on
// first use and closed when Run returns.
type Pool struct {
	Driver  driver.Driver
	Options driver.Options
	Config  *config.RunConfiguration
	Workers int
	// OnResult, when set, receives every result as soon as its pair
	// finishes. Calls are serialized.
	OnResult func(report.Result)

	wg       sync.WaitGroup
	resultMu sync.Mutex
	runsMu   sync.RWMutex
	runs     []*scenario.Run
}

type job struct {
	project config.ProjectProfile
	run     *scenario.Run
}

// Runs returns the runs of the current or last Run call, in plan order.
func (p *Pool) Runs() []*scenario.Run {
	p.runsMu.RLock()
	defer p.runsMu.RUnlock()
	return append([]*scenario.Run(nil), p.runs...)
}

// Run executes all pairs and returns their results in plan order: projects in
// declaration order, scenarios in load order within each project. A failing
// pair never stops its siblings. If ctx is canceled, pairs not yet started
// are marked failed and the returned error wraps ctx.Err().
func (p *Pool) Run(ctx context.Context, runID string) (*report.Summary, error) {
	logger := ctxlog.FromContext(ctx)
	if p.Driver == nil || p.Config == nil {
		return nil, errors.New("executor pool requires a driver and a configuration")
	}

	jobs := p.plan()
	started := time.Now()
	results := make([]report.Result, len(jobs))

	jobChan := make(chan int, len(jobs))
	for i := range jobs {
		jobChan <- i
	}
	close(jobChan)

	workers := p.Workers
	if workers <= 0 {
		workers = DefaultWorkers
	}
	if workers > len(jobs) {
		workers = len(jobs)
	}

	browsers := newBrowserSet(p.Driver, p.Options)
	defer browsers.closeAll(ctx)

	exec := New(p.Config)
	p.wg.Add(workers)
	logger.Debug("Starting worker pool.", "workers", workers, "pairs", len(jobs), "driver", p.Driver.Name())
	for i := 0; i < workers; i++ {
		go p.worker(ctx, i, exec, browsers, jobChan, jobs, results, runID)
	}

	logger.Info("Waiting for all scenarios to complete...", "pairs", len(jobs))
	p.wg.Wait()
	logger.Info("All scenarios completed.")

	summary := &report.Summary{
		RunID:     runID,
		StartedAt: started,
		Duration:  time.Since(started),
		Results:   results,
	}
	if err := ctx.Err(); err != nil {
		return summary, fmt.Errorf("run interrupted: %w", err)
	}
	return summary, nil
}

func (p *Pool) plan() []job {
	jobs := make([]job, 0, len(p.Config.Projects)*len(p.Config.Scenarios))
	runs := make([]*scenario.Run, 0, cap(jobs))
	for _, project := range p.Config.Projects {
		for _, sc := range p.Config.Scenarios {
			run := scenario.NewRun(project.Name, sc)
			jobs = append(jobs, job{project: project, run: run})
			runs = append(runs, run)
		}
	}
	p.runsMu.Lock()
	p.runs = runs
	p.runsMu.Unlock()
	return jobs
}

func (p *Pool) emit(res report.Result) {
	if p.OnResult == nil {
		return
	}
	p.resultMu.Lock()
	defer p.resultMu.Unlock()
	p.OnResult(res)
}
