package report

import (
	"context"
	"errors"

	"github.com/specialistvlad/uiprobe/internal/ctxlog"
)

// Sink receives results as they complete and the summary at the end of a run.
// Sinks only observe: their errors are logged and never change the outcome.
type Sink interface {
	Name() string
	Publish(ctx context.Context, r Result) error
	Close(ctx context.Context, s *Summary) error
}

// Fanout forwards to every sink, logging failures.
type Fanout []Sink

// Publish forwards r to every sink.
func (f Fanout) Publish(ctx context.Context, r Result) {
	logger := ctxlog.FromContext(ctx)
	for _, s := range f {
		if err := s.Publish(ctx, r); err != nil {
			logger.Warn("Report sink failed to publish result.", "sink", s.Name(), "scenario", r.Scenario, "error", err)
		}
	}
}

// Close closes every sink and returns the joined errors.
func (f Fanout) Close(ctx context.Context, s *Summary) error {
	logger := ctxlog.FromContext(ctx)
	var errs []error
	for _, sink := range f {
		if err := sink.Close(ctx, s); err != nil {
			logger.Warn("Report sink failed to close.", "sink", sink.Name(), "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// JSONPayload returns the JSON-ready form of a result, for sinks that send it
// over the wire.
func JSONPayload(r Result) any {
	return toJSONResult(r)
}

// JSONSummaryPayload returns the JSON-ready form of a summary.
func JSONSummaryPayload(s *Summary) any {
	return toJSONSummary(s)
}
