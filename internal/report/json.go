package report

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"
)

type jsonResult struct {
	Project    string    `json:"project"`
	Scenario   string    `json:"scenario"`
	Status     string    `json:"status"`
	Category   string    `json:"category,omitempty"`
	Reason     string    `json:"reason,omitempty"`
	FailedStep *int      `json:"failed_step,omitempty"`
	StartedAt  time.Time `json:"started_at"`
	DurationMS int64     `json:"duration_ms"`
}

type jsonSummary struct {
	RunID      string       `json:"run_id"`
	StartedAt  time.Time    `json:"started_at"`
	DurationMS int64        `json:"duration_ms"`
	Passed     int          `json:"passed"`
	Failed     int          `json:"failed"`
	Results    []jsonResult `json:"results"`
}

func toJSONResult(r Result) jsonResult {
	out := jsonResult{
		Project:    r.Project,
		Scenario:   r.Scenario,
		Status:     r.Status.String(),
		Category:   r.Category(),
		StartedAt:  r.StartedAt.UTC(),
		DurationMS: r.Duration.Milliseconds(),
	}
	if r.Err != nil {
		out.Reason = r.Err.Error()
	}
	if r.FailedStep >= 0 {
		step := r.FailedStep
		out.FailedStep = &step
	}
	return out
}

func toJSONSummary(s *Summary) jsonSummary {
	passed, failed := s.Counts()
	out := jsonSummary{
		RunID:      s.RunID,
		StartedAt:  s.StartedAt.UTC(),
		DurationMS: s.Duration.Milliseconds(),
		Passed:     passed,
		Failed:     failed,
		Results:    make([]jsonResult, 0, len(s.Results)),
	}
	for _, r := range s.Results {
		out.Results = append(out.Results, toJSONResult(r))
	}
	return out
}

// WriteJSON encodes the summary as the JSON report artifact.
func WriteJSON(w io.Writer, s *Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(toJSONSummary(s)); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

// WriteJSONFile writes the report artifact to path, creating parent directories.
func WriteJSONFile(path string, s *Summary) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create report directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file %s: %w", path, err)
	}
	if err := WriteJSON(f, s); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
