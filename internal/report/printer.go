package report

import (
	"fmt"
	"io"
	"sync"
	"time"
)

// Printer writes one line per result and a closing summary. It is safe for
// concurrent use.
type Printer struct {
	mu sync.Mutex
	w  io.Writer
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	return &Printer{w: w}
}

// Print writes the line for a single result.
func (p *Printer) Print(r Result) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if r.Passed() {
		fmt.Fprintf(p.w, "✅ PASS [%s] %s (%s)\n", r.Project, r.Scenario, round(r.Duration))
		return
	}
	fmt.Fprintf(p.w, "❌ FAIL [%s] %s (%s)\n", r.Project, r.Scenario, round(r.Duration))
	if r.Err != nil {
		fmt.Fprintf(p.w, "    %s: %v\n", r.Category(), r.Err)
	}
}

// PrintSummary writes the totals line.
func (p *Printer) PrintSummary(s *Summary) {
	p.mu.Lock()
	defer p.mu.Unlock()
	passed, failed := s.Counts()
	fmt.Fprintf(p.w, "\n%d passed, %d failed, %d total (%s)\n", passed, failed, len(s.Results), round(s.Duration))
}

func round(d time.Duration) time.Duration {
	return d.Round(time.Millisecond)
}
