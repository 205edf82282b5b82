// Package driver is the narrow contract between scenario execution and a
// browser automation engine: launch a browser for a project, open isolated
// sessions, navigate, and act on elements located by test identifier.
package driver

import (
	"context"
	"errors"
	"time"

	"github.com/specialistvlad/uiprobe/internal/config"
)

var (
	// ErrTimeout is matched (errors.Is) by every error caused by an exceeded bound.
	ErrTimeout = errors.New("driver: timeout")
	// ErrNotFound is returned by Session.Text when no element carries the test id.
	ErrNotFound = errors.New("driver: element not found")
)

// Options are run-wide settings shared by every browser a driver launches.
type Options struct {
	TestIDAttribute string
	// Headed forces a visible browser regardless of the project profile.
	Headed bool
}

// Driver launches browsers. Implementations must be safe for concurrent use.
type Driver interface {
	Name() string
	// Browsers lists the engines (chromium, firefox, webkit) the driver can launch.
	Browsers() []string
	Launch(ctx context.Context, project config.ProjectProfile, opts Options) (Browser, error)
}

// ProfileValidator is implemented by drivers that can reject a device profile
// before any browser is launched.
type ProfileValidator interface {
	ValidateProfile(dev config.DeviceProfile) error
}

// Browser is one launched browser for one project.
type Browser interface {
	// NewSession opens an isolated browser context: no cookies, storage or
	// pages are shared with any other session.
	NewSession(ctx context.Context) (Session, error)
	Close() error
}

// Session is owned by exactly one scenario run. Every call blocks until the
// engine confirms the effect or ctx's deadline passes.
type Session interface {
	Navigate(ctx context.Context, url string) error
	Click(ctx context.Context, testID string) error
	Fill(ctx context.Context, testID, value string) error
	// Text returns the element's rendered text content. It does not wait for
	// the element: when none carries testID it returns ErrNotFound at once,
	// and callers poll.
	Text(ctx context.Context, testID string) (string, error)
	Close() error
}

// Remaining returns the time left until ctx's deadline, or fallback when ctx
// has none. It never returns less than a millisecond so engines that treat
// zero as "no timeout" stay bounded.
func Remaining(ctx context.Context, fallback time.Duration) time.Duration {
	deadline, ok := ctx.Deadline()
	if !ok {
		return fallback
	}
	left := time.Until(deadline)
	if left < time.Millisecond {
		return time.Millisecond
	}
	return left
}
