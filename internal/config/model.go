package config

import (
	"net/url"
	"time"

	"github.com/specialistvlad/uiprobe/internal/scenario"
)

const (
	// CurrentVersion is the only configuration schema version understood.
	CurrentVersion = 1

	DefaultActionTimeout   = 30 * time.Second
	DefaultPollInterval    = 100 * time.Millisecond
	DefaultTestIDAttribute = "data-testid"
	DefaultBrowser         = "chromium"
)

// RunConfiguration is the unified representation of everything a run needs.
type RunConfiguration struct {
	Version int
	// BaseURL is optional. When nil, every navigate step must use an absolute URL.
	BaseURL *url.URL
	// DefaultTimeout bounds every action and the assertion. Zero means unset;
	// see ActionTimeout.
	DefaultTimeout  time.Duration
	PollInterval    time.Duration
	TestIDAttribute string
	Projects        []ProjectProfile
	Scenarios       []*scenario.Scenario
}

// ProjectProfile is a named browser/device profile.
type ProjectProfile struct {
	Name   string
	Device DeviceProfile
}

// DeviceProfile is opaque to scenarios and only interpreted by drivers.
type DeviceProfile struct {
	// Preset names a device descriptor known to the driver, e.g. "Desktop Chrome".
	Preset string
	// Browser is the engine: chromium, firefox or webkit. Empty means the
	// default engine of Preset, resolved by the driver.
	Browser           string
	Viewport          *Viewport
	UserAgent         string
	DeviceScaleFactor float64
	IsMobile          bool
	HasTouch          bool
	Headless          bool
}

// Viewport is a page size in CSS pixels.
type Viewport struct {
	Width  int
	Height int
}

// New returns a configuration populated with the documented defaults.
func New() *RunConfiguration {
	return &RunConfiguration{
		Version:         CurrentVersion,
		PollInterval:    DefaultPollInterval,
		TestIDAttribute: DefaultTestIDAttribute,
	}
}

// ActionTimeout is the bound applied to each action and to the assertion.
func (c *RunConfiguration) ActionTimeout() time.Duration {
	if c.DefaultTimeout > 0 {
		return c.DefaultTimeout
	}
	return DefaultActionTimeout
}

// Project returns the project with the given name.
func (c *RunConfiguration) Project(name string) (ProjectProfile, bool) {
	for _, p := range c.Projects {
		if p.Name == name {
			return p, true
		}
	}
	return ProjectProfile{}, false
}
