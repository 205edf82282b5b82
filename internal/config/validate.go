package config

import (
	"fmt"
	"net/url"

	"github.com/specialistvlad/uiprobe/internal/scenario"
)

// ParseBaseURL parses raw and checks it is a well-formed absolute URL.
func ParseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("base_url %q is malformed: %w", raw, err)
	}
	if !u.IsAbs() || u.Host == "" {
		return nil, fmt.Errorf("base_url %q must be an absolute URL with scheme and host", raw)
	}
	return u, nil
}

// Validate checks the configuration invariants.
func (c *RunConfiguration) Validate() error {
	if c.Version != CurrentVersion {
		return Errorf("unsupported configuration version %d (want %d)", c.Version, CurrentVersion)
	}
	if c.BaseURL != nil && (!c.BaseURL.IsAbs() || c.BaseURL.Host == "") {
		return Errorf("base_url %q must be an absolute URL with scheme and host", c.BaseURL)
	}
	if c.DefaultTimeout < 0 {
		return Errorf("timeout must be positive, got %s", c.DefaultTimeout)
	}
	if c.PollInterval <= 0 {
		return Errorf("poll_interval must be positive, got %s", c.PollInterval)
	}
	if c.TestIDAttribute == "" {
		return Errorf("test_id_attribute must not be empty")
	}
	if len(c.Projects) == 0 {
		return Errorf("at least one project must be declared")
	}

	seen := make(map[string]struct{}, len(c.Projects))
	for _, p := range c.Projects {
		if p.Name == "" {
			return Errorf("project name must not be empty")
		}
		if _, dup := seen[p.Name]; dup {
			return Errorf("project %q is declared more than once", p.Name)
		}
		seen[p.Name] = struct{}{}
		if v := p.Device.Viewport; v != nil && (v.Width <= 0 || v.Height <= 0) {
			return Errorf("project %q: viewport must be positive, got %dx%d", p.Name, v.Width, v.Height)
		}
	}

	sources := make(map[string]string, len(c.Scenarios))
	for _, sc := range c.Scenarios {
		id := sc.ID()
		if first, dup := sources[id]; dup {
			return Errorf("scenario %q is declared more than once (%s and %s); rename one of them", id, first, sc.Source)
		}
		sources[id] = sc.Source
		if err := c.validateScenarioURLs(sc.Steps, id); err != nil {
			return err
		}
	}
	return nil
}

func (c *RunConfiguration) validateScenarioURLs(steps []scenario.Action, id string) error {
	for i, step := range steps {
		nav, ok := step.(scenario.Navigate)
		if !ok {
			continue
		}
		if _, err := c.ResolveURL(nav.URL); err != nil {
			return &ConfigError{Source: fmt.Sprintf("%s step %d", id, i), Err: err}
		}
	}
	return nil
}

// ResolveURL returns raw unchanged when it is absolute; otherwise it resolves
// raw against BaseURL.
func (c *RunConfiguration) ResolveURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("url %q is malformed: %w", raw, err)
	}
	if u.IsAbs() {
		return u.String(), nil
	}
	if c.BaseURL == nil {
		return "", fmt.Errorf("relative url %q requires base_url", raw)
	}
	return c.BaseURL.ResolveReference(u).String(), nil
}
