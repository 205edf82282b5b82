package hcl_adapter

import (
	"fmt"
	"time"

	"github.com/specialistvlad/uiprobe/internal/config"
	"github.com/specialistvlad/uiprobe/internal/scenario"
)

var knownBrowsers = map[string]struct{}{
	"chromium": {},
	"firefox":  {},
	"webkit":   {},
}

// maxMillis caps millisecond attributes so the conversion to a
// time.Duration cannot overflow.
const maxMillis = int64(24 * time.Hour / time.Millisecond)

func millis(attr string, v int, file string) (time.Duration, error) {
	if v <= 0 {
		return 0, &config.ConfigError{Source: file, Msg: fmt.Sprintf("%s must be a positive number of milliseconds, got %d", attr, v)}
	}
	if int64(v) > maxMillis {
		return 0, &config.ConfigError{Source: file, Msg: fmt.Sprintf("%s must not exceed %d milliseconds (24h), got %d", attr, maxMillis, v)}
	}
	return time.Duration(v) * time.Millisecond, nil
}

// applyRun copies the optional run attributes over the defaults in cfg.
func applyRun(cfg *config.RunConfiguration, r *hclRun, file string) error {
	if r.Version != nil {
		cfg.Version = *r.Version
	}
	if r.BaseURL != nil {
		u, err := config.ParseBaseURL(*r.BaseURL)
		if err != nil {
			return &config.ConfigError{Source: file, Err: err}
		}
		cfg.BaseURL = u
	}
	if r.Timeout != nil {
		d, err := millis("timeout", *r.Timeout, file)
		if err != nil {
			return err
		}
		cfg.DefaultTimeout = d
	}
	if r.PollInterval != nil {
		d, err := millis("poll_interval", *r.PollInterval, file)
		if err != nil {
			return err
		}
		cfg.PollInterval = d
	}
	if r.TestIDAttribute != nil {
		cfg.TestIDAttribute = *r.TestIDAttribute
	}
	return nil
}

func translateProject(p *hclProject, file string) (config.ProjectProfile, error) {
	dev := config.DeviceProfile{Headless: true}
	if p.Device != nil {
		dev.Preset = *p.Device
	} else {
		dev.Browser = config.DefaultBrowser
	}
	if p.Browser != nil {
		if _, ok := knownBrowsers[*p.Browser]; !ok {
			return config.ProjectProfile{}, &config.ConfigError{
				Source: file,
				Msg:    fmt.Sprintf("project %q: unknown browser %q (want chromium, firefox or webkit)", p.Name, *p.Browser),
			}
		}
		dev.Browser = *p.Browser
	}
	if p.UserAgent != nil {
		dev.UserAgent = *p.UserAgent
	}
	if p.DeviceScaleFactor != nil {
		dev.DeviceScaleFactor = *p.DeviceScaleFactor
	}
	if p.IsMobile != nil {
		dev.IsMobile = *p.IsMobile
	}
	if p.HasTouch != nil {
		dev.HasTouch = *p.HasTouch
	}
	if p.Headless != nil {
		dev.Headless = *p.Headless
	}
	if p.Viewport != nil {
		dev.Viewport = &config.Viewport{Width: p.Viewport.Width, Height: p.Viewport.Height}
	}
	return config.ProjectProfile{Name: p.Name, Device: dev}, nil
}

func translateScenario(s *hclScenario, file string) (*scenario.Scenario, error) {
	fail := func(format string, args ...any) error {
		return &config.ConfigError{
			Source: file,
			Msg:    fmt.Sprintf("scenario %q: ", s.Name) + fmt.Sprintf(format, args...),
		}
	}

	if s.Name == "" {
		return nil, fail("name must not be empty")
	}
	if len(s.Steps) == 0 {
		return nil, fail("at least one step is required")
	}
	switch len(s.Expects) {
	case 0:
		return nil, fail("an expect block is required")
	case 1:
	default:
		return nil, fail("only one expect block is allowed, found %d", len(s.Expects))
	}

	steps := make([]scenario.Action, 0, len(s.Steps))
	for i, st := range s.Steps {
		action, err := translateStep(st)
		if err != nil {
			return nil, fail("step %d: %v", i, err)
		}
		steps = append(steps, action)
	}

	exp := s.Expects[0]
	if exp.TestID == "" {
		return nil, fail("expect: test_id must not be empty")
	}
	assertion := scenario.Assertion{
		Target:   scenario.ElementRef(exp.TestID),
		Contains: exp.Contains,
	}
	if exp.Negate != nil {
		assertion.Negate = *exp.Negate
	}

	return &scenario.Scenario{
		Name:   s.Name,
		Source: file,
		Steps:  steps,
		Expect: assertion,
	}, nil
}

func translateStep(st *hclStep) (scenario.Action, error) {
	switch scenario.ActionKind(st.Kind) {
	case scenario.KindNavigate:
		if st.URL == nil || *st.URL == "" {
			return nil, fmt.Errorf("navigate requires url")
		}
		if st.TestID != nil || st.Value != nil {
			return nil, fmt.Errorf("navigate only accepts url")
		}
		return scenario.Navigate{URL: *st.URL}, nil
	case scenario.KindClick:
		if st.TestID == nil || *st.TestID == "" {
			return nil, fmt.Errorf("click requires test_id")
		}
		if st.URL != nil || st.Value != nil {
			return nil, fmt.Errorf("click only accepts test_id")
		}
		return scenario.Click{Target: scenario.ElementRef(*st.TestID)}, nil
	case scenario.KindFill:
		if st.TestID == nil || *st.TestID == "" {
			return nil, fmt.Errorf("fill requires test_id")
		}
		if st.Value == nil {
			return nil, fmt.Errorf("fill requires value")
		}
		if st.URL != nil {
			return nil, fmt.Errorf("fill does not accept url")
		}
		return scenario.Fill{Target: scenario.ElementRef(*st.TestID), Value: *st.Value}, nil
	default:
		return nil, fmt.Errorf("unknown step kind %q (want navigate, click or fill)", st.Kind)
	}
}
