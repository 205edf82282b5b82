package chromedp_driver

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/specialistvlad/uiprobe/internal/config"
	"github.com/specialistvlad/uiprobe/internal/ctxlog"
	"github.com/specialistvlad/uiprobe/internal/driver"
)

// Name is the name the driver registers under.
const Name = "chromedp"

// presets maps the device names this driver understands to a viewport.
// Mobile presets need Playwright's device registry.
var presets = map[string]config.Viewport{
	"Desktop Chrome":       {Width: 1280, Height: 720},
	"Desktop Chrome HiDPI": {Width: 1280, Height: 720},
	"Desktop Edge":         {Width: 1280, Height: 720},
}

func presetNames() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Driver launches Chrome through chromedp.
type Driver struct {
	// ExecPath overrides Chrome discovery.
	ExecPath string
	// StartupTimeout bounds the wait for Chrome to come up when the session
	// context has no deadline. Defaults to DefaultStartupTimeout.
	StartupTimeout time.Duration
}

// DefaultStartupTimeout is used when Driver.StartupTimeout is not positive.
const DefaultStartupTimeout = 30 * time.Second

func (d *Driver) Name() string { return Name }

func (d *Driver) Browsers() []string { return []string{"chromium"} }

// Launch resolves the project's emulation settings. Chrome processes are
// started per session, so a launch never fails on a missing binary; the first
// session does.
func (d *Driver) Launch(ctx context.Context, project config.ProjectProfile, opts driver.Options) (driver.Browser, error) {
	logger := ctxlog.FromContext(ctx).With("driver", Name, "project", project.Name)

	if err := d.ValidateProfile(project.Device); err != nil {
		return nil, fmt.Errorf("project %q: %w", project.Name, err)
	}
	prof, err := newProfile(project.Device)
	if err != nil {
		return nil, err
	}

	headless := project.Device.Headless && !opts.Headed
	allocOpts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", headless),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.WindowSize(prof.viewport.Width, prof.viewport.Height),
	)
	if d.ExecPath != "" {
		allocOpts = append(allocOpts, chromedp.ExecPath(d.ExecPath))
	}

	logger.Debug("Browser profile prepared.", "headless", headless, "viewport", prof.viewport, "mobile", prof.mobile)
	return &Browser{
		allocOpts:      allocOpts,
		profile:        prof,
		testIDAttr:     opts.TestIDAttribute,
		project:        project.Name,
		startupTimeout: d.StartupTimeout,
	}, nil
}

// ValidateProfile accepts chromium profiles whose preset, if any, is one of
// the desktop Chromium presets. An empty browser takes the preset's engine,
// which for every known preset is chromium.
func (d *Driver) ValidateProfile(dev config.DeviceProfile) error {
	if dev.Browser != "" && dev.Browser != "chromium" {
		return fmt.Errorf("chromedp can only drive chromium, got %s", dev.Browser)
	}
	_, err := newProfile(dev)
	return err
}

// profile is the emulation applied to every session of a project.
type profile struct {
	viewport  config.Viewport
	scale     float64
	mobile    bool
	touch     bool
	userAgent string
}

func newProfile(dev config.DeviceProfile) (profile, error) {
	em := profile{viewport: config.Viewport{Width: 1280, Height: 720}, scale: 1}
	if dev.Preset != "" {
		vp, ok := presets[dev.Preset]
		if !ok {
			return em, fmt.Errorf("device preset %q is not supported by the chromedp driver (supported: %s)", dev.Preset, strings.Join(presetNames(), ", "))
		}
		em.viewport = vp
	}
	if dev.Viewport != nil {
		em.viewport = *dev.Viewport
	}
	if dev.DeviceScaleFactor > 0 {
		em.scale = dev.DeviceScaleFactor
	}
	em.mobile = dev.IsMobile
	em.touch = dev.HasTouch
	em.userAgent = dev.UserAgent
	return em, nil
}

// Browser holds the allocator options for one project. Every session runs in
// its own Chrome process with a throwaway profile directory.
type Browser struct {
	allocOpts      []chromedp.ExecAllocatorOption
	profile        profile
	testIDAttr     string
	project        string
	startupTimeout time.Duration
}

// NewSession starts Chrome and applies the project's emulation.
func (b *Browser) NewSession(ctx context.Context) (driver.Session, error) {
	logger := ctxlog.FromContext(ctx).With("driver", Name, "project", b.project)

	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), b.allocOpts...)
	tabCtx, tabCancel := chromedp.NewContext(allocCtx)
	sess := &Session{
		ctx:        tabCtx,
		cancel:     func() { tabCancel(); allocCancel() },
		testIDAttr: b.testIDAttr,
	}

	// The first Run allocates the browser and must not carry a timeout, or
	// the deadline would tear Chrome down with it. Only the wait is bounded.
	limit := b.startupTimeout
	if limit <= 0 {
		limit = DefaultStartupTimeout
	}
	limit = driver.Remaining(ctx, limit)
	if err := waitStarted(ctx, limit, func() error { return chromedp.Run(tabCtx) }); err != nil {
		sess.Close()
		return nil, fmt.Errorf("failed to start chrome: %w", err)
	}
	if err := sess.run(ctx, b.profile.actions()...); err != nil {
		sess.Close()
		return nil, fmt.Errorf("failed to apply device emulation: %w", err)
	}
	logger.Debug("Chrome session started.")
	return sess, nil
}

// waitStarted runs start in the background and waits for it for at most
// limit or until ctx is done. On timeout start keeps running; the caller
// tears it down.
func waitStarted(ctx context.Context, limit time.Duration, start func() error) error {
	done := make(chan error, 1)
	go func() { done <- start() }()

	timer := time.NewTimer(limit)
	defer timer.Stop()
	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		return mapError(ctx.Err())
	case <-timer.C:
		return fmt.Errorf("%w: chrome did not start within %s", driver.ErrTimeout, limit)
	}
}

// Close is a no-op: sessions own their Chrome processes.
func (b *Browser) Close() error { return nil }
