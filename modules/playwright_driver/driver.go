package playwright_driver

import (
	"context"
	"errors"
	"fmt"

	playwright "github.com/playwright-community/playwright-go"
	"github.com/specialistvlad/uiprobe/internal/config"
	"github.com/specialistvlad/uiprobe/internal/ctxlog"
	"github.com/specialistvlad/uiprobe/internal/driver"
)

// Name is the name the driver registers under.
const Name = "playwright"

// Driver launches one Playwright server and browser per project.
type Driver struct {
	InstallBrowsers bool
}

func (d *Driver) Name() string { return Name }

func (d *Driver) Browsers() []string {
	return []string{"chromium", "firefox", "webkit"}
}

// Launch starts Playwright, configures the test id attribute and launches the
// project's browser engine. The returned Browser owns the Playwright process.
func (d *Driver) Launch(ctx context.Context, project config.ProjectProfile, opts driver.Options) (driver.Browser, error) {
	logger := ctxlog.FromContext(ctx).With("driver", Name, "project", project.Name, "preset", project.Device.Preset)

	// Without an explicit browser the engine is only known once the device
	// registry is loaded, so every engine is installed.
	runOpts := &playwright.RunOptions{}
	if project.Device.Browser != "" {
		runOpts.Browsers = []string{project.Device.Browser}
	}
	if d.InstallBrowsers {
		logger.Info("📦 Installing Playwright browsers")
		if err := playwright.Install(runOpts); err != nil {
			return nil, fmt.Errorf("failed to install playwright browsers: %w", err)
		}
	}

	logger.Debug("Starting Playwright.")
	pw, err := playwright.Run(runOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to start playwright: %w", err)
	}

	if opts.TestIDAttribute != "" {
		pw.Selectors.SetTestIdAttribute(opts.TestIDAttribute)
	}

	contextOpts, err := newContextOptions(pw, project.Device)
	if err != nil {
		_ = pw.Stop()
		return nil, err
	}

	engineName, err := resolveEngine(pw.Devices, project.Device)
	if err != nil {
		_ = pw.Stop()
		return nil, err
	}
	engine, err := browserType(pw, engineName)
	if err != nil {
		_ = pw.Stop()
		return nil, err
	}

	headless := project.Device.Headless && !opts.Headed
	logger.Debug("Launching browser.", "browser", engineName, "headless", headless)
	browser, err := engine.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(headless),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("failed to launch %s: %w", engineName, err)
	}

	logger.Debug("Browser launched.", "version", browser.Version())
	return &Browser{pw: pw, browser: browser, contextOpts: contextOpts, project: project.Name}, nil
}

// resolveEngine returns the explicit browser of dev, or else the default
// engine of its device preset.
func resolveEngine(devices map[string]*playwright.DeviceDescriptor, dev config.DeviceProfile) (string, error) {
	if dev.Browser != "" {
		return dev.Browser, nil
	}
	if dev.Preset == "" {
		return config.DefaultBrowser, nil
	}
	desc, ok := devices[dev.Preset]
	if !ok {
		return "", fmt.Errorf("unknown device preset %q", dev.Preset)
	}
	if desc.DefaultBrowserType == "" {
		return config.DefaultBrowser, nil
	}
	return desc.DefaultBrowserType, nil
}

func browserType(pw *playwright.Playwright, name string) (playwright.BrowserType, error) {
	switch name {
	case "chromium":
		return pw.Chromium, nil
	case "firefox":
		return pw.Firefox, nil
	case "webkit":
		return pw.WebKit, nil
	default:
		return nil, fmt.Errorf("unsupported browser %q", name)
	}
}

// newContextOptions merges the device preset, when set, with the explicit
// profile overrides.
func newContextOptions(pw *playwright.Playwright, dev config.DeviceProfile) (playwright.BrowserNewContextOptions, error) {
	var opts playwright.BrowserNewContextOptions

	if dev.Preset != "" {
		desc, ok := pw.Devices[dev.Preset]
		if !ok {
			return opts, fmt.Errorf("unknown device preset %q", dev.Preset)
		}
		opts.UserAgent = playwright.String(desc.UserAgent)
		opts.Viewport = desc.Viewport
		opts.DeviceScaleFactor = playwright.Float(desc.DeviceScaleFactor)
		opts.IsMobile = playwright.Bool(desc.IsMobile)
		opts.HasTouch = playwright.Bool(desc.HasTouch)
	}

	if dev.Viewport != nil {
		opts.Viewport = &playwright.Size{Width: dev.Viewport.Width, Height: dev.Viewport.Height}
	}
	if dev.UserAgent != "" {
		opts.UserAgent = playwright.String(dev.UserAgent)
	}
	if dev.DeviceScaleFactor > 0 {
		opts.DeviceScaleFactor = playwright.Float(dev.DeviceScaleFactor)
	}
	if dev.IsMobile {
		opts.IsMobile = playwright.Bool(true)
	}
	if dev.HasTouch {
		opts.HasTouch = playwright.Bool(true)
	}
	return opts, nil
}

// Browser is a launched Playwright browser.
type Browser struct {
	pw          *playwright.Playwright
	browser     playwright.Browser
	contextOpts playwright.BrowserNewContextOptions
	project     string
}

// NewSession opens a fresh browser context with a single page.
func (b *Browser) NewSession(ctx context.Context) (driver.Session, error) {
	bctx, err := b.browser.NewContext(b.contextOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create browser context: %w", err)
	}
	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		return nil, fmt.Errorf("failed to create page: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("Browser context created.", "project", b.project)
	return &Session{bctx: bctx, page: page}, nil
}

// Close closes the browser and stops Playwright.
func (b *Browser) Close() error {
	return errors.Join(b.browser.Close(), b.pw.Stop())
}
