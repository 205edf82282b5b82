// Package playwright_driver implements driver.Driver on top of
// playwright-go. It supports every engine Playwright ships: chromium,
// firefox and webkit, and resolves device presets such as "Desktop Chrome"
// from Playwright's device registry.
package playwright_driver

import (
	"github.com/specialistvlad/uiprobe/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct {
	// InstallBrowsers downloads the driver and the project's browser engine
	// before the first launch.
	InstallBrowsers bool
}

// Register registers the driver with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterDriver(&Driver{InstallBrowsers: m.InstallBrowsers})
}
