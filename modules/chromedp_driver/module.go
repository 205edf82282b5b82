// Package chromedp_driver implements driver.Driver over the Chrome DevTools
// Protocol with chromedp. It only drives chromium, needs no Node.js runtime,
// and is the lighter choice for CI images that already ship Chrome.
package chromedp_driver

import (
	"github.com/specialistvlad/uiprobe/internal/registry"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the driver with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterDriver(&Driver{})
}
