package app

import (
	"github.com/specialistvlad/uiprobe/internal/registry"
	"github.com/specialistvlad/uiprobe/modules/chromedp_driver"
	"github.com/specialistvlad/uiprobe/modules/playwright_driver"
)

// coreModules is the definitive list of drivers compiled into the uiprobe
// binary.
func coreModules(cfg *Config) []registry.Module {
	return []registry.Module{
		&playwright_driver.Module{InstallBrowsers: cfg.InstallBrowsers},
		&chromedp_driver.Module{},
	}
}
