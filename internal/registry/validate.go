package registry

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/specialistvlad/uiprobe/internal/config"
	"github.com/specialistvlad/uiprobe/internal/ctxlog"
	"github.com/specialistvlad/uiprobe/internal/driver"
)

// Resolve returns the named driver after checking it supports the browser
// engine of every project in cfg. Mismatches are reported together as one
// *config.ConfigError.
func (r *Registry) Resolve(ctx context.Context, name string, cfg *config.RunConfiguration) (driver.Driver, error) {
	logger := ctxlog.FromContext(ctx)

	d, err := r.Driver(name)
	if err != nil {
		return nil, &config.ConfigError{Err: err}
	}

	supported := d.Browsers()
	var errs []string
	validator, _ := d.(driver.ProfileValidator)
	for _, p := range cfg.Projects {
		// An empty browser is the preset's default engine, known only to the driver.
		if b := p.Device.Browser; b != "" && !slices.Contains(supported, b) {
			errs = append(errs, fmt.Sprintf("project '%s': driver '%s' cannot run browser '%s' (supports %v)", p.Name, name, b, supported))
			continue
		}
		if validator != nil {
			if err := validator.ValidateProfile(p.Device); err != nil {
				errs = append(errs, fmt.Sprintf("project '%s': %v", p.Name, err))
			}
		}
	}
	if len(errs) > 0 {
		return nil, config.Errorf("driver validation failed:\n- %s", strings.Join(errs, "\n- "))
	}

	logger.Debug("Driver resolved.", "driver", name, "projects", len(cfg.Projects))
	return d, nil
}
