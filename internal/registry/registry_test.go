package registry

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/specialistvlad/uiprobe/internal/config"
	"github.com/specialistvlad/uiprobe/internal/testutil"
	"github.com/stretchr/testify/require"
)

type driverModule struct {
	d *testutil.FakeDriver
}

func (m driverModule) Register(r *Registry) { r.RegisterDriver(m.d) }

func projects(browsers ...string) *config.RunConfiguration {
	cfg := config.New()
	for _, b := range browsers {
		cfg.Projects = append(cfg.Projects, config.ProjectProfile{
			Name:   b + " project",
			Device: config.DeviceProfile{Browser: b},
		})
	}
	return cfg
}

func TestRegistry_RegisterAndLookup(t *testing.T) {
	d := testutil.NewFakeDriver()
	r := NewWithModules(driverModule{d: d})

	got, err := r.Driver("fake")
	require.NoError(t, err)
	require.Same(t, d, got)
	require.Equal(t, []string{"fake"}, r.DriverNames())

	_, err = r.Driver("selenium")
	require.ErrorContains(t, err, "unknown driver 'selenium' (registered: [fake])")
}

func TestRegistry_DuplicatePanics(t *testing.T) {
	r := New()
	r.RegisterDriver(testutil.NewFakeDriver())
	require.Panics(t, func() { r.RegisterDriver(testutil.NewFakeDriver()) })
}

func TestRegistry_Resolve(t *testing.T) {
	d := testutil.NewFakeDriver()
	d.Engines = []string{"chromium"}
	r := NewWithModules(driverModule{d: d})
	ctx := context.Background()

	got, err := r.Resolve(ctx, "fake", projects("chromium"))
	require.NoError(t, err)
	require.Same(t, d, got)

	_, err = r.Resolve(ctx, "fake", projects("chromium", "firefox", "webkit"))
	var cfgErr *config.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	require.ErrorContains(t, err, "project 'firefox project'")
	require.ErrorContains(t, err, "project 'webkit project'")
	require.NotContains(t, err.Error(), "chromium project")

	_, err = r.Resolve(ctx, "missing", projects("chromium"))
	require.True(t, errors.As(err, &cfgErr))
}

// presetCheckingDriver rejects every preset except "Desktop Chrome".
type presetCheckingDriver struct {
	*testutil.FakeDriver
}

func (presetCheckingDriver) ValidateProfile(dev config.DeviceProfile) error {
	if dev.Preset != "" && dev.Preset != "Desktop Chrome" {
		return fmt.Errorf("device preset %q is not supported", dev.Preset)
	}
	return nil
}

func TestRegistry_ResolveLeavesPresetEngineToDriver(t *testing.T) {
	ctx := context.Background()
	cfg := config.New()
	cfg.Projects = []config.ProjectProfile{
		{Name: "Chrome Desktop", Device: config.DeviceProfile{Preset: "Desktop Chrome"}},
		{Name: "Firefox Desktop", Device: config.DeviceProfile{Preset: "Desktop Firefox"}},
	}

	plain := testutil.NewFakeDriver()
	plain.Engines = []string{"chromium"}
	_, err := NewWithModules(driverModule{d: plain}).Resolve(ctx, "fake", cfg)
	require.NoError(t, err, "an empty browser is resolved by the driver from the preset")

	r := New()
	r.RegisterDriver(presetCheckingDriver{FakeDriver: testutil.NewFakeDriver()})
	_, err = r.Resolve(ctx, "fake", cfg)
	var cfgErr *config.ConfigError
	require.True(t, errors.As(err, &cfgErr))
	require.ErrorContains(t, err, `project 'Firefox Desktop': device preset "Desktop Firefox" is not supported`)
	require.NotContains(t, err.Error(), "Chrome Desktop")
}
