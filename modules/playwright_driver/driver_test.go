package playwright_driver

import (
	"context"
	"errors"
	"testing"
	"time"

	playwright "github.com/playwright-community/playwright-go"
	"github.com/specialistvlad/uiprobe/internal/config"
	"github.com/specialistvlad/uiprobe/internal/ctxlog"
	"github.com/specialistvlad/uiprobe/internal/driver"
	"github.com/specialistvlad/uiprobe/internal/executor"
	"github.com/specialistvlad/uiprobe/internal/scenario"
	"github.com/specialistvlad/uiprobe/internal/testutil"
	"github.com/stretchr/testify/require"
)

var chromeDesktop = config.ProjectProfile{
	Name:   "Chrome Desktop",
	Device: config.DeviceProfile{Preset: "Desktop Chrome", Browser: "chromium", Headless: true},
}

// launch starts a real browser, skipping the test when Playwright or its
// browsers are not installed.
func launch(t *testing.T, ctx context.Context) driver.Browser {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping real-browser test in -short mode")
	}
	browser, err := (&Driver{}).Launch(ctx, chromeDesktop, driver.Options{TestIDAttribute: config.DefaultTestIDAttribute})
	if err != nil {
		t.Skip("Playwright not available:", err)
	}
	t.Cleanup(func() { _ = browser.Close() })
	return browser
}

func testContext(t *testing.T) context.Context {
	t.Helper()
	logger, _ := testutil.NewLogger(t)
	return ctxlog.WithLogger(context.Background(), logger)
}

func TestDriver_Browsers(t *testing.T) {
	d := &Driver{}
	require.Equal(t, Name, d.Name())
	require.ElementsMatch(t, []string{"chromium", "firefox", "webkit"}, d.Browsers())
}

func TestResolveEngine(t *testing.T) {
	devices := map[string]*playwright.DeviceDescriptor{
		"Desktop Chrome":  {DefaultBrowserType: "chromium"},
		"Desktop Firefox": {DefaultBrowserType: "firefox"},
		"Desktop Safari":  {DefaultBrowserType: "webkit"},
	}
	testCases := []struct {
		name    string
		dev     config.DeviceProfile
		want    string
		wantErr string
	}{
		{name: "firefox preset", dev: config.DeviceProfile{Preset: "Desktop Firefox"}, want: "firefox"},
		{name: "safari preset", dev: config.DeviceProfile{Preset: "Desktop Safari"}, want: "webkit"},
		{name: "explicit browser wins", dev: config.DeviceProfile{Preset: "Desktop Firefox", Browser: "chromium"}, want: "chromium"},
		{name: "no preset", dev: config.DeviceProfile{}, want: "chromium"},
		{name: "unknown preset", dev: config.DeviceProfile{Preset: "Netscape Navigator"}, wantErr: `unknown device preset "Netscape Navigator"`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := resolveEngine(devices, tc.dev)
			if tc.wantErr != "" {
				require.ErrorContains(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestSession_LoginFlow(t *testing.T) {
	ctx := testContext(t)
	browser := launch(t, ctx)
	srv := testutil.NewLoginServer(t)

	testCases := []struct {
		email, password, initials string
	}{
		{"brad@pitt.de", "123456", "BP"},
		{"max@mail.de", "12345", "MM"},
	}
	for _, tc := range testCases {
		t.Run(tc.initials, func(t *testing.T) {
			cfg := config.New()
			u, err := config.ParseBaseURL(srv.URL)
			require.NoError(t, err)
			cfg.BaseURL = u
			cfg.DefaultTimeout = 5 * time.Second
			cfg.Projects = []config.ProjectProfile{chromeDesktop}

			sc := &scenario.Scenario{
				Name: "login",
				Steps: []scenario.Action{
					scenario.Navigate{URL: "/"},
					scenario.Click{Target: "login-icon"},
					scenario.Fill{Target: "login-email", Value: tc.email},
					scenario.Fill{Target: "login-password", Value: tc.password},
					scenario.Click{Target: "login-button"},
				},
				Expect: scenario.Assertion{Target: "user-avatar", Contains: tc.initials},
			}

			sess, err := browser.NewSession(ctx)
			require.NoError(t, err)
			defer sess.Close()

			run := scenario.NewRun(chromeDesktop.Name, sc)
			require.NoError(t, executor.New(cfg).Execute(ctx, sess, run))
		})
	}
}

func TestSession_TextAndTimeouts(t *testing.T) {
	ctx := testContext(t)
	browser := launch(t, ctx)
	srv := testutil.NewLoginServer(t)

	sess, err := browser.NewSession(ctx)
	require.NoError(t, err)
	defer sess.Close()

	require.NoError(t, sess.Navigate(ctx, srv.URL))

	_, err = sess.Text(ctx, "user-avatar")
	require.ErrorIs(t, err, driver.ErrNotFound)

	text, err := sess.Text(ctx, "login-icon")
	require.NoError(t, err)
	require.Equal(t, "Login", text)

	shortCtx, cancel := context.WithTimeout(ctx, 200*time.Millisecond)
	defer cancel()
	err = sess.Click(shortCtx, "does-not-exist")
	require.Error(t, err)
	require.True(t, errors.Is(err, driver.ErrTimeout), "got %v", err)
}
