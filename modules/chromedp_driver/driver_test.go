package chromedp_driver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/specialistvlad/uiprobe/internal/config"
	"github.com/specialistvlad/uiprobe/internal/ctxlog"
	"github.com/specialistvlad/uiprobe/internal/driver"
	"github.com/specialistvlad/uiprobe/internal/testutil"
	"github.com/stretchr/testify/require"
)

func TestLaunch_RejectsUnsupportedProfiles(t *testing.T) {
	d := &Driver{}
	ctx := context.Background()

	_, err := d.Launch(ctx, config.ProjectProfile{Name: "ff", Device: config.DeviceProfile{Browser: "firefox"}}, driver.Options{})
	require.ErrorContains(t, err, "can only drive chromium")

	_, err = d.Launch(ctx, config.ProjectProfile{Name: "phone", Device: config.DeviceProfile{Browser: "chromium", Preset: "Pixel 5"}}, driver.Options{})
	require.ErrorContains(t, err, `device preset "Pixel 5"`)

	_, err = d.Launch(ctx, config.ProjectProfile{Name: "Firefox Desktop", Device: config.DeviceProfile{Preset: "Desktop Firefox"}}, driver.Options{})
	require.ErrorContains(t, err, `device preset "Desktop Firefox" is not supported`)
}

func TestValidateProfile(t *testing.T) {
	d := &Driver{}
	require.NoError(t, d.ValidateProfile(config.DeviceProfile{Preset: "Desktop Chrome"}))
	require.NoError(t, d.ValidateProfile(config.DeviceProfile{Browser: "chromium"}))
	require.ErrorContains(t, d.ValidateProfile(config.DeviceProfile{Preset: "Desktop Safari"}), "supported: Desktop Chrome, Desktop Chrome HiDPI, Desktop Edge")
	require.ErrorContains(t, d.ValidateProfile(config.DeviceProfile{Preset: "Desktop Chrome", Browser: "webkit"}), "can only drive chromium")
}

func TestNewProfile(t *testing.T) {
	p, err := newProfile(config.DeviceProfile{
		Preset:            "Desktop Chrome",
		Viewport:          &config.Viewport{Width: 390, Height: 844},
		DeviceScaleFactor: 3,
		IsMobile:          true,
		UserAgent:         "uiprobe/test",
	})
	require.NoError(t, err)
	require.Equal(t, profile{
		viewport:  config.Viewport{Width: 390, Height: 844},
		scale:     3,
		mobile:    true,
		userAgent: "uiprobe/test",
	}, p)
	require.Len(t, p.actions(), 2)

	p, err = newProfile(config.DeviceProfile{})
	require.NoError(t, err)
	require.Equal(t, config.Viewport{Width: 1280, Height: 720}, p.viewport)
	require.Len(t, p.actions(), 1)
}

func TestWaitStarted(t *testing.T) {
	require.NoError(t, waitStarted(context.Background(), time.Second, func() error { return nil }))

	boom := errors.New("no chrome binary")
	require.ErrorIs(t, waitStarted(context.Background(), time.Second, func() error { return boom }), boom)

	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	hang := func() error { <-release; return nil }

	start := time.Now()
	err := waitStarted(context.Background(), 50*time.Millisecond, hang)
	require.ErrorIs(t, err, driver.ErrTimeout)
	require.Less(t, time.Since(start), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.ErrorIs(t, waitStarted(ctx, time.Minute, hang), context.Canceled)
}

func TestSelector(t *testing.T) {
	s := &Session{testIDAttr: "data-qa"}
	require.Equal(t, `[data-qa="login-icon"]`, s.selector("login-icon"))
	s = &Session{}
	require.Equal(t, `[data-testid="user-avatar"]`, s.selector("user-avatar"))
}

func TestSession_AgainstLoginPage(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping real-browser test in -short mode")
	}
	logger, _ := testutil.NewLogger(t)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	srv := testutil.NewLoginServer(t)

	browser, err := (&Driver{}).Launch(ctx, config.ProjectProfile{
		Name:   "Chrome Desktop",
		Device: config.DeviceProfile{Preset: "Desktop Chrome", Browser: "chromium", Headless: true},
	}, driver.Options{TestIDAttribute: config.DefaultTestIDAttribute})
	require.NoError(t, err)
	defer browser.Close()

	startCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()
	sess, err := browser.NewSession(startCtx)
	if err != nil {
		t.Skip("Chrome not available:", err)
	}
	defer sess.Close()

	require.NoError(t, sess.Navigate(ctx, srv.URL))
	require.NoError(t, sess.Click(ctx, "login-icon"))
	require.NoError(t, sess.Fill(ctx, "login-email", "max@mail.de"))
	require.NoError(t, sess.Fill(ctx, "login-password", "12345"))
	require.NoError(t, sess.Click(ctx, "login-button"))

	require.Eventually(t, func() bool {
		text, err := sess.Text(ctx, "user-avatar")
		return err == nil && text == "MM"
	}, 5*time.Second, 50*time.Millisecond)

	shortCtx, cancelShort := context.WithTimeout(ctx, 200*time.Millisecond)
	defer cancelShort()
	err = sess.Click(shortCtx, "does-not-exist")
	require.True(t, errors.Is(err, driver.ErrTimeout), "got %v", err)
}
