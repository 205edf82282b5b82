package chromedp_driver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
	"github.com/specialistvlad/uiprobe/internal/config"
	"github.com/specialistvlad/uiprobe/internal/driver"
)

// actions returns the CDP calls that apply the profile to a fresh tab.
func (p profile) actions() []chromedp.Action {
	opts := []chromedp.EmulateViewportOption{chromedp.EmulateScale(p.scale)}
	if p.mobile {
		opts = append(opts, chromedp.EmulateMobile)
	}
	if p.touch {
		opts = append(opts, chromedp.EmulateTouch)
	}
	acts := []chromedp.Action{
		chromedp.EmulateViewport(int64(p.viewport.Width), int64(p.viewport.Height), opts...),
	}
	if p.userAgent != "" {
		acts = append(acts, emulation.SetUserAgentOverride(p.userAgent))
	}
	return acts
}

// Session is a tab in a dedicated Chrome process.
type Session struct {
	ctx        context.Context
	cancel     func()
	testIDAttr string
	closeOnce  sync.Once
}

// run executes actions on the tab, bounded by ctx's deadline and cancelled
// together with ctx.
func (s *Session) run(ctx context.Context, actions ...chromedp.Action) error {
	if err := ctx.Err(); err != nil {
		return mapError(err)
	}
	runCtx, cancel := context.WithTimeout(s.ctx, driver.Remaining(ctx, config.DefaultActionTimeout))
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()
	return mapError(chromedp.Run(runCtx, actions...))
}

func (s *Session) selector(testID string) string {
	attr := s.testIDAttr
	if attr == "" {
		attr = config.DefaultTestIDAttribute
	}
	quoted, _ := json.Marshal(testID)
	return fmt.Sprintf("[%s=%s]", attr, quoted)
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	if err := s.run(ctx, chromedp.Navigate(url)); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}
	return nil
}

func (s *Session) Click(ctx context.Context, testID string) error {
	sel := s.selector(testID)
	err := s.run(ctx,
		chromedp.WaitVisible(sel, chromedp.ByQuery),
		chromedp.Click(sel, chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("click failed: %w", err)
	}
	return nil
}

func (s *Session) Fill(ctx context.Context, testID, value string) error {
	sel := s.selector(testID)
	err := s.run(ctx,
		chromedp.WaitVisible(sel, chromedp.ByQuery),
		chromedp.Clear(sel, chromedp.ByQuery),
		chromedp.SendKeys(sel, value, chromedp.ByQuery),
	)
	if err != nil {
		return fmt.Errorf("fill failed: %w", err)
	}
	return nil
}

type textResult struct {
	Found bool   `json:"found"`
	Text  string `json:"text"`
}

// Text reads textContent of the first match in a single evaluation, without
// waiting for the element.
func (s *Session) Text(ctx context.Context, testID string) (string, error) {
	sel, _ := json.Marshal(s.selector(testID))
	js := fmt.Sprintf(`(() => {
  const el = document.querySelector(%s);
  return el ? {found: true, text: el.textContent || ""} : {found: false, text: ""};
})()`, sel)

	var res textResult
	if err := s.run(ctx, chromedp.Evaluate(js, &res)); err != nil {
		return "", err
	}
	if !res.Found {
		return "", driver.ErrNotFound
	}
	return res.Text, nil
}

// Close closes the tab and terminates its Chrome process.
func (s *Session) Close() error {
	s.closeOnce.Do(s.cancel)
	return nil
}

// mapError marks deadline errors with driver.ErrTimeout.
func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", driver.ErrTimeout, err)
	}
	return err
}
