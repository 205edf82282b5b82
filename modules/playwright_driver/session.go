package playwright_driver

import (
	"context"
	"errors"
	"fmt"

	playwright "github.com/playwright-community/playwright-go"
	"github.com/specialistvlad/uiprobe/internal/config"
	"github.com/specialistvlad/uiprobe/internal/driver"
)

// Session is one isolated browser context and its page. Playwright calls are
// synchronous, so ctx is honoured through its deadline: every call passes the
// time left as Playwright's own timeout.
type Session struct {
	bctx playwright.BrowserContext
	page playwright.Page
}

func (s *Session) Navigate(ctx context.Context, url string) error {
	if err := ctx.Err(); err != nil {
		return mapError(err)
	}
	_, err := s.page.Goto(url, playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateLoad,
		Timeout:   timeoutMS(ctx),
	})
	if err != nil {
		return fmt.Errorf("navigation failed: %w", mapError(err))
	}
	return nil
}

func (s *Session) Click(ctx context.Context, testID string) error {
	if err := ctx.Err(); err != nil {
		return mapError(err)
	}
	err := s.page.GetByTestId(testID).Click(playwright.LocatorClickOptions{
		Timeout: timeoutMS(ctx),
	})
	if err != nil {
		return fmt.Errorf("click failed: %w", mapError(err))
	}
	return nil
}

func (s *Session) Fill(ctx context.Context, testID, value string) error {
	if err := ctx.Err(); err != nil {
		return mapError(err)
	}
	err := s.page.GetByTestId(testID).Fill(value, playwright.LocatorFillOptions{
		Timeout: timeoutMS(ctx),
	})
	if err != nil {
		return fmt.Errorf("fill failed: %w", mapError(err))
	}
	return nil
}

// Text reads the first matching element's textContent without waiting for it
// to appear.
func (s *Session) Text(ctx context.Context, testID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", mapError(err)
	}
	locator := s.page.GetByTestId(testID)
	count, err := locator.Count()
	if err != nil {
		return "", mapError(err)
	}
	if count == 0 {
		return "", driver.ErrNotFound
	}
	text, err := locator.First().TextContent(playwright.LocatorTextContentOptions{
		Timeout: timeoutMS(ctx),
	})
	if err != nil {
		return "", mapError(err)
	}
	return text, nil
}

// Close closes the browser context and every page in it.
func (s *Session) Close() error {
	return s.bctx.Close()
}

func timeoutMS(ctx context.Context) *float64 {
	return playwright.Float(float64(driver.Remaining(ctx, config.DefaultActionTimeout).Milliseconds()))
}

// mapError marks Playwright and context timeouts with driver.ErrTimeout.
func mapError(err error) error {
	if errors.Is(err, playwright.ErrTimeout) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", driver.ErrTimeout, err)
	}
	return err
}
