package testutil

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/specialistvlad/uiprobe/internal/config"
	"github.com/specialistvlad/uiprobe/internal/driver"
)

// Account is a user of the simulated application.
type Account struct {
	Password string
	Initials string
}

// DefaultAccounts returns the two accounts the bundled login scenarios use.
func DefaultAccounts() map[string]Account {
	return map[string]Account{
		"brad@pitt.de": {Password: "123456", Initials: "BP"},
		"max@mail.de":  {Password: "12345", Initials: "MM"},
	}
}

// ExecutionRecord holds the open and close time of one session.
type ExecutionRecord struct {
	Project string
	Start   time.Time
	End     time.Time
}

// FakeDriver is an in-memory driver whose sessions simulate the login flow of
// the target application: login-icon opens a form with login-email,
// login-password and login-button; valid credentials render user-avatar with
// the account initials. Every session starts from a clean application state.
type FakeDriver struct {
	Accounts map[string]Account
	// Latency delays navigation and form submission, simulating server response time.
	Latency time.Duration
	// AvatarDelay delays the avatar rendering after a successful login.
	AvatarDelay time.Duration
	// LaunchErr makes Launch fail for the named projects.
	LaunchErr map[string]error
	// Engines overrides the browsers reported by Browsers.
	Engines []string

	mu             sync.Mutex
	launches       int
	openSessions   int
	totalSessions  int
	closedBrowsers int
	records        []ExecutionRecord
}

// NewFakeDriver returns a FakeDriver serving DefaultAccounts.
func NewFakeDriver() *FakeDriver {
	return &FakeDriver{Accounts: DefaultAccounts()}
}

func (d *FakeDriver) Name() string { return "fake" }

func (d *FakeDriver) Browsers() []string {
	if d.Engines != nil {
		return d.Engines
	}
	return []string{"chromium", "firefox", "webkit"}
}

func (d *FakeDriver) Launch(ctx context.Context, project config.ProjectProfile, _ driver.Options) (driver.Browser, error) {
	if err, ok := d.LaunchErr[project.Name]; ok {
		return nil, err
	}
	d.mu.Lock()
	d.launches++
	d.mu.Unlock()
	return &fakeBrowser{d: d, project: project.Name}, nil
}

// Launches returns how many browsers were launched.
func (d *FakeDriver) Launches() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.launches
}

// OpenSessions returns how many sessions are currently open.
func (d *FakeDriver) OpenSessions() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.openSessions
}

// TotalSessions returns how many sessions were ever opened.
func (d *FakeDriver) TotalSessions() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.totalSessions
}

// ClosedBrowsers returns how many browsers were closed.
func (d *FakeDriver) ClosedBrowsers() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closedBrowsers
}

// Records returns a copy of the session execution records.
func (d *FakeDriver) Records() []ExecutionRecord {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]ExecutionRecord(nil), d.records...)
}

type fakeBrowser struct {
	d       *FakeDriver
	project string
}

func (b *fakeBrowser) NewSession(ctx context.Context) (driver.Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b.d.mu.Lock()
	b.d.openSessions++
	b.d.totalSessions++
	b.d.mu.Unlock()
	return &FakeSession{d: b.d, project: b.project, opened: time.Now()}, nil
}

func (b *fakeBrowser) Close() error {
	b.d.mu.Lock()
	b.d.closedBrowsers++
	b.d.mu.Unlock()
	return nil
}

// FakeSession is one isolated page of the simulated application.
type FakeSession struct {
	d       *FakeDriver
	project string
	opened  time.Time

	mu       sync.Mutex
	closed   bool
	loaded   bool
	formOpen bool
	email    string
	password string
	user     *Account
	avatarAt time.Time
}

func (s *FakeSession) Navigate(ctx context.Context, rawURL string) error {
	u, err := url.Parse(rawURL)
	if err != nil || !u.IsAbs() {
		return fmt.Errorf("navigate: invalid url %q", rawURL)
	}
	if err := s.check(); err != nil {
		return err
	}
	if err := sleepCtx(ctx, s.d.Latency, "page load"); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loaded = true
	s.formOpen = false
	return nil
}

func (s *FakeSession) Click(ctx context.Context, testID string) error {
	if err := s.check(); err != nil {
		return err
	}
	s.mu.Lock()
	switch {
	case testID == "login-icon" && s.loaded:
		s.formOpen = true
		s.mu.Unlock()
		return nil
	case testID == "login-button" && s.formOpen:
		email, password := s.email, s.password
		s.mu.Unlock()
		return s.submit(ctx, email, password)
	default:
		s.mu.Unlock()
		return waitForElement(ctx, testID)
	}
}

func (s *FakeSession) submit(ctx context.Context, email, password string) error {
	if err := sleepCtx(ctx, s.d.Latency, "login response"); err != nil {
		return err
	}
	acct, ok := s.d.Accounts[email]
	if !ok || acct.Password != password {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = &acct
	s.avatarAt = time.Now().Add(s.d.AvatarDelay)
	s.formOpen = false
	return nil
}

func (s *FakeSession) Fill(ctx context.Context, testID, value string) error {
	if err := s.check(); err != nil {
		return err
	}
	s.mu.Lock()
	if !s.formOpen || (testID != "login-email" && testID != "login-password") {
		s.mu.Unlock()
		return waitForElement(ctx, testID)
	}
	defer s.mu.Unlock()
	if testID == "login-email" {
		s.email = value
	} else {
		s.password = value
	}
	return nil
}

func (s *FakeSession) Text(ctx context.Context, testID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%w: %v", driver.ErrTimeout, err)
	}
	if err := s.check(); err != nil {
		return "", err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	switch {
	case testID == "user-avatar" && s.user != nil && !time.Now().Before(s.avatarAt):
		return "\n  " + s.user.Initials + "\n", nil
	case testID == "login-icon" && s.loaded:
		return "Login", nil
	default:
		return "", driver.ErrNotFound
	}
}

func (s *FakeSession) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	s.mu.Unlock()

	s.d.mu.Lock()
	defer s.d.mu.Unlock()
	s.d.openSessions--
	s.d.records = append(s.d.records, ExecutionRecord{Project: s.project, Start: s.opened, End: time.Now()})
	return nil
}

func (s *FakeSession) check() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return errors.New("session is closed")
	}
	return nil
}

func sleepCtx(ctx context.Context, d time.Duration, what string) error {
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%w: %s: %v", driver.ErrTimeout, what, err)
	}
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("%w: %s: %v", driver.ErrTimeout, what, ctx.Err())
	}
}

// waitForElement blocks like a real engine waiting for an element that never
// becomes actionable.
func waitForElement(ctx context.Context, testID string) error {
	<-ctx.Done()
	return fmt.Errorf("%w: waiting for element %q: %v", driver.ErrTimeout, testID, ctx.Err())
}
