// Package browser owns the Playwright engine lifecycle for one controlled
// page and keeps the page's current snapshot. All element interaction goes
// through highlight indices resolved against that snapshot.
package browser

import (
	"fmt"
	"io"
	"sync"

	"github.com/playwright-community/playwright-go"

	"github.com/pagepilot/pagepilot/pkg/config"
	"github.com/pagepilot/pagepilot/pkg/logging"
	"github.com/pagepilot/pagepilot/pkg/snapshot"
)

// Session is one launched browser with a single page under control.
// Methods are serialized by an internal mutex; callers issue one action at
// a time and each mutating action replaces the session's snapshot.
type Session struct {
	mu sync.Mutex

	cfg       config.BrowserConfig
	logger    *logging.Logger
	allowlist *Allowlist

	pw      *playwright.Playwright
	browser playwright.Browser
	context playwright.BrowserContext
	page    playwright.Page

	snapshot *snapshot.Snapshot
	started  bool
}

// NewSession creates an unstarted session. Start launches the engine.
func NewSession(cfg config.BrowserConfig, logger *logging.Logger) (*Session, error) {
	allowlist, err := NewAllowlist(cfg.AllowedHosts)
	if err != nil {
		return nil, err
	}
	return &Session{
		cfg:       cfg,
		logger:    logger,
		allowlist: allowlist,
	}, nil
}

// Started reports whether the browser engine has been launched.
func (s *Session) Started() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started
}

// Start installs the browser driver if needed, launches Chromium, and opens
// the controlled page. Calling Start on a started session is a no-op.
func (s *Session) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Driver output is discarded so it cannot interleave with the
	// controller's own stdout protocol.
	runOpts := &playwright.RunOptions{
		Verbose: false,
		Stdout:  io.Discard,
		Stderr:  io.Discard,
	}

	if err := playwright.Install(runOpts); err != nil {
		return fmt.Errorf("failed to install playwright: %w", err)
	}

	pw, err := playwright.Run(runOpts)
	if err != nil {
		return fmt.Errorf("failed to start playwright: %w", err)
	}

	browser, err := pw.Chromium.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(s.cfg.Headless),
	})
	if err != nil {
		pw.Stop()
		return fmt.Errorf("failed to launch browser: %w", err)
	}

	context, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{
			Width:  s.cfg.ViewportWidth,
			Height: s.cfg.ViewportHeight,
		},
	})
	if err != nil {
		browser.Close()
		pw.Stop()
		return fmt.Errorf("failed to create browser context: %w", err)
	}

	page, err := context.NewPage()
	if err != nil {
		context.Close()
		browser.Close()
		pw.Stop()
		return fmt.Errorf("failed to create page: %w", err)
	}

	page.SetDefaultTimeout(s.cfg.ActionTimeoutMs)

	s.pw = pw
	s.browser = browser
	s.context = context
	s.page = page
	s.started = true

	if s.logger != nil {
		s.logger.Infof("browser started (headless=%v viewport=%dx%d)",
			s.cfg.Headless, s.cfg.ViewportWidth, s.cfg.ViewportHeight)
	}
	return nil
}

// Close tears down the page, context, browser, and engine. Errors during
// teardown are logged and swallowed so cleanup always completes.
func (s *Session) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil
	}

	if err := s.page.Close(); err != nil && s.logger != nil {
		s.logger.Warnf("page close failed: %v", err)
	}
	if err := s.context.Close(); err != nil && s.logger != nil {
		s.logger.Warnf("context close failed: %v", err)
	}
	if err := s.browser.Close(); err != nil && s.logger != nil {
		s.logger.Warnf("browser close failed: %v", err)
	}
	if err := s.pw.Stop(); err != nil && s.logger != nil {
		s.logger.Warnf("engine stop failed: %v", err)
	}

	s.pw = nil
	s.browser = nil
	s.context = nil
	s.page = nil
	s.snapshot = nil
	s.started = false

	if s.logger != nil {
		s.logger.Infof("browser closed")
	}
	return nil
}

// Page returns the controlled page. Nil before Start.
func (s *Session) Page() playwright.Page {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.page
}

// Current returns the snapshot from the last build, or nil if the session
// has not navigated yet.
func (s *Session) Current() *snapshot.Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot
}

// Navigate loads url in the controlled page and rebuilds the snapshot.
// Bare hostnames get an https:// prefix; hosts outside the allowlist are
// rejected before any network traffic.
func (s *Session) Navigate(url string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return fmt.Errorf("browser not started")
	}

	target := NormalizeURL(url)
	if !s.allowlist.Allows(target) {
		return fmt.Errorf("navigation to %q blocked: host not in allowed_hosts %v", target, s.allowlist.Patterns())
	}

	gotoOpts := playwright.PageGotoOptions{
		WaitUntil: playwright.WaitUntilStateNetworkidle,
	}
	if s.cfg.NavigationTimeoutMs > 0 {
		gotoOpts.Timeout = playwright.Float(s.cfg.NavigationTimeoutMs)
	}

	if _, err := s.page.Goto(target, gotoOpts); err != nil {
		return fmt.Errorf("navigation failed: %w", err)
	}

	if s.logger != nil {
		s.logger.Infof("navigated to %s", s.page.URL())
	}
	return s.refreshLocked(snapshot.NoFocus)
}

// RefreshSnapshot rebuilds the snapshot of the current page. Pass
// snapshot.NoFocus to paint all highlights, or an index to spotlight one.
func (s *Session) RefreshSnapshot(focusIndex int) (*snapshot.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil, fmt.Errorf("browser not started")
	}
	if err := s.refreshLocked(focusIndex); err != nil {
		return nil, err
	}
	return s.snapshot, nil
}

func (s *Session) refreshLocked(focusIndex int) error {
	builder := snapshot.NewBuilder(s.page, s.logger)
	snap, err := builder.Build(snapshot.Options{
		HighlightEnabled:  s.cfg.Highlight,
		FocusIndex:        focusIndex,
		ViewportExpansion: s.cfg.ViewportExpansion,
	})
	if err != nil {
		return err
	}
	s.snapshot = snap
	return nil
}

// WaitIdle waits for the network to go idle after a mutating action, up to
// the configured bound. A timeout is logged and swallowed: pages with
// long-polling connections never reach idle and that must not fail actions.
func (s *Session) WaitIdle() {
	s.mu.Lock()
	page := s.page
	idleMs := s.cfg.PostActionIdleMs
	s.mu.Unlock()

	if page == nil {
		return
	}

	err := page.WaitForLoadState(playwright.PageWaitForLoadStateOptions{
		State:   playwright.LoadStateNetworkidle,
		Timeout: playwright.Float(idleMs),
	})
	if err != nil && s.logger != nil {
		s.logger.Warnf("post-action idle wait: %v", err)
	}
}

// Screenshot captures the full page as PNG bytes.
func (s *Session) Screenshot() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil, fmt.Errorf("browser not started")
	}

	data, err := s.page.Screenshot(playwright.PageScreenshotOptions{
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		return nil, fmt.Errorf("screenshot failed: %w", err)
	}
	return data, nil
}

// URL returns the page's current URL, or "" before the first navigation.
func (s *Session) URL() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.page == nil {
		return ""
	}
	return s.page.URL()
}

// Title returns the page's current title.
func (s *Session) Title() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.page == nil {
		return ""
	}
	title, err := s.page.Title()
	if err != nil {
		return ""
	}
	return title
}

// ActionTimeoutMs returns the per-element operation timeout.
func (s *Session) ActionTimeoutMs() float64 {
	return s.cfg.ActionTimeoutMs
}
