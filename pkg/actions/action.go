// Package actions exposes the fixed surface a caller drives the browser
// through. Every action takes one string payload and returns one string
// result. Precondition problems (browser not running, no page loaded, bad
// payload) come back as guidance text in the result, not as errors; the
// error return is reserved for engine failures the caller cannot fix by
// issuing a different action.
package actions

import (
	"context"
	"encoding/base64"
	"strconv"
	"strings"

	"github.com/pagepilot/pagepilot/pkg/browser"
	"github.com/pagepilot/pagepilot/pkg/config"
	"github.com/pagepilot/pagepilot/pkg/logging"
	"github.com/pagepilot/pagepilot/pkg/vision"
)

// Action is one operation on the controlled browser.
type Action interface {
	// Name is the identifier an action is dispatched by.
	Name() string

	// Description explains the action and its payload format.
	Description() string

	// Execute runs the action. The payload format is action-specific and
	// documented in Description.
	Execute(ctx context.Context, payload string) (string, error)
}

// Controller bundles the shared state every action operates on: the
// browser session, the vision client, and configuration.
type Controller struct {
	cfg     *config.Config
	logger  *logging.Logger
	session *browser.Session
	vision  *vision.Client
}

// NewController wires a controller around an unstarted session.
func NewController(cfg *config.Config, logger *logging.Logger) (*Controller, error) {
	session, err := browser.NewSession(cfg.Browser, logger)
	if err != nil {
		return nil, err
	}
	return &Controller{
		cfg:     cfg,
		logger:  logger,
		session: session,
	}, nil
}

// Session returns the controlled browser session.
func (c *Controller) Session() *browser.Session {
	return c.session
}

// visionClient lazily builds the vision client so that a missing API key
// only surfaces when a caller actually asks for screenshot analysis.
func (c *Controller) visionClient() (*vision.Client, error) {
	if c.vision != nil {
		return c.vision, nil
	}
	client, err := vision.NewClient("",
		vision.WithModel(c.cfg.Vision.Model),
		vision.WithBaseURL(c.cfg.Vision.BaseURL),
	)
	if err != nil {
		return nil, err
	}
	c.vision = client
	return client, nil
}

// Guidance strings for the common preconditions. They tell the caller
// which action unblocks them.
const (
	guidanceNotStarted = "The browser is not running. Run the init action first."
	guidanceNoPage     = "No page is loaded. Run the navigate action with a URL first."
)

// captureScreenshot returns the page as a base64 PNG, or "" when the
// capture fails. Capture failures on a result path are logged and never
// fail the action that asked for them.
func (c *Controller) captureScreenshot() string {
	png, err := c.session.Screenshot()
	if err != nil {
		if c.logger != nil {
			c.logger.Warnf("screenshot: %v", err)
		}
		return ""
	}
	return base64.StdEncoding.EncodeToString(png)
}

// requirePage checks the started-and-navigated precondition shared by all
// element actions. It returns a guidance string when unmet, "" when met.
func (c *Controller) requirePage() string {
	if !c.session.Started() {
		return guidanceNotStarted
	}
	if c.session.Current() == nil {
		return guidanceNoPage
	}
	return ""
}

// parseIndex reads a highlight index from an action payload.
func parseIndex(payload string) (int, bool) {
	index, err := strconv.Atoi(strings.TrimSpace(payload))
	if err != nil || index < 0 {
		return 0, false
	}
	return index, true
}

func indexGuidance(payload string) string {
	return "Expected a highlight index as the payload, got " + strconv.Quote(payload) +
		". Run list_interactive to see the current indices."
}
