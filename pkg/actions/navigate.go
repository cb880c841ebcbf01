package actions

import (
	"context"
	"fmt"
	"strings"
)

// NavigateAction loads a URL and rebuilds the snapshot.
type NavigateAction struct {
	controller *Controller
}

// NewNavigateAction creates the navigate action.
func NewNavigateAction(c *Controller) *NavigateAction {
	return &NavigateAction{controller: c}
}

// Name returns the action name.
func (a *NavigateAction) Name() string {
	return "navigate"
}

// Description returns the action description.
func (a *NavigateAction) Description() string {
	return "Load a URL. Payload: the URL; bare hostnames get an https:// prefix."
}

// Execute navigates and reports the loaded page with its interactive
// element count. Navigation problems come back as guidance so the caller
// can try a different URL.
func (a *NavigateAction) Execute(ctx context.Context, payload string) (string, error) {
	if !a.controller.session.Started() {
		return guidanceNotStarted, nil
	}

	url := strings.TrimSpace(payload)
	if url == "" {
		return "Expected a URL as the payload, e.g. example.com or https://example.com/docs.", nil
	}

	if err := a.controller.session.Navigate(url); err != nil {
		return fmt.Sprintf("Navigation failed: %v. Check the URL and try again.", err), nil
	}

	snap := a.controller.session.Current()
	return fmt.Sprintf("Loaded %s (%q) with %d interactive elements. Run list_interactive to see them.",
		snap.URL, snap.Title, len(snap.Indexed())), nil
}
