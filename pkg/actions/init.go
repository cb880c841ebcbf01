package actions

import (
	"context"
	"fmt"
)

// InitAction launches the browser engine. It is the one action whose
// failure is a real error: without a running engine nothing else can work.
type InitAction struct {
	controller *Controller
}

// NewInitAction creates the init action.
func NewInitAction(c *Controller) *InitAction {
	return &InitAction{controller: c}
}

// Name returns the action name.
func (a *InitAction) Name() string {
	return "init"
}

// Description returns the action description.
func (a *InitAction) Description() string {
	return "Launch the browser engine. Takes no payload. Must run before any other action."
}

// Execute launches the engine. Launching an already-running engine is a
// no-op reported as guidance.
func (a *InitAction) Execute(ctx context.Context, payload string) (string, error) {
	if a.controller.session.Started() {
		return "The browser is already running.", nil
	}

	if err := a.controller.session.Start(); err != nil {
		return "", fmt.Errorf("failed to launch browser: %w", err)
	}

	return "Browser launched. Run the navigate action with a URL to load a page.", nil
}
