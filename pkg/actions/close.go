package actions

import (
	"context"
	"fmt"
)

// CloseAction shuts the browser down.
type CloseAction struct {
	controller *Controller
}

// NewCloseAction creates the close action.
func NewCloseAction(c *Controller) *CloseAction {
	return &CloseAction{controller: c}
}

// Name returns the action name.
func (a *CloseAction) Name() string {
	return "close"
}

// Description returns the action description.
func (a *CloseAction) Description() string {
	return "Close the browser and release its resources. Takes no payload."
}

// Execute closes the session. Closing an unstarted session is guidance,
// not an error.
func (a *CloseAction) Execute(ctx context.Context, payload string) (string, error) {
	if !a.controller.session.Started() {
		return "The browser is not running.", nil
	}

	if err := a.controller.session.Close(); err != nil {
		return fmt.Sprintf("Browser closed with errors: %v.", err), nil
	}

	return "Browser closed.", nil
}
