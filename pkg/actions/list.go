package actions

import (
	"context"
	"fmt"

	"github.com/pagepilot/pagepilot/pkg/snapshot"
)

// ListInteractiveAction rebuilds the snapshot and reports its indexed
// elements together with a full-page screenshot of the repainted overlay.
type ListInteractiveAction struct {
	controller *Controller
}

// NewListInteractiveAction creates the list_interactive action.
func NewListInteractiveAction(c *Controller) *ListInteractiveAction {
	return &ListInteractiveAction{controller: c}
}

// Name returns the action name.
func (a *ListInteractiveAction) Name() string {
	return "list_interactive"
}

// Description returns the action description.
func (a *ListInteractiveAction) Description() string {
	return "Rebuild the page snapshot and list its interactive elements with their highlight indices, plus a full-page screenshot. Takes no payload."
}

// Execute refreshes the snapshot and returns the indexed elements as JSON.
func (a *ListInteractiveAction) Execute(ctx context.Context, payload string) (string, error) {
	if guidance := a.controller.requirePage(); guidance != "" {
		return guidance, nil
	}

	snap, err := a.controller.session.RefreshSnapshot(snapshot.NoFocus)
	if err != nil {
		return fmt.Sprintf("Rebuilding the page snapshot failed: %v. Run navigate to recover.", err), nil
	}

	result := summarizeAll(snap)
	result.Base64Image = a.controller.captureScreenshot()
	result.Message = fmt.Sprintf("%d interactive elements on %s.", len(result.Elements), snap.URL)
	return encodeResult(result)
}
