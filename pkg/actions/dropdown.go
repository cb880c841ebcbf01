package actions

import (
	"context"
	"fmt"

	"github.com/playwright-community/playwright-go"
)

// OpenDropdownAction clicks an element to expand it, then rebuilds the
// snapshot with the spotlight on that element so the newly revealed
// options are easy to find in the listing.
type OpenDropdownAction struct {
	controller *Controller
}

// NewOpenDropdownAction creates the open_dropdown action.
func NewOpenDropdownAction(c *Controller) *OpenDropdownAction {
	return &OpenDropdownAction{controller: c}
}

// Name returns the action name.
func (a *OpenDropdownAction) Name() string {
	return "open_dropdown"
}

// Description returns the action description.
func (a *OpenDropdownAction) Description() string {
	return "Open a dropdown or expandable element and list the page afterwards. Payload: the element's highlight index."
}

// Execute opens the dropdown and returns the refreshed element listing so
// the caller can immediately pick an option.
func (a *OpenDropdownAction) Execute(ctx context.Context, payload string) (string, error) {
	if guidance := a.controller.requirePage(); guidance != "" {
		return guidance, nil
	}

	index, ok := parseIndex(payload)
	if !ok {
		return indexGuidance(payload), nil
	}

	loc, err := a.controller.session.Resolve(index)
	if err != nil {
		return fmt.Sprintf("Could not locate element %d: %v. Run list_interactive to refresh the indices.", index, err), nil
	}

	err = loc.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(a.controller.session.ActionTimeoutMs()),
	})
	if err != nil {
		return fmt.Sprintf("Opening element %d failed: %v.", index, err), nil
	}

	a.controller.session.WaitIdle()

	snap, err := a.controller.session.RefreshSnapshot(index)
	if err != nil {
		return fmt.Sprintf("Opened element %d, but rebuilding the page snapshot failed: %v.", index, err), nil
	}

	return encodeResult(summarizeAll(snap))
}
