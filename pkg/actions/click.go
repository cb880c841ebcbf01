package actions

import (
	"context"
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/pagepilot/pagepilot/pkg/snapshot"
)

// ClickAction clicks one indexed element, waits for the page to settle,
// and rebuilds the snapshot. The idle wait and rebuild happen whether or
// not the click itself lands: an intercepted click still changes nothing
// the caller can fix without fresh indices. Indices from before the click
// are invalid afterwards.
type ClickAction struct {
	controller *Controller
}

// NewClickAction creates the click action.
func NewClickAction(c *Controller) *ClickAction {
	return &ClickAction{controller: c}
}

// Name returns the action name.
func (a *ClickAction) Name() string {
	return "click"
}

// Description returns the action description.
func (a *ClickAction) Description() string {
	return "Click an element and list the page afterwards. Payload: the element's highlight index. Indices are renumbered afterwards."
}

// Execute clicks and reports the resulting page state with its fresh
// element listing.
func (a *ClickAction) Execute(ctx context.Context, payload string) (string, error) {
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

	// A failed click (covered element, detached node) is logged and
	// swallowed; the settle wait and rebuild below run either way.
	clickErr := loc.Click(playwright.LocatorClickOptions{
		Timeout: playwright.Float(a.controller.session.ActionTimeoutMs()),
	})
	if clickErr != nil && a.controller.logger != nil {
		a.controller.logger.Warnf("click %d: %v", index, clickErr)
	}

	a.controller.session.WaitIdle()

	snap, err := a.controller.session.RefreshSnapshot(snapshot.NoFocus)
	if err != nil {
		return fmt.Sprintf("Clicked element %d, but rebuilding the page snapshot failed: %v. Run navigate or list_interactive to recover.", index, err), nil
	}

	return encodeResult(clickResult(snap, index, clickErr))
}

// clickResult assembles the post-click report: the fresh element listing
// plus a confirmation, or a note that the click did not land.
func clickResult(snap *snapshot.Snapshot, index int, clickErr error) ElementsResult {
	result := summarizeAll(snap)
	if clickErr != nil {
		result.Message = fmt.Sprintf("Click on element %d did not complete (%v). The page was re-listed anyway; the element may be covered.", index, clickErr)
		return result
	}
	result.Message = fmt.Sprintf("Clicked element %d. Now on %s (%q) with %d interactive elements.",
		index, snap.URL, snap.Title, len(result.Elements))
	return result
}
