package actions

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/pagepilot/pagepilot/pkg/snapshot"
)

// fillSeparator splits a fill payload into index and text.
const fillSeparator = "||"

var (
	errFillMalformed   = errors.New("malformed fill payload")
	errFillMissingText = errors.New("fill text is missing")
)

// FillAction types text into one indexed input element.
type FillAction struct {
	controller *Controller
}

// NewFillAction creates the fill action.
func NewFillAction(c *Controller) *FillAction {
	return &FillAction{controller: c}
}

// Name returns the action name.
func (a *FillAction) Name() string {
	return "fill"
}

// Description returns the action description.
func (a *FillAction) Description() string {
	return `Fill an input element with text. Payload: "<index>||<text>", e.g. "3||jane@example.com".`
}

// Execute fills the element and rebuilds the snapshot.
func (a *FillAction) Execute(ctx context.Context, payload string) (string, error) {
	if guidance := a.controller.requirePage(); guidance != "" {
		return guidance, nil
	}

	index, text, err := parseFillPayload(payload)
	switch {
	case errors.Is(err, errFillMissingText):
		return `The fill text is missing. Payload "<index>||<text>" needs text after the separator, e.g. "3||jane@example.com".`, nil
	case err != nil:
		return `Expected payload "<index>||<text>", e.g. "3||jane@example.com".`, nil
	}

	loc, err := a.controller.session.Resolve(index)
	if err != nil {
		return fmt.Sprintf("Could not locate element %d: %v. Run list_interactive to refresh the indices.", index, err), nil
	}

	err = loc.Fill(text, playwright.LocatorFillOptions{
		Timeout: playwright.Float(a.controller.session.ActionTimeoutMs()),
	})
	if err != nil {
		return fmt.Sprintf("Fill on element %d failed: %v. The element may not accept text input; run inspect to check it.", index, err), nil
	}

	a.controller.session.WaitIdle()

	snap, err := a.controller.session.RefreshSnapshot(snapshot.NoFocus)
	if err != nil {
		return fmt.Sprintf("Filled element %d, but rebuilding the page snapshot failed: %v.", index, err), nil
	}

	return fmt.Sprintf("Filled element %d with %q. The page now has %d interactive elements.",
		index, text, len(snap.Indexed())), nil
}

// parseFillPayload splits "<index>||<text>". The first separator wins, so
// the text part may itself contain further separators. Empty text is its
// own error: filling a field with nothing is almost always a truncated
// payload, not an intent.
func parseFillPayload(payload string) (int, string, error) {
	head, text, found := strings.Cut(payload, fillSeparator)
	if !found {
		return 0, "", errFillMalformed
	}
	index, ok := parseIndex(head)
	if !ok {
		return 0, "", errFillMalformed
	}
	if text == "" {
		return 0, "", errFillMissingText
	}
	return index, text, nil
}
