package actions

import (
	"context"
	"fmt"

	"github.com/pagepilot/pagepilot/pkg/browser"
)

// maxOutlineLen caps the markup outline embedded in inspect results.
const maxOutlineLen = 4096

// InspectAction reports one indexed element in detail: attributes, text,
// a cleaned outline of its markup, and a screenshot with only that
// element's highlight painted.
type InspectAction struct {
	controller *Controller
}

// NewInspectAction creates the inspect action.
func NewInspectAction(c *Controller) *InspectAction {
	return &InspectAction{controller: c}
}

// Name returns the action name.
func (a *InspectAction) Name() string {
	return "inspect"
}

// Description returns the action description.
func (a *InspectAction) Description() string {
	return "Show one element in detail: attributes, text, a cleaned markup outline, and a screenshot spotlighting it. Payload: the element's highlight index."
}

// Execute rebuilds the snapshot with the spotlight on the requested index
// and reports that element. The outline and screenshot are best effort:
// when the live element cannot be reached anymore the structural data
// still comes back.
func (a *InspectAction) Execute(ctx context.Context, payload string) (string, error) {
	if guidance := a.controller.requirePage(); guidance != "" {
		return guidance, nil
	}

	index, ok := parseIndex(payload)
	if !ok {
		return indexGuidance(payload), nil
	}

	if _, ok := a.controller.session.Current().ByIndex(index); !ok {
		return fmt.Sprintf("No element with index %d. Run list_interactive to see the current indices.", index), nil
	}

	// Repaint with only this index highlighted so the screenshot points
	// at exactly one element.
	snap, err := a.controller.session.RefreshSnapshot(index)
	if err != nil {
		return fmt.Sprintf("Rebuilding the page snapshot failed: %v. Run navigate to recover.", err), nil
	}

	el, ok := snap.ByIndex(index)
	if !ok {
		return fmt.Sprintf("Element %d disappeared while inspecting: the page changed. Run list_interactive for fresh indices.", index), nil
	}

	detail := ElementDetail{
		ElementSummary: summarize(el),
		Attributes:     el.Attributes,
		Visible:        el.IsVisible,
		TopElement:     el.IsTopElement,
	}

	if markup := a.fetchMarkup(index); markup != "" {
		if outline, err := browser.BuildOutline(markup, maxOutlineLen); err == nil {
			detail.Outline = outline.HTML
		}
	}

	return encodeResult(ElementResult{
		Element:     detail,
		Base64Image: a.controller.captureScreenshot(),
	})
}

// fetchMarkup pulls the element's live outer markup, or "" when the
// element is no longer reachable.
func (a *InspectAction) fetchMarkup(index int) string {
	loc, err := a.controller.session.Resolve(index)
	if err != nil {
		if a.controller.logger != nil {
			a.controller.logger.Warnf("inspect: could not resolve element %d: %v", index, err)
		}
		return ""
	}

	raw, err := loc.Evaluate("el => el.outerHTML", nil)
	if err != nil {
		if a.controller.logger != nil {
			a.controller.logger.Warnf("inspect: could not read markup of element %d: %v", index, err)
		}
		return ""
	}

	markup, _ := raw.(string)
	return markup
}
