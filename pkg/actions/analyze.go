package actions

import (
	"context"
	"fmt"
	"strings"
)

// AnalyzeScreenshotAction captures the page and asks the vision model a
// question about it.
type AnalyzeScreenshotAction struct {
	controller *Controller
}

// NewAnalyzeScreenshotAction creates the analyze_screenshot action.
func NewAnalyzeScreenshotAction(c *Controller) *AnalyzeScreenshotAction {
	return &AnalyzeScreenshotAction{controller: c}
}

// Name returns the action name.
func (a *AnalyzeScreenshotAction) Name() string {
	return "analyze_screenshot"
}

// Description returns the action description.
func (a *AnalyzeScreenshotAction) Description() string {
	return "Capture the page and ask a vision model about it. Payload: the question; empty asks for a general description."
}

// Execute captures the page and returns the model's answer.
func (a *AnalyzeScreenshotAction) Execute(ctx context.Context, payload string) (string, error) {
	if guidance := a.controller.requirePage(); guidance != "" {
		return guidance, nil
	}

	client, err := a.controller.visionClient()
	if err != nil {
		return fmt.Sprintf("Screenshot analysis is unavailable: %v.", err), nil
	}

	png, err := a.controller.session.Screenshot()
	if err != nil {
		return fmt.Sprintf("Screenshot failed: %v.", err), nil
	}

	answer, err := client.Analyze(ctx, png, strings.TrimSpace(payload))
	if err != nil {
		return fmt.Sprintf("Screenshot analysis failed: %v.", err), nil
	}

	return encodeResult(MessageResult{Message: answer})
}
