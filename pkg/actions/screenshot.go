package actions

import (
	"context"
	"encoding/base64"
	"fmt"
)

// ScreenshotAction captures the full page as a base64 PNG.
type ScreenshotAction struct {
	controller *Controller
}

// NewScreenshotAction creates the screenshot action.
func NewScreenshotAction(c *Controller) *ScreenshotAction {
	return &ScreenshotAction{controller: c}
}

// Name returns the action name.
func (a *ScreenshotAction) Name() string {
	return "screenshot"
}

// Description returns the action description.
func (a *ScreenshotAction) Description() string {
	return "Capture the full page as a base64-encoded PNG. Takes no payload."
}

// Execute captures and encodes the screenshot.
func (a *ScreenshotAction) Execute(ctx context.Context, payload string) (string, error) {
	if guidance := a.controller.requirePage(); guidance != "" {
		return guidance, nil
	}

	png, err := a.controller.session.Screenshot()
	if err != nil {
		return fmt.Sprintf("Screenshot failed: %v.", err), nil
	}

	return encodeResult(ImageResult{
		Base64Image: base64.StdEncoding.EncodeToString(png),
	})
}
