package actions

import (
	"encoding/json"
	"fmt"

	"github.com/pagepilot/pagepilot/pkg/snapshot"
)

// ElementSummary is the caller-facing view of one indexed element.
type ElementSummary struct {
	Index int    `json:"index"`
	Tag   string `json:"tag"`
	Text  string `json:"text"`
}

// ElementDetail extends the summary with everything inspect reports.
type ElementDetail struct {
	ElementSummary
	Attributes map[string]string `json:"attributes"`
	Outline    string            `json:"outline,omitempty"`
	Visible    bool              `json:"visible"`
	TopElement bool              `json:"topElement"`
}

// ElementsResult wraps a list of indexed elements together with a
// screenshot of the page they were numbered on.
type ElementsResult struct {
	URL         string           `json:"url"`
	Title       string           `json:"title"`
	Elements    []ElementSummary `json:"elements"`
	Base64Image string           `json:"base64Image,omitempty"`
	Message     string           `json:"message,omitempty"`
}

// ElementResult wraps a single inspected element and a screenshot with
// that element's highlight spotlighted.
type ElementResult struct {
	Element     ElementDetail `json:"element"`
	Base64Image string        `json:"base64Image,omitempty"`
}

// ImageResult wraps a captured screenshot.
type ImageResult struct {
	Base64Image string `json:"base64Image"`
}

// MessageResult wraps a plain status message.
type MessageResult struct {
	Message string `json:"message"`
}

func summarize(el *snapshot.ElementNode) ElementSummary {
	return ElementSummary{
		Index: el.HighlightIndex,
		Tag:   el.TagName,
		Text:  el.AggregateText(),
	}
}

func summarizeAll(snap *snapshot.Snapshot) ElementsResult {
	result := ElementsResult{
		URL:      snap.URL,
		Title:    snap.Title,
		Elements: []ElementSummary{},
	}
	for _, el := range snap.Indexed() {
		result.Elements = append(result.Elements, summarize(el))
	}
	return result
}

// encodeResult renders a result type as indented JSON.
func encodeResult(v interface{}) (string, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode result: %w", err)
	}
	return string(data), nil
}
