// Package snapshot turns a live rendered page into a structural tree of
// element and text nodes, classifying each element as interactive, visible,
// and unobstructed, and numbering the elements that satisfy all three.
//
// The numbering — highlight indices — is only stable within one snapshot.
// Any mutating action rebuilds the snapshot from scratch and restarts the
// counter at zero, so callers must never carry an index across mutations.
package snapshot

import (
	"encoding/json"
	"fmt"

	"github.com/pagepilot/pagepilot/pkg/logging"
)

// NoFocus disables the single-index spotlight when building a snapshot.
const NoFocus = -1

// ExpansionUnbounded disables the viewport overlap and hit-test checks:
// every interactive, visible element is treated as a top element.
const ExpansionUnbounded = -1

// Evaluator is the one capability the builder needs from its host: run a
// script in the page and return its JSON-serializable result. It is
// satisfied by playwright.Page; a different remote-control protocol can
// supply its own implementation.
type Evaluator interface {
	Evaluate(expression string, options ...interface{}) (interface{}, error)
}

// Options controls one snapshot build.
type Options struct {
	// HighlightEnabled paints the numbered overlay boxes and tags indexed
	// elements with the synthetic highlight attribute.
	HighlightEnabled bool

	// FocusIndex, when >= 0, paints only that index. All indices are still
	// computed and assigned.
	FocusIndex int

	// ViewportExpansion is the pixel margin added around the viewport for
	// the top-element overlap check; ExpansionUnbounded skips the check.
	ViewportExpansion int
}

// Builder computes snapshots for one page.
type Builder struct {
	page   Evaluator
	logger *logging.Logger
}

// NewBuilder creates a builder over the given page evaluator.
func NewBuilder(page Evaluator, logger *logging.Logger) *Builder {
	return &Builder{page: page, logger: logger}
}

// scriptResult mirrors the top-level object the in-page script returns.
type scriptResult struct {
	URL      string          `json:"url"`
	Title    string          `json:"title"`
	Root     json.RawMessage `json:"root"`
	Warnings []string        `json:"warnings"`
}

// Build runs the in-page traversal and decodes the resulting tree. The
// build is synchronous; when highlighting is on, the previous overlay is
// torn down and repainted as a side effect.
func (b *Builder) Build(opts Options) (*Snapshot, error) {
	raw, err := b.page.Evaluate(buildTreeScript, map[string]interface{}{
		"highlightEnabled":  opts.HighlightEnabled,
		"focusIndex":        opts.FocusIndex,
		"viewportExpansion": opts.ViewportExpansion,
	})
	if err != nil {
		return nil, fmt.Errorf("snapshot script failed: %w", err)
	}

	// The engine hands back generic maps; round-trip through JSON to get
	// typed nodes.
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot result: %w", err)
	}

	return decodeSnapshot(data, b.logger)
}

// decodeSnapshot parses the script output into a Snapshot and verifies the
// highlight-index uniqueness invariant.
func decodeSnapshot(data []byte, logger *logging.Logger) (*Snapshot, error) {
	var result scriptResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot result: %w", err)
	}
	if len(result.Root) == 0 || string(result.Root) == "null" {
		return nil, fmt.Errorf("snapshot script returned no tree (document has no body?)")
	}

	for _, warning := range result.Warnings {
		if logger != nil {
			logger.Warnf("snapshot: %s", warning)
		}
	}

	rootNode, err := decodeNode(result.Root)
	if err != nil {
		return nil, err
	}
	root, ok := rootNode.(*ElementNode)
	if !ok {
		return nil, fmt.Errorf("snapshot root is not an element node")
	}

	return New(result.URL, result.Title, root)
}
