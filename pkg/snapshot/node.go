package snapshot

import (
	"encoding/json"
	"fmt"
	"strings"
)

// MaxAggregatedTextLen caps the aggregated nearby text attached to element
// summaries. Longer text is cut for display use only; the underlying nodes
// keep their full content.
const MaxAggregatedTextLen = 300

// UnindexedHighlight marks an element that did not receive a highlight
// index during the traversal.
const UnindexedHighlight = -1

// Point is one integer page or viewport coordinate.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Box is a bounding box with its four corners, center, and size. All
// values are rounded to integers by the in-page script.
type Box struct {
	TopLeft     Point `json:"topLeft"`
	TopRight    Point `json:"topRight"`
	BottomLeft  Point `json:"bottomLeft"`
	BottomRight Point `json:"bottomRight"`
	Center      Point `json:"center"`
	Width       int   `json:"width"`
	Height      int   `json:"height"`
}

// Viewport carries the main window scroll offsets and size at build time.
type Viewport struct {
	ScrollX int `json:"scrollX"`
	ScrollY int `json:"scrollY"`
	Width   int `json:"width"`
	Height  int `json:"height"`
}

// Node is one entry in the snapshot tree: either *ElementNode or *TextNode.
type Node interface {
	nodeKind() string
}

// ElementNode describes one rendered element, its geometry, and its
// classification. HighlightIndex is UnindexedHighlight unless the element
// was judged interactive, visible, and the top element at its center.
type ElementNode struct {
	TagName    string            `json:"tagName"`
	Attributes map[string]string `json:"attributes"`

	// XPath is diagnostic only; it is never used to re-locate elements.
	XPath string `json:"xpath"`

	Children []Node `json:"-"`

	ViewportBox Box      `json:"viewportBox"`
	PageBox     Box      `json:"pageBox"`
	Viewport    Viewport `json:"viewport"`

	IsInteractive  bool `json:"isInteractive"`
	IsVisible      bool `json:"isVisible"`
	IsTopElement   bool `json:"isTopElement"`
	HighlightIndex int  `json:"highlightIndex"`
	HasShadowRoot  bool `json:"hasShadowRoot"`
}

func (*ElementNode) nodeKind() string { return "element" }

// TextNode is a visible, non-blank run of text. Text nodes contribute to
// aggregated text but never receive a highlight index.
type TextNode struct {
	Text      string `json:"text"`
	IsVisible bool   `json:"isVisible"`
}

func (*TextNode) nodeKind() string { return "text" }

// IsIndexed reports whether the element carries a highlight index.
func (e *ElementNode) IsIndexed() bool {
	return e.HighlightIndex > UnindexedHighlight
}

// Walk visits e and every descendant in pre-order.
func (e *ElementNode) Walk(visit func(Node)) {
	visit(e)
	for _, child := range e.Children {
		switch n := child.(type) {
		case *ElementNode:
			n.Walk(visit)
		default:
			visit(child)
		}
	}
}

// aggregatedAttrs are the attribute values folded into nearby text,
// in the order they are collected from each visited element.
var aggregatedAttrs = []string{"placeholder", "alt", "title", "aria-label", "value"}

// AggregateText collects the element's nearby text: visible text-node
// contents plus labeling attribute values of every visited element,
// pre-order, trimmed, space-joined, and cut to MaxAggregatedTextLen.
func (e *ElementNode) AggregateText() string {
	var parts []string
	e.Walk(func(n Node) {
		switch node := n.(type) {
		case *TextNode:
			if node.IsVisible {
				if t := strings.TrimSpace(node.Text); t != "" {
					parts = append(parts, t)
				}
			}
		case *ElementNode:
			for _, attr := range aggregatedAttrs {
				if v := strings.TrimSpace(node.Attributes[attr]); v != "" {
					parts = append(parts, v)
				}
			}
		}
	})

	text := strings.Join(parts, " ")
	if len(text) > MaxAggregatedTextLen {
		text = text[:MaxAggregatedTextLen]
	}
	return text
}

// Snapshot is one complete structural capture of the rendered page,
// rooted at the document body. It is replaced wholesale by every mutating
// action; highlight indices are only meaningful against the snapshot that
// assigned them.
type Snapshot struct {
	URL   string
	Title string
	Root  *ElementNode

	selectorMap map[int]*ElementNode
}

// New assembles a snapshot over a decoded tree and verifies the
// highlight-index uniqueness invariant.
func New(url, title string, root *ElementNode) (*Snapshot, error) {
	snap := &Snapshot{URL: url, Title: title, Root: root}
	if err := snap.buildSelectorMap(); err != nil {
		return nil, err
	}
	return snap, nil
}

// ByIndex returns the element carrying the given highlight index.
func (s *Snapshot) ByIndex(index int) (*ElementNode, bool) {
	el, ok := s.selectorMap[index]
	return el, ok
}

// Indexed returns all indexed elements in ascending index order.
func (s *Snapshot) Indexed() []*ElementNode {
	out := make([]*ElementNode, 0, len(s.selectorMap))
	for i := 0; i < len(s.selectorMap); i++ {
		if el, ok := s.selectorMap[i]; ok {
			out = append(out, el)
		}
	}
	// Indices are assigned from a single counter starting at zero, so the
	// loop above covers them all; anything else is an invariant breach
	// caught at build time.
	return out
}

// buildSelectorMap indexes the tree and enforces index uniqueness.
func (s *Snapshot) buildSelectorMap() error {
	s.selectorMap = make(map[int]*ElementNode)
	var dup error
	s.Root.Walk(func(n Node) {
		el, ok := n.(*ElementNode)
		if !ok || !el.IsIndexed() {
			return
		}
		if _, exists := s.selectorMap[el.HighlightIndex]; exists && dup == nil {
			dup = fmt.Errorf("duplicate highlight index %d in snapshot", el.HighlightIndex)
			return
		}
		s.selectorMap[el.HighlightIndex] = el
	})
	return dup
}

// rawNode mirrors the JSON the in-page script emits for one tree node.
type rawNode struct {
	Type string `json:"type"`

	// element fields
	TagName        string            `json:"tagName"`
	Attributes     map[string]string `json:"attributes"`
	XPath          string            `json:"xpath"`
	Children       []json.RawMessage `json:"children"`
	ViewportBox    Box               `json:"viewportBox"`
	PageBox        Box               `json:"pageBox"`
	Viewport       Viewport          `json:"viewport"`
	IsInteractive  bool              `json:"isInteractive"`
	IsVisible      bool              `json:"isVisible"`
	IsTopElement   bool              `json:"isTopElement"`
	HighlightIndex *int              `json:"highlightIndex"`
	HasShadowRoot  bool              `json:"hasShadowRoot"`

	// text fields
	Text string `json:"text"`
}

// decodeNode turns one raw script node into an ElementNode or TextNode.
func decodeNode(raw json.RawMessage) (Node, error) {
	var rn rawNode
	if err := json.Unmarshal(raw, &rn); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot node: %w", err)
	}

	switch rn.Type {
	case "text":
		return &TextNode{Text: rn.Text, IsVisible: rn.IsVisible}, nil

	case "element":
		el := &ElementNode{
			TagName:        rn.TagName,
			Attributes:     rn.Attributes,
			XPath:          rn.XPath,
			ViewportBox:    rn.ViewportBox,
			PageBox:        rn.PageBox,
			Viewport:       rn.Viewport,
			IsInteractive:  rn.IsInteractive,
			IsVisible:      rn.IsVisible,
			IsTopElement:   rn.IsTopElement,
			HighlightIndex: UnindexedHighlight,
			HasShadowRoot:  rn.HasShadowRoot,
		}
		if el.Attributes == nil {
			el.Attributes = map[string]string{}
		}
		if rn.HighlightIndex != nil {
			el.HighlightIndex = *rn.HighlightIndex
		}
		for _, rawChild := range rn.Children {
			child, err := decodeNode(rawChild)
			if err != nil {
				return nil, err
			}
			el.Children = append(el.Children, child)
		}
		return el, nil

	default:
		return nil, fmt.Errorf("unknown snapshot node type %q", rn.Type)
	}
}
