package snapshot

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixtureTree is a small two-level page: a body holding a heading text, an
// indexed link, an indexed button with a nested label, and an invisible
// input that must stay unindexed.
const fixtureTree = `{
	"url": "https://example.com/",
	"title": "Example",
	"warnings": ["iframe content not accessible: https://ads.example.net/frame"],
	"root": {
		"type": "element",
		"tagName": "body",
		"attributes": {},
		"xpath": "/html/body[1]",
		"isInteractive": false, "isVisible": true, "isTopElement": true,
		"highlightIndex": -1, "hasShadowRoot": false,
		"children": [
			{"type": "text", "text": "Welcome", "isVisible": true},
			{
				"type": "element",
				"tagName": "a",
				"attributes": {"href": "/docs", "title": "Documentation"},
				"xpath": "/html/body[1]/a[1]",
				"isInteractive": true, "isVisible": true, "isTopElement": true,
				"highlightIndex": 0, "hasShadowRoot": false,
				"children": [
					{"type": "text", "text": "Read the docs", "isVisible": true}
				]
			},
			{
				"type": "element",
				"tagName": "button",
				"attributes": {"id": "submit-btn", "class": "btn primary"},
				"xpath": "/html/body[1]/button[1]",
				"isInteractive": true, "isVisible": true, "isTopElement": true,
				"highlightIndex": 1, "hasShadowRoot": false,
				"children": [
					{
						"type": "element",
						"tagName": "span",
						"attributes": {"aria-label": "Send form"},
						"xpath": "/html/body[1]/button[1]/span[1]",
						"isInteractive": false, "isVisible": true, "isTopElement": false,
						"highlightIndex": -1, "hasShadowRoot": false,
						"children": [
							{"type": "text", "text": "Submit", "isVisible": true}
						]
					}
				]
			},
			{
				"type": "element",
				"tagName": "input",
				"attributes": {"type": "text", "placeholder": "hidden field"},
				"xpath": "/html/body[1]/input[1]",
				"isInteractive": true, "isVisible": false, "isTopElement": true,
				"highlightIndex": -1, "hasShadowRoot": false,
				"children": []
			}
		]
	}
}`

func decodeFixture(t *testing.T, data string) *Snapshot {
	t.Helper()
	snap, err := decodeSnapshot([]byte(data), nil)
	require.NoError(t, err)
	return snap
}

func TestDecodeSnapshotTree(t *testing.T) {
	snap := decodeFixture(t, fixtureTree)

	assert.Equal(t, "https://example.com/", snap.URL)
	assert.Equal(t, "Example", snap.Title)
	require.NotNil(t, snap.Root)
	assert.Equal(t, "body", snap.Root.TagName)
	require.Len(t, snap.Root.Children, 4)

	text, ok := snap.Root.Children[0].(*TextNode)
	require.True(t, ok)
	assert.Equal(t, "Welcome", text.Text)
	assert.True(t, text.IsVisible)

	link, ok := snap.Root.Children[1].(*ElementNode)
	require.True(t, ok)
	assert.Equal(t, "a", link.TagName)
	assert.Equal(t, "/docs", link.Attributes["href"])
	assert.Equal(t, 0, link.HighlightIndex)
}

func TestIndexedElementsSatisfyClassification(t *testing.T) {
	snap := decodeFixture(t, fixtureTree)

	snap.Root.Walk(func(n Node) {
		el, ok := n.(*ElementNode)
		if !ok {
			return
		}
		if el.IsIndexed() {
			assert.True(t, el.IsInteractive, "%s carries an index but is not interactive", el.TagName)
			assert.True(t, el.IsVisible, "%s carries an index but is not visible", el.TagName)
			assert.True(t, el.IsTopElement, "%s carries an index but is not the top element", el.TagName)
		}
	})

	// The invisible input stays unindexed even though it is interactive.
	input := snap.Root.Children[3].(*ElementNode)
	assert.True(t, input.IsInteractive)
	assert.False(t, input.IsVisible)
	assert.False(t, input.IsIndexed())
}

func TestSelectorMapLookup(t *testing.T) {
	snap := decodeFixture(t, fixtureTree)

	link, ok := snap.ByIndex(0)
	require.True(t, ok)
	assert.Equal(t, "a", link.TagName)

	button, ok := snap.ByIndex(1)
	require.True(t, ok)
	assert.Equal(t, "button", button.TagName)

	_, ok = snap.ByIndex(7)
	assert.False(t, ok)

	indexed := snap.Indexed()
	require.Len(t, indexed, 2)
	assert.Equal(t, "a", indexed[0].TagName)
	assert.Equal(t, "button", indexed[1].TagName)
}

func TestDuplicateHighlightIndexRejected(t *testing.T) {
	dup := strings.Replace(fixtureTree, `"highlightIndex": 1,`, `"highlightIndex": 0,`, 1)
	_, err := decodeSnapshot([]byte(dup), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate highlight index")
}

func TestAggregateText(t *testing.T) {
	snap := decodeFixture(t, fixtureTree)

	link, _ := snap.ByIndex(0)
	assert.Equal(t, "Documentation Read the docs", link.AggregateText())

	button, _ := snap.ByIndex(1)
	assert.Equal(t, "Send form Submit", button.AggregateText())
}

func TestAggregateTextTruncation(t *testing.T) {
	el := &ElementNode{
		TagName:        "div",
		Attributes:     map[string]string{},
		HighlightIndex: UnindexedHighlight,
		Children: []Node{
			&TextNode{Text: strings.Repeat("x", 2*MaxAggregatedTextLen), IsVisible: true},
		},
	}

	text := el.AggregateText()
	assert.Len(t, text, MaxAggregatedTextLen)
}

func TestAggregateTextSkipsInvisibleText(t *testing.T) {
	el := &ElementNode{
		TagName:        "div",
		Attributes:     map[string]string{},
		HighlightIndex: UnindexedHighlight,
		Children: []Node{
			&TextNode{Text: "shown", IsVisible: true},
			&TextNode{Text: "hidden", IsVisible: false},
		},
	}

	assert.Equal(t, "shown", el.AggregateText())
}

func TestDecodeUnknownNodeType(t *testing.T) {
	_, err := decodeNode(json.RawMessage(`{"type": "comment", "text": "nope"}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown snapshot node type")
}

func TestRebuildIsStructurallyStable(t *testing.T) {
	first := decodeFixture(t, fixtureTree)
	second := decodeFixture(t, fixtureTree)

	var firstShape, secondShape []string
	first.Root.Walk(func(n Node) {
		if el, ok := n.(*ElementNode); ok {
			firstShape = append(firstShape, el.TagName, string(rune('0'+el.HighlightIndex+1)))
		}
	})
	second.Root.Walk(func(n Node) {
		if el, ok := n.(*ElementNode); ok {
			secondShape = append(secondShape, el.TagName, string(rune('0'+el.HighlightIndex+1)))
		}
	})

	assert.Equal(t, firstShape, secondShape)
}
