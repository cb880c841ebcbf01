package browser

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Outline is a compact rendering of one element's markup: scripts, styles,
// and presentation noise removed, targeting attributes kept, text trimmed.
// Inspect results embed it so a caller can see an element's structure
// without the full page source.
type Outline struct {
	HTML      string
	Truncated bool
}

// noiseTags are dropped from outlines entirely, subtree included.
var noiseTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"svg":      true,
	"template": true,
}

// keptAttrs are the attributes worth showing in an outline: identity,
// semantics, and the form-control fields a caller acts on.
var keptAttrs = map[string]bool{
	"id":          true,
	"class":       true,
	"role":        true,
	"name":        true,
	"type":        true,
	"href":        true,
	"value":       true,
	"placeholder": true,
	"alt":         true,
	"title":       true,
	"aria-label":  true,
	"disabled":    true,
	"checked":     true,
	"selected":    true,
}

var voidTags = map[string]bool{
	"area": true, "base": true, "br": true, "col": true,
	"embed": true, "hr": true, "img": true, "input": true,
	"link": true, "meta": true, "source": true, "track": true, "wbr": true,
}

// BuildOutline parses a fragment of markup and renders its outline,
// cutting off once maxLength characters have been emitted.
func BuildOutline(fragment string, maxLength int) (*Outline, error) {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return nil, fmt.Errorf("failed to parse element markup: %w", err)
	}

	var b strings.Builder
	var written int
	truncated := outlineNode(doc, &b, &written, maxLength)

	return &Outline{
		HTML:      strings.TrimSpace(b.String()),
		Truncated: truncated,
	}, nil
}

func outlineNode(n *html.Node, b *strings.Builder, written *int, maxLength int) bool {
	if *written >= maxLength {
		return true
	}

	switch n.Type {
	case html.TextNode:
		text := strings.Join(strings.Fields(n.Data), " ")
		if text == "" {
			return false
		}
		if *written+len(text) > maxLength {
			text = text[:maxLength-*written]
			b.WriteString(text)
			*written = maxLength
			return true
		}
		b.WriteString(text)
		*written += len(text)
		return false

	case html.ElementNode:
		tag := strings.ToLower(n.Data)
		if noiseTags[tag] {
			return false
		}
		// html.Parse wraps fragments in html/head/body; pass through.
		if tag == "html" || tag == "head" || tag == "body" {
			return outlineChildren(n, b, written, maxLength)
		}

		b.WriteString("<")
		b.WriteString(tag)
		for _, attr := range n.Attr {
			key := strings.ToLower(attr.Key)
			if keptAttrs[key] || strings.HasPrefix(key, "data-") {
				fmt.Fprintf(b, ` %s="%s"`, key, html.EscapeString(attr.Val))
			}
		}
		b.WriteString(">")
		*written += len(tag) + 2

		truncated := outlineChildren(n, b, written, maxLength)

		if !voidTags[tag] {
			b.WriteString("</")
			b.WriteString(tag)
			b.WriteString(">")
			*written += len(tag) + 3
		}
		return truncated

	case html.CommentNode:
		return false

	default:
		return outlineChildren(n, b, written, maxLength)
	}
}

func outlineChildren(n *html.Node, b *strings.Builder, written *int, maxLength int) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if outlineNode(c, b, written, maxLength) {
			return true
		}
	}
	return false
}
