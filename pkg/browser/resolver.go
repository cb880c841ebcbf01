package browser

import (
	"fmt"
	"strings"

	"github.com/playwright-community/playwright-go"

	"github.com/pagepilot/pagepilot/pkg/snapshot"
)

// Resolve maps a highlight index from the current snapshot to a live
// locator. Resolution walks a tier ladder from the most semantic handle to
// the least: role+name for buttons, text for links, then id, class, their
// combination, and finally the synthetic index attribute the snapshot
// script stamped on the element. The first tier with a match wins and its
// first match is taken; an empty tier falls through to the next.
func (s *Session) Resolve(index int) (playwright.Locator, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return nil, fmt.Errorf("browser not started")
	}
	if s.snapshot == nil {
		return nil, fmt.Errorf("no snapshot: navigate to a page first")
	}

	el, ok := s.snapshot.ByIndex(index)
	if !ok {
		return nil, fmt.Errorf("no element with index %d in the current snapshot", index)
	}

	if el.TagName == "button" {
		if name := el.AggregateText(); name != "" {
			loc := s.page.GetByRole(buttonRole(el), playwright.PageGetByRoleOptions{
				Name: name,
			})
			if locatorMatches(loc) {
				return loc.First(), nil
			}
		}
	}

	if el.TagName == "a" {
		if text := el.AggregateText(); text != "" {
			loc := s.page.GetByText(text)
			if locatorMatches(loc) {
				return loc.First(), nil
			}
		}
	}

	for _, sel := range cssCandidates(el) {
		loc := s.page.Locator(sel)
		if locatorMatches(loc) {
			return loc.First(), nil
		}
	}

	// The synthetic attribute is stamped during the snapshot build, so it
	// uniquely identifies the element as long as the page has not mutated.
	loc := s.page.Locator(indexSelector(index))
	count, err := loc.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve index %d: %w", index, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("element %d is gone: the page changed since the last snapshot", index)
	}
	return loc.First(), nil
}

// buttonRole is the role a button resolves under: an explicit role
// attribute wins over the tag's implicit role.
func buttonRole(el *snapshot.ElementNode) playwright.AriaRole {
	if role := strings.TrimSpace(el.Attributes["role"]); role != "" {
		return playwright.AriaRole(strings.ToLower(role))
	}
	return *playwright.AriaRoleButton
}

func locatorMatches(loc playwright.Locator) bool {
	count, err := loc.Count()
	return err == nil && count > 0
}

// cssCandidates derives the attribute-based selector ladder for an
// element: id alone, class alone, then both combined. Attributes that are
// empty or unsafe to embed in a selector are skipped.
func cssCandidates(el *snapshot.ElementNode) []string {
	var out []string

	id := el.Attributes["id"]
	class := el.Attributes["class"]

	if sel := attrSelector(el.TagName, "id", id); sel != "" {
		out = append(out, sel)
	}
	if sel := attrSelector(el.TagName, "class", class); sel != "" {
		out = append(out, sel)
	}
	if idSel := attrSelector(el.TagName, "id", id); idSel != "" {
		if classPart := attrSelector("", "class", class); classPart != "" {
			out = append(out, idSel+classPart)
		}
	}

	return out
}

// attrSelector builds tag[attr="value"], or "" when the value is empty or
// contains characters that would break out of the quoted selector string.
func attrSelector(tag, attr, value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return ""
	}
	if strings.ContainsAny(value, `"\`) {
		return ""
	}
	return fmt.Sprintf(`%s[%s="%s"]`, tag, attr, value)
}

// indexSelector is the synthetic attribute selector for a highlight index.
func indexSelector(index int) string {
	return fmt.Sprintf(`[%s="%d"]`, snapshot.HighlightAttr, index)
}
