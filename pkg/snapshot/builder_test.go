package snapshot

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePage replays a canned script result and records the arguments the
// builder passed in.
type fakePage struct {
	result  interface{}
	err     error
	lastArg interface{}
}

func (f *fakePage) Evaluate(expression string, options ...interface{}) (interface{}, error) {
	if len(options) > 0 {
		f.lastArg = options[0]
	}
	return f.result, f.err
}

func fixtureResult(t *testing.T) interface{} {
	t.Helper()
	var result interface{}
	require.NoError(t, json.Unmarshal([]byte(fixtureTree), &result))
	return result
}

func TestBuildDecodesScriptResult(t *testing.T) {
	page := &fakePage{result: fixtureResult(t)}
	builder := NewBuilder(page, nil)

	snap, err := builder.Build(Options{
		HighlightEnabled:  true,
		FocusIndex:        NoFocus,
		ViewportExpansion: 0,
	})
	require.NoError(t, err)

	assert.Equal(t, "https://example.com/", snap.URL)
	assert.Equal(t, "Example", snap.Title)
	assert.Len(t, snap.Indexed(), 2)
}

func TestBuildPassesOptionsToScript(t *testing.T) {
	page := &fakePage{result: fixtureResult(t)}
	builder := NewBuilder(page, nil)

	_, err := builder.Build(Options{
		HighlightEnabled:  false,
		FocusIndex:        3,
		ViewportExpansion: ExpansionUnbounded,
	})
	require.NoError(t, err)

	args, ok := page.lastArg.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, false, args["highlightEnabled"])
	assert.Equal(t, 3, args["focusIndex"])
	assert.Equal(t, ExpansionUnbounded, args["viewportExpansion"])
}

func TestBuildPropagatesScriptError(t *testing.T) {
	page := &fakePage{err: errors.New("execution context destroyed")}
	builder := NewBuilder(page, nil)

	_, err := builder.Build(Options{FocusIndex: NoFocus})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "snapshot script failed")
}

func TestBuildRejectsMissingRoot(t *testing.T) {
	page := &fakePage{result: map[string]interface{}{
		"url":   "about:blank",
		"title": "",
		"root":  nil,
	}}
	builder := NewBuilder(page, nil)

	_, err := builder.Build(Options{FocusIndex: NoFocus})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no tree")
}
