package browser

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildOutlineKeepsTargetingAttributes(t *testing.T) {
	fragment := `<form id="login" class="auth" style="color:red" onmouseover="track()">
		<input type="email" name="email" placeholder="Email" tabindex="2">
		<button type="submit" data-action="login">Sign in</button>
	</form>`

	outline, err := BuildOutline(fragment, 4096)
	require.NoError(t, err)
	assert.False(t, outline.Truncated)

	assert.Contains(t, outline.HTML, `<form id="login" class="auth">`)
	assert.Contains(t, outline.HTML, `type="email"`)
	assert.Contains(t, outline.HTML, `placeholder="Email"`)
	assert.Contains(t, outline.HTML, `data-action="login"`)
	assert.Contains(t, outline.HTML, "Sign in")

	assert.NotContains(t, outline.HTML, "style=")
	assert.NotContains(t, outline.HTML, "onmouseover")
	assert.NotContains(t, outline.HTML, "tabindex")
}

func TestBuildOutlineDropsNoise(t *testing.T) {
	fragment := `<div id="card"><script>alert(1)</script><style>.x{}</style><p>Visible text</p><svg><path d="M0 0"/></svg></div>`

	outline, err := BuildOutline(fragment, 4096)
	require.NoError(t, err)

	assert.Contains(t, outline.HTML, "Visible text")
	assert.NotContains(t, outline.HTML, "script")
	assert.NotContains(t, outline.HTML, "alert")
	assert.NotContains(t, outline.HTML, "svg")
}

func TestBuildOutlineCollapsesWhitespace(t *testing.T) {
	fragment := "<p>   spread \n\t out   text  </p>"

	outline, err := BuildOutline(fragment, 4096)
	require.NoError(t, err)

	assert.Equal(t, "<p>spread out text</p>", outline.HTML)
}

func TestBuildOutlineTruncates(t *testing.T) {
	fragment := "<div>" + strings.Repeat("abcdefghij ", 100) + "</div>"

	outline, err := BuildOutline(fragment, 120)
	require.NoError(t, err)

	assert.True(t, outline.Truncated)
	assert.Less(t, len(outline.HTML), 200)
}

func TestBuildOutlineVoidElements(t *testing.T) {
	fragment := `<label>Avatar<img alt="face"><br></label>`

	outline, err := BuildOutline(fragment, 4096)
	require.NoError(t, err)

	assert.Contains(t, outline.HTML, `<img alt="face">`)
	assert.NotContains(t, outline.HTML, "</img>")
	assert.NotContains(t, outline.HTML, "</br>")
}
