package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"bare hostname", "example.com", "https://example.com"},
		{"hostname with path", "example.com/docs", "https://example.com/docs"},
		{"https passthrough", "https://example.com", "https://example.com"},
		{"http passthrough", "http://example.com", "http://example.com"},
		{"about page", "about:blank", "about:blank"},
		{"whitespace trimmed", "  example.com  ", "https://example.com"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeURL(tt.input))
		})
	}
}

func TestAllowlistWildcard(t *testing.T) {
	a, err := NewAllowlist([]string{"*"})
	require.NoError(t, err)

	assert.True(t, a.Allows("https://example.com/page"))
	assert.True(t, a.Allows("http://localhost:8080"))
}

func TestAllowlistEmptyAllowsAll(t *testing.T) {
	a, err := NewAllowlist(nil)
	require.NoError(t, err)

	assert.True(t, a.Allows("https://anywhere.example"))
}

func TestAllowlistHostPatterns(t *testing.T) {
	a, err := NewAllowlist([]string{"example.com", "*.example.com", "localhost"})
	require.NoError(t, err)

	assert.True(t, a.Allows("https://example.com/docs"))
	assert.True(t, a.Allows("https://app.example.com"))
	assert.True(t, a.Allows("http://localhost:3000/health"))

	assert.False(t, a.Allows("https://evil.com"))
	assert.False(t, a.Allows("https://example.com.evil.com"))
}

func TestAllowlistRejectsBadInput(t *testing.T) {
	a, err := NewAllowlist([]string{"example.com"})
	require.NoError(t, err)

	assert.False(t, a.Allows("not a url at all \x7f"))
	assert.False(t, a.Allows(""))
}

func TestAllowlistInvalidPattern(t *testing.T) {
	_, err := NewAllowlist([]string{"[unclosed"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid allowed host pattern")
}
