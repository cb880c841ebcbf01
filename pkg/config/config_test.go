package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.True(t, cfg.Browser.Headless)
	assert.Equal(t, DefaultViewportWidth, cfg.Browser.ViewportWidth)
	assert.Equal(t, DefaultViewportHeight, cfg.Browser.ViewportHeight)
	assert.Equal(t, 0, cfg.Browser.ViewportExpansion)
	assert.True(t, cfg.Browser.Highlight)
	assert.Equal(t, []string{"*"}, cfg.Browser.AllowedHosts)
	assert.Equal(t, DefaultVisionModel, cfg.Vision.Model)
}

func TestLoadOverridesFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
browser:
  headless: false
  viewport_width: 1920
  viewport_height: 1080
  viewport_expansion: -1
  allowed_hosts: ["*.example.com", "localhost"]
vision:
  model: gpt-4o-mini
  base_url: http://localhost:8080/v1
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, 1920, cfg.Browser.ViewportWidth)
	assert.Equal(t, 1080, cfg.Browser.ViewportHeight)
	assert.Equal(t, -1, cfg.Browser.ViewportExpansion)
	assert.Equal(t, []string{"*.example.com", "localhost"}, cfg.Browser.AllowedHosts)
	assert.Equal(t, "gpt-4o-mini", cfg.Vision.Model)
	assert.Equal(t, "http://localhost:8080/v1", cfg.Vision.BaseURL)
}

func TestLoadMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("browser: [not, a, map"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("browser:\n  headless: false\n"), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.Browser.Headless)
	assert.Equal(t, DefaultViewportWidth, cfg.Browser.ViewportWidth)
	assert.Equal(t, float64(DefaultActionTimeoutMs), cfg.Browser.ActionTimeoutMs)
	assert.Equal(t, []string{"*"}, cfg.Browser.AllowedHosts)
}
