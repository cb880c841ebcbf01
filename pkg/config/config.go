// Package config loads pagepilot configuration from a YAML file,
// falling back to sensible defaults for every field.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Default values for browser and vision settings.
const (
	DefaultViewportWidth  = 1280
	DefaultViewportHeight = 720

	// DefaultNavigationTimeoutMs of 0 leaves navigation on the engine
	// default, which is effectively unbounded for slow pages.
	DefaultNavigationTimeoutMs = 0

	// DefaultPostActionIdleMs bounds the network-idle wait that follows
	// clicks and dropdown opens. A timeout is logged, never fatal.
	DefaultPostActionIdleMs = 4000

	// DefaultActionTimeoutMs bounds individual element operations
	// (click, fill) once the element is resolved.
	DefaultActionTimeoutMs = 5000

	DefaultVisionModel = "gpt-4o"
)

// Config is the root configuration document.
type Config struct {
	Browser BrowserConfig `yaml:"browser"`
	Vision  VisionConfig  `yaml:"vision"`
}

// BrowserConfig controls the browser engine and the snapshot builder.
type BrowserConfig struct {
	Headless            bool     `yaml:"headless"`
	ViewportWidth       int      `yaml:"viewport_width"`
	ViewportHeight      int      `yaml:"viewport_height"`
	NavigationTimeoutMs float64  `yaml:"navigation_timeout_ms"`
	PostActionIdleMs    float64  `yaml:"post_action_idle_ms"`
	ActionTimeoutMs     float64  `yaml:"action_timeout_ms"`

	// ViewportExpansion widens the top-element viewport check by this many
	// pixels in every direction. -1 disables the check entirely.
	ViewportExpansion int `yaml:"viewport_expansion"`

	// Highlight controls whether snapshots paint the numbered overlay.
	Highlight bool `yaml:"highlight"`

	// AllowedHosts restricts navigation to hosts matching any of these
	// glob patterns. The default "*" allows everything.
	AllowedHosts []string `yaml:"allowed_hosts"`
}

// VisionConfig configures the screenshot-analysis endpoint.
type VisionConfig struct {
	Model   string `yaml:"model"`
	BaseURL string `yaml:"base_url"`
}

// Default returns a Config populated with defaults.
func Default() *Config {
	return &Config{
		Browser: BrowserConfig{
			Headless:            true,
			ViewportWidth:       DefaultViewportWidth,
			ViewportHeight:      DefaultViewportHeight,
			NavigationTimeoutMs: DefaultNavigationTimeoutMs,
			PostActionIdleMs:    DefaultPostActionIdleMs,
			ActionTimeoutMs:     DefaultActionTimeoutMs,
			ViewportExpansion:   0,
			Highlight:           true,
			AllowedHosts:        []string{"*"},
		},
		Vision: VisionConfig{
			Model: DefaultVisionModel,
		},
	}
}

// Load reads configuration from path. A missing file yields defaults;
// a present but malformed file is an error. Fields absent from the file
// keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyFallbacks()
	return cfg, nil
}

// applyFallbacks restores defaults for fields an explicit file zeroed out
// where a zero value is unusable.
func (c *Config) applyFallbacks() {
	if c.Browser.ViewportWidth <= 0 {
		c.Browser.ViewportWidth = DefaultViewportWidth
	}
	if c.Browser.ViewportHeight <= 0 {
		c.Browser.ViewportHeight = DefaultViewportHeight
	}
	if c.Browser.ActionTimeoutMs <= 0 {
		c.Browser.ActionTimeoutMs = DefaultActionTimeoutMs
	}
	if c.Browser.PostActionIdleMs <= 0 {
		c.Browser.PostActionIdleMs = DefaultPostActionIdleMs
	}
	if len(c.Browser.AllowedHosts) == 0 {
		c.Browser.AllowedHosts = []string{"*"}
	}
	if c.Vision.Model == "" {
		c.Vision.Model = DefaultVisionModel
	}
}
