package browser

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/gobwas/glob"
)

// Allowlist restricts navigation targets by hostname. Patterns are glob
// expressions matched against the URL host, so "*.example.com" covers every
// subdomain and "*" covers everything.
type Allowlist struct {
	patterns []glob.Glob
	raw      []string
}

// NewAllowlist compiles the given host patterns. An empty pattern list
// allows every host.
func NewAllowlist(patterns []string) (*Allowlist, error) {
	a := &Allowlist{raw: patterns}
	for _, p := range patterns {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid allowed host pattern %q: %w", p, err)
		}
		a.patterns = append(a.patterns, g)
	}
	return a, nil
}

// Allows reports whether navigation to rawURL is permitted. Unparseable
// URLs are rejected; the navigation itself will produce the real error.
func (a *Allowlist) Allows(rawURL string) bool {
	if len(a.patterns) == 0 {
		return true
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := u.Hostname()
	if host == "" {
		return false
	}

	for _, g := range a.patterns {
		if g.Match(host) {
			return true
		}
	}
	return false
}

// Patterns returns the raw patterns the allowlist was built from.
func (a *Allowlist) Patterns() []string {
	return a.raw
}

// NormalizeURL prefixes bare hostnames with https://. URLs that already
// carry a scheme pass through untouched.
func NormalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return raw
	}
	if strings.Contains(raw, "://") || strings.HasPrefix(raw, "about:") {
		return raw
	}
	return "https://" + raw
}
