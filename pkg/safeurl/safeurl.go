// Package safeurl classifies URLs as safe or unsafe for clickable surfaces.
//
// A URL is considered safe only if it parses as an absolute URL with an
// http or https scheme. Everything else - javascript:, data:, vbscript:,
// protocol-relative or plain-relative references, and unparsable garbage -
// is unsafe. This is the single gate before any externally supplied URL
// reaches an href.
package safeurl

import (
	"net/url"
	"strings"
)

// Placeholder is substituted for unsafe URLs at render time. The citation
// itself is still shown; only the link target is neutralized.
const Placeholder = "#"

// IsSafe reports whether raw is an absolute http(s) URL.
// It never panics; any parse failure means unsafe.
func IsSafe(raw string) bool {
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	if !u.IsAbs() || u.Host == "" {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	return scheme == "http" || scheme == "https"
}

// Href returns raw if it is safe to use as a link target, otherwise
// Placeholder.
func Href(raw string) string {
	if IsSafe(raw) {
		return raw
	}
	return Placeholder
}
