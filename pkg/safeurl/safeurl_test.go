package safeurl

import "testing"

func TestIsSafe(t *testing.T) {
	tests := []struct {
		name string
		url  string
		want bool
	}{
		{"https", "https://example.gov/page", true},
		{"http", "http://example.com", true},
		{"uppercase scheme", "HTTPS://example.gov", true},
		{"query and fragment", "https://example.gov/p?q=1#s2", true},
		{"javascript", "javascript:alert(1)", false},
		{"data", "data:text/html,<script>alert(1)</script>", false},
		{"vbscript", "vbscript:msgbox(1)", false},
		{"file", "file:///etc/passwd", false},
		{"ftp", "ftp://example.com/f", false},
		{"relative path", "/docs/page", false},
		{"protocol relative", "//example.com/page", false},
		{"bare word", "not a url", false},
		{"empty", "", false},
		{"scheme only", "https:", false},
		{"control chars", "http://exa\x00mple.com", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSafe(tt.url); got != tt.want {
				t.Errorf("IsSafe(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}

func TestHref(t *testing.T) {
	if got := Href("https://example.gov/page"); got != "https://example.gov/page" {
		t.Errorf("Href() = %q, want original URL", got)
	}
	if got := Href("javascript:alert(1)"); got != Placeholder {
		t.Errorf("Href() = %q, want %q", got, Placeholder)
	}
}
