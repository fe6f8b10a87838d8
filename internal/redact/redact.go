// Package redact strips likely secrets from rendered output before it
// reaches a terminal or a log file. It is a pure text transformation; the
// API layer never sees it.
package redact

import (
	"regexp"
)

const placeholder = "[REDACTED]"

var (
	// Bearer credentials in header-like text.
	bearerPattern = regexp.MustCompile(`(?i)bearer\s+[A-Za-z0-9._\-]+`)

	// Sentry DSNs embed the public key in the userinfo part.
	dsnPattern = regexp.MustCompile(`https?://[a-f0-9]+@[A-Za-z0-9.\-]+/\d+`)

	// Long hex blobs are almost always keys or tokens.
	hexPattern = regexp.MustCompile(`\b[a-f0-9]{32,}\b`)

	// Emails keep their domain so the output stays debuggable.
	emailPattern = regexp.MustCompile(`[A-Za-z0-9._%+\-]+@([A-Za-z0-9.\-]+\.[A-Za-z]{2,})`)
)

// Redactor replaces secret-looking substrings with a placeholder.
// The zero value is not usable; call New.
type Redactor struct {
	patterns []*regexp.Regexp
}

// New returns a Redactor with the default pattern set.
func New() *Redactor {
	return &Redactor{
		patterns: []*regexp.Regexp{bearerPattern, dsnPattern, hexPattern},
	}
}

// Redact returns s with all secret-looking substrings replaced.
func (r *Redactor) Redact(s string) string {
	for _, pattern := range r.patterns {
		s = pattern.ReplaceAllString(s, placeholder)
	}
	return emailPattern.ReplaceAllString(s, placeholder+"@$1")
}
