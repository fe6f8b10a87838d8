package redact

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRedact(t *testing.T) {
	r := New()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "bearer token",
			input:    "Authorization: Bearer abc123.def-456",
			expected: "Authorization: [REDACTED]",
		},
		{
			name:     "sentry dsn",
			input:    "dsn https://abcdef0123456789@o123.ingest.sentry.io/456 in config",
			expected: "dsn [REDACTED] in config",
		},
		{
			name:     "long hex secret",
			input:    "key=0123456789abcdef0123456789abcdef done",
			expected: "key=[REDACTED] done",
		},
		{
			name:     "short hex untouched",
			input:    "commit deadbeef looks fine",
			expected: "commit deadbeef looks fine",
		},
		{
			name:     "email keeps domain",
			input:    "reported by jane.doe@example.com yesterday",
			expected: "reported by [REDACTED]@example.com yesterday",
		},
		{
			name:     "plain text untouched",
			input:    "TypeError in app/checkout",
			expected: "TypeError in app/checkout",
		},
		{
			name:     "multiple secrets in one string",
			input:    "Bearer tok1 then mail a@b.io",
			expected: "[REDACTED] then mail [REDACTED]@b.io",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, r.Redact(tt.input))
		})
	}
}
