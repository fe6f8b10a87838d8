// Package output renders issues for humans (table) or machines (json).
package output

import (
	"fmt"
	"strings"

	"github.com/issuegaze/issuegaze/pkg/sentry"
)

// Format represents an output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
)

// Formatter renders issue results.
type Formatter interface {
	FormatIssues(issues []sentry.Issue) (string, error)
	FormatIssue(issue *sentry.Issue) (string, error)
}

// ParseFormat validates and normalizes a format string. Empty means table.
func ParseFormat(value string) (Format, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	switch normalized {
	case "", string(FormatTable):
		return FormatTable, nil
	case string(FormatJSON):
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported output format: %s", value)
	}
}

// NewFormatter returns a formatter for the requested format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: true}
	default:
		return &TableFormatter{}
	}
}
