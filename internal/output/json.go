package output

import (
	"encoding/json"

	"github.com/issuegaze/issuegaze/pkg/sentry"
)

// JSONFormatter renders issues as JSON for scripting.
type JSONFormatter struct {
	Indent bool
}

// FormatIssues renders a listing as a JSON array.
func (f *JSONFormatter) FormatIssues(issues []sentry.Issue) (string, error) {
	if issues == nil {
		issues = []sentry.Issue{}
	}
	return f.marshal(issues)
}

// FormatIssue renders one issue as a JSON object.
func (f *JSONFormatter) FormatIssue(issue *sentry.Issue) (string, error) {
	return f.marshal(issue)
}

func (f *JSONFormatter) marshal(v any) (string, error) {
	var (
		data []byte
		err  error
	)
	if f.Indent {
		data, err = json.MarshalIndent(v, "", "  ")
	} else {
		data, err = json.Marshal(v)
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}
