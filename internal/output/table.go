package output

import (
	"fmt"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/issuegaze/issuegaze/pkg/sentry"
)

// maxTitleWidth keeps issue titles from blowing up row width.
const maxTitleWidth = 60

// TableFormatter renders issues as an ASCII table.
type TableFormatter struct{}

// FormatIssues renders a listing as a table with a count footer.
func (f *TableFormatter) FormatIssues(issues []sentry.Issue) (string, error) {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendHeader(table.Row{"Short ID", "Title", "Level", "Status", "Events", "Users", "Last Seen"})

	for _, issue := range issues {
		t.AppendRow(table.Row{
			issue.ShortID,
			truncate(issue.Title, maxTitleWidth),
			issue.Level,
			issue.Status,
			issue.Count,
			issue.UserCount,
			formatSeen(issue.LastSeen),
		})
	}

	t.AppendFooter(table.Row{"", fmt.Sprintf("%d issue(s)", len(issues)), "", "", "", "", ""})

	return t.Render(), nil
}

// FormatIssue renders one issue as a field/value table.
func (f *TableFormatter) FormatIssue(issue *sentry.Issue) (string, error) {
	if issue == nil {
		return "", nil
	}

	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.AppendRows([]table.Row{
		{"Short ID", issue.ShortID},
		{"Title", issue.Title},
		{"Culprit", issue.Culprit},
		{"Level", issue.Level},
		{"Status", issue.Status},
		{"Events", issue.Count},
		{"Users", issue.UserCount},
		{"Project", issue.Project.Slug},
		{"First Seen", formatSeen(issue.FirstSeen)},
		{"Last Seen", formatSeen(issue.LastSeen)},
		{"Permalink", issue.Permalink},
	})

	return t.Render(), nil
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max-1]) + "…"
}

func formatSeen(ts time.Time) string {
	if ts.IsZero() {
		return "-"
	}
	return ts.UTC().Format("2006-01-02 15:04")
}
