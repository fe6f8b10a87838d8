package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/issuegaze/issuegaze/internal/output"
	"github.com/issuegaze/issuegaze/internal/redact"
	"github.com/issuegaze/issuegaze/pkg/sentry"
)

var (
	listQuery       string
	listStatsPeriod string
	listEnvironment string
	listProject     string
	listMax         int
	listFormat      string
	listRedact      bool

	getFormat string
	getRedact bool
)

var issuesCmd = &cobra.Command{
	Use:   "issues",
	Short: "Work with issues",
}

var issuesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List issues matching a query",
	Example: `  issuegaze issues list --query "is:unresolved" --max 20
  issuegaze issues list --project checkout --environment production --format json`,
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newIssueService()
		if err != nil {
			return err
		}

		format, err := output.ParseFormat(pickFormat(listFormat))
		if err != nil {
			return err
		}

		max := listMax
		if max <= 0 {
			max = cfg.Defaults.MaxIssues
		}
		statsPeriod := listStatsPeriod
		if statsPeriod == "" {
			statsPeriod = cfg.Defaults.StatsPeriod
		}

		issues, err := svc.ListIssues(cmd.Context(), sentry.IssueQuery{
			Query:       listQuery,
			StatsPeriod: statsPeriod,
			Environment: listEnvironment,
			Project:     listProject,
			Max:         max,
		})
		if err != nil {
			return err
		}

		rendered, err := output.NewFormatter(format).FormatIssues(issues)
		if err != nil {
			return err
		}
		if listRedact {
			rendered = redact.New().Redact(rendered)
		}

		fmt.Fprintln(cmd.OutOrStdout(), rendered)
		return nil
	},
}

var issuesGetCmd = &cobra.Command{
	Use:   "get <issue-id>",
	Short: "Fetch a single issue by ID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		svc, err := newIssueService()
		if err != nil {
			return err
		}

		format, err := output.ParseFormat(pickFormat(getFormat))
		if err != nil {
			return err
		}

		issue, err := svc.GetIssue(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		rendered, err := output.NewFormatter(format).FormatIssue(issue)
		if err != nil {
			return err
		}
		if getRedact {
			rendered = redact.New().Redact(rendered)
		}

		fmt.Fprintln(cmd.OutOrStdout(), rendered)
		return nil
	},
}

// pickFormat applies the configured default when no flag was given.
func pickFormat(flag string) string {
	if flag != "" {
		return flag
	}
	return cfg.Defaults.Format
}

func init() {
	issuesListCmd.Flags().StringVarP(&listQuery, "query", "q", "", "Sentry search query, e.g. \"is:unresolved\"")
	issuesListCmd.Flags().StringVar(&listStatsPeriod, "stats-period", "", "stats window, e.g. 24h or 14d")
	issuesListCmd.Flags().StringVarP(&listEnvironment, "environment", "e", "", "environment filter")
	issuesListCmd.Flags().StringVarP(&listProject, "project", "p", "", "project slug (default: whole organization)")
	issuesListCmd.Flags().IntVarP(&listMax, "max", "m", 0, "maximum issues to fetch (default from config)")
	issuesListCmd.Flags().StringVarP(&listFormat, "format", "f", "", "output format: table or json")
	issuesListCmd.Flags().BoolVar(&listRedact, "redact", false, "redact secret-looking strings from output")

	issuesGetCmd.Flags().StringVarP(&getFormat, "format", "f", "", "output format: table or json")
	issuesGetCmd.Flags().BoolVar(&getRedact, "redact", false, "redact secret-looking strings from output")

	issuesCmd.AddCommand(issuesListCmd)
	issuesCmd.AddCommand(issuesGetCmd)
	rootCmd.AddCommand(issuesCmd)
}
