// Package cmd wires the issuegaze CLI commands.
package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/issuegaze/issuegaze/internal/config"
	"github.com/issuegaze/issuegaze/pkg/client"
	"github.com/issuegaze/issuegaze/pkg/logging"
	"github.com/issuegaze/issuegaze/pkg/metrics"
	"github.com/issuegaze/issuegaze/pkg/sentry"
)

var (
	cfgFile     string
	verbose     bool
	showMetrics bool

	cfg    *config.Config
	logger zerolog.Logger

	// Version info set by the main package.
	versionInfo struct {
		Version   string
		Commit    string
		BuildDate string
	}
)

// SetVersionInfo is called by the main package before Execute.
func SetVersionInfo(version, commit, buildDate string) {
	versionInfo.Version = version
	versionInfo.Commit = commit
	versionInfo.BuildDate = buildDate
}

var rootCmd = &cobra.Command{
	Use:   "issuegaze",
	Short: "Query and render Sentry issues from the command line",
	Long: `issuegaze lists and fetches issues from a Sentry-compatible API.

It paginates transparently, waits out the server's rate limit quota,
and renders results as tables or JSON.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		logCfg := logging.DefaultConfig()
		if verbose {
			logCfg.Level = logging.LevelDebug
		}
		logger = logging.Setup(logCfg)

		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return err
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if showMetrics {
			if err := metrics.Dump(logging.NewLogger("metrics")); err != nil {
				logger.Warn().Err(err).Msg("Failed to dump metrics")
			}
		}
	},
}

// Execute runs the CLI. Errors are returned to main for exit-code handling;
// no command exits the process itself.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/issuegaze/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (sets log level to debug)")
	rootCmd.PersistentFlags().BoolVar(&showMetrics, "show-metrics", false, "dump request metrics at debug level after the command")
}

// newIssueService builds the API client and issue service from the loaded
// configuration. One service per invocation: every request of the run shares
// the same quota accounting.
func newIssueService() (*sentry.Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	apiClient, err := client.New(client.Config{
		BaseURL:           cfg.BaseURL,
		Token:             cfg.Token,
		UserAgent:         fmt.Sprintf("issuegaze/%s", versionInfo.Version),
		Timeout:           cfg.Timeout,
		RequestsPerSecond: cfg.RequestsPerSecond,
	}, logging.NewLogger("client"))
	if err != nil {
		return nil, err
	}

	return sentry.NewService(apiClient, cfg.Organization)
}
