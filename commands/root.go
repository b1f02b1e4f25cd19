package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"mercari-scraper/config"
	"mercari-scraper/utils"
)

var (
	cfg    *config.Config
	logger *utils.Logger
)

var rootCmd = &cobra.Command{
	Use:   "mercari-scraper",
	Short: "Scrapes marketplace search results and stores new listings.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		logger = utils.NewLoggerTo(os.Stdout, cfg.LogLevel)
	},
	SilenceUsage: true,
}

// ExecuteContext runs the CLI and exits non-zero on failure.
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
