package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"hotel-deals/config"
	"hotel-deals/utils"
)

var (
	cfg    *config.Config
	logger *utils.Logger
	opts   searchOptions
)

var rootCmd = &cobra.Command{
	Use:   "hotel-deals",
	Short: "Find hotels under a budget and rank them by value",
	Long: `Scrapes hotel listings for a city, keeps the ones within budget, flags those
below the market average, ranks them by rating per unit of price and exports
the result to CSV and JSON.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.Load()
		logger = utils.NewLogger(utils.ParseLevel(cfg.LogLevel))
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		opts.applyTo(cmd, cfg)
		return runSearch(cmd.Context(), cfg, opts, logger, os.Stdout)
	},
}

func init() {
	f := rootCmd.Flags()
	f.StringVar(&opts.city, "city", "", "city to search (required)")
	f.StringVar(&opts.budget, "budget", "", `maximum nightly price, e.g. "120" or "50 OMR" (required)`)
	f.StringVar(&opts.csvPath, "csv", "", "CSV output path (default $CSV_OUTPUT_PATH or budget_hotels.csv)")
	f.StringVar(&opts.jsonPath, "json", "", "JSON output path (default $JSON_OUTPUT_PATH or budget_hotels.json)")
	f.StringVar(&opts.source, "source", "", "listing source: booking, hotelapi or mock (default $LISTING_SOURCE or booking)")
	f.StringVar(&opts.selectors, "selectors", "", "YAML file overriding the booking CSS selectors")
	f.BoolVar(&opts.browser, "browser", false, "render the results page in headless Chrome")
	f.BoolVar(&opts.quiet, "quiet", false, "skip the results table")
	_ = rootCmd.MarkFlagRequired("city")
	_ = rootCmd.MarkFlagRequired("budget")
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if logger == nil {
			logger = utils.NewLogger(utils.LevelInfo)
		}
		if stage, ok := utils.StageOf(err); ok {
			logger.Error("Run aborted in %s stage: %v", stage, err)
		} else {
			logger.Error("%v", err)
		}
		stop()
		os.Exit(1)
	}
}
