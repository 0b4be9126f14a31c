package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"hotel-deals/config"
	"hotel-deals/models"
	"hotel-deals/services"
	"hotel-deals/storage"
	"hotel-deals/utils"
)

type searchOptions struct {
	city      string
	budget    string
	csvPath   string
	jsonPath  string
	source    string
	selectors string
	browser   bool
	quiet     bool
}

// applyTo lets explicitly set flags override environment configuration.
func (o searchOptions) applyTo(cmd *cobra.Command, c *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("csv") {
		c.CSVOutputPath = o.csvPath
	}
	if flags.Changed("json") {
		c.JSONOutputPath = o.jsonPath
	}
	if flags.Changed("source") {
		c.Source = o.source
	}
	if flags.Changed("selectors") {
		c.SelectorsPath = o.selectors
	}
	if flags.Changed("browser") {
		c.UseBrowser = o.browser
	}
}

// runSearch drives one fetch → clean → analyze → export pass.
func runSearch(ctx context.Context, cfg *config.Config, o searchOptions, logger *utils.Logger, out io.Writer) error {
	city := strings.TrimSpace(o.city)
	if city == "" {
		return fmt.Errorf("city is required")
	}
	budget, err := services.ParseBudget(o.budget)
	if err != nil {
		return err
	}

	source, err := newSource(cfg, logger)
	if err != nil {
		return err
	}

	logger.Info("=== Hotel deal search: %s | budget %.2f %s | source %s ===",
		city, budget.Amount, budget.Currency, source.Name())

	raw, err := source.Scrape(ctx, city)
	if err != nil {
		return fmt.Errorf("scrape %s: %w", source.Name(), err)
	}

	listings, err := services.NewCleaner(logger).Clean(raw)
	if err != nil {
		return fmt.Errorf("clean listings: %w", err)
	}

	report := services.NewAnalyzer(logger).Analyze(city, listings, budget)
	if report.CurrencyWarning != "" {
		logger.Warn("%s", report.CurrencyWarning)
	}

	if !o.quiet {
		services.NewReporter(out, os.Getenv("NO_COLOR") == "").Print(report)
	}

	exporter := storage.NewExporter(cfg.CSVOutputPath, cfg.JSONOutputPath, logger)
	if err := exporter.Export(report.Listings); err != nil {
		return fmt.Errorf("export: %w", err)
	}

	if cfg.PersistRuns {
		persistRun(ctx, cfg, source.Name(), logger, report)
	}

	logger.Info("Done. CSV → %s | JSON → %s", cfg.CSVOutputPath, cfg.JSONOutputPath)
	return nil
}

// persistRun stores the run when a database is configured. The exported
// files are the primary output, so failures here only warn.
func persistRun(ctx context.Context, cfg *config.Config, source string, logger *utils.Logger, report *models.Report) {
	store, err := openStore(ctx, cfg, logger)
	if err != nil {
		logger.Warn("Run not persisted: %v", err)
		return
	}
	defer store.Close()

	id, err := store.SaveRun(ctx, source, report)
	if err != nil {
		logger.Warn("Run not persisted: %v", err)
		return
	}
	logger.Info("Run #%d stored in PostgreSQL", id)
}

func openStore(ctx context.Context, cfg *config.Config, logger *utils.Logger) (storage.RunStore, error) {
	return storage.NewPostgresStore(ctx, cfg.DSN(), &utils.RetryConfig{
		MaxAttempts: cfg.DBConnectRetries,
		BaseDelay:   500 * time.Millisecond,
		Logger:      logger,
	})
}
