package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/rowanhq/headliner/internal/collector"
	"github.com/rowanhq/headliner/internal/config"
	"github.com/rowanhq/headliner/internal/types"
)

var (
	cfgFile        string
	verbose        bool
	originalPath   string
	integratedPath string
	reportPath     string
	noBrowser      bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "headliner",
		Short: "Headliner — daily news headline collector",
		Long: `Headliner collects the day's headlines from two news homepages,
filters and balances them into a class-even batch, merges the batch into a
cumulative dataset without duplicates, and appends a per-run audit report.

Designed to be run once per day from cron or a systemd timer.`,
	}

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(collectCmd())
	rootCmd.AddCommand(versionCmd())
	rootCmd.AddCommand(configCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// collectCmd creates the "collect" subcommand.
func collectCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "collect",
		Short: "Run one collection cycle",
		Long:  "Fetch both sources, build the day's balanced batch, merge it into the integrated dataset, and append the run report.",
		RunE:  runCollect,
	}

	cmd.Flags().StringVar(&originalPath, "original", "", "path to the original dataset CSV")
	cmd.Flags().StringVar(&integratedPath, "integrated", "", "path to the integrated dataset CSV")
	cmd.Flags().StringVar(&reportPath, "report", "", "path to the run report CSV")
	cmd.Flags().BoolVar(&noBrowser, "no-browser", false, "skip the headless browser even if one is installed")

	return cmd
}

// runCollect executes the collect command.
func runCollect(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	applyCLIOverrides(cfg)

	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := setupLogger(cfg)

	c, err := collector.New(cfg, logger)
	if err != nil {
		return fmt.Errorf("create collector: %w", err)
	}
	defer c.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	start := time.Now()
	report, err := c.Run(ctx)
	if err != nil {
		return fmt.Errorf("collection run: %w", err)
	}

	fmt.Printf("Collection complete in %s\n", time.Since(start).Round(time.Millisecond))
	fmt.Printf("  Date:        %s\n", report.Date)
	fmt.Printf("  Scraped:     %d (%d %s, %d %s)\n",
		report.TotalScraped,
		report.SourceCounts[types.Source(cfg.Sources[0].Name)], cfg.Sources[0].Name,
		report.SourceCounts[types.Source(cfg.Sources[1].Name)], cfg.Sources[1].Name,
	)
	fmt.Printf("  Added:       %d new, %d duplicates skipped\n", report.HeadlinesAdded, report.DuplicatesSkipped)
	fmt.Printf("  Dataset:     %d -> %d records\n", report.SizeBefore, report.SizeAfter)
	return nil
}

// versionCmd creates the "version" subcommand.
func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("headliner %s\n", config.Version)
		},
	}
}

// configCmd creates the "config" subcommand for inspecting configuration.
func configCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			fmt.Printf("Fetcher:\n")
			fmt.Printf("  Request Timeout:  %s\n", cfg.Fetcher.RequestTimeout)
			fmt.Printf("  Max Attempts:     %d\n", cfg.Fetcher.MaxAttempts)
			fmt.Printf("  Retry Delay:      %s\n", cfg.Fetcher.RetryDelay)
			fmt.Printf("  Cooldown:         %s\n", cfg.Fetcher.Cooldown)
			fmt.Printf("\nBrowser:\n")
			fmt.Printf("  Enabled:          %v\n", cfg.Browser.Enabled)
			fmt.Printf("  Max Load More:    %d\n", cfg.Browser.MaxLoadMore)
			fmt.Printf("\nSources:\n")
			for _, src := range cfg.Sources {
				fmt.Printf("  %s: %s (%d rules, paginated: %v)\n",
					src.Name, src.URL, len(src.Rules), src.Paginated)
			}
			fmt.Printf("\nDataset:\n")
			fmt.Printf("  Backend:          %s\n", cfg.Dataset.Backend)
			fmt.Printf("  Original:         %s\n", cfg.Dataset.OriginalPath)
			fmt.Printf("  Integrated:       %s\n", cfg.Dataset.IntegratedPath)
			fmt.Printf("\nReport:\n")
			fmt.Printf("  Path:             %s\n", cfg.Report.Path)
			return nil
		},
	}
}

// setupLogger creates a structured logger from the logging config, with the
// verbose flag forcing debug level.
func setupLogger(cfg *config.Config) *slog.Logger {
	level := slog.LevelInfo
	switch cfg.Logging.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}
	var handler slog.Handler
	if cfg.Logging.Format == "json" {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	} else {
		handler = slog.NewTextHandler(os.Stderr, opts)
	}
	return slog.New(handler)
}

// applyCLIOverrides applies command-line flag values to the config.
func applyCLIOverrides(cfg *config.Config) {
	if originalPath != "" {
		cfg.Dataset.OriginalPath = originalPath
	}
	if integratedPath != "" {
		cfg.Dataset.IntegratedPath = integratedPath
	}
	if reportPath != "" {
		cfg.Report.Path = reportPath
	}
	if noBrowser {
		cfg.Browser.Enabled = false
	}
}
