package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"cineprofile/internal/allocine"
	"cineprofile/internal/config"
	"cineprofile/internal/export"
	"cineprofile/internal/formatter"
	"cineprofile/internal/logger"
	"cineprofile/internal/metrics"
	"cineprofile/internal/scraper"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	cfg := config.Load()

	var rootCmd = &cobra.Command{
		Use:     "cineprofile [PROFILE_URL]",
		Short:   "Export an AlloCiné member profile to CSV",
		Version: version,
		Long: `cineprofile drives a headless browser through an AlloCiné member profile
and exports its rated films merged with the member's reviews, and the
wishlist. In details mode each rated film is enriched with its duration
and directors instead.`,
		Example: `  # Export films, reviews and wishlist to the current directory
  cineprofile https://www.allocine.fr/membre-Z20180119114521137438296/films/

  # Prompt for the profile URL
  cineprofile

  # Enrich rated films with duration and directors, as JSON
  cineprofile -m details -f json -o out https://www.allocine.fr/membre-Z20180119114521137438296/films/

  # Show the browser and print a crawl summary
  cineprofile --showui --summary https://www.allocine.fr/membre-Z20180119114521137438296/films/`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd, args, cfg)
		},
		SilenceUsage: true,
	}

	showUI := !cfg.Headless
	rootCmd.Flags().StringVarP(&cfg.Mode, "mode", "m", cfg.Mode, "Run mode (profile, details)")
	rootCmd.Flags().StringVarP(&cfg.OutputDir, "output-dir", "o", cfg.OutputDir, "Directory the export files are written to")
	rootCmd.Flags().StringVarP(&cfg.Format, "format", "f", cfg.Format, "Output format (csv, json, markdown, html)")
	rootCmd.Flags().IntVar(&cfg.MaxPages, "max-pages", cfg.MaxPages, "Ceiling on rated-films listing pages")
	rootCmd.Flags().DurationVarP(&cfg.Timeouts.Navigation, "timeout", "t", cfg.Timeouts.Navigation, "Page load timeout")
	rootCmd.Flags().BoolVar(&showUI, "showui", showUI, "Show browser UI (disable headless mode)")
	rootCmd.Flags().StringVarP(&cfg.ProxyURL, "proxy", "p", cfg.ProxyURL, "Proxy URL (e.g. http://127.0.0.1:7890), defaults to CINEPROFILE_PROXY env var")
	rootCmd.Flags().StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level (debug, info, warn, error)")
	rootCmd.Flags().Float64Var(&cfg.FuzzyThreshold, "fuzzy-threshold", cfg.FuzzyThreshold, "Jaro-Winkler threshold for unmatched titles (0 disables)")
	rootCmd.Flags().BoolVar(&cfg.Summary, "summary", cfg.Summary, "Print a crawl summary table to stderr")

	rootCmd.PreRun = func(cmd *cobra.Command, args []string) {
		cfg.Headless = !showUI
	}

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string, cfg *config.Config) error {
	logger.Init(cfg.LogLevel)
	log := logger.For("main")

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	var target string
	if len(args) == 1 {
		target = strings.TrimSpace(args[0])
	} else {
		var err error
		target, err = promptProfileURL(cmd.InOrStdin(), cmd.ErrOrStderr())
		if err != nil {
			return err
		}
	}
	if err := allocine.ValidateProfileURL(cfg.Host, target); err != nil {
		return err
	}

	s, ok := scraper.Get(cfg.Mode)
	if !ok {
		return fmt.Errorf("unknown mode: %s (available: %s)", cfg.Mode, strings.Join(scraper.Names(), ", "))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := metrics.New()
	log.Info().Str("mode", s.Name()).Str("url", target).Msg("starting crawl")

	content, err := s.Scrape(ctx, target, scraper.Options{Config: cfg, Metrics: m})
	if err != nil {
		return fmt.Errorf("failed to scrape: %w", err)
	}

	tables := content.Tables()
	written, err := export.WriteAll(cfg.OutputDir, tables, cfg.Format)
	if err != nil {
		return fmt.Errorf("failed to export: %w", err)
	}
	for _, path := range written {
		fmt.Fprintf(cmd.ErrOrStderr(), "Output written to: %s\n", path)
	}

	if cfg.Summary {
		samples, err := m.Snapshot()
		if err != nil {
			log.Warn().Err(err).Msg("metrics snapshot failed")
		}
		formatter.RenderSummary(cmd.ErrOrStderr(), tables, samples)
	}
	return nil
}

// promptProfileURL reads one line from in after printing the prompt to out.
func promptProfileURL(in io.Reader, out io.Writer) (string, error) {
	fmt.Fprint(out, "AlloCiné profile URL (https://www.allocine.fr/membre-.../films/): ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return "", fmt.Errorf("failed to read profile URL: %w", err)
	}
	return strings.TrimSpace(line), nil
}
