package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/merchantscan/merchantscan/internal/config"
	"github.com/merchantscan/merchantscan/internal/log"
	"github.com/merchantscan/merchantscan/internal/mcc"
	"github.com/merchantscan/merchantscan/internal/model"
	"github.com/merchantscan/merchantscan/internal/places"
	"github.com/merchantscan/merchantscan/internal/ratelimit"
	"github.com/merchantscan/merchantscan/internal/report"
	"github.com/merchantscan/merchantscan/internal/scraper"
)

// NewScanCmd creates the scan command.
func NewScanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan [location]",
		Short: "Scan a location for consumer-facing merchants",
		Long: `Scan geocodes the given location, sweeps the surrounding area for
consumer-facing businesses, classifies each into a merchant category code,
and writes a report artifact to the output directory.

Examples:
  # Scan a city with the default 5 km radius
  merchantscan scan "New York, NY"

  # Scan a smaller area and write a Markdown report
  merchantscan scan --radius 1000 --format markdown "Brooklyn, NY"

  # Use a custom profile file
  merchantscan scan -c myprofile.yaml "Boston, MA"

Profile file (.merchantscan) example:
  radius: 2000
  format: json
  searchGroups:
    - category: Food & Beverage
      types: [restaurant, cafe, bakery]
    - category: Retail
      types: [clothing_store, book_store]`,
		Args: cobra.ExactArgs(1),
		RunE: runScanCmd,
	}

	// Search flags
	cmd.Flags().IntP("radius", "r", config.DefaultRadius,
		"Search radius in meters")
	cmd.Flags().StringP("api-key", "k", "",
		"Places API key (overrides GOOGLE_PLACES_API_KEY)")

	// Rate limiting flags
	cmd.Flags().Int("max-requests", config.MaxRequestsPerDay,
		"Maximum API requests for this run")
	cmd.Flags().Duration("min-interval", config.DefaultMinRequestInterval,
		"Minimum spacing between consecutive API requests")
	cmd.Flags().Duration("pagination-delay", config.DefaultPaginationDelay,
		"Delay between result pages of the same search")
	cmd.Flags().DurationP("timeout", "t", config.DefaultTimeout,
		"HTTP timeout for each API request")

	// Report flags
	cmd.Flags().StringP("format", "f", config.FormatExcel,
		"Report format: excel, markdown, or json")
	cmd.Flags().StringP("output", "o", config.DefaultOutputDir,
		"Directory the report artifact is written to")

	// Configuration file
	cmd.Flags().StringP("config", "c", "",
		"Profile file path (default: .merchantscan in current or XDG config directory)")

	return cmd
}

// runScanCmd executes the scan command.
func runScanCmd(cmd *cobra.Command, args []string) error {
	// A .env file is a convenience for local runs; absence is fine.
	_ = godotenv.Load()

	cfg, err := buildConfig(cmd, args)
	if err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	logger := log.NewSecureLogger(os.Stderr, cfg.Verbose)
	slog.SetDefault(logger)

	// Set up context with signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		logger.Info("received shutdown signal, cancelling...")
		cancel()
	}()

	return runScan(ctx, cmd, cfg, logger)
}

// buildConfig creates a Config from cobra command flags and the profile
// file.
func buildConfig(cmd *cobra.Command, args []string) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Location = args[0]

	var err error

	apiKey, err := cmd.Flags().GetString("api-key")
	if err != nil {
		return nil, err
	}
	if apiKey != "" {
		cfg.APIKey = apiKey
	}

	cfg.Radius, err = cmd.Flags().GetInt("radius")
	if err != nil {
		return nil, err
	}

	cfg.MaxRequests, err = cmd.Flags().GetInt("max-requests")
	if err != nil {
		return nil, err
	}

	cfg.MinRequestInterval, err = cmd.Flags().GetDuration("min-interval")
	if err != nil {
		return nil, err
	}

	cfg.PaginationDelay, err = cmd.Flags().GetDuration("pagination-delay")
	if err != nil {
		return nil, err
	}

	cfg.Timeout, err = cmd.Flags().GetDuration("timeout")
	if err != nil {
		return nil, err
	}

	cfg.Format, err = cmd.Flags().GetString("format")
	if err != nil {
		return nil, err
	}

	cfg.OutputDir, err = cmd.Flags().GetString("output")
	if err != nil {
		return nil, err
	}

	cfg.ConfigFilePath, err = cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}

	cfg.Verbose = getVerboseFlag(cmd)

	// An explicitly specified profile file must exist; the default search
	// locations are optional.
	explicitConfigPath := cfg.ConfigFilePath != ""
	configPath := config.FindConfigFile(cfg.ConfigFilePath)

	if configPath != "" {
		profile, err := config.LoadProfile(configPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load profile %s: %w", configPath, err)
		}
		cfg.ApplyProfile(profile)
	} else if explicitConfigPath {
		return nil, fmt.Errorf("profile file not found: %s", cfg.ConfigFilePath)
	}

	return cfg, nil
}

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		verbose, err = cmd.Root().PersistentFlags().GetBool("verbose")
		if err != nil {
			return false
		}
	}
	return verbose
}

// runScan wires the client, limiter, and scraper, runs the sweep, prints a
// terminal summary, and writes the report artifact.
func runScan(ctx context.Context, cmd *cobra.Command, cfg *config.Config, logger *slog.Logger) error {
	client := places.NewClient(cfg.APIKey, places.WithTimeout(cfg.Timeout))
	limiter := ratelimit.New(cfg.MinRequestInterval, cfg.MaxRequests)

	opts := []scraper.Option{
		scraper.WithLimiter(limiter),
		scraper.WithLogger(logger),
		scraper.WithRadius(cfg.Radius),
		scraper.WithPaginationDelay(cfg.PaginationDelay),
	}
	if groups := profileSearchGroups(cfg.Profile); len(groups) > 0 {
		opts = append(opts, scraper.WithSearchGroups(groups))
	}

	s := scraper.New(client, opts...)
	scanReport := s.Run(ctx, cfg.Location, cfg.Radius)

	// Terminal summary always goes to stdout, whatever the artifact format.
	summary := report.NewSimpleWriter(cmd.OutOrStdout(), report.WithVerbose(cfg.Verbose))
	if _, err := summary.Write(scanReport); err != nil {
		return fmt.Errorf("failed to write summary: %w", err)
	}

	if scanReport.MerchantCount() == 0 {
		logger.Warn("no merchants found, skipping report artifact",
			"location", cfg.Location,
		)
		return nil
	}

	path, err := writeArtifact(cfg, scanReport)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
	return nil
}

// writeArtifact writes the report file into the output directory and
// returns its path.
func writeArtifact(cfg *config.Config, scanReport *model.ScanReport) (string, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(cfg.OutputDir, report.Filename(cfg.Format, time.Now()))
	f, err := os.Create(path) //nolint:gosec // Path is derived from user configuration
	if err != nil {
		return "", fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close() //nolint:errcheck // Close error is checked via Sync below

	w, err := report.NewWriter(cfg.Format, f)
	if err != nil {
		return "", err
	}
	if _, err := w.Write(scanReport); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}

	if err := f.Sync(); err != nil {
		return "", fmt.Errorf("failed to flush report file: %w", err)
	}
	return path, nil
}

// profileSearchGroups converts profile sweep groups into the scraper's
// representation. A nil profile or empty group list keeps the built-in
// sweep table.
func profileSearchGroups(p *config.Profile) []mcc.SearchGroup {
	if p == nil || len(p.SearchGroups) == 0 {
		return nil
	}

	groups := make([]mcc.SearchGroup, 0, len(p.SearchGroups))
	for _, g := range p.SearchGroups {
		groups = append(groups, mcc.SearchGroup{
			Category: mcc.Category(g.Category),
			Types:    g.Types,
		})
	}
	return groups
}
