// =============================================================================
// DATANORM-AZ Processor - Root Command
// =============================================================================
//
// This file defines the root command for the Cobra CLI and the shared
// plumbing every subcommand uses: configuration loading, logger setup and
// catalog ingestion.
//
// COBRA CLI STRUCTURE:
//   rootCmd (datanorm)
//   ├── lookupCmd  (datanorm lookup [article-no])
//   ├── pricesCmd  (datanorm prices [article-no])
//   ├── exportCmd  (datanorm export)
//   └── versionCmd (datanorm version)
//
// =============================================================================

package cmd

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/akress/datanorm-az/internal/catalog"
	"github.com/akress/datanorm-az/internal/config"
	"github.com/akress/datanorm-az/internal/decoder"
)

// =============================================================================
// GLOBAL FLAGS
// =============================================================================

// cfgFile holds the path to the configuration file (--config).
var cfgFile string

// dataFile overrides the configured DATANORM source file (--file).
var dataFile string

// verbose enables debug logging (--verbose).
var verbose bool

// =============================================================================
// ROOT COMMAND DEFINITION
// =============================================================================

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "datanorm",
	Short: "DATANORM-AZ Processor - Load catalog price files and calculate sale prices",
	Long: `DATANORM-AZ Processor parses DATANORM catalog files (A and Z records),
loads articles and graduated price steps into an in-memory catalog and
answers price queries against it.

Key Features:
  - Streaming ingestion of files with millions of records
  - Graduated (quantity-banded) price resolution with explicit fallbacks
  - Overhead, supplier-discount and markup calculation
  - CSV and XLSX export of calculated prices

Example Usage:
  datanorm lookup 2TOP                   # Raw article data as JSON
  datanorm prices 2TOP --qnt 50          # Calculated prices for a quantity
  datanorm prices --limit all            # Calculated prices for the catalog
  datanorm export --out prices.csv       # Export the full price table`,

	Run: func(cmd *cobra.Command, args []string) {
		cmd.Help()
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile,
		"config",
		config.DefaultPath,
		"Path to the configuration file",
	)
	rootCmd.PersistentFlags().StringVarP(
		&dataFile,
		"file",
		"f",
		"",
		"Path to the DATANORM file (overrides the configured datafile)",
	)
	rootCmd.PersistentFlags().BoolVarP(
		&verbose,
		"verbose",
		"v",
		false,
		"Enable debug logging",
	)
}

// =============================================================================
// SHARED COMMAND PLUMBING
// =============================================================================

// session is everything a subcommand needs after startup: the loaded
// configuration and the ingested catalog.
type session struct {
	cfg    *config.Config
	store  *catalog.Store
	report catalog.Report
	log    zerolog.Logger
}

// newSession loads the configuration, builds the logger and ingests the
// source file. Every data subcommand starts here; ingestion is rebuilt per
// invocation because the catalog never persists across runs.
func newSession() (*session, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	log := newLogger(cfg.LogLevel)

	path := cfg.Datafile
	if dataFile != "" {
		path = dataFile
	}

	dec := decoder.New(cfg.BasisCodes())
	ingestor := catalog.NewIngestor(dec, log)
	store, report, err := ingestor.IngestFile(path, cfg.InputEncoding)
	if err != nil {
		return nil, err
	}
	if report.SkippedLines > 0 {
		log.Warn().
			Int("skipped", report.SkippedLines).
			Msg("some lines could not be decoded")
	}

	return &session{cfg: cfg, store: store, report: report, log: log}, nil
}

// newLogger builds a console logger on stderr so JSON results on stdout
// stay pipeable.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if verbose {
		lvl = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}
	return zerolog.New(writer).With().Timestamp().Logger().Level(lvl)
}

// =============================================================================
// FLAG HELPERS
// =============================================================================

// parseLimit parses a --limit value: a non-negative integer, or "all" /
// "none" for unlimited (nil).
func parseLimit(value string) (*int, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "all", "none":
		return nil, nil
	}
	limit, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("limit must be an integer, 'none', or 'all', got: %s", value)
	}
	if limit < 0 {
		return nil, fmt.Errorf("limit must be non-negative, got: %d", limit)
	}
	return &limit, nil
}

// quantityArg returns the --qnt value only when the flag was actually set,
// preserving the explicit-versus-default distinction the totals depend on.
func quantityArg(cmd *cobra.Command, raw float64) *decimal.Decimal {
	if !cmd.Flags().Changed("qnt") {
		return nil
	}
	qty := decimal.NewFromFloat(raw)
	return &qty
}
