// =============================================================================
// DATANORM-AZ Processor - Export Command
// =============================================================================
//
// This file defines the 'export' command, which writes calculated prices to
// a CSV or XLSX file. Relative output paths land in the configured output
// folder; without --out a unique file name is generated there.
//
// COMMAND USAGE:
//   datanorm export [flags]
//
// FLAGS:
//   --out      : Output file path (.csv or .xlsx; relative to output folder)
//   --format   : Output format, inferred from the extension when omitted
//   --article  : Export a single article instead of the whole catalog
//   --limit    : Number of articles to export (integer or 'all')
//   --overhead : Overhead percentage applied on top of the purchase price
//   --qnt      : Quantity for graduated price selection; adds total columns
//
// =============================================================================

package cmd

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/akress/datanorm-az/internal/export"
	"github.com/akress/datanorm-az/internal/pricing"
	"github.com/akress/datanorm-az/internal/types"
	"github.com/akress/datanorm-az/pkg/utils"
)

var (
	exportOut         string
	exportFormat      string
	exportArticle     string
	exportLimit       string
	exportOverheadPct float64
	exportQuantity    float64
)

// exportCmd represents the 'export' command.
var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export calculated prices to a CSV or XLSX file",
	Long: `Export calculated prices for the catalog (or a single article) to a file.
The format is taken from --format or inferred from the output extension:
.csv produces a delimited text file in the configured output encoding,
.xlsx produces a spreadsheet. Relative paths are placed in the configured
output folder, which is created on demand.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession()
		if err != nil {
			return err
		}

		resolver := pricing.NewResolver(sess.store, sess.cfg.RoundingRule())
		quantity := quantityArg(cmd, exportQuantity)
		overhead := decimal.NewFromFloat(exportOverheadPct)

		var prices []types.CalculatedPrice
		if exportArticle != "" {
			price, err := resolver.Resolve(pricing.Query{
				ArticleNo:   exportArticle,
				Quantity:    quantity,
				OverheadPct: overhead,
			})
			if err != nil {
				return err
			}
			prices = []types.CalculatedPrice{price}
		} else {
			limit, err := parseLimit(exportLimit)
			if err != nil {
				return err
			}
			prices = resolver.ResolveMany(limit, quantity, overhead)
		}

		format, err := resolveFormat(exportFormat, exportOut)
		if err != nil {
			return err
		}

		out := exportOut
		if out == "" {
			out = utils.ExportFileName("prices", "."+format)
		}
		path, err := utils.ResolveOutputPath(sess.cfg.OutputFolder, out)
		if err != nil {
			return err
		}

		withQuantity := quantity != nil
		switch format {
		case "csv":
			err = export.WriteCSVFile(path, prices, withQuantity, sess.cfg.OutputEncoding)
		case "xlsx":
			err = export.WriteXLSXFile(path, prices, withQuantity)
		}
		if err != nil {
			return err
		}

		fmt.Printf("Exported %d article(s) to %s\n", len(prices), path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(
		&exportOut,
		"out",
		"",
		"Output file path (generated in the output folder when omitted)",
	)
	exportCmd.Flags().StringVar(
		&exportFormat,
		"format",
		"",
		"Output format: csv or xlsx (inferred from --out when omitted)",
	)
	exportCmd.Flags().StringVar(
		&exportArticle,
		"article",
		"",
		"Export a single article number instead of the whole catalog",
	)
	exportCmd.Flags().StringVar(
		&exportLimit,
		"limit",
		"all",
		"Number of articles to export (integer, or 'all')",
	)
	exportCmd.Flags().Float64Var(
		&exportOverheadPct,
		"overhead",
		0,
		"Overhead percentage applied on top of the purchase price",
	)
	exportCmd.Flags().Float64Var(
		&exportQuantity,
		"qnt",
		0,
		"Quantity for price calculation (selects graduated prices, adds totals)",
	)
}

// resolveFormat picks the export format from the flag or the output file
// extension, defaulting to CSV.
func resolveFormat(flag, out string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(flag))
	if format == "" {
		switch strings.ToLower(filepath.Ext(out)) {
		case ".xlsx":
			format = "xlsx"
		default:
			format = "csv"
		}
	}
	switch format {
	case "csv", "xlsx":
		return format, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (want csv or xlsx)", format)
	}
}
