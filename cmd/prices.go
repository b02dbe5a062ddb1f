// =============================================================================
// DATANORM-AZ Processor - Prices Command
// =============================================================================
//
// This file defines the 'prices' command, which prints calculated prices as
// JSON: either for a single article number or, without an argument, for the
// catalog in first-seen order up to --limit.
//
// COMMAND USAGE:
//   datanorm prices [article-no] [flags]
//
// FLAGS:
//   --overhead : Overhead percentage applied on top of the purchase price
//   --qnt      : Quantity for graduated price selection; also adds totals
//   --limit    : Number of articles in list mode: an integer or 'all'
//
// =============================================================================

package cmd

import (
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/akress/datanorm-az/internal/pricing"
)

var (
	pricesOverheadPct float64
	pricesQuantity    float64
	pricesLimit       string
)

// pricesCmd represents the 'prices' command.
var pricesCmd = &cobra.Command{
	Use:   "prices [article-no]",
	Short: "Calculate derived prices for one article or the whole catalog",
	Long: `Calculate the derived price record for an article: list price, purchase
price, supplier discount, calculated purchase price (with overhead), sale
price and markup. Graduated prices are selected by the requested quantity;
an explicit --qnt additionally produces total prices.

Without an article number the command lists calculated prices for known
articles in the order they first appear in the file, up to --limit.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession()
		if err != nil {
			return err
		}

		resolver := pricing.NewResolver(sess.store, sess.cfg.RoundingRule())
		quantity := quantityArg(cmd, pricesQuantity)
		overhead := decimal.NewFromFloat(pricesOverheadPct)

		if len(args) == 1 {
			price, err := resolver.Resolve(pricing.Query{
				ArticleNo:   args[0],
				Quantity:    quantity,
				OverheadPct: overhead,
			})
			if err != nil {
				return err
			}
			return printJSON(price)
		}

		limit, err := parseLimit(pricesLimit)
		if err != nil {
			return err
		}
		return printJSON(resolver.ResolveMany(limit, quantity, overhead))
	},
}

func init() {
	rootCmd.AddCommand(pricesCmd)

	pricesCmd.Flags().Float64Var(
		&pricesOverheadPct,
		"overhead",
		0,
		"Overhead percentage applied on top of the purchase price",
	)
	pricesCmd.Flags().Float64Var(
		&pricesQuantity,
		"qnt",
		0,
		"Quantity for price calculation (selects graduated prices, adds totals)",
	)
	pricesCmd.Flags().StringVar(
		&pricesLimit,
		"limit",
		"1",
		"Number of articles to list (integer, or 'all' for the whole catalog)",
	)
}
