// =============================================================================
// DATANORM-AZ Processor - Lookup Command
// =============================================================================
//
// This file defines the 'lookup' command, which prints the raw catalog data
// for one article: the master record plus its price steps, without any
// price calculation. Called without an argument it falls back to the first
// article of the file and additionally shows its calculated prices, which
// is a quick way to eyeball a freshly received catalog.
//
// COMMAND USAGE:
//   datanorm lookup [article-no] [flags]
//
// =============================================================================

package cmd

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/akress/datanorm-az/internal/export"
	"github.com/akress/datanorm-az/internal/pricing"
	"github.com/akress/datanorm-az/internal/types"
)

var lookupOverheadPct float64

// lookupCmd represents the 'lookup' command.
var lookupCmd = &cobra.Command{
	Use:   "lookup [article-no]",
	Short: "Look up raw article data without price calculations",
	Long: `Look up a single article number and print its raw catalog data as JSON:
the article master record and all graduated price steps attached to it.

Without an article number the first article of the file is shown together
with its calculated prices.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession()
		if err != nil {
			return err
		}
		if len(args) == 1 {
			return runLookup(sess, args[0])
		}
		return runLookupFirst(sess)
	},
}

func init() {
	rootCmd.AddCommand(lookupCmd)

	lookupCmd.Flags().Float64Var(
		&lookupOverheadPct,
		"overhead",
		0,
		"Overhead percentage used for the first-article price preview",
	)
}

// =============================================================================
// VIEWS
// =============================================================================

// articleView is the JSON shape of a raw article lookup.
type articleView struct {
	ArticleNo          string           `json:"article_no"`
	Name               string           `json:"name"`
	Unit               string           `json:"unit"`
	ListPrice          *decimal.Decimal `json:"list_price"`
	PurchasePrice      *decimal.Decimal `json:"purchase_price"`
	AvailabilityStatus string           `json:"availability_status"`
	PriceSteps         []stepView       `json:"price_steps"`
}

type stepView struct {
	StepCode    string           `json:"step_code"`
	Description string           `json:"description"`
	Kind        string           `json:"kind"`
	Sign        string           `json:"sign"`
	Base        string           `json:"base"`
	Value       *decimal.Decimal `json:"value"`
	MinQuantity *decimal.Decimal `json:"min_quantity"`
	MaxQuantity *decimal.Decimal `json:"max_quantity"`
}

// overview combines the raw article data with its calculated prices; this
// is the default output when no article number is given.
type overview struct {
	Article *articleView           `json:"article"`
	Prices  *types.CalculatedPrice `json:"prices"`
}

// =============================================================================
// COMMAND IMPLEMENTATION
// =============================================================================

func runLookup(sess *session, articleNo string) error {
	view, err := buildArticleView(sess, articleNo)
	if err != nil {
		return err
	}
	return printJSON(view)
}

func runLookupFirst(sess *session) error {
	nos := sess.store.ArticleNos()
	if len(nos) == 0 {
		fmt.Println("[]")
		return nil
	}

	articleNo := nos[0]
	view, err := buildArticleView(sess, articleNo)
	if err != nil {
		return err
	}

	resolver := pricing.NewResolver(sess.store, sess.cfg.RoundingRule())
	price, err := resolver.Resolve(pricing.Query{
		ArticleNo:   articleNo,
		OverheadPct: decimal.NewFromFloat(lookupOverheadPct),
	})
	if err != nil {
		return err
	}

	return printJSON(overview{Article: view, Prices: &price})
}

func buildArticleView(sess *session, articleNo string) (*articleView, error) {
	article, ok := sess.store.GetArticle(articleNo)
	if !ok {
		return nil, fmt.Errorf("article %s not found", articleNo)
	}

	steps := sess.store.GetSteps(articleNo)
	stepViews := make([]stepView, 0, len(steps))
	for _, step := range steps {
		stepViews = append(stepViews, stepView{
			StepCode:    step.StepCode,
			Description: step.Description,
			Kind:        step.Kind.String(),
			Sign:        step.Sign.String(),
			Base:        step.Base.String(),
			Value:       step.Value,
			MinQuantity: step.MinQuantity,
			MaxQuantity: step.MaxQuantity,
		})
	}
	sort.SliceStable(stepViews, func(i, j int) bool {
		return viewMin(stepViews[i]).LessThan(viewMin(stepViews[j]))
	})

	return &articleView{
		ArticleNo:          article.ArticleNo,
		Name:               article.Name,
		Unit:               article.Unit,
		ListPrice:          article.ListPrice(),
		PurchasePrice:      article.PurchasePrice(),
		AvailabilityStatus: "Article found, stock level unknown",
		PriceSteps:         stepViews,
	}, nil
}

func viewMin(v stepView) decimal.Decimal {
	if v.MinQuantity == nil {
		return decimal.Zero
	}
	return *v.MinQuantity
}

func printJSON(v interface{}) error {
	out, err := export.RenderJSON(v)
	if err != nil {
		return err
	}
	fmt.Println(out)
	return nil
}
