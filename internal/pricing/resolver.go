// =============================================================================
// DATANORM-AZ Processor - Price Resolver
// =============================================================================
//
// Read-only query engine over a finished catalog store. Given an article
// number, an optional quantity and an overhead percentage, the resolver
// computes the full derived price record: list price, purchase price,
// calculated purchase price, sale price, supplier discount and markup, plus
// totals when the quantity was explicit.
//
// Price selection runs independently per price family. For each family the
// priority is:
//
//   1. the graduated step whose quantity range contains the target quantity
//      (inclusive on both ends)
//   2. the article's own raw price, when it is carried on that family
//   3. the boundary step: the lowest band when the quantity lies below every
//      range, otherwise the highest band at or below the quantity
//   4. absent
//
// Every derived field propagates "absent" instead of failing: a missing
// input makes a missing output, never an error. The only error the resolver
// returns is ErrNotFound, and only when neither an article nor a single
// price step exists for the requested number.
//
// The resolver never mutates the store and is safe for concurrent queries
// once ingestion has finished.
//
// =============================================================================

package pricing

import (
	"errors"
	"fmt"
	"sort"

	"github.com/akress/datanorm-az/internal/catalog"
	"github.com/akress/datanorm-az/internal/types"
	"github.com/shopspring/decimal"
)

// ErrNotFound signals that nothing at all is stored under the requested
// article number. Callers test for it with errors.Is.
var ErrNotFound = errors.New("article not found")

var hundred = decimal.NewFromInt(100)

// Resolver answers price queries against one catalog store.
type Resolver struct {
	store    *catalog.Store
	rounding Rounding
}

// NewResolver creates a resolver over the given store with the given
// output rounding rule.
func NewResolver(store *catalog.Store, rounding Rounding) *Resolver {
	return &Resolver{store: store, rounding: rounding}
}

// Query is one price resolution request.
type Query struct {
	ArticleNo string

	// Quantity is the target quantity, or nil for the implicit default of
	// one. Explicit and implicit quantities resolve identically except
	// that only an explicit quantity produces totals.
	Quantity *decimal.Decimal

	// OverheadPct is applied on top of the purchase price.
	OverheadPct decimal.Decimal
}

// Resolve computes the derived price record for one article number.
// An article with missing price inputs still resolves; the unknown parts
// come back absent. ErrNotFound is returned only when the store holds
// neither an article nor any price step for the number.
func (r *Resolver) Resolve(q Query) (types.CalculatedPrice, error) {
	article, hasArticle := r.store.GetArticle(q.ArticleNo)
	steps := r.store.GetSteps(q.ArticleNo)
	if !hasArticle && len(steps) == 0 {
		return types.CalculatedPrice{}, fmt.Errorf("%w: %s", ErrNotFound, q.ArticleNo)
	}

	quantity := decimal.NewFromInt(1)
	if q.Quantity != nil {
		quantity = *q.Quantity
	}

	var articleRef *types.Article
	if hasArticle {
		articleRef = &article
	}

	listPrice := selectPrice(articleRef, steps, types.BasisList, quantity)
	purchasePrice := selectPrice(articleRef, steps, types.BasisPurchase, quantity)

	result := types.CalculatedPrice{
		ArticleNo:     q.ArticleNo,
		Name:          article.Name,
		Unit:          article.Unit,
		ListPrice:     listPrice,
		PurchasePrice: purchasePrice,
		OverheadPct:   q.OverheadPct,
	}

	// Supplier discount: derived from the list/purchase spread when both
	// sides are known, otherwise the raw discount from the article record.
	if listPrice != nil && purchasePrice != nil && listPrice.IsPositive() {
		pct := decimal.NewFromInt(1).Sub(purchasePrice.Div(*listPrice)).Mul(hundred)
		result.SupplierDiscountPct = &pct
	} else if hasArticle && article.SupplierDiscountPct != nil {
		result.SupplierDiscountPct = article.SupplierDiscountPct
	}

	if purchasePrice != nil {
		calc := purchasePrice.Mul(decimal.NewFromInt(1).Add(q.OverheadPct.Div(hundred)))
		result.CalculatedPurchase = &calc
	}

	switch {
	case listPrice != nil:
		result.SalePrice = listPrice
	case result.CalculatedPurchase != nil:
		result.SalePrice = result.CalculatedPurchase
	}

	if result.SalePrice != nil && result.CalculatedPurchase != nil && !result.CalculatedPurchase.IsZero() {
		markup := result.SalePrice.Div(*result.CalculatedPurchase).Sub(decimal.NewFromInt(1)).Mul(hundred)
		result.MarkupPct = &markup
	}

	// Totals exist only for an explicit quantity; each total is absent
	// exactly when its unit counterpart is absent.
	if q.Quantity != nil {
		result.Quantity = q.Quantity
		result.TotalListPrice = mulPtr(result.ListPrice, quantity)
		result.TotalPurchasePrice = mulPtr(result.PurchasePrice, quantity)
		result.TotalCalculatedPurchase = mulPtr(result.CalculatedPurchase, quantity)
		result.TotalSalePrice = mulPtr(result.SalePrice, quantity)
	}

	r.round(&result)
	return result, nil
}

// ResolveMany resolves every known article number in first-seen order and
// returns up to limit results. A nil limit means unlimited.
func (r *Resolver) ResolveMany(limit *int, quantity *decimal.Decimal, overheadPct decimal.Decimal) []types.CalculatedPrice {
	nos := r.store.ArticleNos()
	if limit != nil && *limit < len(nos) {
		nos = nos[:*limit]
	}

	results := make([]types.CalculatedPrice, 0, len(nos))
	for _, no := range nos {
		price, err := r.Resolve(Query{ArticleNo: no, Quantity: quantity, OverheadPct: overheadPct})
		if err != nil {
			// Unreachable for numbers the store itself reported.
			continue
		}
		results = append(results, price)
	}
	return results
}

// =============================================================================
// STEP SELECTION
// =============================================================================

// selectPrice picks the unit price for one price family at the target
// quantity, following the range-match > article-price > boundary-fallback
// priority.
func selectPrice(article *types.Article, steps []types.PriceStep, base types.PriceBasis, quantity decimal.Decimal) *decimal.Decimal {
	graduated := graduatedSteps(steps, base)

	for _, step := range graduated {
		if stepContains(step, quantity) {
			return step.Value
		}
	}

	if article != nil && article.PriceBasis == base && article.PriceValue != nil {
		return article.PriceValue
	}

	if len(graduated) == 0 {
		return nil
	}

	// Boundary fallback: the lowest band when the quantity undercuts every
	// range, otherwise the highest band that starts at or below it.
	if quantity.LessThan(stepMin(graduated[0])) {
		return graduated[0].Value
	}
	chosen := graduated[0]
	for _, step := range graduated[1:] {
		if stepMin(step).LessThanOrEqual(quantity) {
			chosen = step
		}
	}
	return chosen.Value
}

// graduatedSteps filters the graduated steps of one price family and sorts
// them ascending by minimum quantity. The sort is stable so that steps with
// equal minimums keep their ingestion order.
func graduatedSteps(steps []types.PriceStep, base types.PriceBasis) []types.PriceStep {
	var graduated []types.PriceStep
	for _, step := range steps {
		if step.Kind == types.KindGraduated && step.Base == base && step.Value != nil {
			graduated = append(graduated, step)
		}
	}
	sort.SliceStable(graduated, func(i, j int) bool {
		return stepMin(graduated[i]).LessThan(stepMin(graduated[j]))
	})
	return graduated
}

// stepContains reports whether the quantity lies inside the step's range,
// inclusive on both ends. A missing upper bound means unbounded above.
func stepContains(step types.PriceStep, quantity decimal.Decimal) bool {
	if quantity.LessThan(stepMin(step)) {
		return false
	}
	if step.MaxQuantity != nil && quantity.GreaterThan(*step.MaxQuantity) {
		return false
	}
	return true
}

func stepMin(step types.PriceStep) decimal.Decimal {
	if step.MinQuantity == nil {
		return decimal.Zero
	}
	return *step.MinQuantity
}

// =============================================================================
// OUTPUT ROUNDING
// =============================================================================

func (r *Resolver) round(price *types.CalculatedPrice) {
	price.ListPrice = r.rounding.applyPtr(price.ListPrice)
	price.SupplierDiscountPct = r.rounding.applyPtr(price.SupplierDiscountPct)
	price.PurchasePrice = r.rounding.applyPtr(price.PurchasePrice)
	price.OverheadPct = r.rounding.apply(price.OverheadPct)
	price.CalculatedPurchase = r.rounding.applyPtr(price.CalculatedPurchase)
	price.MarkupPct = r.rounding.applyPtr(price.MarkupPct)
	price.SalePrice = r.rounding.applyPtr(price.SalePrice)
	price.TotalListPrice = r.rounding.applyPtr(price.TotalListPrice)
	price.TotalPurchasePrice = r.rounding.applyPtr(price.TotalPurchasePrice)
	price.TotalCalculatedPurchase = r.rounding.applyPtr(price.TotalCalculatedPurchase)
	price.TotalSalePrice = r.rounding.applyPtr(price.TotalSalePrice)
}

func mulPtr(value *decimal.Decimal, factor decimal.Decimal) *decimal.Decimal {
	if value == nil {
		return nil
	}
	product := value.Mul(factor)
	return &product
}
