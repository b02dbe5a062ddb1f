// =============================================================================
// DATANORM-AZ Processor - Shared Types
// =============================================================================
//
// This package contains the record and price types shared across the decoder,
// the catalog store and the price resolver, kept separate to avoid import
// cycles. Types defined here are used by:
//   - decoder
//   - catalog
//   - pricing
//   - export
//
// =============================================================================

package types

import "github.com/shopspring/decimal"

// =============================================================================
// ENUMERATIONS
// =============================================================================

// PriceBasis identifies which price family a raw price or a price step
// refers to.
type PriceBasis int

const (
	// BasisUnknown marks a basis code outside the configured code table.
	// A price carried under an unknown basis contributes to neither the
	// list nor the purchase side of a calculation.
	BasisUnknown PriceBasis = iota

	// BasisList marks a list (catalog) price.
	BasisList

	// BasisPurchase marks a purchase (buying-in) price.
	BasisPurchase
)

func (b PriceBasis) String() string {
	switch b {
	case BasisList:
		return "list"
	case BasisPurchase:
		return "purchase"
	default:
		return "unknown"
	}
}

// StepKind identifies the pricing rule a Z record carries.
type StepKind int

const (
	KindUnknown StepKind = iota

	// KindGraduated is a quantity-banded price (code 1).
	KindGraduated

	// KindSurchargeAbsolute is an absolute surcharge or discount amount (code 2).
	KindSurchargeAbsolute

	// KindSurchargePercent is a percentage surcharge or discount (code 3).
	KindSurchargePercent
)

func (k StepKind) String() string {
	switch k {
	case KindGraduated:
		return "graduated"
	case KindSurchargeAbsolute:
		return "surcharge_absolute"
	case KindSurchargePercent:
		return "surcharge_percent"
	default:
		return "unknown"
	}
}

// StepSign states whether a step adds to or subtracts from its base price.
type StepSign int

const (
	SignUnknown StepSign = iota
	SignSurcharge
	SignDiscount
)

func (s StepSign) String() string {
	switch s {
	case SignSurcharge:
		return "surcharge"
	case SignDiscount:
		return "discount"
	default:
		return "unknown"
	}
}

// =============================================================================
// CATALOG RECORDS
// =============================================================================

// Article is the master record for one catalog item, decoded from an
// A record. A nil decimal pointer means the raw field was absent.
type Article struct {
	// ArticleNo is the unique key of the article. Never empty.
	ArticleNo string

	// Name is the article description. May be empty.
	Name string

	// Unit is the order unit. May be empty.
	Unit string

	// PriceBasis states which price family PriceValue belongs to.
	PriceBasis PriceBasis

	// PriceValue is the raw price carried on the record, or nil.
	PriceValue *decimal.Decimal

	// SupplierDiscountPct is the raw supplier discount percentage, or nil.
	SupplierDiscountPct *decimal.Decimal
}

// ListPrice returns the raw price when it is carried on the list basis.
func (a *Article) ListPrice() *decimal.Decimal {
	if a.PriceBasis == BasisList {
		return a.PriceValue
	}
	return nil
}

// PurchasePrice returns the raw price when it is carried on the purchase basis.
func (a *Article) PurchasePrice() *decimal.Decimal {
	if a.PriceBasis == BasisPurchase {
		return a.PriceValue
	}
	return nil
}

// PriceStep is a quantity-range-scoped pricing rule decoded from a Z record.
// Steps have a lifecycle independent of articles: a step may exist for an
// article number that has no A record at all.
type PriceStep struct {
	// ArticleNo references the article the step belongs to. Not enforced
	// to exist in the catalog.
	ArticleNo string

	// StepCode identifies the step within its article. The pair
	// (ArticleNo, StepCode) is the uniqueness key.
	StepCode string

	// Description is the free-text step description.
	Description string

	Kind StepKind
	Sign StepSign

	// Base states which price family the step modifies or represents.
	Base PriceBasis

	// Value is the step price, amount or percentage depending on Kind.
	Value *decimal.Decimal

	// MinQuantity and MaxQuantity bound the inclusive quantity range the
	// step applies to. A nil MinQuantity means zero; a nil or very large
	// MaxQuantity means unbounded above.
	MinQuantity *decimal.Decimal
	MaxQuantity *decimal.Decimal
}

// =============================================================================
// DECODED RECORD (TAGGED UNION)
// =============================================================================

// RecordType tags the variant held by a Record.
type RecordType int

const (
	RecordArticle RecordType = iota + 1
	RecordPriceStep
)

// Record is the tagged union produced by the decoder: exactly one of
// Article or PriceStep is set, indicated by Type. Two fixed shapes make a
// tag cheaper and clearer than an interface hierarchy.
type Record struct {
	Type      RecordType
	Article   *Article
	PriceStep *PriceStep
}

// =============================================================================
// CALCULATED PRICE
// =============================================================================

// CalculatedPrice is the transient result of one price resolution. It is
// never stored; every query produces a fresh value. Nil pointers are the
// explicit "unknown" representation: a missing input propagates a nil
// output rather than an error.
//
// Quantity and the Total* fields are set only when the caller supplied a
// quantity explicitly; an implicit quantity of one leaves them nil.
type CalculatedPrice struct {
	ArticleNo string `json:"article_no"`
	Name      string `json:"name"`
	Unit      string `json:"unit"`

	ListPrice           *decimal.Decimal `json:"list_price"`
	SupplierDiscountPct *decimal.Decimal `json:"supplier_discount_pct"`
	PurchasePrice       *decimal.Decimal `json:"purchase_price"`
	OverheadPct         decimal.Decimal  `json:"overhead_pct"`
	CalculatedPurchase  *decimal.Decimal `json:"calculated_purchase_price"`
	MarkupPct           *decimal.Decimal `json:"markup_pct"`
	SalePrice           *decimal.Decimal `json:"sale_price"`

	Quantity                *decimal.Decimal `json:"quantity,omitempty"`
	TotalListPrice          *decimal.Decimal `json:"total_list_price,omitempty"`
	TotalPurchasePrice      *decimal.Decimal `json:"total_purchase_price,omitempty"`
	TotalCalculatedPurchase *decimal.Decimal `json:"total_calculated_purchase_price,omitempty"`
	TotalSalePrice          *decimal.Decimal `json:"total_sale_price,omitempty"`
}
