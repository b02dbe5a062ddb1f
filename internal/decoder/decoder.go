// =============================================================================
// DATANORM-AZ Processor - Record Decoder
// =============================================================================
//
// This module turns one raw text line of a DATANORM file into a typed record.
// A line is a sequence of semicolon-delimited positional fields; field 1 is
// the record type discriminator:
//
//   'A' : article master data  -> types.Article
//   'Z' : graduated price step -> types.PriceStep
//
// Any other discriminator, a missing key field, or a non-numeric value in a
// numeric field makes the line malformed. Malformed lines produce no record;
// the ingestor counts and skips them.
//
// Field positions are fixed by the external DATANORM format and are never
// inferred from the data. The price-basis code table (conventionally 1 and 9
// mean list, 2 means purchase) is configuration rather than hard-wired logic,
// because the meaning of code 9 is a documented convention, not a verified
// contract.
//
// =============================================================================

package decoder

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/akress/datanorm-az/internal/types"
	"github.com/shopspring/decimal"
)

// ErrMalformed is the sentinel wrapped by every decoding failure.
// Callers test for it with errors.Is.
var ErrMalformed = errors.New("malformed record")

// Delimiter separates the positional fields of a record line.
const Delimiter = ";"

// Field positions (1-based) consumed from A and Z records.
const (
	fieldArticleNo   = 3
	fieldName        = 4
	fieldUnit        = 6
	fieldBasisCode   = 7
	fieldPriceValue  = 9
	fieldSupplierPct = 23

	fieldStepCode    = 4
	fieldStepDesc    = 6
	fieldStepKind    = 8
	fieldStepSign    = 9
	fieldStepBase    = 10
	fieldStepValue   = 12
	fieldStepMinQty  = 15
	fieldStepMaxQty  = 16
)

// BasisCodes maps raw price-basis codes to a price family.
type BasisCodes map[int]types.PriceBasis

// DefaultBasisCodes returns the documented DATANORM convention:
// codes 1 and 9 mean list price, code 2 means purchase price.
func DefaultBasisCodes() BasisCodes {
	return BasisCodes{
		1: types.BasisList,
		9: types.BasisList,
		2: types.BasisPurchase,
	}
}

// Decoder decodes single record lines. It carries no mutable state and is
// safe for concurrent use.
type Decoder struct {
	basisCodes BasisCodes
}

// New creates a Decoder. A nil code table falls back to the default
// convention.
func New(basisCodes BasisCodes) *Decoder {
	if basisCodes == nil {
		basisCodes = DefaultBasisCodes()
	}
	return &Decoder{basisCodes: basisCodes}
}

// Decode parses one line into a tagged record. It is a pure function of the
// input: no side effects, no retained references.
func (d *Decoder) Decode(line string) (types.Record, error) {
	fields := strings.Split(line, Delimiter)

	switch field(fields, 1) {
	case "A":
		article, err := d.decodeArticle(fields)
		if err != nil {
			return types.Record{}, err
		}
		return types.Record{Type: types.RecordArticle, Article: article}, nil
	case "Z":
		step, err := d.decodePriceStep(fields)
		if err != nil {
			return types.Record{}, err
		}
		return types.Record{Type: types.RecordPriceStep, PriceStep: step}, nil
	default:
		return types.Record{}, fmt.Errorf("%w: unrecognized record type %q", ErrMalformed, field(fields, 1))
	}
}

// =============================================================================
// A RECORDS
// =============================================================================

func (d *Decoder) decodeArticle(fields []string) (*types.Article, error) {
	articleNo := field(fields, fieldArticleNo)
	if articleNo == "" {
		return nil, fmt.Errorf("%w: A record without article number", ErrMalformed)
	}

	basisCode, err := intField(fields, fieldBasisCode)
	if err != nil {
		return nil, err
	}
	basis := types.BasisUnknown
	if basisCode != nil {
		// Codes outside the table stay BasisUnknown: the price is kept
		// but belongs to neither family.
		if mapped, ok := d.basisCodes[*basisCode]; ok {
			basis = mapped
		}
	}

	priceValue, err := decimalField(fields, fieldPriceValue)
	if err != nil {
		return nil, err
	}
	if priceValue != nil && priceValue.IsNegative() {
		return nil, fmt.Errorf("%w: negative price value in field %d", ErrMalformed, fieldPriceValue)
	}

	// The supplier discount is taken only when it parses cleanly; a junk
	// value in field 23 does not invalidate the whole article.
	supplierPct := lenientDecimalField(fields, fieldSupplierPct)

	return &types.Article{
		ArticleNo:           articleNo,
		Name:                field(fields, fieldName),
		Unit:                field(fields, fieldUnit),
		PriceBasis:          basis,
		PriceValue:          priceValue,
		SupplierDiscountPct: supplierPct,
	}, nil
}

// =============================================================================
// Z RECORDS
// =============================================================================

func (d *Decoder) decodePriceStep(fields []string) (*types.PriceStep, error) {
	articleNo := field(fields, fieldArticleNo)
	if articleNo == "" {
		return nil, fmt.Errorf("%w: Z record without article number", ErrMalformed)
	}
	stepCode := field(fields, fieldStepCode)
	if stepCode == "" {
		return nil, fmt.Errorf("%w: Z record without step code", ErrMalformed)
	}

	kindCode, err := intField(fields, fieldStepKind)
	if err != nil {
		return nil, err
	}
	baseCode, err := intField(fields, fieldStepBase)
	if err != nil {
		return nil, err
	}
	value, err := decimalField(fields, fieldStepValue)
	if err != nil {
		return nil, err
	}
	minQty, err := decimalField(fields, fieldStepMinQty)
	if err != nil {
		return nil, err
	}
	maxQty, err := decimalField(fields, fieldStepMaxQty)
	if err != nil {
		return nil, err
	}

	return &types.PriceStep{
		ArticleNo:   articleNo,
		StepCode:    stepCode,
		Description: field(fields, fieldStepDesc),
		Kind:        stepKind(kindCode),
		Sign:        stepSign(field(fields, fieldStepSign)),
		Base:        stepBase(baseCode),
		Value:       value,
		MinQuantity: minQty,
		MaxQuantity: maxQty,
	}, nil
}

func stepKind(code *int) types.StepKind {
	if code == nil {
		return types.KindUnknown
	}
	switch *code {
	case 1:
		return types.KindGraduated
	case 2:
		return types.KindSurchargeAbsolute
	case 3:
		return types.KindSurchargePercent
	default:
		return types.KindUnknown
	}
}

func stepSign(raw string) types.StepSign {
	switch raw {
	case "+":
		return types.SignSurcharge
	case "-":
		return types.SignDiscount
	default:
		return types.SignUnknown
	}
}

// stepBase maps the base-price code of a Z record. Unlike the A record
// basis, this column is fixed by the step layout (1 list, 2 purchase) and
// does not go through the configurable code table.
func stepBase(code *int) types.PriceBasis {
	if code == nil {
		return types.BasisUnknown
	}
	switch *code {
	case 1:
		return types.BasisList
	case 2:
		return types.BasisPurchase
	default:
		return types.BasisUnknown
	}
}

// =============================================================================
// FIELD HELPERS
// =============================================================================

// field returns the 1-based positional field, trimmed, or "" when the line
// is too short.
func field(fields []string, pos int) string {
	if pos < 1 || pos > len(fields) {
		return ""
	}
	return strings.TrimSpace(fields[pos-1])
}

// intField parses an integer field. Absent fields yield nil; present but
// non-numeric fields are malformed.
func intField(fields []string, pos int) (*int, error) {
	raw := field(fields, pos)
	if raw == "" {
		return nil, nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: non-numeric value %q in field %d", ErrMalformed, raw, pos)
	}
	return &value, nil
}

// decimalField parses a decimal field. DATANORM files written by German
// systems use a decimal comma, so commas are normalized before parsing.
// Absent fields yield nil; present but non-numeric fields are malformed.
func decimalField(fields []string, pos int) (*decimal.Decimal, error) {
	raw := field(fields, pos)
	if raw == "" {
		return nil, nil
	}
	value, err := parseDecimal(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: non-numeric value %q in field %d", ErrMalformed, raw, pos)
	}
	return &value, nil
}

// lenientDecimalField parses a decimal field but swallows junk: anything
// that does not parse is treated as absent.
func lenientDecimalField(fields []string, pos int) *decimal.Decimal {
	raw := field(fields, pos)
	if raw == "" {
		return nil
	}
	value, err := parseDecimal(raw)
	if err != nil {
		return nil
	}
	return &value
}

func parseDecimal(raw string) (decimal.Decimal, error) {
	return decimal.NewFromString(strings.ReplaceAll(raw, ",", "."))
}
