package decoder

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akress/datanorm-az/internal/types"
)

// recordLine builds a semicolon-delimited record with values at the given
// 1-based positions.
func recordLine(total int, values map[int]string) string {
	fields := make([]string, total)
	for pos, value := range values {
		fields[pos-1] = value
	}
	return strings.Join(fields, ";")
}

func articleLine(values map[int]string) string {
	base := map[int]string{1: "A", 3: "2TOP"}
	for pos, value := range values {
		base[pos] = value
	}
	return recordLine(23, base)
}

func stepLine(values map[int]string) string {
	base := map[int]string{1: "Z", 3: "2TOP", 4: "01"}
	for pos, value := range values {
		base[pos] = value
	}
	return recordLine(16, base)
}

func TestDecodeArticle(t *testing.T) {
	dec := New(nil)

	record, err := dec.Decode(articleLine(map[int]string{
		4:  "Lever handle set",
		6:  "ST",
		7:  "1",
		9:  "894,00",
		23: "12,5",
	}))
	require.NoError(t, err)
	require.Equal(t, types.RecordArticle, record.Type)
	require.NotNil(t, record.Article)

	article := record.Article
	assert.Equal(t, "2TOP", article.ArticleNo)
	assert.Equal(t, "Lever handle set", article.Name)
	assert.Equal(t, "ST", article.Unit)
	assert.Equal(t, types.BasisList, article.PriceBasis)
	require.NotNil(t, article.PriceValue)
	assert.True(t, article.PriceValue.Equal(decimal.RequireFromString("894.00")))
	require.NotNil(t, article.SupplierDiscountPct)
	assert.True(t, article.SupplierDiscountPct.Equal(decimal.RequireFromString("12.5")))
}

func TestDecodeArticleBasisCodes(t *testing.T) {
	dec := New(nil)

	cases := []struct {
		code string
		want types.PriceBasis
	}{
		{"1", types.BasisList},
		{"9", types.BasisList},
		{"2", types.BasisPurchase},
		{"5", types.BasisUnknown},
		{"", types.BasisUnknown},
	}
	for _, tc := range cases {
		record, err := dec.Decode(articleLine(map[int]string{7: tc.code, 9: "10"}))
		require.NoError(t, err, "code %q", tc.code)
		assert.Equal(t, tc.want, record.Article.PriceBasis, "code %q", tc.code)
	}
}

func TestDecodeArticleCustomBasisCodes(t *testing.T) {
	dec := New(BasisCodes{7: types.BasisPurchase})

	record, err := dec.Decode(articleLine(map[int]string{7: "7", 9: "10"}))
	require.NoError(t, err)
	assert.Equal(t, types.BasisPurchase, record.Article.PriceBasis)

	// The default convention is gone once a table is supplied.
	record, err = dec.Decode(articleLine(map[int]string{7: "1", 9: "10"}))
	require.NoError(t, err)
	assert.Equal(t, types.BasisUnknown, record.Article.PriceBasis)
}

func TestDecodeArticleAbsentPrice(t *testing.T) {
	dec := New(nil)

	record, err := dec.Decode(articleLine(map[int]string{7: "1"}))
	require.NoError(t, err)
	assert.Nil(t, record.Article.PriceValue)
	assert.Nil(t, record.Article.SupplierDiscountPct)
}

func TestDecodeArticleJunkDiscountIsIgnored(t *testing.T) {
	dec := New(nil)

	// A junk supplier discount must not invalidate the article.
	record, err := dec.Decode(articleLine(map[int]string{9: "10", 23: "n/a"}))
	require.NoError(t, err)
	assert.Nil(t, record.Article.SupplierDiscountPct)
	require.NotNil(t, record.Article.PriceValue)
}

func TestDecodeArticleMalformed(t *testing.T) {
	dec := New(nil)

	cases := map[string]string{
		"missing article number": recordLine(23, map[int]string{1: "A"}),
		"non-numeric basis code": articleLine(map[int]string{7: "x"}),
		"non-numeric price":      articleLine(map[int]string{9: "abc"}),
		"negative price":         articleLine(map[int]string{9: "-1,50"}),
	}
	for name, line := range cases {
		_, err := dec.Decode(line)
		require.Error(t, err, name)
		assert.ErrorIs(t, err, ErrMalformed, name)
	}
}

func TestDecodePriceStep(t *testing.T) {
	dec := New(nil)

	record, err := dec.Decode(stepLine(map[int]string{
		6:  "Bulk tier",
		8:  "1",
		9:  "-",
		10: "1",
		12: "850,00",
		15: "10",
		16: "99",
	}))
	require.NoError(t, err)
	require.Equal(t, types.RecordPriceStep, record.Type)
	require.NotNil(t, record.PriceStep)

	step := record.PriceStep
	assert.Equal(t, "2TOP", step.ArticleNo)
	assert.Equal(t, "01", step.StepCode)
	assert.Equal(t, "Bulk tier", step.Description)
	assert.Equal(t, types.KindGraduated, step.Kind)
	assert.Equal(t, types.SignDiscount, step.Sign)
	assert.Equal(t, types.BasisList, step.Base)
	assert.True(t, step.Value.Equal(decimal.RequireFromString("850.00")))
	assert.True(t, step.MinQuantity.Equal(decimal.NewFromInt(10)))
	assert.True(t, step.MaxQuantity.Equal(decimal.NewFromInt(99)))
}

func TestDecodePriceStepShortLine(t *testing.T) {
	dec := New(nil)

	// Z records may stop before the quantity range; the bounds are absent.
	record, err := dec.Decode("Z;;2TOP;01;;Tier;;1;+;2;;10,00")
	require.NoError(t, err)
	step := record.PriceStep
	assert.Equal(t, types.SignSurcharge, step.Sign)
	assert.Equal(t, types.BasisPurchase, step.Base)
	assert.Nil(t, step.MinQuantity)
	assert.Nil(t, step.MaxQuantity)
}

func TestDecodePriceStepUnknownCodes(t *testing.T) {
	dec := New(nil)

	record, err := dec.Decode(stepLine(map[int]string{8: "4", 9: "?", 10: "3", 12: "5"}))
	require.NoError(t, err)
	step := record.PriceStep
	assert.Equal(t, types.KindUnknown, step.Kind)
	assert.Equal(t, types.SignUnknown, step.Sign)
	assert.Equal(t, types.BasisUnknown, step.Base)
}

func TestDecodePriceStepMalformed(t *testing.T) {
	dec := New(nil)

	cases := map[string]string{
		"missing article number": recordLine(16, map[int]string{1: "Z", 4: "01"}),
		"missing step code":      recordLine(16, map[int]string{1: "Z", 3: "2TOP"}),
		"non-numeric kind":       stepLine(map[int]string{8: "one"}),
		"non-numeric value":      stepLine(map[int]string{12: "abc"}),
		"non-numeric min":        stepLine(map[int]string{15: "few"}),
	}
	for name, line := range cases {
		_, err := dec.Decode(line)
		require.Error(t, err, name)
		assert.ErrorIs(t, err, ErrMalformed, name)
	}
}

func TestDecodeUnrecognizedRecordType(t *testing.T) {
	dec := New(nil)

	for _, line := range []string{"V;;;", "B;x;y", "K", ";;;"} {
		_, err := dec.Decode(line)
		assert.ErrorIs(t, err, ErrMalformed, "line %q", line)
	}
}
