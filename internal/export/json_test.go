package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akress/datanorm-az/internal/types"
)

func TestRenderJSONNumbersUnquoted(t *testing.T) {
	out, err := RenderJSON(samplePrice())
	require.NoError(t, err)

	assert.Contains(t, out, `"article_no"`)
	assert.Contains(t, out, ": 894")
	assert.NotContains(t, out, `"894"`)

	// Absent totals are omitted entirely on an implicit-quantity query.
	assert.NotContains(t, out, "total_list_price")
	assert.NotContains(t, out, "quantity")
}

func TestRenderJSONNullForAbsentUnitPrices(t *testing.T) {
	out, err := RenderJSON(types.CalculatedPrice{ArticleNo: "A1"})
	require.NoError(t, err)

	assert.Contains(t, out, `"list_price"`)
	assert.Contains(t, out, "null")
}

func TestAlignColons(t *testing.T) {
	in := strings.Join([]string{
		"{",
		`  "article_no": "2TOP",`,
		`  "name": "Handle",`,
		`  "supplier_discount_pct": 29.98`,
		"}",
	}, "\n")

	out := AlignColons(in)
	lines := strings.Split(out, "\n")
	require.Len(t, lines, 5)

	// Every colon of the level sits in the same column.
	col := strings.Index(lines[1], ":")
	for _, line := range lines[2:4] {
		assert.Equal(t, col, strings.Index(line, ":"), "line %q", line)
	}
	// Padding goes before the quoted key, values stay put.
	assert.True(t, strings.HasSuffix(lines[2], `"name": "Handle",`))
	assert.True(t, strings.HasPrefix(lines[2], "  "))
}

func TestAlignColonsLeavesFlatJSONAlone(t *testing.T) {
	assert.Equal(t, `{"a":1}`, AlignColons(`{"a":1}`))
	assert.Equal(t, "[]", AlignColons("[]"))
}

func TestAlignColonsPerDepth(t *testing.T) {
	in := strings.Join([]string{
		"{",
		`  "article": {`,
		`    "article_no": "2TOP",`,
		`    "unit": "ST"`,
		"  },",
		`  "prices": []`,
		"}",
	}, "\n")

	out := AlignColons(in)
	lines := strings.Split(out, "\n")

	// Depth 4 aligns on its own longest key, independent of depth 2.
	assert.Equal(t, strings.Index(lines[2], ":"), strings.Index(lines[3], ":"))
	assert.Equal(t, strings.Index(lines[1], ":"), strings.Index(lines[5], ":"))
}
