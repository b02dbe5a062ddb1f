package export

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/akress/datanorm-az/internal/types"
)

func TestWriteXLSXFile(t *testing.T) {
	empty := types.CalculatedPrice{ArticleNo: "BARE"}

	path := filepath.Join(t.TempDir(), "prices.xlsx")
	require.NoError(t, WriteXLSXFile(path, []types.CalculatedPrice{samplePrice(), empty}, false))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	rows, err := f.GetRows(sheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, Columns(false), rows[0])

	first := rows[1]
	assert.Equal(t, "2TOP", first[0])
	assert.Equal(t, "894", first[3])
	assert.Equal(t, "688.6", first[7])

	// Absent prices are genuinely empty cells, not zeroes. GetRows trims
	// trailing empty cells, so the bare row shrinks to its article number.
	second := rows[2]
	assert.Equal(t, "BARE", second[0])
	for _, cellValue := range second[1:] {
		if cellValue != "" && cellValue != "0" {
			t.Fatalf("unexpected cell value %q in bare row", cellValue)
		}
	}
}

func TestWriteXLSXFileWithQuantity(t *testing.T) {
	price := samplePrice()
	price.Quantity = decPtr("3")
	price.TotalSalePrice = decPtr("2682.00")

	path := filepath.Join(t.TempDir(), "prices.xlsx")
	require.NoError(t, WriteXLSXFile(path, []types.CalculatedPrice{price}, true))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	header, err := f.GetRows(sheet)
	require.NoError(t, err)
	assert.Equal(t, Columns(true), header[0])

	quantity, err := f.GetCellValue(sheet, "K2")
	require.NoError(t, err)
	assert.Equal(t, "3", quantity)
}
