// =============================================================================
// DATANORM-AZ Processor - XLSX Export
// =============================================================================
//
// Writes the same calculated-price table as the CSV export into a
// spreadsheet. Numeric columns are written as numbers so filtering and
// summing work without retyping cells; absent values stay empty.
//
// =============================================================================

package export

import (
	"fmt"

	"github.com/akress/datanorm-az/internal/types"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// WriteXLSXFile writes the prices into a single-sheet workbook at path.
func WriteXLSXFile(path string, prices []types.CalculatedPrice, withQuantity bool) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())

	header := make([]interface{}, 0, len(priceColumns)+len(quantityColumns))
	for _, column := range Columns(withQuantity) {
		header = append(header, column)
	}
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for i, price := range prices {
		cellName, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address row %d: %w", i+2, err)
		}
		row := xlsxRow(price, withQuantity)
		if err := f.SetSheetRow(sheet, cellName, &row); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", price.ArticleNo, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}
	return nil
}

func xlsxRow(price types.CalculatedPrice, withQuantity bool) []interface{} {
	row := []interface{}{
		price.ArticleNo,
		price.Name,
		price.Unit,
		numberCell(price.ListPrice),
		numberCell(price.SupplierDiscountPct),
		numberCell(price.PurchasePrice),
		price.OverheadPct.InexactFloat64(),
		numberCell(price.CalculatedPurchase),
		numberCell(price.MarkupPct),
		numberCell(price.SalePrice),
	}
	if withQuantity {
		row = append(row,
			numberCell(price.Quantity),
			numberCell(price.TotalListPrice),
			numberCell(price.TotalPurchasePrice),
			numberCell(price.TotalCalculatedPurchase),
			numberCell(price.TotalSalePrice),
		)
	}
	return row
}

// numberCell converts an optional decimal to a spreadsheet value: a float
// when present, an empty cell when absent.
func numberCell(value *decimal.Decimal) interface{} {
	if value == nil {
		return nil
	}
	return value.InexactFloat64()
}
