// =============================================================================
// DATANORM-AZ Processor - CSV Export
// =============================================================================
//
// Writes calculated prices as a flat CSV table. The column set mirrors the
// calculated price record; the quantity and total columns appear only when
// the export was run with an explicit quantity, so a quantity-less export
// stays byte-compatible with older spreadsheets built on top of it.
//
// =============================================================================

package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/akress/datanorm-az/internal/types"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
)

var priceColumns = []string{
	"article_no",
	"name",
	"unit",
	"list_price",
	"supplier_discount_pct",
	"purchase_price",
	"overhead_pct",
	"calculated_purchase_price",
	"markup_pct",
	"sale_price",
}

var quantityColumns = []string{
	"quantity",
	"total_list_price",
	"total_purchase_price",
	"total_calculated_purchase_price",
	"total_sale_price",
}

// Columns returns the CSV header row.
func Columns(withQuantity bool) []string {
	columns := append([]string(nil), priceColumns...)
	if withQuantity {
		columns = append(columns, quantityColumns...)
	}
	return columns
}

// Row flattens one calculated price into CSV cells, in column order.
// Absent values become empty cells.
func Row(price types.CalculatedPrice, withQuantity bool) []string {
	row := []string{
		price.ArticleNo,
		price.Name,
		price.Unit,
		cell(price.ListPrice),
		cell(price.SupplierDiscountPct),
		cell(price.PurchasePrice),
		price.OverheadPct.String(),
		cell(price.CalculatedPurchase),
		cell(price.MarkupPct),
		cell(price.SalePrice),
	}
	if withQuantity {
		row = append(row,
			cell(price.Quantity),
			cell(price.TotalListPrice),
			cell(price.TotalPurchasePrice),
			cell(price.TotalCalculatedPurchase),
			cell(price.TotalSalePrice),
		)
	}
	return row
}

// WriteCSV writes the header and one row per calculated price.
func WriteCSV(w io.Writer, prices []types.CalculatedPrice, withQuantity bool) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(Columns(withQuantity)); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, price := range prices {
		if err := writer.Write(Row(price, withQuantity)); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", price.ArticleNo, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// WriteCSVFile creates the file and writes the prices in the given output
// encoding.
func WriteCSVFile(path string, prices []types.CalculatedPrice, withQuantity bool, encoding string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer file.Close()

	writer, err := encodeWriter(file, encoding)
	if err != nil {
		return err
	}
	if err := WriteCSV(writer, prices, withQuantity); err != nil {
		return err
	}
	return file.Close()
}

func cell(value *decimal.Decimal) string {
	if value == nil {
		return ""
	}
	return value.String()
}

// encodeWriter wraps the raw writer with a character-set encoder. UTF-8
// output passes through untouched.
func encodeWriter(w io.Writer, encoding string) (io.Writer, error) {
	switch strings.ToLower(strings.TrimSpace(encoding)) {
	case "", "utf-8", "utf8":
		return w, nil
	case "latin-1", "latin1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1.NewEncoder().Writer(w), nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252.NewEncoder().Writer(w), nil
	default:
		return nil, fmt.Errorf("unsupported output encoding %q", encoding)
	}
}
