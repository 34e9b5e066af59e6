// Package export renders report result sets as downloadable files.
package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/merchreport/backend/internal/domain/report"
)

// utf8BOM is prepended so spreadsheet tools detect UTF-8 encoding.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// saleTimeLayout matches the timestamp format the grid displays.
const saleTimeLayout = "2006-01-02 15:04:05"

// FormatSaleTime renders an optional sale timestamp; absent values (backfill
// rows) render as an empty field.
func FormatSaleTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(saleTimeLayout)
}

// RowValues flattens one row into the export column order: SKU, name, sales,
// refunds, staff members, first sale, last sale.
func RowValues(row report.MerchandiseRow) []string {
	return []string{
		row.SKU,
		row.ProductName,
		strconv.FormatInt(row.UnitsSold, 10),
		strconv.FormatInt(row.UnitsRefunded, 10),
		row.StaffMembers,
		FormatSaleTime(row.FirstSaleAt),
		FormatSaleTime(row.LastSaleAt),
	}
}

// Render serializes the header and rows as CSV prefixed with a UTF-8 byte
// order mark. Fields are quoted per RFC 4180; row order is preserved.
func Render(header []string, rows []report.MerchandiseRow) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write(RowValues(row)); err != nil {
			return nil, fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}
