package report

import (
	"context"
	"errors"
	"time"
)

// RecognizedSaleStatuses is the set of order statuses counted toward units sold.
var RecognizedSaleStatuses = []string{"complete", "processing", "closed"}

// RefundedStatus is the only order status whose refunded quantities are counted.
const RefundedStatus = "closed"

// ErrNameAttributeUnresolved is returned when the product "name" attribute
// cannot be resolved against the attribute metadata.
var ErrNameAttributeUnresolved = errors.New("product name attribute could not be resolved")

// MerchandiseRow is one aggregated per-SKU result row.
// Rows are built fresh per query invocation and never persisted.
type MerchandiseRow struct {
	SKU           string     `json:"sku"`
	ProductName   string     `json:"product_name"`
	UnitsSold     int64      `json:"sales"`
	UnitsRefunded int64      `json:"refunds"`
	StaffMembers  string     `json:"staff_member"`
	FirstSaleAt   *time.Time `json:"first_sale_date,omitempty"`
	LastSaleAt    *time.Time `json:"last_sale_date,omitempty"`
}

// ZeroRow synthesizes a backfill row for a SKU with no sales in range.
func ZeroRow(sku, productName string) MerchandiseRow {
	return MerchandiseRow{
		SKU:         sku,
		ProductName: productName,
	}
}

// AggregateQuery carries the cleaned parameters for one aggregation run.
// From and To are already widened to full-day bounds; they stay strings so a
// malformed date passes through to the storage layer and yields no matches
// instead of a hard error.
type AggregateQuery struct {
	From        string
	To          string
	SKUs        []string
	StaffMember string
}

// MerchandiseRepository is the storage query interface consumed by the
// report engine: one aggregation over order lines joined to orders and the
// product name attribute, plus a per-SKU name lookup for backfilled rows.
type MerchandiseRepository interface {
	AggregateSales(ctx context.Context, q AggregateQuery) ([]MerchandiseRow, error)
	ProductNameBySKU(ctx context.Context, sku string) (string, error)
}
