package persistence

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/merchreport/backend/internal/domain/report"
	"github.com/merchreport/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	productEntityType = "product"
	nameAttributeCode = "name"
	defaultStoreScope = 0
)

// GormMerchandiseReportRepository implements report.MerchandiseRepository
// using GORM.
type GormMerchandiseReportRepository struct {
	db *gorm.DB
}

// NewGormMerchandiseReportRepository creates a new GormMerchandiseReportRepository
func NewGormMerchandiseReportRepository(db *gorm.DB) *GormMerchandiseReportRepository {
	return &GormMerchandiseReportRepository{db: db}
}

// resolveNameAttributeID maps the product "name" attribute code to the
// numeric id used by the value table.
func (r *GormMerchandiseReportRepository) resolveNameAttributeID(ctx context.Context) (int64, error) {
	var attr models.AttributeModel
	err := r.db.WithContext(ctx).
		Where("entity_type = ? AND code = ?", productEntityType, nameAttributeCode).
		First(&attr).Error
	if err != nil {
		return 0, fmt.Errorf("%w: %v", report.ErrNameAttributeUnresolved, err)
	}
	return attr.ID, nil
}

// AggregateSales runs the per-SKU sales aggregation over order lines joined
// to their parent orders. Child lines of configurable/bundle products are
// excluded; refunded quantities only count on closed orders.
func (r *GormMerchandiseReportRepository) AggregateSales(ctx context.Context, q report.AggregateQuery) ([]report.MerchandiseRow, error) {
	attributeID, err := r.resolveNameAttributeID(ctx)
	if err != nil {
		return nil, err
	}

	type aggregateResult struct {
		SKU           string
		UnitsSold     decimal.Decimal
		UnitsRefunded decimal.Decimal
		FirstSaleAt   *time.Time
		LastSaleAt    *time.Time
		StaffMembers  *string
		ProductName   *string
	}

	var results []aggregateResult

	query := r.db.WithContext(ctx).Table("sales_order_items soi").
		Select(`
			soi.sku,
			COALESCE(SUM(CASE WHEN so.status IN ('complete', 'processing', 'closed') THEN soi.qty_ordered ELSE 0 END), 0) as units_sold,
			COALESCE(SUM(CASE WHEN so.status = 'closed' AND soi.qty_refunded > 0 THEN soi.qty_refunded ELSE 0 END), 0) as units_refunded,
			MIN(so.created_at) as first_sale_at,
			MAX(so.created_at) as last_sale_at,
			STRING_AGG(DISTINCT so.staff_name, ', ') as staff_members,
			MAX(pav.value) as product_name
		`).
		Joins("JOIN sales_orders so ON so.id = soi.order_id").
		Joins("LEFT JOIN product_attribute_values pav ON pav.product_id = soi.product_id AND pav.attribute_id = ? AND pav.store_id = ?",
			attributeID, defaultStoreScope).
		Where("soi.parent_item_id IS NULL").
		Where("so.status IN ?", report.RecognizedSaleStatuses).
		Where("so.created_at >= ?", q.From).
		Where("so.created_at <= ?", q.To).
		Where("soi.sku IN ?", q.SKUs)

	if q.StaffMember != "" {
		query = query.Where("so.staff_name LIKE ?", "%"+q.StaffMember+"%")
	}

	err = query.Group("soi.sku").
		Order("soi.sku ASC").
		Scan(&results).Error
	if err != nil {
		return nil, fmt.Errorf("merchandise aggregation failed: %w", err)
	}

	rows := make([]report.MerchandiseRow, len(results))
	for i, res := range results {
		row := report.MerchandiseRow{
			SKU:           res.SKU,
			UnitsSold:     res.UnitsSold.IntPart(),
			UnitsRefunded: res.UnitsRefunded.IntPart(),
			FirstSaleAt:   res.FirstSaleAt,
			LastSaleAt:    res.LastSaleAt,
		}
		if res.StaffMembers != nil {
			row.StaffMembers = *res.StaffMembers
		}
		if res.ProductName != nil {
			row.ProductName = *res.ProductName
		}
		rows[i] = row
	}

	return rows, nil
}

// ProductNameBySKU looks up the catalog name for one SKU. Unknown SKUs and
// products without a name attribute both resolve to an empty string.
func (r *GormMerchandiseReportRepository) ProductNameBySKU(ctx context.Context, sku string) (string, error) {
	attributeID, err := r.resolveNameAttributeID(ctx)
	if err != nil {
		return "", err
	}

	var name sql.NullString
	err = r.db.WithContext(ctx).Table("products p").
		Select("pav.value").
		Joins("LEFT JOIN product_attribute_values pav ON pav.product_id = p.id AND pav.attribute_id = ? AND pav.store_id = ?",
			attributeID, defaultStoreScope).
		Where("p.sku = ?", sku).
		Limit(1).
		Scan(&name).Error
	if err != nil {
		return "", fmt.Errorf("product name lookup failed for sku %q: %w", sku, err)
	}

	if !name.Valid {
		return "", nil
	}
	return name.String, nil
}
