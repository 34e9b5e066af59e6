package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// SalesOrderModel is the order header the report aggregates over. Orders are
// written by the host platform; this service only reads them.
type SalesOrderModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key"`
	Status    string    `gorm:"type:varchar(32);not null;index"`
	StaffName string    `gorm:"column:staff_name;type:varchar(200)"`
	CreatedAt time.Time `gorm:"not null;index"`
	UpdatedAt time.Time `gorm:"not null"`
}

// TableName returns the table name for GORM
func (SalesOrderModel) TableName() string {
	return "sales_orders"
}

// SalesOrderItemModel is one order line. Configurable/bundle parents span
// multiple lines; child lines carry ParentItemID and are excluded from
// aggregation.
type SalesOrderItemModel struct {
	ID           uuid.UUID       `gorm:"type:uuid;primary_key"`
	OrderID      uuid.UUID       `gorm:"type:uuid;not null;index"`
	ParentItemID *uuid.UUID      `gorm:"type:uuid;index"`
	ProductID    uuid.UUID       `gorm:"type:uuid;not null;index"`
	SKU          string          `gorm:"column:sku;type:varchar(64);not null;index"`
	QtyOrdered   decimal.Decimal `gorm:"type:decimal(12,4);not null;default:0"`
	QtyRefunded  decimal.Decimal `gorm:"type:decimal(12,4);not null;default:0"`
	UnitPrice    decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0"`
}

// TableName returns the table name for GORM
func (SalesOrderItemModel) TableName() string {
	return "sales_order_items"
}

// ProductModel is the catalog entity used for backfill name lookups.
type ProductModel struct {
	ID  uuid.UUID `gorm:"type:uuid;primary_key"`
	SKU string    `gorm:"column:sku;type:varchar(64);not null;uniqueIndex"`
}

// TableName returns the table name for GORM
func (ProductModel) TableName() string {
	return "products"
}

// AttributeModel is the attribute-metadata row mapping a human-readable code
// to the numeric id used by the value table.
type AttributeModel struct {
	ID         int64  `gorm:"primary_key;autoIncrement"`
	EntityType string `gorm:"type:varchar(32);not null;uniqueIndex:idx_attributes_entity_code,priority:1"`
	Code       string `gorm:"type:varchar(64);not null;uniqueIndex:idx_attributes_entity_code,priority:2"`
}

// TableName returns the table name for GORM
func (AttributeModel) TableName() string {
	return "attributes"
}

// ProductAttributeValueModel is one varchar attribute value per product per
// store scope. Store 0 is the catalog default scope.
type ProductAttributeValueModel struct {
	ID          int64     `gorm:"primary_key;autoIncrement"`
	AttributeID int64     `gorm:"not null;index"`
	ProductID   uuid.UUID `gorm:"type:uuid;not null;index"`
	StoreID     int       `gorm:"not null;default:0"`
	Value       string    `gorm:"type:varchar(255)"`
}

// TableName returns the table name for GORM
func (ProductAttributeValueModel) TableName() string {
	return "product_attribute_values"
}
