package domain

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventoryItem is a product line held in stock.
// TotalPrice is kept equal to PricePerUnit * Quantity by the BeforeSave hook.
type InventoryItem struct {
	ID           uint                `gorm:"column:product_id;primaryKey;autoIncrement"`
	ProductName  string              `gorm:"not null"`
	PricePerUnit decimal.Decimal     `gorm:"type:numeric(10,2);not null"`
	Quantity     int                 `gorm:"not null;index"`
	TotalPrice   decimal.NullDecimal `gorm:"type:numeric(15,2)"`
	Status       Status              `gorm:"type:varchar(20);not null"`
	CreatedAt    time.Time           `gorm:"column:created_date;not null;autoCreateTime:false"`
	UpdatedAt    time.Time           `gorm:"column:updated_date;autoUpdateTime:false"`
}

// TableName specifies the table name
func (InventoryItem) TableName() string {
	return "inventory_stock"
}

// NewInventoryItem creates an unsaved item; a zero status falls back to ACTIVE.
func NewInventoryItem(name string, pricePerUnit decimal.Decimal, quantity int, status Status) *InventoryItem {
	item := &InventoryItem{
		ProductName:  name,
		PricePerUnit: pricePerUnit,
		Quantity:     quantity,
		Status:       status.OrDefault(),
	}
	item.RecalculateTotal()
	return item
}

// CalculateTotal returns price * quantity using exact decimal arithmetic.
// The result is invalid (unset) when either operand is missing.
func CalculateTotal(pricePerUnit *decimal.Decimal, quantity *int) decimal.NullDecimal {
	if pricePerUnit == nil || quantity == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{
		Decimal: pricePerUnit.Mul(decimal.NewFromInt(int64(*quantity))),
		Valid:   true,
	}
}

// RecalculateTotal refreshes the derived TotalPrice field
func (i *InventoryItem) RecalculateTotal() {
	i.TotalPrice = CalculateTotal(&i.PricePerUnit, &i.Quantity)
}

// IsLowStock reports whether the quantity is strictly below threshold
func (i *InventoryItem) IsLowStock(threshold int) bool {
	return i.Quantity < threshold
}

// BeforeCreate stamps both timestamps with the same instant and defaults the status
func (i *InventoryItem) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	i.CreatedAt = now
	i.UpdatedAt = now
	i.Status = i.Status.OrDefault()
	return nil
}

// BeforeUpdate refreshes the modification timestamp
func (i *InventoryItem) BeforeUpdate(tx *gorm.DB) error {
	i.UpdatedAt = time.Now()
	return nil
}

// BeforeSave runs on both create and update
func (i *InventoryItem) BeforeSave(tx *gorm.DB) error {
	i.RecalculateTotal()
	return nil
}
