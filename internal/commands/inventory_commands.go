package commands

import (
	"strings"

	"inventory-service/internal/domain"
	"inventory-service/pkg/errors"

	"github.com/shopspring/decimal"
)

// CreateProductCommand represents a command to create a new inventory item
type CreateProductCommand struct {
	ProductName  string
	PricePerUnit *decimal.Decimal
	Quantity     *int
	Status       domain.Status
}

// UpdateProductCommand represents a full update of an inventory item.
// An empty Status keeps the stored one.
type UpdateProductCommand struct {
	ID           uint
	ProductName  string
	PricePerUnit *decimal.Decimal
	Quantity     *int
	Status       domain.Status
}

// UpdateQuantityCommand represents a quantity-only update
type UpdateQuantityCommand struct {
	ID       uint
	Quantity int
}

// DeleteProductCommand represents a command to delete an inventory item
type DeleteProductCommand struct {
	ID uint
}

// Validate checks the product fields shared by create and update
func (c CreateProductCommand) Validate() error {
	return validateProduct(c.ProductName, c.PricePerUnit, c.Quantity, c.Status)
}

func (c UpdateProductCommand) Validate() error {
	return validateProduct(c.ProductName, c.PricePerUnit, c.Quantity, c.Status)
}

func (c UpdateQuantityCommand) Validate() error {
	if c.Quantity < 0 {
		return errors.NewInvalidRequest("Quantity cannot be negative", "Field: quantity")
	}
	return nil
}

func validateProduct(name string, price *decimal.Decimal, quantity *int, status domain.Status) error {
	if strings.TrimSpace(name) == "" {
		return errors.NewInvalidRequest("Product name is required", "Field: productName")
	}
	if price == nil || price.Sign() <= 0 {
		return errors.NewInvalidRequest("Price per unit must be greater than 0", "Field: pricePerUnit")
	}
	if quantity == nil || *quantity < 0 {
		return errors.NewInvalidRequest("Quantity cannot be negative", "Field: quantity")
	}
	if status != "" && !status.Valid() {
		return errors.NewInvalidRequest("Invalid status: "+string(status), "Allowed: ACTIVE, INACTIVE, DISCONTINUED")
	}
	return nil
}
