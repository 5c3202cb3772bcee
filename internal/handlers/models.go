package handlers

import (
	"encoding/json"
	"time"

	"inventory-service/internal/domain"

	"github.com/shopspring/decimal"
)

// ProductRequest is the body for creating or fully updating a product
// @Description Product fields. Status defaults to ACTIVE on create and is kept on update when omitted.
type ProductRequest struct {
	ProductName  string           `json:"productName" binding:"required" example:"Widget"`
	PricePerUnit *decimal.Decimal `json:"pricePerUnit" binding:"required,gt=0" swaggertype:"number" example:"10.00"`
	Quantity     *int             `json:"quantity" binding:"required,min=0" example:"5"`
	Status       domain.Status    `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE DISCONTINUED" swaggertype:"string" enums:"ACTIVE,INACTIVE,DISCONTINUED" example:"ACTIVE"`
}

// UpdateQuantityRequest is the body for PATCH /api/products/{id}/quantity
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" binding:"required,min=0" example:"30"`
}

// ProductResponse represents a stored product
type ProductResponse struct {
	ProductID    uint         `json:"productId" example:"1"`
	ProductName  string       `json:"productName" example:"Widget"`
	PricePerUnit json.Number  `json:"pricePerUnit" swaggertype:"number" example:"10.00"`
	Quantity     int          `json:"quantity" example:"5"`
	TotalPrice   *json.Number `json:"totalPrice" swaggertype:"number" example:"50.00"`
	CreatedDate  time.Time    `json:"createdDate" example:"2024-01-15T10:30:00Z"`
	UpdatedDate  time.Time    `json:"updatedDate" example:"2024-01-15T10:30:00Z"`
	Status       string       `json:"status" example:"ACTIVE"`
}

// StaffRequest is the body for creating or fully updating a staff member
type StaffRequest struct {
	Name        string        `json:"name" binding:"required" example:"Ana Lopez"`
	Email       string        `json:"email" binding:"required,email" example:"ana@example.com"`
	Designation string        `json:"designation" example:"Store Manager"`
	Department  string        `json:"department" example:"Operations"`
	Rights      domain.Rights `json:"rights" binding:"required,oneof=ADMIN MANAGER STAFF READ_ONLY" swaggertype:"string" enums:"ADMIN,MANAGER,STAFF,READ_ONLY" example:"MANAGER"`
	PhoneNumber string        `json:"phoneNumber" example:"+1-555-0100"`
	Status      domain.Status `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE DISCONTINUED" swaggertype:"string" enums:"ACTIVE,INACTIVE,DISCONTINUED" example:"ACTIVE"`
}

// StaffResponse represents a stored staff member
type StaffResponse struct {
	ID          uint      `json:"id" example:"1"`
	Name        string    `json:"name" example:"Ana Lopez"`
	Email       string    `json:"email" example:"ana@example.com"`
	Designation string    `json:"designation" example:"Store Manager"`
	Department  string    `json:"department" example:"Operations"`
	Rights      string    `json:"rights" example:"MANAGER"`
	PhoneNumber string    `json:"phoneNumber" example:"+1-555-0100"`
	Status      string    `json:"status" example:"ACTIVE"`
	CreatedDate time.Time `json:"createdDate" example:"2024-01-15T10:30:00Z"`
	UpdatedDate time.Time `json:"updatedDate" example:"2024-01-15T10:30:00Z"`
}

// AlertStatusResponse shows the outstanding low stock alerts
type AlertStatusResponse struct {
	Threshold int      `json:"threshold" example:"2"`
	Alerted   []uint   `json:"alerted"`
	Sinks     []string `json:"sinks"`
}

// SweepResponse is the outcome of a manually triggered check
type SweepResponse struct {
	LowStock    int    `json:"lowStock" example:"1"`
	Notified    []uint `json:"notified"`
	LedgerReset bool   `json:"ledgerReset" example:"false"`
	Failed      bool   `json:"failed" example:"false"`
}

func newProductResponse(item *domain.InventoryItem) ProductResponse {
	resp := ProductResponse{
		ProductID:    item.ID,
		ProductName:  item.ProductName,
		PricePerUnit: money(item.PricePerUnit),
		Quantity:     item.Quantity,
		CreatedDate:  item.CreatedAt,
		UpdatedDate:  item.UpdatedAt,
		Status:       string(item.Status),
	}
	if item.TotalPrice.Valid {
		total := money(item.TotalPrice.Decimal)
		resp.TotalPrice = &total
	}
	return resp
}

func newStaffResponse(staff *domain.StaffMember) StaffResponse {
	return StaffResponse{
		ID:          staff.ID,
		Name:        staff.Name,
		Email:       staff.Email,
		Designation: staff.Designation,
		Department:  staff.Department,
		Rights:      string(staff.Rights),
		PhoneNumber: staff.PhoneNumber,
		Status:      string(staff.Status),
		CreatedDate: staff.CreatedAt,
		UpdatedDate: staff.UpdatedAt,
	}
}

// money renders a two-place JSON number without going through float64
func money(d decimal.Decimal) json.Number {
	return json.Number(d.StringFixed(2))
}
