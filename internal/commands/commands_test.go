package commands

import (
	"testing"

	"inventory-service/internal/domain"
	"inventory-service/pkg/errors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int { return &v }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestCreateProductCommand_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cmd     CreateProductCommand
		message string
	}{
		{"valid", CreateProductCommand{ProductName: "Widget", PricePerUnit: decPtr("10.00"), Quantity: intPtr(5)}, ""},
		{"zero quantity allowed", CreateProductCommand{ProductName: "Widget", PricePerUnit: decPtr("1"), Quantity: intPtr(0)}, ""},
		{"blank name", CreateProductCommand{ProductName: "  ", PricePerUnit: decPtr("10.00"), Quantity: intPtr(5)}, "Product name is required"},
		{"missing price", CreateProductCommand{ProductName: "Widget", Quantity: intPtr(5)}, "Price per unit must be greater than 0"},
		{"zero price", CreateProductCommand{ProductName: "Widget", PricePerUnit: decPtr("0"), Quantity: intPtr(5)}, "Price per unit must be greater than 0"},
		{"missing quantity", CreateProductCommand{ProductName: "Widget", PricePerUnit: decPtr("10.00")}, "Quantity cannot be negative"},
		{"negative quantity", CreateProductCommand{ProductName: "Widget", PricePerUnit: decPtr("10.00"), Quantity: intPtr(-1)}, "Quantity cannot be negative"},
		{"bad status", CreateProductCommand{ProductName: "Widget", PricePerUnit: decPtr("10.00"), Quantity: intPtr(1), Status: "GONE"}, "Invalid status: GONE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cmd.Validate()
			if tt.message == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			stdErr, ok := err.(*errors.StandardError)
			require.True(t, ok)
			assert.Equal(t, "InvalidRequest", stdErr.Code)
			assert.Equal(t, tt.message, stdErr.Message)
		})
	}
}

func TestUpdateQuantityCommand_Validate(t *testing.T) {
	assert.NoError(t, UpdateQuantityCommand{ID: 1, Quantity: 0}.Validate())
	assert.Error(t, UpdateQuantityCommand{ID: 1, Quantity: -3}.Validate())
}

func TestCreateStaffCommand_Validate(t *testing.T) {
	valid := CreateStaffCommand{Name: "Ana", Email: "ana@example.com", Rights: domain.RightsManager}
	assert.NoError(t, valid.Validate())

	noEmail := valid
	noEmail.Email = ""
	assert.EqualError(t, noEmail.Validate(), "Email is required")

	badEmail := valid
	badEmail.Email = "not-an-email"
	assert.EqualError(t, badEmail.Validate(), "Email should be valid")

	noRights := valid
	noRights.Rights = ""
	assert.EqualError(t, noRights.Validate(), "Rights are required")

	badRights := valid
	badRights.Rights = "ROOT"
	assert.EqualError(t, badRights.Validate(), "Invalid rights: ROOT")
}
