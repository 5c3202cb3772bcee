package handlers

import (
	stderrors "errors"
	"reflect"
	"strconv"
	"sync"

	"inventory-service/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var registerOnce sync.Once

// RegisterValidators teaches gin's validator to compare decimal.Decimal fields as numbers
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
			if d, ok := field.Interface().(decimal.Decimal); ok {
				f, _ := d.Float64()
				return f
			}
			return nil
		}, decimal.Decimal{})
	})
}

// fieldMessages maps "Field.tag" to the client-facing message
var fieldMessages = map[string]string{
	"ProductName.required":  "Product name is required",
	"PricePerUnit.required": "Price per unit is required",
	"PricePerUnit.gt":       "Price must be greater than 0",
	"Quantity.required":     "Quantity is required",
	"Quantity.min":          "Quantity cannot be negative",
	"Status.oneof":          "Status must be one of ACTIVE, INACTIVE, DISCONTINUED",
	"Name.required":         "Name is required",
	"Email.required":        "Email is required",
	"Email.email":           "Email should be valid",
	"Rights.required":       "Rights are required",
	"Rights.oneof":          "Rights must be one of ADMIN, MANAGER, STAFF, READ_ONLY",
}

// bindJSON decodes the body into req and pushes a 400 StandardError on failure
func bindJSON(c *gin.Context, req interface{}) bool {
	err := c.ShouldBindJSON(req)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if stderrors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		msg, ok := fieldMessages[fe.Field()+"."+fe.Tag()]
		if !ok {
			msg = "invalid value for " + fe.Field()
		}
		c.Error(errors.NewValidationError(msg, fe.Field()))
		return false
	}

	c.Error(errors.NewInvalidRequest("invalid request body", err.Error()))
	return false
}

// parseID reads a positive numeric :id path parameter
func parseID(c *gin.Context) (uint, bool) {
	raw := c.Param("id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		c.Error(errors.NewInvalidRequest("invalid id: "+raw, "Path parameter id must be a positive integer"))
		return 0, false
	}
	return uint(id), true
}
