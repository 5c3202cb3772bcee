package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"inventory-service/internal/alerts"
	"inventory-service/internal/commands"
	"inventory-service/internal/domain"
	"inventory-service/pkg/errors"
	"inventory-service/pkg/middleware"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func init() {
	gin.SetMode(gin.TestMode)
	RegisterValidators()
}

// MockProductService is a mock implementation of ProductService
type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) CreateProduct(ctx context.Context, cmd commands.CreateProductCommand) (*domain.InventoryItem, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockProductService) GetAllProducts(ctx context.Context) ([]domain.InventoryItem, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.InventoryItem), args.Error(1)
}

func (m *MockProductService) GetProductByID(ctx context.Context, id uint) (*domain.InventoryItem, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockProductService) UpdateProduct(ctx context.Context, cmd commands.UpdateProductCommand) (*domain.InventoryItem, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockProductService) UpdateQuantity(ctx context.Context, cmd commands.UpdateQuantityCommand) (*domain.InventoryItem, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.InventoryItem), args.Error(1)
}

func (m *MockProductService) DeleteProduct(ctx context.Context, cmd commands.DeleteProductCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

// MockStaffService is a mock implementation of StaffService
type MockStaffService struct {
	mock.Mock
}

func (m *MockStaffService) CreateStaff(ctx context.Context, cmd commands.CreateStaffCommand) (*domain.StaffMember, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffMember), args.Error(1)
}

func (m *MockStaffService) GetAllStaff(ctx context.Context) ([]domain.StaffMember, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.StaffMember), args.Error(1)
}

func (m *MockStaffService) GetStaffByID(ctx context.Context, id uint) (*domain.StaffMember, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffMember), args.Error(1)
}

func (m *MockStaffService) UpdateStaff(ctx context.Context, cmd commands.UpdateStaffCommand) (*domain.StaffMember, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.StaffMember), args.Error(1)
}

func (m *MockStaffService) DeleteStaff(ctx context.Context, cmd commands.DeleteStaffCommand) error {
	args := m.Called(ctx, cmd)
	return args.Error(0)
}

// MockAlertChecker is a mock implementation of AlertChecker
type MockAlertChecker struct {
	mock.Mock
}

func (m *MockAlertChecker) Sweep(ctx context.Context) alerts.SweepResult {
	return m.Called(ctx).Get(0).(alerts.SweepResult)
}

func (m *MockAlertChecker) Alerted() []uint {
	return m.Called().Get(0).([]uint)
}

func (m *MockAlertChecker) Threshold() int {
	return m.Called().Int(0)
}

func newRouter(products ProductService, staff StaffService, checker AlertChecker) *gin.Engine {
	logger := zap.NewNop()
	router := gin.New()
	router.Use(middleware.ErrorHandler(logger))

	ph := NewProductHandler(products, logger)
	sh := NewStaffHandler(staff, logger)
	ah := NewAlertHandler(checker, []string{"console"}, logger)

	api := router.Group("/api")
	api.POST("/products", ph.CreateProduct)
	api.GET("/products", ph.ListProducts)
	api.GET("/products/:id", ph.GetProduct)
	api.PUT("/products/:id", ph.UpdateProduct)
	api.PATCH("/products/:id/quantity", ph.UpdateQuantity)
	api.DELETE("/products/:id", ph.DeleteProduct)
	api.POST("/staff", sh.CreateStaff)
	api.GET("/staff", sh.ListStaff)
	api.GET("/staff/:id", sh.GetStaff)
	api.PUT("/staff/:id", sh.UpdateStaff)
	api.DELETE("/staff/:id", sh.DeleteStaff)
	api.GET("/alerts", ah.GetAlerts)
	api.POST("/alerts/check", ah.RunCheck)
	return router
}

func do(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	router.ServeHTTP(w, req)
	return w
}

func widget(id uint, qty int) *domain.InventoryItem {
	item := domain.NewInventoryItem("Widget", decimal.RequireFromString("10.00"), qty, "")
	item.ID = id
	now := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	item.CreatedAt, item.UpdatedAt = now, now
	return item
}

func TestCreateProduct_Created(t *testing.T) {
	products := new(MockProductService)
	products.On("CreateProduct", mock.Anything, mock.MatchedBy(func(cmd commands.CreateProductCommand) bool {
		return cmd.ProductName == "Widget" && cmd.PricePerUnit.Equal(decimal.RequireFromString("10")) && *cmd.Quantity == 5
	})).Return(widget(1, 5), nil)

	w := do(newRouter(products, nil, nil), http.MethodPost, "/api/products", `{"productName":"Widget","pricePerUnit":10.00,"quantity":5}`)

	require.Equal(t, http.StatusCreated, w.Code)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(1), body["productId"])
	assert.Equal(t, float64(50), body["totalPrice"])
	assert.Equal(t, "ACTIVE", body["status"])
	assert.Contains(t, w.Body.String(), `"totalPrice":50.00`)
	products.AssertExpectations(t)
}

func TestCreateProduct_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"missing name", `{"pricePerUnit":10,"quantity":5}`, "Product name is required"},
		{"zero price", `{"productName":"Widget","pricePerUnit":0,"quantity":5}`, "Price must be greater than 0"},
		{"missing price", `{"productName":"Widget","quantity":5}`, "Price per unit is required"},
		{"negative quantity", `{"productName":"Widget","pricePerUnit":10,"quantity":-1}`, "Quantity cannot be negative"},
		{"bad status", `{"productName":"Widget","pricePerUnit":10,"quantity":1,"status":"SOLD"}`, "Status must be one of ACTIVE, INACTIVE, DISCONTINUED"},
		{"malformed json", `{"productName":`, "invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			products := new(MockProductService)

			w := do(newRouter(products, nil, nil), http.MethodPost, "/api/products", tt.body)

			assert.Equal(t, http.StatusBadRequest, w.Code)
			var stdErr errors.StandardError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stdErr))
			assert.Equal(t, tt.message, stdErr.Message)
			products.AssertNotCalled(t, "CreateProduct", mock.Anything, mock.Anything)
		})
	}
}

func TestGetProduct(t *testing.T) {
	products := new(MockProductService)
	products.On("GetProductByID", mock.Anything, uint(1)).Return(widget(1, 5), nil)
	products.On("GetProductByID", mock.Anything, uint(2)).Return(nil, errors.NewItemNotFound(2))
	router := newRouter(products, nil, nil)

	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/api/products/1", "").Code)

	w := do(router, http.MethodGet, "/api/products/2", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Product not found with ID: 2")

	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodGet, "/api/products/abc", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodGet, "/api/products/0", "").Code)
}

func TestListProducts_EmptyIsArray(t *testing.T) {
	products := new(MockProductService)
	products.On("GetAllProducts", mock.Anything).Return([]domain.InventoryItem{}, nil)

	w := do(newRouter(products, nil, nil), http.MethodGet, "/api/products", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}

func TestUpdateProduct(t *testing.T) {
	products := new(MockProductService)
	products.On("UpdateProduct", mock.Anything, mock.MatchedBy(func(cmd commands.UpdateProductCommand) bool {
		return cmd.ID == 3 && cmd.Status == domain.StatusDiscontinued
	})).Return(widget(3, 7), nil)

	w := do(newRouter(products, nil, nil), http.MethodPut, "/api/products/3",
		`{"productName":"Widget","pricePerUnit":"10.00","quantity":7,"status":"DISCONTINUED"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	products.AssertExpectations(t)
}

func TestUpdateQuantity(t *testing.T) {
	products := new(MockProductService)
	products.On("UpdateQuantity", mock.Anything, commands.UpdateQuantityCommand{ID: 1, Quantity: 30}).Return(widget(1, 30), nil)
	router := newRouter(products, nil, nil)

	w := do(router, http.MethodPatch, "/api/products/1/quantity", `{"quantity":30}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"totalPrice":300.00`)

	w = do(router, http.MethodPatch, "/api/products/1/quantity", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Quantity is required")

	products.AssertNumberOfCalls(t, "UpdateQuantity", 1)
}

func TestDeleteProduct(t *testing.T) {
	products := new(MockProductService)
	products.On("DeleteProduct", mock.Anything, commands.DeleteProductCommand{ID: 1}).Return(nil)
	products.On("DeleteProduct", mock.Anything, commands.DeleteProductCommand{ID: 9}).Return(errors.NewItemNotFound(9))
	router := newRouter(products, nil, nil)

	w := do(router, http.MethodDelete, "/api/products/1", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())

	assert.Equal(t, http.StatusNotFound, do(router, http.MethodDelete, "/api/products/9", "").Code)
}

func TestCreateStaff(t *testing.T) {
	staff := new(MockStaffService)
	staff.On("CreateStaff", mock.Anything, mock.AnythingOfType("commands.CreateStaffCommand")).
		Return(&domain.StaffMember{ID: 1, Name: "Ana", Email: "ana@example.com", Rights: domain.RightsStaff, Status: domain.StatusActive}, nil).Once()
	staff.On("CreateStaff", mock.Anything, mock.AnythingOfType("commands.CreateStaffCommand")).
		Return(nil, errors.NewDuplicateEmail("ana@example.com")).Once()
	router := newRouter(nil, staff, nil)

	body := `{"name":"Ana","email":"ana@example.com","rights":"STAFF"}`

	w := do(router, http.MethodPost, "/api/staff", body)
	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"ana@example.com"`)

	w = do(router, http.MethodPost, "/api/staff", body)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email already exists")
}

func TestCreateStaff_ValidationErrors(t *testing.T) {
	staff := new(MockStaffService)
	router := newRouter(nil, staff, nil)

	w := do(router, http.MethodPost, "/api/staff", `{"name":"Ana","email":"nope","rights":"STAFF"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Email should be valid")

	w = do(router, http.MethodPost, "/api/staff", `{"name":"Ana","email":"ana@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Rights are required")

	staff.AssertNotCalled(t, "CreateStaff", mock.Anything, mock.Anything)
}

func TestStaffNotFoundAndDelete(t *testing.T) {
	staff := new(MockStaffService)
	staff.On("GetStaffByID", mock.Anything, uint(4)).Return(nil, errors.NewStaffNotFound(4))
	staff.On("DeleteStaff", mock.Anything, commands.DeleteStaffCommand{ID: 5}).Return(nil)
	router := newRouter(nil, staff, nil)

	assert.Equal(t, http.StatusNotFound, do(router, http.MethodGet, "/api/staff/4", "").Code)
	assert.Equal(t, http.StatusNoContent, do(router, http.MethodDelete, "/api/staff/5", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(router, http.MethodPut, "/api/staff/x", `{}`).Code)
}

func TestAlertEndpoints(t *testing.T) {
	checker := new(MockAlertChecker)
	checker.On("Threshold").Return(2)
	checker.On("Alerted").Return([]uint{4, 7})
	checker.On("Sweep", mock.Anything).Return(alerts.SweepResult{LowStock: 2, Notified: []uint{7}})
	router := newRouter(nil, nil, checker)

	w := do(router, http.MethodGet, "/api/alerts", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"threshold":2,"alerted":[4,7],"sinks":["console"]}`, w.Body.String())

	w = do(router, http.MethodPost, "/api/alerts/check", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"lowStock":2,"notified":[7],"ledgerReset":false,"failed":false}`, w.Body.String())
}
