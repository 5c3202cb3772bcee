package handlers

import (
	"context"
	"net/http"

	"inventory-service/internal/commands"
	"inventory-service/internal/domain"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ProductService is the product use case layer the handler depends on
type ProductService interface {
	CreateProduct(ctx context.Context, cmd commands.CreateProductCommand) (*domain.InventoryItem, error)
	GetAllProducts(ctx context.Context) ([]domain.InventoryItem, error)
	GetProductByID(ctx context.Context, id uint) (*domain.InventoryItem, error)
	UpdateProduct(ctx context.Context, cmd commands.UpdateProductCommand) (*domain.InventoryItem, error)
	UpdateQuantity(ctx context.Context, cmd commands.UpdateQuantityCommand) (*domain.InventoryItem, error)
	DeleteProduct(ctx context.Context, cmd commands.DeleteProductCommand) error
}

type ProductHandler struct {
	service ProductService
	logger  *zap.Logger
}

func NewProductHandler(service ProductService, logger *zap.Logger) *ProductHandler {
	return &ProductHandler{service: service, logger: logger}
}

// CreateProduct handles POST /api/products
// @Summary      Create a product
// @Description  Creates an inventory item. totalPrice is computed as pricePerUnit * quantity. Low stock alerts are sent by the next scheduled check or POST /alerts/check.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        request  body      ProductRequest  true  "Product"
// @Success      201      {object}  ProductResponse
// @Failure      400      {object}  errors.StandardError
// @Router       /products [post]
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.service.CreateProduct(c.Request.Context(), commands.CreateProductCommand{
		ProductName:  req.ProductName,
		PricePerUnit: req.PricePerUnit,
		Quantity:     req.Quantity,
		Status:       req.Status,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, newProductResponse(item))
}

// ListProducts handles GET /api/products
// @Summary      List products
// @Tags         products
// @Produce      json
// @Success      200  {array}   ProductResponse
// @Failure      500  {object}  errors.StandardError
// @Router       /products [get]
func (h *ProductHandler) ListProducts(c *gin.Context) {
	items, err := h.service.GetAllProducts(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	resp := make([]ProductResponse, 0, len(items))
	for i := range items {
		resp = append(resp, newProductResponse(&items[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// GetProduct handles GET /api/products/{id}
// @Summary      Get a product
// @Tags         products
// @Produce      json
// @Param        id   path      int  true  "Product ID"
// @Success      200  {object}  ProductResponse
// @Failure      400  {object}  errors.StandardError
// @Failure      404  {object}  errors.StandardError
// @Router       /products/{id} [get]
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	item, err := h.service.GetProductByID(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, newProductResponse(item))
}

// UpdateProduct handles PUT /api/products/{id}
// @Summary      Replace a product
// @Description  Replaces name, price and quantity. Status is kept when omitted. Low stock alerts are sent by the next scheduled check or POST /alerts/check.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id       path      int             true  "Product ID"
// @Param        request  body      ProductRequest  true  "Product"
// @Success      200      {object}  ProductResponse
// @Failure      400      {object}  errors.StandardError
// @Failure      404      {object}  errors.StandardError
// @Router       /products/{id} [put]
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req ProductRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.service.UpdateProduct(c.Request.Context(), commands.UpdateProductCommand{
		ID:           id,
		ProductName:  req.ProductName,
		PricePerUnit: req.PricePerUnit,
		Quantity:     req.Quantity,
		Status:       req.Status,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, newProductResponse(item))
}

// UpdateQuantity handles PATCH /api/products/{id}/quantity
// @Summary      Set product quantity
// @Description  Sets the stock quantity. A quantity of 2 or more clears an outstanding low stock alert. Low stock alerts are sent by the next scheduled check or POST /alerts/check.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id       path      int                    true  "Product ID"
// @Param        request  body      UpdateQuantityRequest  true  "New quantity"
// @Success      200      {object}  ProductResponse
// @Failure      400      {object}  errors.StandardError
// @Failure      404      {object}  errors.StandardError
// @Router       /products/{id}/quantity [patch]
func (h *ProductHandler) UpdateQuantity(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req UpdateQuantityRequest
	if !bindJSON(c, &req) {
		return
	}

	item, err := h.service.UpdateQuantity(c.Request.Context(), commands.UpdateQuantityCommand{
		ID:       id,
		Quantity: *req.Quantity,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, newProductResponse(item))
}

// DeleteProduct handles DELETE /api/products/{id}
// @Summary      Delete a product
// @Tags         products
// @Param        id   path  int  true  "Product ID"
// @Success      204
// @Failure      400  {object}  errors.StandardError
// @Failure      404  {object}  errors.StandardError
// @Router       /products/{id} [delete]
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.service.DeleteProduct(c.Request.Context(), commands.DeleteProductCommand{ID: id}); err != nil {
		c.Error(err)
		return
	}

	c.Status(http.StatusNoContent)
}
