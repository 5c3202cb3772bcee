package service

import (
	"context"
	"testing"
	"time"

	"inventory-service/internal/alerts"
	"inventory-service/internal/cache"
	"inventory-service/internal/commands"
	"inventory-service/internal/config"
	"inventory-service/internal/domain"
	"inventory-service/internal/events"
	"inventory-service/internal/repository"
	"inventory-service/pkg/errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type inventoryFixture struct {
	service   *InventoryService
	repo      repository.InventoryRepository
	checker   *alerts.Checker
	publisher *events.InMemoryEventPublisher
	cache     *cache.InMemoryCache
}

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	cfg := &config.Config{
		DBDriver:   "sqlite",
		SQLitePath: "file:" + uuid.New().String() + "?mode=memory&cache=shared",
	}
	db, err := repository.OpenDatabase(cfg, zap.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = repository.CloseDatabase(db) })
	return db
}

func newInventoryFixture(t *testing.T) *inventoryFixture {
	logger := zap.NewNop()
	repo := repository.NewInventoryRepository(setupTestDB(t))
	alertService := alerts.NewAlertService(2, []alerts.Sink{alerts.ConsoleSink(logger)}, logger, nil)
	checker := alerts.NewChecker(repo, alertService, logger, nil)
	publisher := events.NewEventPublisher(logger)
	c := cache.NewInMemoryCache(logger)

	return &inventoryFixture{
		service:   NewInventoryService(repo, checker, publisher, c, time.Minute, logger),
		repo:      repo,
		checker:   checker,
		publisher: publisher,
		cache:     c,
	}
}

func intPtr(v int) *int { return &v }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func (f *inventoryFixture) create(t *testing.T, name, price string, qty int) *domain.InventoryItem {
	t.Helper()
	item, err := f.service.CreateProduct(context.Background(), commands.CreateProductCommand{
		ProductName:  name,
		PricePerUnit: decPtr(price),
		Quantity:     intPtr(qty),
	})
	require.NoError(t, err)
	return item
}

func TestInventoryService_CreateProduct(t *testing.T) {
	f := newInventoryFixture(t)

	item := f.create(t, "Widget", "10.00", 5)

	assert.NotZero(t, item.ID)
	assert.Equal(t, "50.00", item.TotalPrice.Decimal.StringFixed(2))
	assert.Equal(t, domain.StatusActive, item.Status)
	assert.Equal(t, item.CreatedAt, item.UpdatedAt)

	published := f.publisher.Events()
	require.Len(t, published, 1)
	created, ok := published[0].(events.ProductCreatedEvent)
	require.True(t, ok)
	assert.Equal(t, "50.00", created.TotalPrice)
}

func TestInventoryService_CreateProduct_ValidationError(t *testing.T) {
	f := newInventoryFixture(t)

	_, err := f.service.CreateProduct(context.Background(), commands.CreateProductCommand{
		ProductName:  "Widget",
		PricePerUnit: decPtr("-1"),
		Quantity:     intPtr(1),
	})

	require.Error(t, err)
	stdErr, ok := err.(*errors.StandardError)
	require.True(t, ok)
	assert.Equal(t, 400, stdErr.HTTPStatus())
	assert.Empty(t, f.publisher.Events())
}

func TestInventoryService_GetProductByID_NotFound(t *testing.T) {
	f := newInventoryFixture(t)

	_, err := f.service.GetProductByID(context.Background(), 404)

	require.Error(t, err)
	assert.Equal(t, "Product not found with ID: 404", err.Error())
	assert.Equal(t, 404, err.(*errors.StandardError).HTTPStatus())
}

func TestInventoryService_GetProductByID_UsesCache(t *testing.T) {
	f := newInventoryFixture(t)
	ctx := context.Background()
	item := f.create(t, "Cable", "2.50", 4)

	first, err := f.service.GetProductByID(ctx, item.ID)
	require.NoError(t, err)

	var cached domain.InventoryItem
	require.NoError(t, cache.GetJSON(ctx, f.cache, productCacheKey(item.ID), &cached))
	assert.Equal(t, first.ProductName, cached.ProductName)
	assert.True(t, first.TotalPrice.Decimal.Equal(cached.TotalPrice.Decimal))

	_, err = f.service.UpdateQuantity(ctx, commands.UpdateQuantityCommand{ID: item.ID, Quantity: 8})
	require.NoError(t, err)

	_, err = f.cache.Get(ctx, productCacheKey(item.ID))
	assert.ErrorIs(t, err, cache.ErrCacheMiss)

	fresh, err := f.service.GetProductByID(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, 8, fresh.Quantity)
	assert.Equal(t, "20.00", fresh.TotalPrice.Decimal.StringFixed(2))
}

func TestInventoryService_UpdateProduct(t *testing.T) {
	f := newInventoryFixture(t)
	item := f.create(t, "Widget", "10.00", 5)
	item.Status = domain.StatusInactive
	require.NoError(t, f.repo.Save(context.Background(), item))

	updated, err := f.service.UpdateProduct(context.Background(), commands.UpdateProductCommand{
		ID:           item.ID,
		ProductName:  "Widget Pro",
		PricePerUnit: decPtr("25.50"),
		Quantity:     intPtr(10),
	})

	require.NoError(t, err)
	assert.Equal(t, "Widget Pro", updated.ProductName)
	assert.Equal(t, "255.00", updated.TotalPrice.Decimal.StringFixed(2))
	// empty status keeps the stored one
	assert.Equal(t, domain.StatusInactive, updated.Status)
	assert.False(t, updated.UpdatedAt.Before(updated.CreatedAt))
}

func TestInventoryService_UpdateProduct_NotFound(t *testing.T) {
	f := newInventoryFixture(t)

	_, err := f.service.UpdateProduct(context.Background(), commands.UpdateProductCommand{
		ID:           77,
		ProductName:  "Ghost",
		PricePerUnit: decPtr("1.00"),
		Quantity:     intPtr(1),
	})

	require.Error(t, err)
	assert.Equal(t, "ItemNotFound", err.(*errors.StandardError).Code)
}

func TestInventoryService_UpdateQuantity_ClearsAlertWhenReplenished(t *testing.T) {
	f := newInventoryFixture(t)
	ctx := context.Background()
	item := f.create(t, "Widget", "10.00", 1)

	f.checker.Sweep(ctx)
	require.Equal(t, []uint{item.ID}, f.checker.Alerted())

	updated, err := f.service.UpdateQuantity(ctx, commands.UpdateQuantityCommand{ID: item.ID, Quantity: 30})
	require.NoError(t, err)

	assert.Equal(t, "300.00", updated.TotalPrice.Decimal.StringFixed(2))
	assert.Empty(t, f.checker.Alerted())

	low, err := f.repo.FindByQuantityLessThan(ctx, 2)
	require.NoError(t, err)
	assert.Empty(t, low)

	published := f.publisher.Events()
	last, ok := published[len(published)-1].(events.ProductQuantityUpdatedEvent)
	require.True(t, ok)
	assert.Equal(t, 1, last.PreviousQuantity)
	assert.Equal(t, 30, last.Quantity)
}

func TestInventoryService_UpdateQuantity_StillLowKeepsAlert(t *testing.T) {
	f := newInventoryFixture(t)
	ctx := context.Background()
	item := f.create(t, "Widget", "10.00", 1)

	f.checker.Sweep(ctx)
	_, err := f.service.UpdateQuantity(ctx, commands.UpdateQuantityCommand{ID: item.ID, Quantity: 0})
	require.NoError(t, err)

	assert.Equal(t, []uint{item.ID}, f.checker.Alerted())
}

func TestInventoryService_UpdateQuantity_Negative(t *testing.T) {
	f := newInventoryFixture(t)
	item := f.create(t, "Widget", "10.00", 1)

	_, err := f.service.UpdateQuantity(context.Background(), commands.UpdateQuantityCommand{ID: item.ID, Quantity: -1})

	require.Error(t, err)
	assert.Equal(t, "Quantity cannot be negative", err.Error())
}

func TestInventoryService_DeleteProduct(t *testing.T) {
	f := newInventoryFixture(t)
	ctx := context.Background()
	item := f.create(t, "Widget", "10.00", 5)

	require.NoError(t, f.service.DeleteProduct(ctx, commands.DeleteProductCommand{ID: item.ID}))

	err := f.service.DeleteProduct(ctx, commands.DeleteProductCommand{ID: item.ID})
	require.Error(t, err)
	assert.Equal(t, "ItemNotFound", err.(*errors.StandardError).Code)

	items, err := f.service.GetAllProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, items)
}
