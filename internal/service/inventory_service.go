package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"inventory-service/internal/cache"
	"inventory-service/internal/commands"
	"inventory-service/internal/domain"
	"inventory-service/internal/events"
	"inventory-service/internal/repository"
	"inventory-service/pkg/errors"

	"go.uber.org/zap"
)

// replenishedQuantity is the quantity at or above which a quantity update clears
// an outstanding low stock alert. It does not follow ALERT_THRESHOLD.
const replenishedQuantity = 2

// AlertClearer forgets the outstanding alert for a product
type AlertClearer interface {
	Clear(id uint)
}

// InventoryService handles product business logic: validation, persistence, events and alert clearing
type InventoryService struct {
	repo      repository.InventoryRepository
	alerts    AlertClearer
	publisher events.EventPublisher
	cache     cache.Cache
	cacheTTL  time.Duration
	logger    *zap.Logger
}

// NewInventoryService creates a new inventory service. cache may be nil.
func NewInventoryService(
	repo repository.InventoryRepository,
	alerts AlertClearer,
	publisher events.EventPublisher,
	c cache.Cache,
	cacheTTL time.Duration,
	logger *zap.Logger,
) *InventoryService {
	return &InventoryService{
		repo:      repo,
		alerts:    alerts,
		publisher: publisher,
		cache:     c,
		cacheTTL:  cacheTTL,
		logger:    logger,
	}
}

func (s *InventoryService) CreateProduct(ctx context.Context, cmd commands.CreateProductCommand) (*domain.InventoryItem, error) {
	s.logger.Info("Creating new product", zap.String("product", cmd.ProductName))

	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	item := domain.NewInventoryItem(cmd.ProductName, *cmd.PricePerUnit, *cmd.Quantity, cmd.Status)
	if err := s.repo.Create(ctx, item); err != nil {
		s.logger.Error("Failed to create product", zap.Error(err))
		return nil, errors.NewDatabaseError("create product", err)
	}

	s.logger.Info("Product created successfully", zap.Uint("product_id", item.ID))
	s.publish(ctx, events.ProductCreatedEvent{
		ProductID:    item.ID,
		ProductName:  item.ProductName,
		PricePerUnit: item.PricePerUnit.StringFixed(2),
		Quantity:     item.Quantity,
		TotalPrice:   item.TotalPrice.Decimal.StringFixed(2),
		Status:       string(item.Status),
		OccurredAt:   item.CreatedAt,
	})
	return item, nil
}

func (s *InventoryService) GetAllProducts(ctx context.Context) ([]domain.InventoryItem, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		s.logger.Error("Failed to list products", zap.Error(err))
		return nil, errors.NewDatabaseError("list products", err)
	}
	return items, nil
}

// GetProductByID reads through the cache when one is configured
func (s *InventoryService) GetProductByID(ctx context.Context, id uint) (*domain.InventoryItem, error) {
	if s.cache != nil {
		var cached domain.InventoryItem
		if err := cache.GetJSON(ctx, s.cache, productCacheKey(id), &cached); err == nil {
			s.logger.Debug("Cache hit", zap.Uint("product_id", id))
			return &cached, nil
		}
	}

	item, err := s.findProduct(ctx, id)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := cache.SetJSON(ctx, s.cache, productCacheKey(id), item, s.cacheTTL); err != nil {
			s.logger.Warn("Failed to cache product", zap.Uint("product_id", id), zap.Error(err))
		}
	}
	return item, nil
}

// UpdateProduct replaces name, price and quantity. An empty status keeps the stored one.
func (s *InventoryService) UpdateProduct(ctx context.Context, cmd commands.UpdateProductCommand) (*domain.InventoryItem, error) {
	s.logger.Info("Updating product", zap.Uint("product_id", cmd.ID))

	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	item, err := s.findProduct(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	item.ProductName = cmd.ProductName
	item.PricePerUnit = *cmd.PricePerUnit
	item.Quantity = *cmd.Quantity
	if cmd.Status != "" {
		item.Status = cmd.Status
	}

	if err := s.repo.Save(ctx, item); err != nil {
		s.logger.Error("Failed to update product", zap.Uint("product_id", cmd.ID), zap.Error(err))
		return nil, errors.NewDatabaseError("update product", err)
	}
	s.invalidate(ctx, item.ID)

	s.logger.Info("Product updated successfully", zap.Uint("product_id", item.ID))
	s.publish(ctx, events.ProductUpdatedEvent{
		ProductID:    item.ID,
		ProductName:  item.ProductName,
		PricePerUnit: item.PricePerUnit.StringFixed(2),
		Quantity:     item.Quantity,
		TotalPrice:   item.TotalPrice.Decimal.StringFixed(2),
		Status:       string(item.Status),
		OccurredAt:   item.UpdatedAt,
	})
	return item, nil
}

// UpdateQuantity changes only the quantity and clears the product's alert once it is replenished
func (s *InventoryService) UpdateQuantity(ctx context.Context, cmd commands.UpdateQuantityCommand) (*domain.InventoryItem, error) {
	s.logger.Info("Updating quantity", zap.Uint("product_id", cmd.ID), zap.Int("quantity", cmd.Quantity))

	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	item, err := s.findProduct(ctx, cmd.ID)
	if err != nil {
		return nil, err
	}

	previous := item.Quantity
	item.Quantity = cmd.Quantity
	if err := s.repo.Save(ctx, item); err != nil {
		s.logger.Error("Failed to update quantity", zap.Uint("product_id", cmd.ID), zap.Error(err))
		return nil, errors.NewDatabaseError("update quantity", err)
	}
	s.invalidate(ctx, item.ID)

	if cmd.Quantity >= replenishedQuantity {
		s.logger.Info("Stock replenished, clearing alert", zap.Uint("product_id", item.ID))
		s.alerts.Clear(item.ID)
	}

	s.publish(ctx, events.ProductQuantityUpdatedEvent{
		ProductID:        item.ID,
		PreviousQuantity: previous,
		Quantity:         item.Quantity,
		TotalPrice:       item.TotalPrice.Decimal.StringFixed(2),
		OccurredAt:       item.UpdatedAt,
	})
	return item, nil
}

func (s *InventoryService) DeleteProduct(ctx context.Context, cmd commands.DeleteProductCommand) error {
	s.logger.Info("Deleting product", zap.Uint("product_id", cmd.ID))

	if err := s.repo.Delete(ctx, cmd.ID); err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return errors.NewItemNotFound(cmd.ID)
		}
		s.logger.Error("Failed to delete product", zap.Uint("product_id", cmd.ID), zap.Error(err))
		return errors.NewDatabaseError("delete product", err)
	}
	s.invalidate(ctx, cmd.ID)

	s.logger.Info("Product deleted successfully", zap.Uint("product_id", cmd.ID))
	s.publish(ctx, events.ProductDeletedEvent{ProductID: cmd.ID, OccurredAt: time.Now().UTC()})
	return nil
}

func (s *InventoryService) findProduct(ctx context.Context, id uint) (*domain.InventoryItem, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, repository.ErrNotFound) {
			return nil, errors.NewItemNotFound(id)
		}
		s.logger.Error("Failed to load product", zap.Uint("product_id", id), zap.Error(err))
		return nil, errors.NewDatabaseError("find product", err)
	}
	return item, nil
}

func (s *InventoryService) invalidate(ctx context.Context, id uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, productCacheKey(id)); err != nil {
		s.logger.Warn("Failed to invalidate product cache", zap.Uint("product_id", id), zap.Error(err))
	}
}

// publish never fails the request; the write is already committed
func (s *InventoryService) publish(ctx context.Context, event interface{}) {
	if err := s.publisher.Publish(ctx, event); err != nil {
		s.logger.Error("Failed to publish event", zap.String("event", events.EventType(event)), zap.Error(err))
	}
}

func productCacheKey(id uint) string {
	return fmt.Sprintf("product:%d", id)
}
