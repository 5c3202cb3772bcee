package repository

import (
	"context"
	"errors"
	"fmt"

	"inventory-service/internal/domain"

	"gorm.io/gorm"
)

// ErrNotFound is returned when no record matches the given key
var ErrNotFound = errors.New("record not found")

// InventoryRepository defines the interface for inventory persistence
type InventoryRepository interface {
	Create(ctx context.Context, item *domain.InventoryItem) error
	Save(ctx context.Context, item *domain.InventoryItem) error
	FindByID(ctx context.Context, id uint) (*domain.InventoryItem, error)
	FindAll(ctx context.Context) ([]domain.InventoryItem, error)
	FindByQuantityLessThan(ctx context.Context, threshold int) ([]domain.InventoryItem, error)
	Delete(ctx context.Context, id uint) error
}

type gormInventoryRepository struct {
	db *gorm.DB
}

func NewInventoryRepository(db *gorm.DB) InventoryRepository {
	return &gormInventoryRepository{db: db}
}

func (r *gormInventoryRepository) Create(ctx context.Context, item *domain.InventoryItem) error {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

func (r *gormInventoryRepository) Save(ctx context.Context, item *domain.InventoryItem) error {
	if err := r.db.WithContext(ctx).Save(item).Error; err != nil {
		return fmt.Errorf("failed to save product %d: %w", item.ID, err)
	}
	return nil
}

func (r *gormInventoryRepository) FindByID(ctx context.Context, id uint) (*domain.InventoryItem, error) {
	var item domain.InventoryItem
	err := r.db.WithContext(ctx).First(&item, "product_id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find product by ID: %w", err)
	}
	return &item, nil
}

func (r *gormInventoryRepository) FindAll(ctx context.Context) ([]domain.InventoryItem, error) {
	var items []domain.InventoryItem
	if err := r.db.WithContext(ctx).Order("product_id").Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return items, nil
}

// FindByQuantityLessThan returns every item whose quantity is strictly below threshold
func (r *gormInventoryRepository) FindByQuantityLessThan(ctx context.Context, threshold int) ([]domain.InventoryItem, error) {
	var items []domain.InventoryItem
	err := r.db.WithContext(ctx).
		Where("quantity < ?", threshold).
		Order("product_id").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to query low stock products: %w", err)
	}
	return items, nil
}

func (r *gormInventoryRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.InventoryItem{}, "product_id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
