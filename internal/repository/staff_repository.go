package repository

import (
	"context"
	"errors"
	"fmt"

	"inventory-service/internal/domain"

	"gorm.io/gorm"
)

// StaffRepository defines the interface for staff persistence
type StaffRepository interface {
	Create(ctx context.Context, staff *domain.StaffMember) error
	Save(ctx context.Context, staff *domain.StaffMember) error
	FindByID(ctx context.Context, id uint) (*domain.StaffMember, error)
	FindByEmail(ctx context.Context, email string) (*domain.StaffMember, error)
	FindAll(ctx context.Context) ([]domain.StaffMember, error)
	Delete(ctx context.Context, id uint) error
}

type gormStaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) StaffRepository {
	return &gormStaffRepository{db: db}
}

func (r *gormStaffRepository) Create(ctx context.Context, staff *domain.StaffMember) error {
	if err := r.db.WithContext(ctx).Create(staff).Error; err != nil {
		return fmt.Errorf("failed to create staff: %w", err)
	}
	return nil
}

func (r *gormStaffRepository) Save(ctx context.Context, staff *domain.StaffMember) error {
	if err := r.db.WithContext(ctx).Save(staff).Error; err != nil {
		return fmt.Errorf("failed to save staff %d: %w", staff.ID, err)
	}
	return nil
}

func (r *gormStaffRepository) FindByID(ctx context.Context, id uint) (*domain.StaffMember, error) {
	var staff domain.StaffMember
	if err := r.db.WithContext(ctx).First(&staff, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find staff by ID: %w", err)
	}
	return &staff, nil
}

func (r *gormStaffRepository) FindByEmail(ctx context.Context, email string) (*domain.StaffMember, error) {
	var staff domain.StaffMember
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&staff).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find staff by email: %w", err)
	}
	return &staff, nil
}

func (r *gormStaffRepository) FindAll(ctx context.Context) ([]domain.StaffMember, error) {
	var staff []domain.StaffMember
	if err := r.db.WithContext(ctx).Order("id").Find(&staff).Error; err != nil {
		return nil, fmt.Errorf("failed to list staff: %w", err)
	}
	return staff, nil
}

func (r *gormStaffRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&domain.StaffMember{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete staff: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
