// internal/services/category_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/hardwarehub/storefront-backend/internal/cache"
	"github.com/hardwarehub/storefront-backend/internal/models"
)

type CategoryService struct {
	db    *gorm.DB
	cache *cache.Cache
}

func NewCategoryService(db *gorm.DB, cache *cache.Cache) *CategoryService {
	return &CategoryService{
		db:    db,
		cache: cache,
	}
}

type CreateCategoryInput struct {
	Name string `validate:"required"`
}

// ListCategories returns every category ordered by name, cache-aside.
func (s *CategoryService) ListCategories(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category

	if s.cache.GetJSON(ctx, cache.CategoryListKey, &categories) {
		return categories, nil
	}

	if err := s.db.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}

	s.cache.SetJSON(ctx, cache.CategoryListKey, categories)
	return categories, nil
}

// CreateCategory enforces case-insensitive name uniqueness at write time:
// "Laptops" followed by "laptops" is a conflict.
func (s *CategoryService) CreateCategory(ctx context.Context, in *CreateCategoryInput) (*models.Category, error) {
	name := strings.TrimSpace(in.Name)

	if len(name) < 2 {
		return nil, ErrCategoryNameTooShort
	}
	if len(name) > 50 {
		return nil, ErrCategoryNameTooLong
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Category{}).
		Where("LOWER(name) = LOWER(?)", name).
		Count(&count).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if count > 0 {
		return nil, ErrDuplicateCategory
	}

	category := &models.Category{Name: name}
	if err := s.db.WithContext(ctx).Create(category).Error; err != nil {
		// The unique constraint can still trip under concurrent creates.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateCategory
		}
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.cache.Delete(ctx, cache.CategoryListKey)
	return category, nil
}
