// internal/services/user_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hardwarehub/storefront-backend/internal/models"
)

type UserService struct {
	db *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{db: db}
}

type ProfileInput struct {
	CognitoID   string `json:"cognito_id" validate:"required"`
	Name        string `json:"name"`
	Email       string `json:"email" validate:"omitempty,email"`
	PhoneNumber string `json:"phone_number"`
}

func (s *UserService) GetUser(ctx context.Context, cognitoID string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Preload("Favorites").
		Where("cognito_id = ?", cognitoID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}

func (s *UserService) CreateUser(ctx context.Context, in *ProfileInput) (*models.User, error) {
	user := &models.User{
		CognitoID:   in.CognitoID,
		Name:        in.Name,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
	}

	if err := s.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, cognitoID string, in *ProfileInput) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("cognito_id = ?", cognitoID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := map[string]interface{}{
		"name":         in.Name,
		"email":        in.Email,
		"phone_number": in.PhoneNumber,
	}
	if err := s.db.WithContext(ctx).Model(&user).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return &user, nil
}

// AddFavorite links a product to the user's favorites; adding the same
// product twice is a conflict.
func (s *UserService) AddFavorite(ctx context.Context, cognitoID string, productID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Preload("Favorites").
		Where("cognito_id = ?", cognitoID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	for _, favorite := range user.Favorites {
		if favorite.ID == productID {
			return nil, ErrAlreadyFavorite
		}
	}

	var product models.Product
	if err := s.db.WithContext(ctx).First(&product, productID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(&user).Association("Favorites").Append(&product); err != nil {
		return nil, fmt.Errorf("failed to add favorite: %w", err)
	}

	user.Favorites = append(user.Favorites, product)
	return &user, nil
}

func (s *UserService) RemoveFavorite(ctx context.Context, cognitoID string, productID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("cognito_id = ?", cognitoID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	if err := s.db.WithContext(ctx).Model(&user).Association("Favorites").
		Delete(&models.Product{BaseModel: models.BaseModel{ID: productID}}); err != nil {
		return nil, fmt.Errorf("failed to remove favorite: %w", err)
	}

	if err := s.db.WithContext(ctx).Preload("Favorites").First(&user, user.ID).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &user, nil
}
