// internal/services/admin_service.go
package services

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/hardwarehub/storefront-backend/internal/models"
)

type AdminService struct {
	db *gorm.DB
}

func NewAdminService(db *gorm.DB) *AdminService {
	return &AdminService{db: db}
}

func (s *AdminService) GetAdmin(ctx context.Context, cognitoID string) (*models.Admin, error) {
	var admin models.Admin
	if err := s.db.WithContext(ctx).Where("cognito_id = ?", cognitoID).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &admin, nil
}

func (s *AdminService) CreateAdmin(ctx context.Context, in *ProfileInput) (*models.Admin, error) {
	admin := &models.Admin{
		CognitoID:   in.CognitoID,
		Name:        in.Name,
		Email:       in.Email,
		PhoneNumber: in.PhoneNumber,
	}

	if err := s.db.WithContext(ctx).Create(admin).Error; err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}
	return admin, nil
}

func (s *AdminService) UpdateAdmin(ctx context.Context, cognitoID string, in *ProfileInput) (*models.Admin, error) {
	var admin models.Admin
	if err := s.db.WithContext(ctx).Where("cognito_id = ?", cognitoID).First(&admin).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAdminNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	updates := map[string]interface{}{
		"name":         in.Name,
		"email":        in.Email,
		"phone_number": in.PhoneNumber,
	}
	if err := s.db.WithContext(ctx).Model(&admin).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update admin: %w", err)
	}

	return &admin, nil
}
