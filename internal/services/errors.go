// internal/services/errors.go
package services

import "errors"

// Service-level errors mapped onto the HTTP taxonomy by the handlers.
var (
	ErrProductNotFound   = errors.New("product not found")
	ErrDuplicateProduct  = errors.New("a product with this name or slug already exists")
	ErrInvalidCategory   = errors.New("invalid category ID")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrDuplicateCategory = errors.New("a category with this name already exists")

	ErrCategoryNameTooShort = errors.New("category name must be at least 2 characters long")
	ErrCategoryNameTooLong  = errors.New("category name cannot exceed 50 characters")
	ErrUserNotFound      = errors.New("user not found")
	ErrAdminNotFound     = errors.New("admin not found")
	ErrAlreadyFavorite   = errors.New("product already added as favorite")
)
