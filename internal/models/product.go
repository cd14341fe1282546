// internal/models/product.go
package models

import (
	"github.com/google/uuid"
)

type Product struct {
	BaseModel
	Name        string  `json:"name" gorm:"size:255;not null"`
	Slug        string  `json:"slug" gorm:"uniqueIndex;size:255;not null"`
	Description *string `json:"description" gorm:"type:text"`
	Price       float64 `json:"price" gorm:"type:decimal(10,2);not null"`
	Stock       int     `json:"stock" gorm:"not null;default:0;check:stock >= 0"`

	// Nullable marketing fields; an explicit null on update clears them.
	DiscountPercent *int     `json:"discount_percent"`
	Warranty        *string  `json:"warranty" gorm:"size:255"`
	AverageRating   *float64 `json:"average_rating" gorm:"type:decimal(3,2)"`
	ReviewCount     *int     `json:"review_count"`

	// ImageURL mirrors ImageURLs[0]; both nil/empty when the product has no
	// images.
	ImageURL  *string    `json:"image_url" gorm:"size:2048"`
	ImageURLs StringList `json:"image_urls" gorm:"type:text"`

	Specs SpecList `json:"specs" gorm:"type:text"`

	CategoryID uuid.UUID `json:"category_id" gorm:"type:uuid;not null;index"`

	// Relationships
	Category Category `json:"category" gorm:"foreignKey:CategoryID"`
}

type Category struct {
	BaseModel
	Name string `json:"name" gorm:"uniqueIndex;size:50;not null"`
}
