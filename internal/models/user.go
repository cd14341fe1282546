// internal/models/user.go
package models

// User is a customer profile bound to an external auth subject. Rows are
// created lazily on the first authenticated request that references them.
type User struct {
	BaseModel
	CognitoID   string `json:"cognito_id" gorm:"uniqueIndex;size:255;not null"`
	Name        string `json:"name" gorm:"size:255"`
	Email       string `json:"email" gorm:"size:255"`
	PhoneNumber string `json:"phone_number" gorm:"size:50"`

	// Relationships
	Favorites []Product `json:"favorites,omitempty" gorm:"many2many:user_favorites"`
}

// Admin mirrors User without the favorites relation.
type Admin struct {
	BaseModel
	CognitoID   string `json:"cognito_id" gorm:"uniqueIndex;size:255;not null"`
	Name        string `json:"name" gorm:"size:255"`
	Email       string `json:"email" gorm:"size:255"`
	PhoneNumber string `json:"phone_number" gorm:"size:50"`
}
