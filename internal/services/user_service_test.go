// internal/services/user_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/hardwarehub/storefront-backend/internal/models"
)

type UserServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	service *UserService
	product models.Product
}

func (s *UserServiceTestSuite) SetupTest() {
	s.db = openTestDB(s.T(), "user_service_"+uuid.New().String()[:8])
	s.service = NewUserService(s.db)

	category := models.Category{Name: "Peripherals"}
	s.Require().NoError(s.db.Create(&category).Error)

	s.product = models.Product{
		Name:       "Wireless Mouse",
		Slug:       "wireless-mouse",
		Price:      49.99,
		Stock:      30,
		CategoryID: category.ID,
	}
	s.Require().NoError(s.db.Create(&s.product).Error)
}

func (s *UserServiceTestSuite) createUser(cognitoID string) *models.User {
	user, err := s.service.CreateUser(context.Background(), &ProfileInput{
		CognitoID: cognitoID,
		Name:      "Test User",
		Email:     "user@example.com",
	})
	s.Require().NoError(err)
	return user
}

func (s *UserServiceTestSuite) TestCreateAndGetUser() {
	s.createUser("cognito-123")

	user, err := s.service.GetUser(context.Background(), "cognito-123")

	s.Require().NoError(err)
	s.Equal("cognito-123", user.CognitoID)
	s.Equal("Test User", user.Name)
	s.Empty(user.Favorites)
}

func (s *UserServiceTestSuite) TestGetUserNotFound() {
	_, err := s.service.GetUser(context.Background(), "missing")
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *UserServiceTestSuite) TestUpdateUser() {
	s.createUser("cognito-123")

	updated, err := s.service.UpdateUser(context.Background(), "cognito-123", &ProfileInput{
		CognitoID:   "cognito-123",
		Name:        "Renamed User",
		Email:       "renamed@example.com",
		PhoneNumber: "+15550001111",
	})

	s.Require().NoError(err)
	s.Equal("Renamed User", updated.Name)
	s.Equal("renamed@example.com", updated.Email)
	s.Equal("+15550001111", updated.PhoneNumber)
}

func (s *UserServiceTestSuite) TestUpdateUserNotFound() {
	_, err := s.service.UpdateUser(context.Background(), "missing", &ProfileInput{CognitoID: "missing"})
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *UserServiceTestSuite) TestAddFavorite() {
	s.createUser("cognito-123")

	user, err := s.service.AddFavorite(context.Background(), "cognito-123", s.product.ID)

	s.Require().NoError(err)
	s.Require().Len(user.Favorites, 1)
	s.Equal(s.product.ID, user.Favorites[0].ID)
}

func (s *UserServiceTestSuite) TestAddFavoriteTwiceConflicts() {
	s.createUser("cognito-123")

	_, err := s.service.AddFavorite(context.Background(), "cognito-123", s.product.ID)
	s.Require().NoError(err)

	_, err = s.service.AddFavorite(context.Background(), "cognito-123", s.product.ID)
	s.ErrorIs(err, ErrAlreadyFavorite)
}

func (s *UserServiceTestSuite) TestAddFavoriteUnknownProduct() {
	s.createUser("cognito-123")

	_, err := s.service.AddFavorite(context.Background(), "cognito-123", uuid.New())
	s.ErrorIs(err, ErrProductNotFound)
}

func (s *UserServiceTestSuite) TestRemoveFavorite() {
	s.createUser("cognito-123")
	_, err := s.service.AddFavorite(context.Background(), "cognito-123", s.product.ID)
	s.Require().NoError(err)

	user, err := s.service.RemoveFavorite(context.Background(), "cognito-123", s.product.ID)

	s.Require().NoError(err)
	s.Empty(user.Favorites)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
