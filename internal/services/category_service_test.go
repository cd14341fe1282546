// internal/services/category_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"
)

type CategoryServiceTestSuite struct {
	suite.Suite
	service *CategoryService
}

func (s *CategoryServiceTestSuite) SetupTest() {
	db := openTestDB(s.T(), "category_service")
	db.Exec("DELETE FROM categories")
	s.service = NewCategoryService(db, nil)
}

func (s *CategoryServiceTestSuite) TestCreateCategory() {
	category, err := s.service.CreateCategory(context.Background(), &CreateCategoryInput{Name: "  Laptops  "})

	s.Require().NoError(err)
	s.Equal("Laptops", category.Name)
	s.NotEmpty(category.ID)
}

func (s *CategoryServiceTestSuite) TestCreateCategoryCaseInsensitiveConflict() {
	_, err := s.service.CreateCategory(context.Background(), &CreateCategoryInput{Name: "Laptops"})
	s.Require().NoError(err)

	_, err = s.service.CreateCategory(context.Background(), &CreateCategoryInput{Name: "laptops"})
	s.ErrorIs(err, ErrDuplicateCategory)

	_, err = s.service.CreateCategory(context.Background(), &CreateCategoryInput{Name: "LAPTOPS"})
	s.ErrorIs(err, ErrDuplicateCategory)
}

func (s *CategoryServiceTestSuite) TestCreateCategoryNameTooShort() {
	_, err := s.service.CreateCategory(context.Background(), &CreateCategoryInput{Name: " L "})
	s.ErrorIs(err, ErrCategoryNameTooShort)
}

func (s *CategoryServiceTestSuite) TestCreateCategoryNameTooLong() {
	name := ""
	for i := 0; i < 51; i++ {
		name += "x"
	}

	_, err := s.service.CreateCategory(context.Background(), &CreateCategoryInput{Name: name})
	s.ErrorIs(err, ErrCategoryNameTooLong)
}

func (s *CategoryServiceTestSuite) TestListCategoriesOrderedByName() {
	for _, name := range []string{"Storage", "CPUs", "Monitors"} {
		_, err := s.service.CreateCategory(context.Background(), &CreateCategoryInput{Name: name})
		s.Require().NoError(err)
	}

	categories, err := s.service.ListCategories(context.Background())

	s.Require().NoError(err)
	s.Require().Len(categories, 3)
	s.Equal("CPUs", categories[0].Name)
	s.Equal("Monitors", categories[1].Name)
	s.Equal("Storage", categories[2].Name)
}

func TestCategoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}
