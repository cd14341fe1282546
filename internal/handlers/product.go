// internal/handlers/product.go
package handlers

import (
	"encoding/json"
	"mime/multipart"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/hardwarehub/storefront-backend/internal/cache"
	"github.com/hardwarehub/storefront-backend/internal/models"
	"github.com/hardwarehub/storefront-backend/internal/services"
	"github.com/hardwarehub/storefront-backend/internal/utils"
)

type ProductHandler struct {
	productService  *services.ProductService
	categoryService *services.CategoryService
	cache           *cache.Cache
}

func NewProductHandler(productService *services.ProductService, categoryService *services.CategoryService, cache *cache.Cache) *ProductHandler {
	return &ProductHandler{
		productService:  productService,
		categoryService: categoryService,
		cache:           cache,
	}
}

type productListing struct {
	Products []models.Product `json:"products"`
	Total    int64            `json:"total"`
}

// GET /products
func (h *ProductHandler) GetProducts(c *gin.Context) {
	params := utils.GetPaginationParams(c)

	searchParams := services.ProductSearchParams{
		PaginationParams: params,
		Search:           c.Query("search"),
	}

	if categoryIDStr := c.Query("categoryId"); categoryIDStr != "" {
		categoryID, err := uuid.Parse(categoryIDStr)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid category ID", nil)
			return
		}
		searchParams.CategoryID = &categoryID
	}

	if priceMinStr := c.Query("priceMin"); priceMinStr != "" {
		if priceMin, err := strconv.ParseFloat(priceMinStr, 64); err == nil {
			searchParams.PriceMin = &priceMin
		}
	}

	if priceMaxStr := c.Query("priceMax"); priceMaxStr != "" {
		if priceMax, err := strconv.ParseFloat(priceMaxStr, 64); err == nil {
			searchParams.PriceMax = &priceMax
		}
	}

	if inStockStr := c.Query("inStock"); inStockStr != "" {
		if inStock, err := strconv.ParseBool(inStockStr); err == nil {
			searchParams.InStock = &inStock
		}
	}

	cacheKey := cache.ProductListPrefix + c.Request.URL.RawQuery
	var listing productListing
	if h.cache.GetJSON(c.Request.Context(), cacheKey, &listing) {
		h.respondListing(c, listing, params)
		return
	}

	products, total, err := h.productService.SearchProducts(c.Request.Context(), searchParams)
	if err != nil {
		logrus.WithError(err).Error("Product search failed")
		utils.InternalErrorResponse(c, "Error retrieving products")
		return
	}

	listing = productListing{Products: products, Total: total}
	h.cache.SetJSON(c.Request.Context(), cacheKey, listing)

	h.respondListing(c, listing, params)
}

func (h *ProductHandler) respondListing(c *gin.Context, listing productListing, params utils.PaginationParams) {
	result := utils.CreatePaginationResult(listing.Total, params)
	utils.SetPaginationHeaders(c, result)
	utils.SuccessResponse(c, gin.H{
		"products": listing.Products,
		"total":    listing.Total,
	})
}

// GET /products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Valid product ID is required", nil)
		return
	}

	product, err := h.productService.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{"product": product})
}

// POST /products (admin, multipart)
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "Multipart form data is required", err.Error())
		return
	}

	var missing []string
	for _, field := range []string{"name", "price", "stock", "categoryId"} {
		if v, ok := formValue(form, field); !ok || strings.TrimSpace(v) == "" {
			missing = append(missing, field)
		}
	}
	if len(missing) > 0 {
		utils.BadRequestResponse(c, "Name, price, stock, and category are required", gin.H{"missing": missing})
		return
	}

	name, _ := formValue(form, "name")
	priceStr, _ := formValue(form, "price")
	stockStr, _ := formValue(form, "stock")
	categoryIDStr, _ := formValue(form, "categoryId")

	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil {
		utils.BadRequestResponse(c, "Price must be a number", nil)
		return
	}
	stock, err := strconv.Atoi(stockStr)
	if err != nil {
		utils.BadRequestResponse(c, "Stock must be an integer", nil)
		return
	}
	categoryID, err := uuid.Parse(categoryIDStr)
	if err != nil {
		utils.BadRequestResponse(c, "Invalid category ID", nil)
		return
	}

	input := &services.CreateProductInput{
		Name:       name,
		Price:      price,
		Stock:      stock,
		CategoryID: categoryID,
		Specs:      parseSpecs(form),
		Files:      form.File["images"],
	}

	if description, ok := formValue(form, "description"); ok {
		input.Description = &description
	}
	if warranty, ok := formValue(form, "warranty"); ok && strings.TrimSpace(warranty) != "" {
		input.Warranty = &warranty
	}
	if ratingStr, ok := formValue(form, "averageRating"); ok && ratingStr != "" {
		if rating, err := strconv.ParseFloat(ratingStr, 64); err == nil {
			input.AverageRating = &rating
		}
	}
	if countStr, ok := formValue(form, "reviewCount"); ok && countStr != "" {
		if count, err := strconv.Atoi(countStr); err == nil {
			input.ReviewCount = &count
		}
	}
	if discountStr, ok := formValue(form, "discountPercent"); ok && discountStr != "" {
		if discount, err := strconv.Atoi(discountStr); err == nil {
			input.DiscountPercent = &discount
		}
	}

	product, err := h.productService.CreateProduct(c.Request.Context(), input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message": "Product created successfully",
		"product": product,
	})
}

// PATCH /products/:id (admin, multipart)
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Valid product ID is required", nil)
		return
	}

	form, err := c.MultipartForm()
	if err != nil {
		utils.BadRequestResponse(c, "Multipart form data is required", err.Error())
		return
	}

	input := &services.UpdateProductInput{
		KeepImageURLs: parseKeepImageURLs(form),
		Files:         form.File["images"],
	}

	if name, ok := formValue(form, "name"); ok && strings.TrimSpace(name) != "" {
		input.Name = &name
	}
	if description, ok := formValue(form, "description"); ok {
		input.Description = optionalString(description)
	}
	if priceStr, ok := formValue(form, "price"); ok && priceStr != "" {
		price, err := strconv.ParseFloat(priceStr, 64)
		if err != nil || price <= 0 {
			utils.BadRequestResponse(c, "Price must be a positive number", nil)
			return
		}
		input.Price = &price
	}
	if stockStr, ok := formValue(form, "stock"); ok && stockStr != "" {
		stock, err := strconv.Atoi(stockStr)
		if err != nil || stock < 0 {
			utils.BadRequestResponse(c, "Stock must be a non-negative integer", nil)
			return
		}
		input.Stock = &stock
	}
	if categoryIDStr, ok := formValue(form, "categoryId"); ok && categoryIDStr != "" {
		categoryID, err := uuid.Parse(categoryIDStr)
		if err != nil {
			utils.BadRequestResponse(c, "Invalid category ID", nil)
			return
		}
		input.CategoryID = &categoryID
	}
	if specsJSON, ok := formValue(form, "specs"); ok && specsJSON != "null" && specsJSON != "undefined" {
		input.SpecsSet = true
		input.Specs = parseSpecs(form)
	}
	if ratingStr, ok := formValue(form, "averageRating"); ok {
		opt, err := optionalFloat(ratingStr)
		if err != nil {
			utils.BadRequestResponse(c, "Average rating must be a number", nil)
			return
		}
		input.AverageRating = opt
	}
	if countStr, ok := formValue(form, "reviewCount"); ok {
		opt, err := optionalInt(countStr)
		if err != nil {
			utils.BadRequestResponse(c, "Review count must be an integer", nil)
			return
		}
		input.ReviewCount = opt
	}
	if discountStr, ok := formValue(form, "discountPercent"); ok {
		opt, err := optionalInt(discountStr)
		if err != nil {
			utils.BadRequestResponse(c, "Discount percent must be an integer", nil)
			return
		}
		input.DiscountPercent = opt
	}
	if warranty, ok := formValue(form, "warranty"); ok {
		input.Warranty = optionalString(warranty)
	}

	product, err := h.productService.UpdateProduct(c.Request.Context(), id, input)
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message": "Product updated successfully",
		"product": product,
	})
}

// DELETE /products/:id (admin)
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.BadRequestResponse(c, "Valid product ID is required", nil)
		return
	}

	if err := h.productService.DeleteProduct(c.Request.Context(), id); err != nil {
		h.respondError(c, err)
		return
	}

	utils.SuccessResponse(c, gin.H{
		"message":          "Product deleted successfully",
		"deletedProductId": id,
	})
}

// GET /products/categories
func (h *ProductHandler) GetCategories(c *gin.Context) {
	categories, err := h.categoryService.ListCategories(c.Request.Context())
	if err != nil {
		logrus.WithError(err).Error("Category listing failed")
		utils.InternalErrorResponse(c, "Error retrieving categories")
		return
	}

	utils.SuccessResponse(c, gin.H{"categories": categories})
}

// POST /products/categories (admin)
func (h *ProductHandler) CreateCategory(c *gin.Context) {
	var req struct {
		Name string `json:"name" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.BadRequestResponse(c, "Category name is required and must be a string", err.Error())
		return
	}

	category, err := h.categoryService.CreateCategory(c.Request.Context(), &services.CreateCategoryInput{Name: req.Name})
	if err != nil {
		h.respondError(c, err)
		return
	}

	utils.CreatedResponse(c, gin.H{
		"message":  "Category created successfully",
		"category": category,
	})
}

func (h *ProductHandler) respondError(c *gin.Context, err error) {
	switch {
	case err == services.ErrProductNotFound || err == services.ErrCategoryNotFound:
		utils.NotFoundResponse(c, err.Error())
	case err == services.ErrDuplicateProduct || err == services.ErrDuplicateCategory:
		utils.ConflictResponse(c, err.Error())
	case err == services.ErrInvalidCategory,
		err == services.ErrCategoryNameTooShort,
		err == services.ErrCategoryNameTooLong:
		utils.BadRequestResponse(c, err.Error(), nil)
	case strings.HasPrefix(err.Error(), "validation failed"):
		utils.BadRequestResponse(c, err.Error(), nil)
	default:
		logrus.WithError(err).Error("Product operation failed")
		utils.InternalErrorResponse(c, "")
	}
}

func formValue(form *multipart.Form, key string) (string, bool) {
	values, ok := form.Value[key]
	if !ok || len(values) == 0 {
		return "", false
	}
	return values[0], true
}

// parseSpecs decodes the specs JSON form field; malformed input is logged
// and treated as absent.
func parseSpecs(form *multipart.Form) []models.Spec {
	specsJSON, ok := formValue(form, "specs")
	if !ok || specsJSON == "" || specsJSON == "null" || specsJSON == "undefined" {
		return nil
	}

	var specs []models.Spec
	if err := json.Unmarshal([]byte(specsJSON), &specs); err != nil {
		logrus.WithField("specs", specsJSON).Warn("Invalid specs JSON received")
		return nil
	}
	return specs
}

// parseKeepImageURLs decodes the keepImageUrls JSON form field; malformed
// input is logged and treated as an empty keep list.
func parseKeepImageURLs(form *multipart.Form) []string {
	keepJSON, ok := formValue(form, "keepImageUrls")
	if !ok || keepJSON == "" {
		return nil
	}

	var urls []string
	if err := json.Unmarshal([]byte(keepJSON), &urls); err != nil {
		logrus.Warn("Invalid keepImageUrls JSON received")
		return nil
	}
	return urls
}

func optionalString(value string) services.OptionalString {
	if strings.TrimSpace(value) == "" {
		return services.OptionalString{Set: true}
	}
	return services.OptionalString{Set: true, Value: &value}
}

func optionalFloat(value string) (services.OptionalFloat, error) {
	if strings.TrimSpace(value) == "" {
		return services.OptionalFloat{Set: true}, nil
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return services.OptionalFloat{}, err
	}
	return services.OptionalFloat{Set: true, Value: &parsed}, nil
}

func optionalInt(value string) (services.OptionalInt, error) {
	if strings.TrimSpace(value) == "" {
		return services.OptionalInt{Set: true}, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return services.OptionalInt{}, err
	}
	return services.OptionalInt{Set: true, Value: &parsed}, nil
}
