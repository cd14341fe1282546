// internal/services/product_service.go
package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/hardwarehub/storefront-backend/internal/cache"
	"github.com/hardwarehub/storefront-backend/internal/models"
	"github.com/hardwarehub/storefront-backend/internal/utils"
)

type ProductService struct {
	db      *gorm.DB
	blobs   BlobStore
	cleanup *CleanupService
	cache   *cache.Cache
}

func NewProductService(db *gorm.DB, blobs BlobStore, cleanup *CleanupService, cache *cache.Cache) *ProductService {
	return &ProductService{
		db:      db,
		blobs:   blobs,
		cleanup: cleanup,
		cache:   cache,
	}
}

type CreateProductInput struct {
	Name        string    `validate:"required"`
	Description *string   `validate:"-"`
	Price       float64   `validate:"required,gt=0"`
	Stock       int       `validate:"gte=0"`
	CategoryID  uuid.UUID `validate:"required"`

	Specs []models.Spec

	AverageRating   *float64
	ReviewCount     *int
	DiscountPercent *int
	Warranty        *string

	Files []*multipart.FileHeader
}

// OptionalFloat marks a PATCH field as present; a present field with a nil
// value clears the column.
type OptionalFloat struct {
	Set   bool
	Value *float64
}

type OptionalInt struct {
	Set   bool
	Value *int
}

type OptionalString struct {
	Set   bool
	Value *string
}

// UpdateProductInput carries PATCH semantics: nil / unset fields leave the
// record untouched.
type UpdateProductInput struct {
	Name        *string
	Description OptionalString
	Price       *float64
	Stock       *int
	CategoryID  *uuid.UUID

	SpecsSet bool
	Specs    []models.Spec

	// KeepImageURLs is the client's authoritative list of previously stored
	// URLs that survive this edit. Everything currently stored but absent
	// from it gets deleted from the blob store.
	KeepImageURLs []string

	AverageRating   OptionalFloat
	ReviewCount     OptionalInt
	DiscountPercent OptionalInt
	Warranty        OptionalString

	Files []*multipart.FileHeader
}

type ProductSearchParams struct {
	utils.PaginationParams
	CategoryID *uuid.UUID
	PriceMin   *float64
	PriceMax   *float64
	InStock    *bool
	Search     string
}

// CreateProduct uploads attachments, sanitizes specs, derives the slug and
// inserts the record. Uploads are best-effort per file: a failed upload is
// logged and excluded, it does not abort the operation and already uploaded
// blobs are not compensated.
func (s *ProductService) CreateProduct(ctx context.Context, in *CreateProductInput) (*models.Product, error) {
	if err := utils.ValidateStruct(in); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	imageURLs := s.uploadAll(in.Files)
	specs := SanitizeSpecs(in.Specs)

	name := strings.TrimSpace(in.Name)
	product := &models.Product{
		Name:        name,
		Slug:        utils.Slugify(name),
		Description: trimOrNil(in.Description),
		Price:       in.Price,
		Stock:       in.Stock,
		CategoryID:  in.CategoryID,

		AverageRating:   in.AverageRating,
		ReviewCount:     in.ReviewCount,
		DiscountPercent: in.DiscountPercent,
		Warranty:        trimOrNil(in.Warranty),
	}

	if len(imageURLs) > 0 {
		product.ImageURL = &imageURLs[0]
		product.ImageURLs = imageURLs
	}
	if len(specs) > 0 {
		product.Specs = specs
	}

	// Duplicate slug or a bad category reference surfaces here; uploaded
	// blobs are intentionally not cleaned up in that case.
	if err := s.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, translateProductError(err)
	}

	s.db.WithContext(ctx).Preload("Category").First(product, product.ID)
	s.invalidateListings(ctx)

	return product, nil
}

// UpdateProduct reconciles the stored image set against the client's keep
// list, applies a partial update and only afterwards deletes orphaned blobs.
// The database write happens before blob deletion so a failed delete can
// leak a blob but never leave the record pointing at nothing.
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, in *UpdateProductInput) (*models.Product, error) {
	var existing models.Product
	if err := s.db.WithContext(ctx).Select("id", "image_url", "image_urls").First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}

	keep := filterWellFormedURLs(in.KeepImageURLs)
	toDelete := diffURLs(currentURLs(&existing), keep)

	newURLs := s.uploadAll(in.Files)
	finalURLs := append(append([]string{}, keep...), newURLs...)

	updates := map[string]interface{}{}

	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		updates["name"] = name
		updates["slug"] = utils.Slugify(name)
	}
	if in.Description.Set {
		updates["description"] = trimOrNil(in.Description.Value)
	}
	if in.Price != nil {
		updates["price"] = *in.Price
	}
	if in.Stock != nil {
		updates["stock"] = *in.Stock
	}
	if in.CategoryID != nil {
		updates["category_id"] = *in.CategoryID
	}
	if in.SpecsSet {
		if specs := SanitizeSpecs(in.Specs); len(specs) > 0 {
			updates["specs"] = specs
		}
	}
	if in.AverageRating.Set {
		updates["average_rating"] = in.AverageRating.Value
	}
	if in.ReviewCount.Set {
		updates["review_count"] = in.ReviewCount.Value
	}
	if in.DiscountPercent.Set {
		updates["discount_percent"] = in.DiscountPercent.Value
	}
	if in.Warranty.Set {
		updates["warranty"] = trimOrNil(in.Warranty.Value)
	}

	// The image columns are always written: a product may legitimately end
	// up with zero images, in which case both are cleared.
	if len(finalURLs) > 0 {
		updates["image_url"] = finalURLs[0]
		updates["image_urls"] = models.StringList(finalURLs)
	} else {
		updates["image_url"] = nil
		updates["image_urls"] = nil
	}

	result := s.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, translateProductError(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, ErrProductNotFound
	}

	// Blob cleanup runs after the database write succeeded. Each deletion is
	// attempted exactly once here; failures go to the janitor.
	s.deleteAll(toDelete)

	var updated models.Product
	if err := s.db.WithContext(ctx).Preload("Category").First(&updated, id).Error; err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}

	s.invalidateListings(ctx)
	return &updated, nil
}

// DeleteProduct removes the record first and then garbage-collects its blobs.
// The operation succeeds as long as the database delete succeeded.
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	var existing models.Product
	if err := s.db.WithContext(ctx).Select("id", "image_url", "image_urls").First(&existing, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("database error: %w", err)
	}

	urls := currentURLs(&existing)

	if err := s.db.WithContext(ctx).Delete(&models.Product{}, id).Error; err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	s.deleteAll(urls)
	s.invalidateListings(ctx)

	return nil
}

func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).Preload("Category").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &product, nil
}

// SearchProducts applies the catalog filters and returns the requested page
// plus the total count computed from the same predicate.
func (s *ProductService) SearchProducts(ctx context.Context, params ProductSearchParams) ([]models.Product, int64, error) {
	query := s.db.WithContext(ctx).Model(&models.Product{}).Preload("Category")

	if params.CategoryID != nil {
		query = query.Where("category_id = ?", *params.CategoryID)
	}
	if params.PriceMin != nil {
		query = query.Where("price >= ?", *params.PriceMin)
	}
	if params.PriceMax != nil {
		query = query.Where("price <= ?", *params.PriceMax)
	}
	if params.InStock != nil && *params.InStock {
		query = query.Where("stock > 0")
	}
	if params.Search != "" {
		searchTerm := "%" + strings.ToLower(params.Search) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(description) LIKE ?", searchTerm, searchTerm)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	query = query.Order("created_at DESC")
	query = utils.ApplyPagination(query, params.PaginationParams)

	var products []models.Product
	if err := query.Find(&products).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch products: %w", err)
	}

	return products, total, nil
}

// uploadAll fans the attached files out to the blob store and joins before
// returning. Result order follows input order; failed uploads are logged and
// skipped.
func (s *ProductService) uploadAll(files []*multipart.FileHeader) []string {
	if len(files) == 0 {
		return nil
	}

	results := make([]string, len(files))
	var wg sync.WaitGroup

	for i, header := range files {
		wg.Add(1)
		go func(i int, header *multipart.FileHeader) {
			defer wg.Done()

			file, err := header.Open()
			if err != nil {
				logrus.WithError(err).WithField("filename", header.Filename).Error("Failed to open uploaded file")
				return
			}
			defer file.Close()

			url, err := s.blobs.UploadFile(file, header)
			if err != nil {
				logrus.WithError(err).WithField("filename", header.Filename).Error("Failed to upload file")
				return
			}
			results[i] = url
		}(i, header)
	}
	wg.Wait()

	urls := make([]string, 0, len(files))
	for _, url := range results {
		if url != "" {
			urls = append(urls, url)
		}
	}
	return urls
}

// deleteAll issues one blob deletion per URL concurrently. Individual
// failures are logged and handed to the cleanup janitor; they never fail the
// surrounding operation.
func (s *ProductService) deleteAll(urls []string) {
	if len(urls) == 0 {
		return
	}

	var wg sync.WaitGroup
	for _, url := range urls {
		wg.Add(1)
		go func(url string) {
			defer wg.Done()

			if err := s.blobs.DeleteFileByURL(url); err != nil {
				logrus.WithError(err).WithField("url", url).Error("Failed to delete blob")
				if s.cleanup != nil {
					s.cleanup.Enqueue(url)
				}
			}
		}(url)
	}
	wg.Wait()
}

func (s *ProductService) invalidateListings(ctx context.Context) {
	s.cache.DeleteByPrefix(ctx, cache.ProductListPrefix)
}

// SanitizeSpecs trims each key and value, drops pairs where either side ends
// up empty and preserves input order.
func SanitizeSpecs(specs []models.Spec) models.SpecList {
	if len(specs) == 0 {
		return nil
	}

	sanitized := make(models.SpecList, 0, len(specs))
	for _, spec := range specs {
		key := strings.TrimSpace(spec.Key)
		value := strings.TrimSpace(spec.Value)
		if key == "" || value == "" {
			continue
		}
		sanitized = append(sanitized, models.Spec{Key: key, Value: value})
	}

	if len(sanitized) == 0 {
		return nil
	}
	return sanitized
}

// currentURLs collects the record's stored URLs, primary first, deduplicated.
func currentURLs(p *models.Product) []string {
	seen := make(map[string]bool)
	var urls []string

	add := func(url string) {
		if url != "" && !seen[url] {
			seen[url] = true
			urls = append(urls, url)
		}
	}

	if p.ImageURL != nil {
		add(*p.ImageURL)
	}
	for _, url := range p.ImageURLs {
		add(url)
	}
	return urls
}

// diffURLs returns every element of current absent from keep.
func diffURLs(current, keep []string) []string {
	kept := make(map[string]bool, len(keep))
	for _, url := range keep {
		kept[url] = true
	}

	var toDelete []string
	for _, url := range current {
		if !kept[url] {
			toDelete = append(toDelete, url)
		}
	}
	return toDelete
}

// filterWellFormedURLs keeps only absolute https URLs, silently dropping
// anything else the client sent.
func filterWellFormedURLs(urls []string) []string {
	filtered := make([]string, 0, len(urls))
	for _, url := range urls {
		if strings.HasPrefix(url, "https://") {
			filtered = append(filtered, url)
		}
	}
	return filtered
}

func translateProductError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateProduct
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrInvalidCategory
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrProductNotFound
	default:
		return fmt.Errorf("database error: %w", err)
	}
}

func trimOrNil(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
