package service

import (
	"context"
	"fmt"
	"strings"

	"print-kart/internal/model"
	"print-kart/internal/repository"

	"github.com/rs/zerolog"
)

const relatedProductsLimit = 4

// productService implements ProductService with a read-through cache on
// slug lookups.
type productService struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	cache        repository.ProductCache
	logger       zerolog.Logger
}

// NewProductService creates a new product service.
func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	cache repository.ProductCache,
	logger zerolog.Logger,
) ProductService {
	return &productService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		cache:        cache,
		logger:       logger.With().Str("service", "product").Logger(),
	}
}

// List retrieves one page of active products matching the filter.
func (s *productService) List(ctx context.Context, filter model.ProductFilter) (*model.ProductPage, error) {
	page, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}
	return page, nil
}

// Featured retrieves up to limit featured products, newest first.
func (s *productService) Featured(ctx context.Context, limit int) ([]model.Product, error) {
	if limit < 1 {
		limit = 8
	}
	page, err := s.productRepo.List(ctx, model.ProductFilter{
		FeaturedOnly: true,
		SortBy:       "created_at",
		SortOrder:    "desc",
		PerPage:      limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list featured products: %w", err)
	}
	return page.Items, nil
}

// NewArrivals retrieves up to limit newest products.
func (s *productService) NewArrivals(ctx context.Context, limit int) ([]model.Product, error) {
	if limit < 1 {
		limit = 8
	}
	page, err := s.productRepo.List(ctx, model.ProductFilter{
		SortBy:    "created_at",
		SortOrder: "desc",
		PerPage:   limit,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list new arrivals: %w", err)
	}
	return page.Items, nil
}

// ListByCategory retrieves a category page: the category, its products and
// their price range.
func (s *productService) ListByCategory(ctx context.Context, categorySlug string, filter model.ProductFilter) (*model.CategoryProducts, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, categorySlug)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return nil, model.NewNotFoundError("Category")
	}

	filter.CategoryID = &category.ID
	filter.CategorySlug = ""
	page, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to list category products: %w", err)
	}

	priceRange, err := s.productRepo.PriceRange(ctx, category.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get price range: %w", err)
	}

	return &model.CategoryProducts{
		Category:   category,
		Products:   page,
		PriceRange: priceRange,
	}, nil
}

// GetBySlug retrieves an active product by slug and bumps its view counter.
// Detail lookups are served from the cache when possible; the view counter is
// incremented either way.
func (s *productService) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	product, err := s.cache.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	if product == nil {
		product, err = s.productRepo.GetBySlug(ctx, slug)
		if err != nil {
			return nil, fmt.Errorf("failed to get product: %w", err)
		}
		if product == nil {
			return nil, model.NewNotFoundError("Product")
		}
		if err := s.cache.SetBySlug(ctx, product); err != nil {
			s.logger.Warn().Err(err).Str("slug", slug).Msg("failed to cache product")
		}
	}

	if err := s.productRepo.IncrementViews(ctx, product.ID); err != nil {
		s.logger.Warn().Err(err).Int64("product_id", product.ID).Msg("failed to increment views")
	} else {
		product.Views++
	}

	return product, nil
}

// Related retrieves products sharing the category of the given slug.
func (s *productService) Related(ctx context.Context, slug string, limit int) ([]model.Product, error) {
	if limit < 1 {
		limit = relatedProductsLimit
	}

	product, err := s.productRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	if product == nil {
		return nil, model.NewNotFoundError("Product")
	}
	if product.CategoryID == nil {
		return []model.Product{}, nil
	}

	related, err := s.productRepo.Related(ctx, *product.CategoryID, product.ID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list related products: %w", err)
	}
	return related, nil
}

// Create creates a product; the slug is derived from the name.
func (s *productService) Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error) {
	if err := validateProductRequest(req); err != nil {
		return nil, err
	}

	product := &model.Product{
		CategoryID:       req.CategoryID,
		Name:             strings.TrimSpace(req.Name),
		Slug:             model.Slugify(req.Name),
		Description:      req.Description,
		ShortDescription: req.ShortDescription,
		Price:            req.Price,
		SalePrice:        req.SalePrice,
		SKU:              req.SKU,
		StockQuantity:    req.StockQuantity,
		StockStatus:      stockStatusFor(req.StockQuantity),
		FeaturedImage:    req.FeaturedImage,
		IsActive:         true,
	}
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	s.logger.Info().Int64("product_id", product.ID).Str("slug", product.Slug).Msg("product created")
	return product, nil
}

// Update updates a product and drops its cache entry.
func (s *productService) Update(ctx context.Context, id int64, req *model.ProductRequest) (*model.Product, error) {
	if err := validateProductRequest(req); err != nil {
		return nil, err
	}

	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}
	if product == nil {
		return nil, model.NewNotFoundError("Product")
	}

	oldSlug := product.Slug
	product.CategoryID = req.CategoryID
	product.Name = strings.TrimSpace(req.Name)
	product.Slug = model.Slugify(req.Name)
	product.Description = req.Description
	product.ShortDescription = req.ShortDescription
	product.Price = req.Price
	product.SalePrice = req.SalePrice
	product.SKU = req.SKU
	product.StockQuantity = req.StockQuantity
	product.StockStatus = stockStatusFor(req.StockQuantity)
	product.FeaturedImage = req.FeaturedImage
	if req.IsFeatured != nil {
		product.IsFeatured = *req.IsFeatured
	}
	if req.IsActive != nil {
		product.IsActive = *req.IsActive
	}

	if err := s.productRepo.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	s.cache.Invalidate(ctx, oldSlug)
	if product.Slug != oldSlug {
		s.cache.Invalidate(ctx, product.Slug)
	}

	s.logger.Info().Int64("product_id", product.ID).Msg("product updated")
	return product, nil
}

// Delete removes a product and drops its cache entry.
func (s *productService) Delete(ctx context.Context, id int64) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	if product == nil {
		return model.NewNotFoundError("Product")
	}

	if _, err := s.productRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}
	s.cache.Invalidate(ctx, product.Slug)

	s.logger.Info().Int64("product_id", id).Msg("product deleted")
	return nil
}

// IncrementViews bumps the view counter.
func (s *productService) IncrementViews(ctx context.Context, id int64) error {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	if product == nil {
		return model.NewNotFoundError("Product")
	}
	if err := s.productRepo.IncrementViews(ctx, id); err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	return nil
}

func validateProductRequest(req *model.ProductRequest) error {
	v := model.NewValidationError()
	if strings.TrimSpace(req.Name) == "" {
		v.Add("name", "Name is required")
	}
	if req.Price.IsNegative() || req.Price.IsZero() {
		v.Add("price", "Price must be greater than zero")
	}
	if req.SalePrice != nil && req.SalePrice.IsNegative() {
		v.Add("sale_price", "Sale price must not be negative")
	}
	if req.StockQuantity < 0 {
		v.Add("stock_quantity", "Stock quantity must not be negative")
	}
	if v.HasErrors() {
		return v
	}
	return nil
}

func stockStatusFor(quantity int) string {
	if quantity > 0 {
		return model.StockStatusInStock
	}
	return model.StockStatusOutOfStock
}
