package service

import (
	"context"
	"errors"
	"testing"

	"print-kart/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProductServiceForTest() (*MockProductRepository, *MockCategoryRepository, *MockProductCache, ProductService) {
	productRepo := new(MockProductRepository)
	categoryRepo := new(MockCategoryRepository)
	cache := new(MockProductCache)
	svc := NewProductService(productRepo, categoryRepo, cache, zerolog.Nop())
	return productRepo, categoryRepo, cache, svc
}

func TestProductService_GetBySlug_CacheMiss(t *testing.T) {
	ctx := context.Background()
	productRepo, _, cache, svc := newProductServiceForTest()

	tee := &model.Product{ID: 1, Name: "Classic Cotton Tee", Slug: "classic-cotton-tee", Price: dec("499.00"), Views: 10}

	cache.On("GetBySlug", ctx, "classic-cotton-tee").Return(nil, nil)
	productRepo.On("GetBySlug", ctx, "classic-cotton-tee").Return(tee, nil)
	cache.On("SetBySlug", ctx, tee).Return(nil)
	productRepo.On("IncrementViews", ctx, int64(1)).Return(nil)

	product, err := svc.GetBySlug(ctx, "classic-cotton-tee")
	require.NoError(t, err)
	assert.Equal(t, int64(11), product.Views)

	cache.AssertExpectations(t)
	productRepo.AssertExpectations(t)
}

func TestProductService_GetBySlug_CacheHit(t *testing.T) {
	ctx := context.Background()
	productRepo, _, cache, svc := newProductServiceForTest()

	tee := &model.Product{ID: 1, Name: "Classic Cotton Tee", Slug: "classic-cotton-tee", Price: dec("499.00")}

	cache.On("GetBySlug", ctx, "classic-cotton-tee").Return(tee, nil)
	productRepo.On("IncrementViews", ctx, int64(1)).Return(nil)

	product, err := svc.GetBySlug(ctx, "classic-cotton-tee")
	require.NoError(t, err)
	assert.Equal(t, tee, product)

	productRepo.AssertNotCalled(t, "GetBySlug", mock.Anything, mock.Anything)
}

func TestProductService_GetBySlug_NotFound(t *testing.T) {
	ctx := context.Background()
	productRepo, _, cache, svc := newProductServiceForTest()

	cache.On("GetBySlug", ctx, "ghost").Return(nil, nil)
	productRepo.On("GetBySlug", ctx, "ghost").Return(nil, nil)

	_, err := svc.GetBySlug(ctx, "ghost")

	var notFound *model.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "Product", notFound.Resource)
}

func TestProductService_GetBySlug_ViewCounterFailureIgnored(t *testing.T) {
	ctx := context.Background()
	productRepo, _, cache, svc := newProductServiceForTest()

	tee := &model.Product{ID: 1, Slug: "classic-cotton-tee", Price: dec("499.00"), Views: 10}

	cache.On("GetBySlug", ctx, "classic-cotton-tee").Return(tee, nil)
	productRepo.On("IncrementViews", ctx, int64(1)).Return(errors.New("db down"))

	product, err := svc.GetBySlug(ctx, "classic-cotton-tee")
	require.NoError(t, err)
	assert.Equal(t, int64(10), product.Views)
}

func TestProductService_ListByCategory(t *testing.T) {
	ctx := context.Background()
	productRepo, categoryRepo, _, svc := newProductServiceForTest()

	category := &model.Category{ID: 3, Name: "T-Shirts", Slug: "t-shirts"}
	page := &model.ProductPage{Items: []model.Product{{ID: 1, Name: "Classic Cotton Tee", Price: dec("499.00")}}, Total: 1}
	priceRange := &model.PriceRange{Min: dec("499.00"), Max: dec("799.00")}

	categoryRepo.On("GetBySlug", ctx, "t-shirts").Return(category, nil)
	productRepo.On("List", ctx, mock.MatchedBy(func(f model.ProductFilter) bool {
		return f.CategoryID != nil && *f.CategoryID == 3 && f.CategorySlug == ""
	})).Return(page, nil)
	productRepo.On("PriceRange", ctx, int64(3)).Return(priceRange, nil)

	result, err := svc.ListByCategory(ctx, "t-shirts", model.ProductFilter{CategorySlug: "t-shirts"})
	require.NoError(t, err)
	assert.Equal(t, category, result.Category)
	assert.Equal(t, page, result.Products)
	assert.Equal(t, priceRange, result.PriceRange)
}

func TestProductService_ListByCategory_UnknownCategory(t *testing.T) {
	ctx := context.Background()
	productRepo, categoryRepo, _, svc := newProductServiceForTest()

	categoryRepo.On("GetBySlug", ctx, "ghost").Return(nil, nil)

	_, err := svc.ListByCategory(ctx, "ghost", model.ProductFilter{})

	var notFound *model.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "Category", notFound.Resource)
	productRepo.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
}

func TestProductService_Update_InvalidatesCache(t *testing.T) {
	ctx := context.Background()
	productRepo, _, cache, svc := newProductServiceForTest()

	existing := &model.Product{ID: 1, Name: "Classic Cotton Tee", Slug: "classic-cotton-tee", Price: dec("499.00")}
	productRepo.On("GetByID", ctx, int64(1)).Return(existing, nil)
	productRepo.On("Update", ctx, mock.AnythingOfType("*model.Product")).Return(nil)
	cache.On("Invalidate", ctx, "classic-cotton-tee").Return(nil)
	cache.On("Invalidate", ctx, "premium-cotton-tee").Return(nil)

	updated, err := svc.Update(ctx, 1, &model.ProductRequest{
		Name:  "Premium Cotton Tee",
		Price: dec("599.00"),
	})
	require.NoError(t, err)
	assert.Equal(t, "premium-cotton-tee", updated.Slug)

	// Both the old and the new slug entries are dropped.
	cache.AssertExpectations(t)
}

func TestProductService_Create_Validation(t *testing.T) {
	ctx := context.Background()
	productRepo, _, _, svc := newProductServiceForTest()

	_, err := svc.Create(ctx, &model.ProductRequest{Name: "  ", Price: dec("0")})

	var v *model.ValidationError
	require.True(t, errors.As(err, &v))
	assert.Contains(t, v.Fields, "name")
	assert.Contains(t, v.Fields, "price")
	productRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProductService_Create_StockStatusDerived(t *testing.T) {
	ctx := context.Background()
	productRepo, _, _, svc := newProductServiceForTest()

	productRepo.On("Create", ctx, mock.AnythingOfType("*model.Product")).Return(nil)

	created, err := svc.Create(ctx, &model.ProductRequest{Name: "Sold Out Tee", Price: dec("499.00"), StockQuantity: 0})
	require.NoError(t, err)
	assert.Equal(t, model.StockStatusOutOfStock, created.StockStatus)
	assert.Equal(t, "sold-out-tee", created.Slug)
}

func TestProductService_Related_NoCategory(t *testing.T) {
	ctx := context.Background()
	productRepo, _, _, svc := newProductServiceForTest()

	orphan := &model.Product{ID: 1, Slug: "orphan", Price: dec("499.00")}
	productRepo.On("GetBySlug", ctx, "orphan").Return(orphan, nil)

	related, err := svc.Related(ctx, "orphan", 4)
	require.NoError(t, err)
	assert.Empty(t, related)
	productRepo.AssertNotCalled(t, "Related", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
