package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"print-kart/internal/model"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCartServiceForTest() (*MockCartRepository, *MockProductRepository, *MockStore, CartService) {
	cartRepo := new(MockCartRepository)
	productRepo := new(MockProductRepository)
	store := new(MockStore)
	svc := NewCartService(cartRepo, productRepo, store, zerolog.Nop())
	return cartRepo, productRepo, store, svc
}

func TestCartService_Add_Success(t *testing.T) {
	ctx := context.Background()
	cartRepo, productRepo, _, svc := newCartServiceForTest()

	tee := &model.Product{
		ID: 1, Name: "Classic Cotton Tee", IsActive: true, StockQuantity: 10,
		Price: dec("499.00"), SalePrice: decPtr("399.00"),
	}
	req := &model.AddToCartRequest{
		ProductID:          1,
		Quantity:           2,
		SelectedAttributes: model.Attributes{"size": "XL", "color": "red"},
	}

	productRepo.On("GetByID", ctx, int64(1)).Return(tee, nil)
	cartRepo.On("Upsert", ctx, mock.AnythingOfType("*model.CartLine")).Return(nil)

	line, err := svc.Add(ctx, 42, req, nil, nil)
	require.NoError(t, err)
	require.NotNil(t, line)

	// The line snapshots the effective price, not the list price.
	assert.True(t, dec("399.00").Equal(line.UnitPrice))
	assert.Equal(t, 2, line.Quantity)
	assert.Equal(t, tee, line.Product)

	cartRepo.AssertExpectations(t)
}

func TestCartService_Add_ProductNotFound(t *testing.T) {
	ctx := context.Background()
	cartRepo, productRepo, _, svc := newCartServiceForTest()

	productRepo.On("GetByID", ctx, int64(99)).Return(nil, nil)

	_, err := svc.Add(ctx, 42, &model.AddToCartRequest{ProductID: 99, Quantity: 1}, nil, nil)

	var notFound *model.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "Product", notFound.Resource)
	cartRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestCartService_Add_InactiveProduct(t *testing.T) {
	ctx := context.Background()
	_, productRepo, _, svc := newCartServiceForTest()

	retired := &model.Product{ID: 7, Name: "Retired Tee", IsActive: false, Price: dec("499.00")}
	productRepo.On("GetByID", ctx, int64(7)).Return(retired, nil)

	_, err := svc.Add(ctx, 42, &model.AddToCartRequest{ProductID: 7, Quantity: 1}, nil, nil)

	var notFound *model.NotFoundError
	require.True(t, errors.As(err, &notFound))
}

func TestCartService_Add_Validation(t *testing.T) {
	ctx := context.Background()
	_, productRepo, _, svc := newCartServiceForTest()

	_, err := svc.Add(ctx, 42, &model.AddToCartRequest{ProductID: 0, Quantity: 0}, nil, nil)

	var v *model.ValidationError
	require.True(t, errors.As(err, &v))
	assert.Contains(t, v.Fields, "product_id")
	assert.Contains(t, v.Fields, "quantity")
	productRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestCartService_Add_RejectsUnsupportedDesignExtension(t *testing.T) {
	ctx := context.Background()
	_, _, _, svc := newCartServiceForTest()

	front := &Upload{Filename: "design.exe", Content: strings.NewReader("bad")}

	_, err := svc.Add(ctx, 42, &model.AddToCartRequest{ProductID: 1, Quantity: 1}, front, nil)

	var v *model.ValidationError
	require.True(t, errors.As(err, &v))
	assert.Contains(t, v.Fields, "front_design")
}

func TestCartService_Add_StoresDesigns(t *testing.T) {
	ctx := context.Background()
	cartRepo, productRepo, store, svc := newCartServiceForTest()

	tee := &model.Product{ID: 1, Name: "Classic Cotton Tee", IsActive: true, Price: dec("499.00")}
	productRepo.On("GetByID", ctx, int64(1)).Return(tee, nil)
	store.On("Save", ctx, "designs", "front.png", mock.Anything).Return("designs/u_front.png", nil)
	store.On("Save", ctx, "designs", "back.png", mock.Anything).Return("designs/u_back.png", nil)
	cartRepo.On("Upsert", ctx, mock.AnythingOfType("*model.CartLine")).Return(nil)

	front := &Upload{Filename: "front.png", Content: strings.NewReader("png")}
	back := &Upload{Filename: "back.png", Content: strings.NewReader("png")}

	line, err := svc.Add(ctx, 42, &model.AddToCartRequest{ProductID: 1, Quantity: 1}, front, back)
	require.NoError(t, err)
	require.NotNil(t, line.FrontDesignPath)
	require.NotNil(t, line.BackDesignPath)
	assert.Equal(t, "designs/u_front.png", *line.FrontDesignPath)
	assert.Equal(t, "designs/u_back.png", *line.BackDesignPath)
}

func TestCartService_Add_DesignUploadFailure(t *testing.T) {
	ctx := context.Background()
	cartRepo, productRepo, store, svc := newCartServiceForTest()

	tee := &model.Product{ID: 1, Name: "Classic Cotton Tee", IsActive: true, Price: dec("499.00")}
	productRepo.On("GetByID", ctx, int64(1)).Return(tee, nil)
	store.On("Save", ctx, "designs", "front.png", mock.Anything).Return("", errors.New("disk full"))

	front := &Upload{Filename: "front.png", Content: strings.NewReader("png")}

	_, err := svc.Add(ctx, 42, &model.AddToCartRequest{ProductID: 1, Quantity: 1}, front, nil)
	require.Error(t, err)
	cartRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestCartService_List_RecomputesAggregates(t *testing.T) {
	ctx := context.Background()
	cartRepo, _, _, svc := newCartServiceForTest()

	lines := []model.CartLine{
		{ID: 1, Quantity: 2, TotalPrice: dec("798.00")},
		{ID: 2, Quantity: 1, TotalPrice: dec("299.00")},
	}
	cartRepo.On("ListByUser", ctx, int64(42)).Return(lines, nil)

	summary, err := svc.List(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Count)
	assert.True(t, dec("1097.00").Equal(summary.Total))
	assert.Len(t, summary.Items, 2)
}

func TestCartService_List_Empty(t *testing.T) {
	ctx := context.Background()
	cartRepo, _, _, svc := newCartServiceForTest()

	cartRepo.On("ListByUser", ctx, int64(42)).Return(nil, nil)

	summary, err := svc.List(ctx, 42)
	require.NoError(t, err)
	assert.NotNil(t, summary.Items)
	assert.Empty(t, summary.Items)
	assert.Equal(t, 0, summary.Count)
	assert.True(t, summary.Total.IsZero())
}

func TestCartService_UpdateQuantity(t *testing.T) {
	ctx := context.Background()
	cartRepo, _, _, svc := newCartServiceForTest()

	updated := &model.CartLine{ID: 5, Quantity: 4, UnitPrice: dec("299.00"), TotalPrice: dec("1196.00")}
	cartRepo.On("UpdateQuantity", ctx, int64(5), int64(42), 4).Return(updated, nil)

	line, err := svc.UpdateQuantity(ctx, 42, 5, 4)
	require.NoError(t, err)
	assert.Equal(t, 4, line.Quantity)
	assert.True(t, dec("1196.00").Equal(line.TotalPrice))
}

func TestCartService_UpdateQuantity_Invalid(t *testing.T) {
	ctx := context.Background()
	cartRepo, _, _, svc := newCartServiceForTest()

	_, err := svc.UpdateQuantity(ctx, 42, 5, 0)

	var v *model.ValidationError
	require.True(t, errors.As(err, &v))
	cartRepo.AssertNotCalled(t, "UpdateQuantity", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestCartService_UpdateQuantity_NotFound(t *testing.T) {
	ctx := context.Background()
	cartRepo, _, _, svc := newCartServiceForTest()

	cartRepo.On("UpdateQuantity", ctx, int64(5), int64(42), 2).Return(nil, nil)

	_, err := svc.UpdateQuantity(ctx, 42, 5, 2)

	var notFound *model.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "Cart item", notFound.Resource)
}

func TestCartService_Remove_NotFound(t *testing.T) {
	ctx := context.Background()
	cartRepo, _, _, svc := newCartServiceForTest()

	cartRepo.On("Delete", ctx, int64(5), int64(42)).Return(false, nil)

	err := svc.Remove(ctx, 42, 5)

	var notFound *model.NotFoundError
	require.True(t, errors.As(err, &notFound))
}
