package integration

import (
	"context"
	"errors"
	"sync"
	"testing"

	"print-kart/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placeRequest(productID int64, quantity int) *model.PlaceOrderRequest {
	return &model.PlaceOrderRequest{
		Items:           []model.OrderItemRequest{{ProductID: productID, Quantity: quantity}},
		ShippingAddress: "12 MG Road",
		ShippingCity:    "Bengaluru",
		ShippingState:   "Karnataka",
		ShippingZip:     "560001",
		Phone:           "9876543210",
	}
}

func TestOrderPlacement_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	app := setupTestApp(t, testDB)
	ctx := context.Background()

	product := seedProduct(t, app.ProductRepo, "Classic Cotton Tee", "499.00", 10)
	userID, _ := registerUser(t, app, "buyer@example.com")

	// The buyer has a cart; placing an order empties it.
	require.NoError(t, app.CartRepo.Upsert(ctx, &model.CartLine{
		UserID:    userID,
		ProductID: product.ID,
		Quantity:  3,
		UnitPrice: decimal.RequireFromString("499.00"),
	}))

	order, err := app.OrderSvc.Place(ctx, userID, placeRequest(product.ID, 3))
	require.NoError(t, err)

	assert.True(t, decimal.RequireFromString("1497.00").Equal(order.Total))
	require.Len(t, order.Items, 1)
	assert.Equal(t, "Classic Cotton Tee", order.Items[0].ProductName)

	// Stock went down and the cart is gone.
	reloaded, err := app.ProductRepo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, reloaded.StockQuantity)

	count, err := app.CartRepo.Count(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), count)

	// The order shows up in history with its items.
	orders, err := app.OrderSvc.List(ctx, userID)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.OrderNumber, orders[0].OrderNumber)

	fetched, err := app.OrderSvc.Get(ctx, userID, order.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Items, 1)
	assert.Equal(t, 3, fetched.Items[0].Quantity)
}

func TestOrderPlacement_InsufficientStockLeavesStateUnchanged(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	app := setupTestApp(t, testDB)
	ctx := context.Background()

	product := seedProduct(t, app.ProductRepo, "A2 Framed Poster", "899.00", 2)
	userID, _ := registerUser(t, app, "buyer@example.com")

	require.NoError(t, app.CartRepo.Upsert(ctx, &model.CartLine{
		UserID:    userID,
		ProductID: product.ID,
		Quantity:  5,
		UnitPrice: decimal.RequireFromString("899.00"),
	}))

	_, err := app.OrderSvc.Place(ctx, userID, placeRequest(product.ID, 5))
	require.Error(t, err)

	var domainErr *model.DomainError
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, "Insufficient stock for A2 Framed Poster. Available: 2", domainErr.Message)

	// Nothing moved: stock intact, cart intact, no order recorded.
	reloaded, err := app.ProductRepo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, reloaded.StockQuantity)

	count, err := app.CartRepo.Count(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, int64(5), count)

	orders, err := app.OrderSvc.List(ctx, userID)
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderPlacement_PriceFrozenAfterRepricing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	app := setupTestApp(t, testDB)
	ctx := context.Background()

	product := seedProduct(t, app.ProductRepo, "Canvas Tote Bag", "349.00", 10)
	userID, _ := registerUser(t, app, "buyer@example.com")

	order, err := app.OrderSvc.Place(ctx, userID, placeRequest(product.ID, 2))
	require.NoError(t, err)

	// Reprice the product after the sale went through.
	reloaded, err := app.ProductRepo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	reloaded.Price = decimal.RequireFromString("599.00")
	require.NoError(t, app.ProductRepo.Update(ctx, reloaded))

	// The order keeps the price it was placed at.
	fetched, err := app.OrderSvc.Get(ctx, userID, order.ID)
	require.NoError(t, err)
	require.Len(t, fetched.Items, 1)
	assert.True(t, decimal.RequireFromString("349.00").Equal(fetched.Items[0].Price),
		"item price = %s", fetched.Items[0].Price)
	assert.True(t, decimal.RequireFromString("698.00").Equal(fetched.Total))
}

func TestOrderPlacement_ConcurrentLastUnit(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	app := setupTestApp(t, testDB)
	ctx := context.Background()

	product := seedProduct(t, app.ProductRepo, "Zip-Up Hoodie", "1499.00", 1)

	firstUser, _ := registerUser(t, app, "first@example.com")
	secondUser, _ := registerUser(t, app, "second@example.com")

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i, userID := range []int64{firstUser, secondUser} {
		wg.Add(1)
		go func(i int, userID int64) {
			defer wg.Done()
			_, results[i] = app.OrderSvc.Place(ctx, userID, placeRequest(product.ID, 1))
		}(i, userID)
	}
	wg.Wait()

	// The row lock serializes the two placements: exactly one wins.
	succeeded := 0
	for _, err := range results {
		if err == nil {
			succeeded++
		} else {
			var domainErr *model.DomainError
			assert.True(t, errors.As(err, &domainErr), "unexpected error: %v", err)
		}
	}
	assert.Equal(t, 1, succeeded)

	reloaded, err := app.ProductRepo.GetByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.StockQuantity)
	assert.Equal(t, model.StockStatusOutOfStock, reloaded.StockStatus)
}

func TestRaiseTicket_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	app := setupTestApp(t, testDB)
	ctx := context.Background()

	product := seedProduct(t, app.ProductRepo, "Ceramic Mug 325ml", "299.00", 10)
	userID, _ := registerUser(t, app, "buyer@example.com")
	strangerID, _ := registerUser(t, app, "stranger@example.com")

	order, err := app.OrderSvc.Place(ctx, userID, placeRequest(product.ID, 1))
	require.NoError(t, err)

	req := &model.RaiseTicketRequest{
		OrderID:     order.ID,
		ProductID:   product.ID,
		IssueType:   "damaged",
		Description: "Handle arrived cracked",
	}

	complaint, err := app.OrderSvc.RaiseTicket(ctx, userID, req, nil)
	require.NoError(t, err)
	assert.Equal(t, "Ceramic Mug 325ml", complaint.ProductName)
	assert.Equal(t, model.ComplaintStatusPending, complaint.Status)

	// Someone else's order looks like it does not exist.
	_, err = app.OrderSvc.RaiseTicket(ctx, strangerID, req, nil)
	var notFound *model.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "Order", notFound.Resource)
}
