package service

import (
	"context"
	"io"

	"print-kart/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Upload is a file received from a multipart form, passed down to the storage
// backend.
type Upload struct {
	Filename string
	Content  io.Reader
}

// AuthService defines operations for registration, login and profile access.
type AuthService interface {
	// Register creates a new user and issues a bearer token.
	Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error)

	// Login verifies credentials and issues a bearer token.
	Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error)

	// Profile retrieves the authenticated user.
	Profile(ctx context.Context, userID int64) (*model.User, error)
}

// CategoryService defines operations for category management.
type CategoryService interface {
	// List retrieves active categories with product counts, optionally
	// featured only.
	List(ctx context.Context, featuredOnly bool) ([]model.Category, error)

	// GetBySlug retrieves an active category by slug.
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)

	// Create creates a category; the slug is derived from the name.
	Create(ctx context.Context, req *model.CategoryRequest) (*model.Category, error)

	// Update updates a category.
	Update(ctx context.Context, id int64, req *model.CategoryRequest) (*model.Category, error)

	// Delete removes a category.
	Delete(ctx context.Context, id int64) error
}

// ProductService defines operations for catalogue management.
type ProductService interface {
	// List retrieves one page of active products matching the filter.
	List(ctx context.Context, filter model.ProductFilter) (*model.ProductPage, error)

	// Featured retrieves up to limit featured products, newest first.
	Featured(ctx context.Context, limit int) ([]model.Product, error)

	// NewArrivals retrieves up to limit newest products.
	NewArrivals(ctx context.Context, limit int) ([]model.Product, error)

	// ListByCategory retrieves a category page: the category, its products
	// and their price range.
	ListByCategory(ctx context.Context, categorySlug string, filter model.ProductFilter) (*model.CategoryProducts, error)

	// GetBySlug retrieves an active product by slug and bumps its view
	// counter.
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)

	// Related retrieves products sharing the category of the given slug.
	Related(ctx context.Context, slug string, limit int) ([]model.Product, error)

	// Create creates a product; the slug is derived from the name.
	Create(ctx context.Context, req *model.ProductRequest) (*model.Product, error)

	// Update updates a product.
	Update(ctx context.Context, id int64, req *model.ProductRequest) (*model.Product, error)

	// Delete removes a product.
	Delete(ctx context.Context, id int64) error

	// IncrementViews bumps the view counter.
	IncrementViews(ctx context.Context, id int64) error
}

// CartService defines operations on the authenticated user's cart.
type CartService interface {
	// List retrieves the cart with aggregates.
	List(ctx context.Context, userID int64) (*model.CartSummary, error)

	// Add adds a product to the cart, merging with an existing line carrying
	// the same attribute selection. Optional front/back design uploads are
	// stored and their paths recorded on the line.
	Add(ctx context.Context, userID int64, req *model.AddToCartRequest, front, back *Upload) (*model.CartLine, error)

	// UpdateQuantity sets a line's quantity.
	UpdateQuantity(ctx context.Context, userID, lineID int64, quantity int) (*model.CartLine, error)

	// Remove deletes a line.
	Remove(ctx context.Context, userID, lineID int64) error

	// Clear empties the cart.
	Clear(ctx context.Context, userID int64) error

	// Count returns the summed quantity across the cart.
	Count(ctx context.Context, userID int64) (int64, error)

	// Total returns the cart's total price.
	Total(ctx context.Context, userID int64) (decimal.Decimal, error)
}

// OrderService defines operations for order placement and history.
type OrderService interface {
	// Place atomically places an order: validates stock under row locks,
	// snapshots prices, decrements stock and clears the cart.
	Place(ctx context.Context, userID int64, req *model.PlaceOrderRequest) (*model.Order, error)

	// List retrieves the user's orders newest first.
	List(ctx context.Context, userID int64) ([]model.Order, error)

	// Get retrieves one of the user's orders with items.
	Get(ctx context.Context, userID int64, id uuid.UUID) (*model.Order, error)

	// RaiseTicket files a complaint against a product within one of the
	// user's orders, storing up to five images.
	RaiseTicket(ctx context.Context, userID int64, req *model.RaiseTicketRequest, images []Upload) (*model.Complaint, error)
}

// FavoriteService defines operations on the authenticated user's favourites.
type FavoriteService interface {
	// List retrieves the favourited products, newest favourites first.
	List(ctx context.Context, userID int64) ([]model.Product, error)

	// Add favourites a product.
	Add(ctx context.Context, userID, productID int64) error

	// Toggle flips the favourite state and reports the resulting state.
	Toggle(ctx context.Context, userID, productID int64) (bool, error)

	// Remove unfavourites a product.
	Remove(ctx context.Context, userID, productID int64) error

	// Check reports whether the product is favourited.
	Check(ctx context.Context, userID, productID int64) (bool, error)

	// Count returns the number of favourites.
	Count(ctx context.Context, userID int64) (int64, error)

	// Clear removes all favourites.
	Clear(ctx context.Context, userID int64) error
}

// BannerService defines operations for banner management.
type BannerService interface {
	// List retrieves banners, optionally filtered by type and active status.
	List(ctx context.Context, bannerType string, activeOnly bool) ([]model.Banner, error)

	// Create creates a banner with its uploaded image.
	Create(ctx context.Context, req *model.BannerRequest, image *Upload) (*model.Banner, error)

	// Update updates a banner, replacing the image when a new one is
	// uploaded.
	Update(ctx context.Context, id int64, req *model.BannerRequest, image *Upload) (*model.Banner, error)

	// Delete removes a banner and its stored image.
	Delete(ctx context.Context, id int64) error
}

// OfferBarService defines operations for offer bar management.
type OfferBarService interface {
	// List retrieves offer bars; when currentOnly is set, only active bars
	// within their date window.
	List(ctx context.Context, currentOnly bool) ([]model.OfferBar, error)

	// Create creates an offer bar.
	Create(ctx context.Context, req *model.OfferBarRequest) (*model.OfferBar, error)

	// Update updates an offer bar.
	Update(ctx context.Context, id int64, req *model.OfferBarRequest) (*model.OfferBar, error)

	// Delete removes an offer bar.
	Delete(ctx context.Context, id int64) error
}
