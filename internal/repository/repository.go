package repository

import (
	"context"

	"print-kart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// UserRepository defines the interface for user data access operations.
type UserRepository interface {
	// Create inserts a new user and fills in the generated ID.
	Create(ctx context.Context, user *model.User) error

	// GetByEmail retrieves a user by email. Returns nil when absent.
	GetByEmail(ctx context.Context, email string) (*model.User, error)

	// GetByID retrieves a user by ID. Returns nil when absent.
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// CategoryRepository defines the interface for category data access
// operations.
type CategoryRepository interface {
	// List retrieves categories ordered by sort_order, with product counts.
	List(ctx context.Context, activeOnly, featuredOnly bool) ([]model.Category, error)

	// GetBySlug retrieves an active category by slug. Returns nil when absent.
	GetBySlug(ctx context.Context, slug string) (*model.Category, error)

	// GetByID retrieves a category by ID. Returns nil when absent.
	GetByID(ctx context.Context, id int64) (*model.Category, error)

	// Create inserts a new category and fills in the generated ID.
	Create(ctx context.Context, category *model.Category) error

	// Update persists all mutable fields of the category.
	Update(ctx context.Context, category *model.Category) error

	// Delete removes a category. Returns false when it did not exist.
	Delete(ctx context.Context, id int64) (bool, error)
}

// ProductRepository defines the interface for product data access operations.
type ProductRepository interface {
	// List retrieves one page of active products matching the filter.
	List(ctx context.Context, filter model.ProductFilter) (*model.ProductPage, error)

	// GetByID retrieves a product by ID. Returns nil when absent.
	GetByID(ctx context.Context, id int64) (*model.Product, error)

	// GetBySlug retrieves an active product by slug with its category.
	// Returns nil when absent.
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)

	// Related retrieves up to limit active products sharing the category,
	// excluding the product itself.
	Related(ctx context.Context, categoryID int64, excludeID int64, limit int) ([]model.Product, error)

	// PriceRange returns the min/max price across a category's active
	// products.
	PriceRange(ctx context.Context, categoryID int64) (*model.PriceRange, error)

	// Create inserts a new product and fills in the generated ID.
	Create(ctx context.Context, product *model.Product) error

	// Update persists all mutable fields of the product.
	Update(ctx context.Context, product *model.Product) error

	// Delete removes a product. Returns false when it did not exist.
	Delete(ctx context.Context, id int64) (bool, error)

	// IncrementViews bumps the view counter.
	IncrementViews(ctx context.Context, id int64) error

	// LockForUpdate retrieves a product inside the transaction with a row
	// lock held until commit. Returns nil when absent.
	LockForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*model.Product, error)

	// DecrementStock reduces stock within the transaction, flipping
	// stock_status to out_of_stock at zero. Fails if stock would go negative.
	DecrementStock(ctx context.Context, tx pgx.Tx, id int64, quantity int) error
}

// CartRepository defines the interface for cart data access operations.
type CartRepository interface {
	// ListByUser retrieves the user's cart lines newest first, joined with
	// their products. Lines whose product no longer exists are omitted.
	ListByUser(ctx context.Context, userID int64) ([]model.CartLine, error)

	// Upsert inserts the line or, when a line with the same user, product and
	// canonical attribute selection exists, accumulates its quantity,
	// refreshes the unit price and recomputes the total. The stored line is
	// returned through the argument.
	Upsert(ctx context.Context, line *model.CartLine) error

	// GetByIDForUser retrieves one of the user's cart lines. Returns nil when
	// absent.
	GetByIDForUser(ctx context.Context, id, userID int64) (*model.CartLine, error)

	// UpdateQuantity sets the quantity and recomputes the total from the
	// stored unit price. Returns nil when the line is absent.
	UpdateQuantity(ctx context.Context, id, userID int64, quantity int) (*model.CartLine, error)

	// Delete removes one of the user's cart lines. Returns false when it did
	// not exist.
	Delete(ctx context.Context, id, userID int64) (bool, error)

	// Clear removes all of the user's cart lines.
	Clear(ctx context.Context, userID int64) error

	// ClearTx removes all of the user's cart lines within the transaction.
	ClearTx(ctx context.Context, tx pgx.Tx, userID int64) error

	// Count returns the summed quantity across the user's cart lines.
	Count(ctx context.Context, userID int64) (int64, error)

	// Total returns the summed total price across the user's cart lines.
	Total(ctx context.Context, userID int64) (decimal.Decimal, error)
}

// OrderRepository defines the interface for order data access operations.
type OrderRepository interface {
	// BeginTx starts a new database transaction.
	BeginTx(ctx context.Context) (pgx.Tx, error)

	// Create inserts a new order within the provided transaction.
	Create(ctx context.Context, tx pgx.Tx, order *model.Order) error

	// CreateItems inserts multiple order items within the provided
	// transaction.
	CreateItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error

	// ListByUser retrieves the user's orders newest first, items included.
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)

	// GetByIDForUser retrieves one of the user's orders with its items and
	// live product details. Returns nil when absent or owned by someone else.
	GetByIDForUser(ctx context.Context, id uuid.UUID, userID int64) (*model.Order, error)

	// ItemProductName returns the snapshotted product name if the given
	// product appears among the items of the user's order.
	ItemProductName(ctx context.Context, orderID uuid.UUID, userID, productID int64) (string, bool, error)
}

// FavoriteRepository defines the interface for favorites data access
// operations.
type FavoriteRepository interface {
	// ListProducts retrieves the user's favourited products, newest
	// favourites first. Deleted products are omitted.
	ListProducts(ctx context.Context, userID int64) ([]model.Product, error)

	// Add favourites a product. Returns false when it was already favourited.
	Add(ctx context.Context, userID, productID int64) (bool, error)

	// Remove unfavourites a product. Returns false when it was not
	// favourited.
	Remove(ctx context.Context, userID, productID int64) (bool, error)

	// Exists reports whether the product is favourited by the user.
	Exists(ctx context.Context, userID, productID int64) (bool, error)

	// Count returns the number of the user's favourites.
	Count(ctx context.Context, userID int64) (int64, error)

	// Clear removes all of the user's favourites.
	Clear(ctx context.Context, userID int64) error
}

// BannerRepository defines the interface for banner data access operations.
type BannerRepository interface {
	// List retrieves banners ordered by sort_order then newest first,
	// optionally filtered by type and active status.
	List(ctx context.Context, bannerType string, activeOnly bool) ([]model.Banner, error)

	// GetByID retrieves a banner by ID. Returns nil when absent.
	GetByID(ctx context.Context, id int64) (*model.Banner, error)

	// Create inserts a new banner and fills in the generated ID.
	Create(ctx context.Context, banner *model.Banner) error

	// Update persists all mutable fields of the banner.
	Update(ctx context.Context, banner *model.Banner) error

	// Delete removes a banner. Returns false when it did not exist.
	Delete(ctx context.Context, id int64) (bool, error)
}

// OfferBarRepository defines the interface for offer bar data access
// operations.
type OfferBarRepository interface {
	// List retrieves offer bars ordered by sort_order then newest first.
	// When currentOnly is set, only active bars within their date window are
	// returned.
	List(ctx context.Context, currentOnly bool) ([]model.OfferBar, error)

	// GetByID retrieves an offer bar by ID. Returns nil when absent.
	GetByID(ctx context.Context, id int64) (*model.OfferBar, error)

	// Create inserts a new offer bar and fills in the generated ID.
	Create(ctx context.Context, bar *model.OfferBar) error

	// Update persists all mutable fields of the offer bar.
	Update(ctx context.Context, bar *model.OfferBar) error

	// Delete removes an offer bar. Returns false when it did not exist.
	Delete(ctx context.Context, id int64) (bool, error)
}

// ComplaintRepository defines the interface for complaint data access
// operations.
type ComplaintRepository interface {
	// Create inserts a new complaint and fills in the generated ID.
	Create(ctx context.Context, complaint *model.Complaint) error
}

// ProductCache caches products by slug with a short TTL.
type ProductCache interface {
	// GetBySlug retrieves a cached product. Returns nil on a miss.
	GetBySlug(ctx context.Context, slug string) (*model.Product, error)

	// SetBySlug caches a product under its slug.
	SetBySlug(ctx context.Context, product *model.Product) error

	// Invalidate drops a cached product.
	Invalidate(ctx context.Context, slug string) error
}
