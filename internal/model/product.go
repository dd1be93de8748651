package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock status values derived from stock_quantity.
const (
	StockStatusInStock    = "in_stock"
	StockStatusOutOfStock = "out_of_stock"
)

// Product represents a catalogue product.
type Product struct {
	ID               int64            `json:"id" db:"id"`
	CategoryID       *int64           `json:"category_id" db:"category_id"`
	Name             string           `json:"name" db:"name"`
	Slug             string           `json:"slug" db:"slug"`
	Description      *string          `json:"description" db:"description"`
	ShortDescription *string          `json:"short_description" db:"short_description"`
	Price            decimal.Decimal  `json:"price" db:"price"`
	SalePrice        *decimal.Decimal `json:"sale_price" db:"sale_price"`
	SKU              *string          `json:"sku" db:"sku"`
	StockQuantity    int              `json:"stock_quantity" db:"stock_quantity"`
	StockStatus      string           `json:"stock_status" db:"stock_status"`
	FeaturedImage    *string          `json:"featured_image" db:"featured_image"`
	IsFeatured       bool             `json:"is_featured" db:"is_featured"`
	IsActive         bool             `json:"is_active" db:"is_active"`
	Views            int64            `json:"views" db:"views"`
	Rating           decimal.Decimal  `json:"rating" db:"rating"`
	ReviewsCount     int              `json:"reviews_count" db:"reviews_count"`
	CreatedAt        time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at" db:"updated_at"`

	// Category is populated when the caller fetched it explicitly.
	Category *Category `json:"category,omitempty"`
}

// CurrentPrice returns the effective price: the sale price when it is set and
// lower than the regular price, the regular price otherwise.
func (p *Product) CurrentPrice() decimal.Decimal {
	if p.SalePrice != nil && p.SalePrice.LessThan(p.Price) {
		return *p.SalePrice
	}
	return p.Price
}

// OnSale reports whether the sale price undercuts the regular price.
func (p *Product) OnSale() bool {
	return p.SalePrice != nil && p.SalePrice.LessThan(p.Price)
}

// DiscountPercentage returns the rounded discount relative to the regular
// price, or 0 when the product is not on sale.
func (p *Product) DiscountPercentage() int64 {
	if !p.OnSale() || p.Price.IsZero() {
		return 0
	}
	return p.Price.Sub(*p.SalePrice).
		Div(p.Price).
		Mul(decimal.NewFromInt(100)).
		Round(0).
		IntPart()
}

// InStock reports whether the product can currently be ordered.
func (p *Product) InStock() bool {
	return p.StockStatus == StockStatusInStock && p.StockQuantity > 0
}

// ProductFilter captures the supported catalogue listing filters.
type ProductFilter struct {
	CategoryID   *int64
	CategorySlug string
	FeaturedOnly bool
	InStockOnly  bool
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	Search       string
	SortBy       string
	SortOrder    string
	Page         int
	PerPage      int
}

// ProductPage is one page of a catalogue listing.
type ProductPage struct {
	Items   []Product `json:"items"`
	Total   int64     `json:"total"`
	Page    int       `json:"page"`
	PerPage int       `json:"per_page"`
}

// PriceRange is the min/max price span of a product set.
type PriceRange struct {
	Min decimal.Decimal `json:"min"`
	Max decimal.Decimal `json:"max"`
}

// CategoryProducts is the category-scoped listing response: the category, one
// page of its products and the price span across all of them.
type CategoryProducts struct {
	Category   *Category    `json:"category"`
	Products   *ProductPage `json:"products"`
	PriceRange *PriceRange  `json:"price_range"`
}

// ProductRequest represents the payload for creating or updating a product.
type ProductRequest struct {
	CategoryID       *int64           `json:"category_id"`
	Name             string           `json:"name"`
	Description      *string          `json:"description"`
	ShortDescription *string          `json:"short_description"`
	Price            decimal.Decimal  `json:"price"`
	SalePrice        *decimal.Decimal `json:"sale_price"`
	SKU              *string          `json:"sku"`
	StockQuantity    int              `json:"stock_quantity"`
	FeaturedImage    *string          `json:"featured_image"`
	IsFeatured       *bool            `json:"is_featured"`
	IsActive         *bool            `json:"is_active"`
}
