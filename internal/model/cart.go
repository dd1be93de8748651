package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartLine is one product+quantity+attributes entry in a user's cart. At most
// one line exists per (user, product, canonical attribute selection).
type CartLine struct {
	ID                 int64           `json:"id" db:"id"`
	UserID             int64           `json:"-" db:"user_id"`
	ProductID          int64           `json:"product_id" db:"product_id"`
	Quantity           int             `json:"quantity" db:"quantity"`
	SelectedAttributes Attributes      `json:"selected_attributes" db:"selected_attributes"`
	FrontDesignPath    *string         `json:"front_design_path" db:"front_design_path"`
	BackDesignPath     *string         `json:"back_design_path" db:"back_design_path"`
	UnitPrice          decimal.Decimal `json:"unit_price" db:"unit_price"`
	TotalPrice         decimal.Decimal `json:"total_price" db:"total_price"`
	CreatedAt          time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at" db:"updated_at"`

	// Product is populated on listings; lines whose product has been deleted
	// are filtered out rather than surfaced as errors.
	Product *Product `json:"product,omitempty"`
}

// AddToCartRequest represents the payload for POST /api/cart/add. Design
// uploads arrive as multipart files alongside these fields.
type AddToCartRequest struct {
	ProductID          int64      `json:"product_id"`
	Quantity           int        `json:"quantity"`
	SelectedAttributes Attributes `json:"selected_attributes"`
}

// UpdateQuantityRequest represents the payload for PUT /api/cart/update/{id}.
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CartSummary is the cart listing response: surviving lines plus aggregates.
type CartSummary struct {
	Items []CartLine      `json:"items"`
	Count int             `json:"count"`
	Total decimal.Decimal `json:"total"`
}
