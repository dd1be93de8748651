package model

import "time"

// Category represents a product category.
type Category struct {
	ID          int64     `json:"id" db:"id"`
	Name        string    `json:"name" db:"name"`
	Slug        string    `json:"slug" db:"slug"`
	Path        string    `json:"path" db:"path"`
	Description *string   `json:"description" db:"description"`
	Image       *string   `json:"image" db:"image"`
	Icon        *string   `json:"icon" db:"icon"`
	SortOrder   int       `json:"sort_order" db:"sort_order"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	IsFeatured  bool      `json:"is_featured" db:"is_featured"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`

	// ProductCount is populated on listing queries only.
	ProductCount int64 `json:"product_count,omitempty"`
}

// CategoryRequest represents the payload for creating or updating a category.
// The slug is always derived from the name.
type CategoryRequest struct {
	Name        string  `json:"name"`
	Path        string  `json:"path"`
	Description *string `json:"description"`
	Image       *string `json:"image"`
	Icon        *string `json:"icon"`
	SortOrder   *int    `json:"sort_order"`
	IsActive    *bool   `json:"is_active"`
	IsFeatured  *bool   `json:"is_featured"`
}
