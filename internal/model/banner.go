package model

import "time"

// Banner type and position values.
const (
	BannerTypeHero  = "hero"
	BannerTypePromo = "promo"

	BannerPositionLeft  = "left"
	BannerPositionRight = "right"
	BannerPositionFull  = "full"
)

// Banner represents a promotional banner.
type Banner struct {
	ID          int64     `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Subtitle    *string   `json:"subtitle" db:"subtitle"`
	Description *string   `json:"description" db:"description"`
	PriceText   *string   `json:"price_text" db:"price_text"`
	ButtonText  string    `json:"button_text" db:"button_text"`
	ButtonLink  *string   `json:"button_link" db:"button_link"`
	ImagePath   string    `json:"image_path" db:"image_path"`
	ImageURL    string    `json:"image_url" db:"-"`
	Type        string    `json:"type" db:"type"`
	Position    string    `json:"position" db:"position"`
	SortOrder   int       `json:"sort_order" db:"sort_order"`
	IsActive    bool      `json:"is_active" db:"is_active"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// BannerRequest represents the multipart form fields for creating or updating
// a banner. The image file is handled separately by the storage backend.
type BannerRequest struct {
	Title       string
	Subtitle    *string
	Description *string
	PriceText   *string
	ButtonText  string
	ButtonLink  *string
	Type        string
	Position    string
	SortOrder   int
	IsActive    bool
}
