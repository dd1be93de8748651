package model

import "time"

// OfferBar is a site-wide promotional message strip, optionally limited to a
// date window.
type OfferBar struct {
	ID              int64      `json:"id" db:"id"`
	Message         string     `json:"message" db:"message"`
	BackgroundColor string     `json:"background_color" db:"background_color"`
	TextColor       string     `json:"text_color" db:"text_color"`
	SortOrder       int        `json:"sort_order" db:"sort_order"`
	IsActive        bool       `json:"is_active" db:"is_active"`
	StartDate       *time.Time `json:"start_date" db:"start_date"`
	EndDate         *time.Time `json:"end_date" db:"end_date"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at" db:"updated_at"`
}

// OfferBarRequest represents the payload for creating or updating an offer
// bar. Nil pointers fall back to defaults on create and leave the current
// value untouched on update.
type OfferBarRequest struct {
	Message         string     `json:"message"`
	BackgroundColor *string    `json:"background_color"`
	TextColor       *string    `json:"text_color"`
	SortOrder       *int       `json:"sort_order"`
	IsActive        *bool      `json:"is_active"`
	StartDate       *time.Time `json:"start_date"`
	EndDate         *time.Time `json:"end_date"`
}
