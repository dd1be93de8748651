package model

import "time"

// Favorite marks a product as favourited by a user.
type Favorite struct {
	ID        int64     `json:"id" db:"id"`
	UserID    int64     `json:"-" db:"user_id"`
	ProductID int64     `json:"product_id" db:"product_id"`
	CreatedAt time.Time `json:"favorited_at" db:"created_at"`
}
