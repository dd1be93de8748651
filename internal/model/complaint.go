package model

import (
	"time"

	"github.com/google/uuid"
)

// Complaint status values.
const (
	ComplaintStatusPending  = "pending"
	ComplaintStatusResolved = "resolved"
)

// Complaint is a customer ticket raised against a product within one of the
// customer's own orders.
type Complaint struct {
	ID            int64      `json:"id" db:"id"`
	UserID        int64      `json:"-" db:"user_id"`
	OrderID       uuid.UUID  `json:"order_id" db:"order_id"`
	ProductID     int64      `json:"product_id" db:"product_id"`
	ProductName   string     `json:"product_name" db:"product_name"`
	IssueType     string     `json:"issue_type" db:"issue_type"`
	Description   string     `json:"description" db:"description"`
	Images        []string   `json:"images" db:"images"`
	Status        string     `json:"status" db:"status"`
	AdminResponse *string    `json:"admin_response" db:"admin_response"`
	ResolvedAt    *time.Time `json:"resolved_at" db:"resolved_at"`
	CreatedAt     time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at" db:"updated_at"`
}
