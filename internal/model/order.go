package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order status values.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusShipped    = "shipped"
	OrderStatusDelivered  = "delivered"
	OrderStatusCancelled  = "cancelled"
)

// Payment status values.
const (
	PaymentStatusPending  = "pending"
	PaymentStatusPaid     = "paid"
	PaymentStatusFailed   = "failed"
	PaymentStatusRefunded = "refunded"
)

// Order represents a placed customer order. Tax and shipping are always zero
// in this system; totals are computed at placement time and never change.
type Order struct {
	ID              uuid.UUID       `json:"id" db:"id"`
	UserID          int64           `json:"-" db:"user_id"`
	OrderNumber     string          `json:"order_number" db:"order_number"`
	Status          string          `json:"status" db:"status"`
	Subtotal        decimal.Decimal `json:"subtotal" db:"subtotal"`
	Tax             decimal.Decimal `json:"tax" db:"tax"`
	Shipping        decimal.Decimal `json:"shipping" db:"shipping"`
	Total           decimal.Decimal `json:"total" db:"total"`
	PaymentMethod   string          `json:"payment_method" db:"payment_method"`
	PaymentStatus   string          `json:"payment_status" db:"payment_status"`
	TransactionID   string          `json:"transaction_id" db:"transaction_id"`
	InvoiceID       string          `json:"invoice_id" db:"invoice_id"`
	ShippingAddress string          `json:"shipping_address" db:"shipping_address"`
	ShippingCity    string          `json:"shipping_city" db:"shipping_city"`
	ShippingState   string          `json:"shipping_state" db:"shipping_state"`
	ShippingZip     string          `json:"shipping_zip" db:"shipping_zip"`
	ShippingCountry string          `json:"shipping_country" db:"shipping_country"`
	Phone           string          `json:"phone" db:"phone"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at" db:"updated_at"`

	Items []OrderItem `json:"items,omitempty"`
}

// OrderItem is a line item within an order. Product name and price are
// snapshots taken at purchase time; later product edits never alter them.
type OrderItem struct {
	ID          uuid.UUID       `json:"-" db:"id"`
	OrderID     uuid.UUID       `json:"-" db:"order_id"`
	ProductID   int64           `json:"product_id" db:"product_id"`
	ProductName string          `json:"product_name" db:"product_name"`
	Price       decimal.Decimal `json:"price" db:"price"`
	Quantity    int             `json:"quantity" db:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal" db:"subtotal"`

	// Product is the live product, attached when still present.
	Product *Product `json:"product,omitempty"`
}

// OrderItemRequest is a single (product, quantity) pair in a placement
// request.
type OrderItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// PlaceOrderRequest represents the payload for POST /api/orders.
type PlaceOrderRequest struct {
	Items           []OrderItemRequest `json:"items"`
	ShippingAddress string             `json:"shipping_address"`
	ShippingCity    string             `json:"shipping_city"`
	ShippingState   string             `json:"shipping_state"`
	ShippingZip     string             `json:"shipping_zip"`
	ShippingCountry string             `json:"shipping_country"`
	Phone           string             `json:"phone"`
	PaymentMethod   string             `json:"payment_method"`
}

// RaiseTicketRequest represents the form fields of POST /api/orders/raise-ticket.
// Complaint images arrive as multipart files alongside these fields.
type RaiseTicketRequest struct {
	OrderID     uuid.UUID
	ProductID   int64
	IssueType   string
	Description string
}
