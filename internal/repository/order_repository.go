package repository

import (
	"context"
	"fmt"

	"print-kart/internal/model"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// orderRepository implements the OrderRepository interface using PostgreSQL.
type orderRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool *pgxpool.Pool, logger zerolog.Logger) OrderRepository {
	return &orderRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "order").Logger(),
	}
}

// BeginTx starts a new database transaction.
func (r *orderRepository) BeginTx(ctx context.Context) (pgx.Tx, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to begin transaction")
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	return tx, nil
}

// Create inserts a new order within the provided transaction.
func (r *orderRepository) Create(ctx context.Context, tx pgx.Tx, order *model.Order) error {
	query := `
		INSERT INTO orders (id, user_id, order_number, status, subtotal, tax, shipping, total,
			payment_method, payment_status, transaction_id, invoice_id,
			shipping_address, shipping_city, shipping_state, shipping_zip, shipping_country, phone)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)
		RETURNING created_at, updated_at
	`

	err := tx.QueryRow(ctx, query,
		order.ID, order.UserID, order.OrderNumber, order.Status,
		order.Subtotal, order.Tax, order.Shipping, order.Total,
		order.PaymentMethod, order.PaymentStatus, order.TransactionID, order.InvoiceID,
		order.ShippingAddress, order.ShippingCity, order.ShippingState,
		order.ShippingZip, order.ShippingCountry, order.Phone,
	).Scan(&order.CreatedAt, &order.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("order_number", order.OrderNumber).Msg("failed to create order")
		return fmt.Errorf("failed to create order: %w", err)
	}

	return nil
}

// CreateItems inserts the order items within the provided transaction using a
// single batch round trip.
func (r *orderRepository) CreateItems(ctx context.Context, tx pgx.Tx, items []model.OrderItem) error {
	query := `
		INSERT INTO order_items (id, order_id, product_id, product_name, price, quantity, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	batch := &pgx.Batch{}
	for _, item := range items {
		batch.Queue(query,
			item.ID, item.OrderID, item.ProductID, item.ProductName,
			item.Price, item.Quantity, item.Subtotal,
		)
	}

	results := tx.SendBatch(ctx, batch)
	defer results.Close()

	for range items {
		if _, err := results.Exec(); err != nil {
			r.logger.Error().Err(err).Msg("failed to insert order item")
			return fmt.Errorf("failed to insert order item: %w", err)
		}
	}

	return results.Close()
}

const orderColumns = `id, user_id, order_number, status, subtotal, tax, shipping, total,
	payment_method, payment_status, transaction_id, invoice_id,
	shipping_address, shipping_city, shipping_state, shipping_zip, shipping_country, phone,
	created_at, updated_at`

func scanOrder(row pgx.Row, o *model.Order) error {
	return row.Scan(
		&o.ID, &o.UserID, &o.OrderNumber, &o.Status, &o.Subtotal, &o.Tax, &o.Shipping, &o.Total,
		&o.PaymentMethod, &o.PaymentStatus, &o.TransactionID, &o.InvoiceID,
		&o.ShippingAddress, &o.ShippingCity, &o.ShippingState, &o.ShippingZip, &o.ShippingCountry, &o.Phone,
		&o.CreatedAt, &o.UpdatedAt,
	)
}

// ListByUser retrieves the user's orders newest first, items included.
func (r *orderRepository) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to query orders")
		return nil, fmt.Errorf("failed to query orders: %w", err)
	}
	defer rows.Close()

	var orders []model.Order
	var orderIDs []uuid.UUID
	for rows.Next() {
		var o model.Order
		if err := scanOrder(rows, &o); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order row")
			return nil, fmt.Errorf("failed to scan order: %w", err)
		}
		orders = append(orders, o)
		orderIDs = append(orderIDs, o.ID)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order rows")
		return nil, fmt.Errorf("error iterating orders: %w", err)
	}

	if len(orders) == 0 {
		return orders, nil
	}

	itemsByOrder, err := r.itemsForOrders(ctx, orderIDs)
	if err != nil {
		return nil, err
	}
	for i := range orders {
		orders[i].Items = itemsByOrder[orders[i].ID]
	}

	return orders, nil
}

// itemsForOrders fetches items for a set of orders in one query.
func (r *orderRepository) itemsForOrders(ctx context.Context, orderIDs []uuid.UUID) (map[uuid.UUID][]model.OrderItem, error) {
	query := `
		SELECT id, order_id, product_id, product_name, price, quantity, subtotal
		FROM order_items
		WHERE order_id = ANY($1)
		ORDER BY product_name
	`

	rows, err := r.pool.Query(ctx, query, orderIDs)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	items := make(map[uuid.UUID][]model.OrderItem)
	for rows.Next() {
		var it model.OrderItem
		err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Price, &it.Quantity, &it.Subtotal)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		items[it.OrderID] = append(items[it.OrderID], it)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return items, nil
}

// GetByIDForUser retrieves one of the user's orders with its items and live
// product details. Returns nil when absent or owned by someone else.
func (r *orderRepository) GetByIDForUser(ctx context.Context, id uuid.UUID, userID int64) (*model.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1 AND user_id = $2`

	var o model.Order
	if err := scanOrder(r.pool.QueryRow(ctx, query, id, userID), &o); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order")
		return nil, fmt.Errorf("failed to query order: %w", err)
	}

	itemsQuery := `
		SELECT oi.id, oi.order_id, oi.product_id, oi.product_name, oi.price, oi.quantity, oi.subtotal,
		       p.id, p.name, p.slug, p.featured_image
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.product_name
	`

	rows, err := r.pool.Query(ctx, itemsQuery, id)
	if err != nil {
		r.logger.Error().Err(err).Str("order_id", id.String()).Msg("failed to query order items")
		return nil, fmt.Errorf("failed to query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it model.OrderItem
		var prodID *int64
		var prodName, prodSlug *string
		var prodImage *string
		err := rows.Scan(
			&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Price, &it.Quantity, &it.Subtotal,
			&prodID, &prodName, &prodSlug, &prodImage,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan order item row")
			return nil, fmt.Errorf("failed to scan order item: %w", err)
		}
		if prodID != nil {
			it.Product = &model.Product{
				ID:            *prodID,
				Name:          *prodName,
				Slug:          *prodSlug,
				FeaturedImage: prodImage,
			}
		}
		o.Items = append(o.Items, it)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating order item rows")
		return nil, fmt.Errorf("error iterating order items: %w", err)
	}

	return &o, nil
}

// ItemProductName returns the snapshotted product name if the given product
// appears among the items of the user's order.
func (r *orderRepository) ItemProductName(ctx context.Context, orderID uuid.UUID, userID, productID int64) (string, bool, error) {
	query := `
		SELECT oi.product_name
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE oi.order_id = $1 AND o.user_id = $2 AND oi.product_id = $3
	`

	var name string
	err := r.pool.QueryRow(ctx, query, orderID, userID, productID).Scan(&name)
	if err != nil {
		if err == pgx.ErrNoRows {
			return "", false, nil
		}
		r.logger.Error().Err(err).Str("order_id", orderID.String()).Msg("failed to query order item")
		return "", false, fmt.Errorf("failed to query order item: %w", err)
	}

	return name, true, nil
}
