package repository

import (
	"context"
	"fmt"

	"print-kart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

// cartRepository implements the CartRepository interface using PostgreSQL.
type cartRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool *pgxpool.Pool, logger zerolog.Logger) CartRepository {
	return &cartRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "cart").Logger(),
	}
}

// ListByUser retrieves the user's cart lines newest first, joined with their
// products. The inner join drops lines whose product no longer exists.
func (r *cartRepository) ListByUser(ctx context.Context, userID int64) ([]model.CartLine, error) {
	query := `
		SELECT ct.id, ct.user_id, ct.product_id, ct.quantity, ct.selected_attributes,
		       ct.front_design_path, ct.back_design_path, ct.unit_price, ct.total_price,
		       ct.created_at, ct.updated_at,
		       ` + productColumns + `,
		       c.id, c.name, c.slug
		FROM carts ct
		JOIN products p ON p.id = ct.product_id
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE ct.user_id = $1
		ORDER BY ct.id DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to query cart")
		return nil, fmt.Errorf("failed to query cart: %w", err)
	}
	defer rows.Close()

	var lines []model.CartLine
	for rows.Next() {
		var line model.CartLine
		var attrs string
		var p model.Product
		var catID *int64
		var catName, catSlug *string

		err := rows.Scan(
			&line.ID, &line.UserID, &line.ProductID, &line.Quantity, &attrs,
			&line.FrontDesignPath, &line.BackDesignPath, &line.UnitPrice, &line.TotalPrice,
			&line.CreatedAt, &line.UpdatedAt,
			&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description, &p.ShortDescription,
			&p.Price, &p.SalePrice, &p.SKU, &p.StockQuantity, &p.StockStatus, &p.FeaturedImage,
			&p.IsFeatured, &p.IsActive, &p.Views, &p.Rating, &p.ReviewsCount, &p.CreatedAt, &p.UpdatedAt,
			&catID, &catName, &catSlug,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan cart row")
			return nil, fmt.Errorf("failed to scan cart line: %w", err)
		}

		line.SelectedAttributes, err = model.ParseAttributes(attrs)
		if err != nil {
			r.logger.Error().Err(err).Int64("cart_id", line.ID).Msg("failed to parse stored attributes")
			return nil, fmt.Errorf("failed to parse stored attributes: %w", err)
		}

		if catID != nil {
			p.Category = &model.Category{ID: *catID, Name: *catName, Slug: *catSlug}
		}
		line.Product = &p
		lines = append(lines, line)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating cart rows")
		return nil, fmt.Errorf("error iterating cart lines: %w", err)
	}

	return lines, nil
}

// Upsert inserts the line or merges it into the existing line with the same
// user, product and canonical attribute selection. The merge accumulates
// quantity, refreshes the unit price and recomputes the total; design paths
// are kept unless the new line carries replacements.
func (r *cartRepository) Upsert(ctx context.Context, line *model.CartLine) error {
	attrs := line.SelectedAttributes.Canonical()
	total := line.UnitPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))

	query := `
		INSERT INTO carts (user_id, product_id, quantity, selected_attributes,
			front_design_path, back_design_path, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (user_id, product_id, selected_attributes) DO UPDATE
		SET quantity = carts.quantity + EXCLUDED.quantity,
		    unit_price = EXCLUDED.unit_price,
		    total_price = EXCLUDED.unit_price * (carts.quantity + EXCLUDED.quantity),
		    front_design_path = COALESCE(EXCLUDED.front_design_path, carts.front_design_path),
		    back_design_path = COALESCE(EXCLUDED.back_design_path, carts.back_design_path),
		    updated_at = now()
		RETURNING id, quantity, front_design_path, back_design_path, unit_price, total_price, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		line.UserID, line.ProductID, line.Quantity, attrs,
		line.FrontDesignPath, line.BackDesignPath, line.UnitPrice, total,
	).Scan(
		&line.ID, &line.Quantity, &line.FrontDesignPath, &line.BackDesignPath,
		&line.UnitPrice, &line.TotalPrice, &line.CreatedAt, &line.UpdatedAt,
	)
	if err != nil {
		r.logger.Error().
			Err(err).
			Int64("user_id", line.UserID).
			Int64("product_id", line.ProductID).
			Msg("failed to upsert cart line")
		return fmt.Errorf("failed to upsert cart line: %w", err)
	}

	return nil
}

// GetByIDForUser retrieves one of the user's cart lines. Returns nil when
// absent.
func (r *cartRepository) GetByIDForUser(ctx context.Context, id, userID int64) (*model.CartLine, error) {
	query := `
		SELECT id, user_id, product_id, quantity, selected_attributes,
		       front_design_path, back_design_path, unit_price, total_price,
		       created_at, updated_at
		FROM carts
		WHERE id = $1 AND user_id = $2
	`

	var line model.CartLine
	var attrs string
	err := r.pool.QueryRow(ctx, query, id, userID).Scan(
		&line.ID, &line.UserID, &line.ProductID, &line.Quantity, &attrs,
		&line.FrontDesignPath, &line.BackDesignPath, &line.UnitPrice, &line.TotalPrice,
		&line.CreatedAt, &line.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("cart_id", id).Msg("failed to query cart line")
		return nil, fmt.Errorf("failed to query cart line: %w", err)
	}

	line.SelectedAttributes, err = model.ParseAttributes(attrs)
	if err != nil {
		r.logger.Error().Err(err).Int64("cart_id", id).Msg("failed to parse stored attributes")
		return nil, fmt.Errorf("failed to parse stored attributes: %w", err)
	}

	return &line, nil
}

// UpdateQuantity sets the quantity and recomputes the total from the stored
// unit price. Returns nil when the line is absent.
func (r *cartRepository) UpdateQuantity(ctx context.Context, id, userID int64, quantity int) (*model.CartLine, error) {
	query := `
		UPDATE carts
		SET quantity = $3, total_price = unit_price * $3, updated_at = now()
		WHERE id = $1 AND user_id = $2
		RETURNING id, user_id, product_id, quantity, selected_attributes,
		          front_design_path, back_design_path, unit_price, total_price,
		          created_at, updated_at
	`

	var line model.CartLine
	var attrs string
	err := r.pool.QueryRow(ctx, query, id, userID, quantity).Scan(
		&line.ID, &line.UserID, &line.ProductID, &line.Quantity, &attrs,
		&line.FrontDesignPath, &line.BackDesignPath, &line.UnitPrice, &line.TotalPrice,
		&line.CreatedAt, &line.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("cart_id", id).Msg("failed to update cart quantity")
		return nil, fmt.Errorf("failed to update cart quantity: %w", err)
	}

	line.SelectedAttributes, err = model.ParseAttributes(attrs)
	if err != nil {
		r.logger.Error().Err(err).Int64("cart_id", id).Msg("failed to parse stored attributes")
		return nil, fmt.Errorf("failed to parse stored attributes: %w", err)
	}

	return &line, nil
}

// Delete removes one of the user's cart lines. Returns false when it did not
// exist.
func (r *cartRepository) Delete(ctx context.Context, id, userID int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM carts WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		r.logger.Error().Err(err).Int64("cart_id", id).Msg("failed to delete cart line")
		return false, fmt.Errorf("failed to delete cart line: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Clear removes all of the user's cart lines.
func (r *cartRepository) Clear(ctx context.Context, userID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to clear cart")
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// ClearTx removes all of the user's cart lines within the transaction.
func (r *cartRepository) ClearTx(ctx context.Context, tx pgx.Tx, userID int64) error {
	_, err := tx.Exec(ctx, `DELETE FROM carts WHERE user_id = $1`, userID)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to clear cart in transaction")
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// Count returns the summed quantity across the user's cart lines.
func (r *cartRepository) Count(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM carts WHERE user_id = $1`, userID,
	).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to count cart")
		return 0, fmt.Errorf("failed to count cart: %w", err)
	}
	return count, nil
}

// Total returns the summed total price across the user's cart lines.
func (r *cartRepository) Total(ctx context.Context, userID int64) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.pool.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_price), 0) FROM carts WHERE user_id = $1`, userID,
	).Scan(&total)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to total cart")
		return decimal.Zero, fmt.Errorf("failed to total cart: %w", err)
	}
	return total, nil
}
