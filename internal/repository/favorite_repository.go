package repository

import (
	"context"
	"fmt"

	"print-kart/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// favoriteRepository implements the FavoriteRepository interface using
// PostgreSQL.
type favoriteRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewFavoriteRepository creates a new PostgreSQL-backed favorites repository.
func NewFavoriteRepository(pool *pgxpool.Pool, logger zerolog.Logger) FavoriteRepository {
	return &favoriteRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "favorite").Logger(),
	}
}

// ListProducts retrieves the user's favourited products, newest favourites
// first. The inner join drops favourites whose product no longer exists.
func (r *favoriteRepository) ListProducts(ctx context.Context, userID int64) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `,
		       c.id, c.name, c.slug
		FROM favorites f
		JOIN products p ON p.id = f.product_id
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE f.user_id = $1
		ORDER BY f.id DESC
	`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to query favorites")
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		var catID *int64
		var catName, catSlug *string

		err := rows.Scan(
			&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description, &p.ShortDescription,
			&p.Price, &p.SalePrice, &p.SKU, &p.StockQuantity, &p.StockStatus, &p.FeaturedImage,
			&p.IsFeatured, &p.IsActive, &p.Views, &p.Rating, &p.ReviewsCount, &p.CreatedAt, &p.UpdatedAt,
			&catID, &catName, &catSlug,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan favorite row")
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}

		if catID != nil {
			p.Category = &model.Category{ID: *catID, Name: *catName, Slug: *catSlug}
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating favorite rows")
		return nil, fmt.Errorf("error iterating favorites: %w", err)
	}

	return products, nil
}

// Add favourites a product. Returns false when it was already favourited.
func (r *favoriteRepository) Add(ctx context.Context, userID, productID int64) (bool, error) {
	query := `
		INSERT INTO favorites (user_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, product_id) DO NOTHING
	`

	tag, err := r.pool.Exec(ctx, query, userID, productID)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to add favorite")
		return false, fmt.Errorf("failed to add favorite: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// Remove unfavourites a product. Returns false when it was not favourited.
func (r *favoriteRepository) Remove(ctx context.Context, userID, productID int64) (bool, error) {
	tag, err := r.pool.Exec(ctx,
		`DELETE FROM favorites WHERE user_id = $1 AND product_id = $2`, userID, productID)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to remove favorite")
		return false, fmt.Errorf("failed to remove favorite: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Exists reports whether the product is favourited by the user.
func (r *favoriteRepository) Exists(ctx context.Context, userID, productID int64) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM favorites WHERE user_id = $1 AND product_id = $2)`,
		userID, productID,
	).Scan(&exists)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", productID).Msg("failed to check favorite")
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return exists, nil
}

// Count returns the number of the user's favourites.
func (r *favoriteRepository) Count(ctx context.Context, userID int64) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM favorites WHERE user_id = $1`, userID,
	).Scan(&count)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to count favorites")
		return 0, fmt.Errorf("failed to count favorites: %w", err)
	}
	return count, nil
}

// Clear removes all of the user's favourites.
func (r *favoriteRepository) Clear(ctx context.Context, userID int64) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM favorites WHERE user_id = $1`, userID)
	if err != nil {
		r.logger.Error().Err(err).Int64("user_id", userID).Msg("failed to clear favorites")
		return fmt.Errorf("failed to clear favorites: %w", err)
	}
	return nil
}
