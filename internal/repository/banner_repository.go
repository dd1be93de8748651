package repository

import (
	"context"
	"fmt"

	"print-kart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// bannerRepository implements the BannerRepository interface using PostgreSQL.
type bannerRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewBannerRepository creates a new PostgreSQL-backed banner repository.
func NewBannerRepository(pool *pgxpool.Pool, logger zerolog.Logger) BannerRepository {
	return &bannerRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "banner").Logger(),
	}
}

const bannerColumns = `id, title, subtitle, description, price_text, button_text, button_link,
	image_path, type, position, sort_order, is_active, created_at, updated_at`

func scanBanner(row pgx.Row, b *model.Banner) error {
	return row.Scan(
		&b.ID, &b.Title, &b.Subtitle, &b.Description, &b.PriceText, &b.ButtonText, &b.ButtonLink,
		&b.ImagePath, &b.Type, &b.Position, &b.SortOrder, &b.IsActive, &b.CreatedAt, &b.UpdatedAt,
	)
}

// List retrieves banners ordered by sort_order then newest first, optionally
// filtered by type and active status.
func (r *bannerRepository) List(ctx context.Context, bannerType string, activeOnly bool) ([]model.Banner, error) {
	query := `
		SELECT ` + bannerColumns + `
		FROM banners
		WHERE ($1 = '' OR type = $1)
		  AND ($2 = FALSE OR is_active)
		ORDER BY sort_order, id DESC
	`

	rows, err := r.pool.Query(ctx, query, bannerType, activeOnly)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query banners")
		return nil, fmt.Errorf("failed to query banners: %w", err)
	}
	defer rows.Close()

	var banners []model.Banner
	for rows.Next() {
		var b model.Banner
		if err := scanBanner(rows, &b); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan banner row")
			return nil, fmt.Errorf("failed to scan banner: %w", err)
		}
		banners = append(banners, b)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating banner rows")
		return nil, fmt.Errorf("error iterating banners: %w", err)
	}

	return banners, nil
}

// GetByID retrieves a banner by ID. Returns nil when absent.
func (r *bannerRepository) GetByID(ctx context.Context, id int64) (*model.Banner, error) {
	query := `SELECT ` + bannerColumns + ` FROM banners WHERE id = $1`

	var b model.Banner
	if err := scanBanner(r.pool.QueryRow(ctx, query, id), &b); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("banner_id", id).Msg("failed to query banner")
		return nil, fmt.Errorf("failed to query banner: %w", err)
	}

	return &b, nil
}

// Create inserts a new banner and fills in the generated ID.
func (r *bannerRepository) Create(ctx context.Context, banner *model.Banner) error {
	query := `
		INSERT INTO banners (title, subtitle, description, price_text, button_text, button_link,
			image_path, type, position, sort_order, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		banner.Title, banner.Subtitle, banner.Description, banner.PriceText,
		banner.ButtonText, banner.ButtonLink, banner.ImagePath,
		banner.Type, banner.Position, banner.SortOrder, banner.IsActive,
	).Scan(&banner.ID, &banner.CreatedAt, &banner.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("title", banner.Title).Msg("failed to create banner")
		return fmt.Errorf("failed to create banner: %w", err)
	}

	return nil
}

// Update persists all mutable fields of the banner.
func (r *bannerRepository) Update(ctx context.Context, banner *model.Banner) error {
	query := `
		UPDATE banners
		SET title = $2, subtitle = $3, description = $4, price_text = $5,
		    button_text = $6, button_link = $7, image_path = $8,
		    type = $9, position = $10, sort_order = $11, is_active = $12,
		    updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		banner.ID, banner.Title, banner.Subtitle, banner.Description, banner.PriceText,
		banner.ButtonText, banner.ButtonLink, banner.ImagePath,
		banner.Type, banner.Position, banner.SortOrder, banner.IsActive,
	).Scan(&banner.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Int64("banner_id", banner.ID).Msg("failed to update banner")
		return fmt.Errorf("failed to update banner: %w", err)
	}

	return nil
}

// Delete removes a banner. Returns false when it did not exist.
func (r *bannerRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM banners WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("banner_id", id).Msg("failed to delete banner")
		return false, fmt.Errorf("failed to delete banner: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
