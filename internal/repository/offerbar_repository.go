package repository

import (
	"context"
	"fmt"

	"print-kart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// offerBarRepository implements the OfferBarRepository interface using
// PostgreSQL.
type offerBarRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewOfferBarRepository creates a new PostgreSQL-backed offer bar repository.
func NewOfferBarRepository(pool *pgxpool.Pool, logger zerolog.Logger) OfferBarRepository {
	return &offerBarRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "offer_bar").Logger(),
	}
}

const offerBarColumns = `id, message, background_color, text_color, sort_order, is_active,
	start_date, end_date, created_at, updated_at`

func scanOfferBar(row pgx.Row, b *model.OfferBar) error {
	return row.Scan(
		&b.ID, &b.Message, &b.BackgroundColor, &b.TextColor, &b.SortOrder, &b.IsActive,
		&b.StartDate, &b.EndDate, &b.CreatedAt, &b.UpdatedAt,
	)
}

// List retrieves offer bars ordered by sort_order then newest first. When
// currentOnly is set, only active bars within their date window are returned;
// a null boundary leaves that side of the window open.
func (r *offerBarRepository) List(ctx context.Context, currentOnly bool) ([]model.OfferBar, error) {
	query := `
		SELECT ` + offerBarColumns + `
		FROM offer_bars
		WHERE $1 = FALSE
		   OR (is_active
		       AND (start_date IS NULL OR start_date <= now())
		       AND (end_date IS NULL OR end_date >= now()))
		ORDER BY sort_order, id DESC
	`

	rows, err := r.pool.Query(ctx, query, currentOnly)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query offer bars")
		return nil, fmt.Errorf("failed to query offer bars: %w", err)
	}
	defer rows.Close()

	var bars []model.OfferBar
	for rows.Next() {
		var b model.OfferBar
		if err := scanOfferBar(rows, &b); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan offer bar row")
			return nil, fmt.Errorf("failed to scan offer bar: %w", err)
		}
		bars = append(bars, b)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating offer bar rows")
		return nil, fmt.Errorf("error iterating offer bars: %w", err)
	}

	return bars, nil
}

// GetByID retrieves an offer bar by ID. Returns nil when absent.
func (r *offerBarRepository) GetByID(ctx context.Context, id int64) (*model.OfferBar, error) {
	query := `SELECT ` + offerBarColumns + ` FROM offer_bars WHERE id = $1`

	var b model.OfferBar
	if err := scanOfferBar(r.pool.QueryRow(ctx, query, id), &b); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("offer_bar_id", id).Msg("failed to query offer bar")
		return nil, fmt.Errorf("failed to query offer bar: %w", err)
	}

	return &b, nil
}

// Create inserts a new offer bar and fills in the generated ID.
func (r *offerBarRepository) Create(ctx context.Context, bar *model.OfferBar) error {
	query := `
		INSERT INTO offer_bars (message, background_color, text_color, sort_order, is_active, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		bar.Message, bar.BackgroundColor, bar.TextColor,
		bar.SortOrder, bar.IsActive, bar.StartDate, bar.EndDate,
	).Scan(&bar.ID, &bar.CreatedAt, &bar.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to create offer bar")
		return fmt.Errorf("failed to create offer bar: %w", err)
	}

	return nil
}

// Update persists all mutable fields of the offer bar.
func (r *offerBarRepository) Update(ctx context.Context, bar *model.OfferBar) error {
	query := `
		UPDATE offer_bars
		SET message = $2, background_color = $3, text_color = $4,
		    sort_order = $5, is_active = $6, start_date = $7, end_date = $8,
		    updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		bar.ID, bar.Message, bar.BackgroundColor, bar.TextColor,
		bar.SortOrder, bar.IsActive, bar.StartDate, bar.EndDate,
	).Scan(&bar.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Int64("offer_bar_id", bar.ID).Msg("failed to update offer bar")
		return fmt.Errorf("failed to update offer bar: %w", err)
	}

	return nil
}

// Delete removes an offer bar. Returns false when it did not exist.
func (r *offerBarRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM offer_bars WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("offer_bar_id", id).Msg("failed to delete offer bar")
		return false, fmt.Errorf("failed to delete offer bar: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
