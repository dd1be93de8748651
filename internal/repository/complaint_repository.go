package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"print-kart/internal/model"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// complaintRepository implements the ComplaintRepository interface using
// PostgreSQL.
type complaintRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewComplaintRepository creates a new PostgreSQL-backed complaint repository.
func NewComplaintRepository(pool *pgxpool.Pool, logger zerolog.Logger) ComplaintRepository {
	return &complaintRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "complaint").Logger(),
	}
}

// Create inserts a new complaint and fills in the generated ID. Image paths
// are stored as a JSON array.
func (r *complaintRepository) Create(ctx context.Context, complaint *model.Complaint) error {
	images := complaint.Images
	if images == nil {
		images = []string{}
	}
	imagesJSON, err := json.Marshal(images)
	if err != nil {
		return fmt.Errorf("failed to encode complaint images: %w", err)
	}

	query := `
		INSERT INTO complaints (user_id, order_id, product_id, product_name, issue_type, description, images, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at
	`

	err = r.pool.QueryRow(ctx, query,
		complaint.UserID, complaint.OrderID, complaint.ProductID, complaint.ProductName,
		complaint.IssueType, complaint.Description, imagesJSON, complaint.Status,
	).Scan(&complaint.ID, &complaint.CreatedAt, &complaint.UpdatedAt)
	if err != nil {
		r.logger.Error().
			Err(err).
			Str("order_id", complaint.OrderID.String()).
			Int64("product_id", complaint.ProductID).
			Msg("failed to create complaint")
		return fmt.Errorf("failed to create complaint: %w", err)
	}

	return nil
}
