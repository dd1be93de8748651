package repository

import (
	"context"
	"fmt"

	"print-kart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// categoryRepository implements the CategoryRepository interface using
// PostgreSQL.
type categoryRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewCategoryRepository creates a new PostgreSQL-backed category repository.
func NewCategoryRepository(pool *pgxpool.Pool, logger zerolog.Logger) CategoryRepository {
	return &categoryRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "category").Logger(),
	}
}

const categoryColumns = `id, name, slug, path, description, image, icon, sort_order, is_active, is_featured, created_at, updated_at`

func scanCategory(row pgx.Row, c *model.Category) error {
	return row.Scan(
		&c.ID, &c.Name, &c.Slug, &c.Path, &c.Description, &c.Image, &c.Icon,
		&c.SortOrder, &c.IsActive, &c.IsFeatured, &c.CreatedAt, &c.UpdatedAt,
	)
}

// List retrieves categories ordered by sort_order, with active product
// counts.
func (r *categoryRepository) List(ctx context.Context, activeOnly, featuredOnly bool) ([]model.Category, error) {
	query := `
		SELECT c.id, c.name, c.slug, c.path, c.description, c.image, c.icon,
		       c.sort_order, c.is_active, c.is_featured, c.created_at, c.updated_at,
		       COUNT(p.id) FILTER (WHERE p.is_active)
		FROM categories c
		LEFT JOIN products p ON p.category_id = c.id
		WHERE ($1 = FALSE OR c.is_active)
		  AND ($2 = FALSE OR c.is_featured)
		GROUP BY c.id
		ORDER BY c.sort_order, c.id
	`

	rows, err := r.pool.Query(ctx, query, activeOnly, featuredOnly)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query categories")
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var categories []model.Category
	for rows.Next() {
		var c model.Category
		err := rows.Scan(
			&c.ID, &c.Name, &c.Slug, &c.Path, &c.Description, &c.Image, &c.Icon,
			&c.SortOrder, &c.IsActive, &c.IsFeatured, &c.CreatedAt, &c.UpdatedAt,
			&c.ProductCount,
		)
		if err != nil {
			r.logger.Error().Err(err).Msg("failed to scan category row")
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating category rows")
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// GetBySlug retrieves an active category by slug. Returns nil when absent.
func (r *categoryRepository) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE slug = $1 AND is_active`

	var c model.Category
	if err := scanCategory(r.pool.QueryRow(ctx, query, slug), &c); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Str("slug", slug).Msg("failed to query category")
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &c, nil
}

// GetByID retrieves a category by ID. Returns nil when absent.
func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*model.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories WHERE id = $1`

	var c model.Category
	if err := scanCategory(r.pool.QueryRow(ctx, query, id), &c); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("category_id", id).Msg("failed to query category")
		return nil, fmt.Errorf("failed to query category: %w", err)
	}

	return &c, nil
}

// Create inserts a new category and fills in the generated ID.
func (r *categoryRepository) Create(ctx context.Context, category *model.Category) error {
	query := `
		INSERT INTO categories (name, slug, path, description, image, icon, sort_order, is_active, is_featured)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		category.Name, category.Slug, category.Path, category.Description,
		category.Image, category.Icon, category.SortOrder, category.IsActive, category.IsFeatured,
	).Scan(&category.ID, &category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("slug", category.Slug).Msg("failed to create category")
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// Update persists all mutable fields of the category.
func (r *categoryRepository) Update(ctx context.Context, category *model.Category) error {
	query := `
		UPDATE categories
		SET name = $2, slug = $3, path = $4, description = $5, image = $6,
		    icon = $7, sort_order = $8, is_active = $9, is_featured = $10,
		    updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		category.ID, category.Name, category.Slug, category.Path, category.Description,
		category.Image, category.Icon, category.SortOrder, category.IsActive, category.IsFeatured,
	).Scan(&category.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Int64("category_id", category.ID).Msg("failed to update category")
		return fmt.Errorf("failed to update category: %w", err)
	}

	return nil
}

// Delete removes a category. Returns false when it did not exist.
func (r *categoryRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("category_id", id).Msg("failed to delete category")
		return false, fmt.Errorf("failed to delete category: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}
