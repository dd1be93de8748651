package repository

import (
	"context"
	"fmt"
	"strings"

	"print-kart/internal/model"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// productRepository implements the ProductRepository interface using
// PostgreSQL.
type productRepository struct {
	pool   *pgxpool.Pool
	logger zerolog.Logger
}

// NewProductRepository creates a new PostgreSQL-backed product repository.
func NewProductRepository(pool *pgxpool.Pool, logger zerolog.Logger) ProductRepository {
	return &productRepository{
		pool:   pool,
		logger: logger.With().Str("repository", "product").Logger(),
	}
}

const productColumns = `p.id, p.category_id, p.name, p.slug, p.description, p.short_description,
	p.price, p.sale_price, p.sku, p.stock_quantity, p.stock_status, p.featured_image,
	p.is_featured, p.is_active, p.views, p.rating, p.reviews_count, p.created_at, p.updated_at`

func scanProduct(row pgx.Row, p *model.Product) error {
	return row.Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description, &p.ShortDescription,
		&p.Price, &p.SalePrice, &p.SKU, &p.StockQuantity, &p.StockStatus, &p.FeaturedImage,
		&p.IsFeatured, &p.IsActive, &p.Views, &p.Rating, &p.ReviewsCount, &p.CreatedAt, &p.UpdatedAt,
	)
}

// Columns allowed in ORDER BY; anything else falls back to created_at.
var sortColumns = map[string]string{
	"created_at": "p.created_at",
	"name":       "p.name",
	"price":      "p.price",
	"views":      "p.views",
	"rating":     "p.rating",
}

// List retrieves one page of active products matching the filter.
func (r *productRepository) List(ctx context.Context, filter model.ProductFilter) (*model.ProductPage, error) {
	where := []string{"p.is_active"}
	var args []any

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.CategoryID != nil {
		where = append(where, "p.category_id = "+arg(*filter.CategoryID))
	}
	if filter.CategorySlug != "" {
		where = append(where, "c.slug = "+arg(filter.CategorySlug))
	}
	if filter.FeaturedOnly {
		where = append(where, "p.is_featured")
	}
	if filter.InStockOnly {
		where = append(where, "p.stock_status = 'in_stock' AND p.stock_quantity > 0")
	}
	if filter.MinPrice != nil {
		where = append(where, "p.price >= "+arg(*filter.MinPrice))
	}
	if filter.MaxPrice != nil {
		where = append(where, "p.price <= "+arg(*filter.MaxPrice))
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		ph := arg(pattern)
		where = append(where, fmt.Sprintf("(p.name ILIKE %s OR p.description ILIKE %s OR p.sku ILIKE %s)", ph, ph, ph))
	}

	whereClause := strings.Join(where, " AND ")

	sortColumn, ok := sortColumns[filter.SortBy]
	if !ok {
		sortColumn = "p.created_at"
	}
	sortDir := "DESC"
	if strings.EqualFold(filter.SortOrder, "asc") {
		sortDir = "ASC"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	perPage := filter.PerPage
	if perPage < 1 {
		perPage = 12
	}

	countQuery := `
		SELECT COUNT(*)
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE ` + whereClause

	var total int64
	if err := r.pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		r.logger.Error().Err(err).Msg("failed to count products")
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	listQuery := fmt.Sprintf(`
		SELECT %s,
		       c.id, c.name, c.slug
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE %s
		ORDER BY %s %s, p.id
		LIMIT %s OFFSET %s
	`, productColumns, whereClause, sortColumn, sortDir, arg(perPage), arg((page-1)*perPage))

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		r.logger.Error().Err(err).Msg("failed to query products")
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	items := []model.Product{}
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
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		if catID != nil {
			p.Category = &model.Category{ID: *catID, Name: *catName, Slug: *catSlug}
		}
		items = append(items, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return &model.ProductPage{
		Items:   items,
		Total:   total,
		Page:    page,
		PerPage: perPage,
	}, nil
}

// GetByID retrieves a product by ID. Returns nil when absent.
func (r *productRepository) GetByID(ctx context.Context, id int64) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = $1`

	var p model.Product
	if err := scanProduct(r.pool.QueryRow(ctx, query, id), &p); err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Int64("product_id", id).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}

	return &p, nil
}

// GetBySlug retrieves an active product by slug with its category. Returns
// nil when absent.
func (r *productRepository) GetBySlug(ctx context.Context, slug string) (*model.Product, error) {
	query := `
		SELECT ` + productColumns + `,
		       c.id, c.name, c.slug
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.slug = $1 AND p.is_active
	`

	var p model.Product
	var catID *int64
	var catName, catSlug *string
	err := r.pool.QueryRow(ctx, query, slug).Scan(
		&p.ID, &p.CategoryID, &p.Name, &p.Slug, &p.Description, &p.ShortDescription,
		&p.Price, &p.SalePrice, &p.SKU, &p.StockQuantity, &p.StockStatus, &p.FeaturedImage,
		&p.IsFeatured, &p.IsActive, &p.Views, &p.Rating, &p.ReviewsCount, &p.CreatedAt, &p.UpdatedAt,
		&catID, &catName, &catSlug,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			r.logger.Debug().Str("slug", slug).Msg("product not found")
			return nil, nil
		}
		r.logger.Error().Err(err).Str("slug", slug).Msg("failed to query product")
		return nil, fmt.Errorf("failed to query product: %w", err)
	}
	if catID != nil {
		p.Category = &model.Category{ID: *catID, Name: *catName, Slug: *catSlug}
	}

	return &p, nil
}

// Related retrieves up to limit active products sharing the category,
// excluding the product itself.
func (r *productRepository) Related(ctx context.Context, categoryID int64, excludeID int64, limit int) ([]model.Product, error) {
	query := `
		SELECT ` + productColumns + `
		FROM products p
		WHERE p.category_id = $1 AND p.id <> $2 AND p.is_active
		ORDER BY p.created_at DESC
		LIMIT $3
	`

	rows, err := r.pool.Query(ctx, query, categoryID, excludeID, limit)
	if err != nil {
		r.logger.Error().Err(err).Int64("category_id", categoryID).Msg("failed to query related products")
		return nil, fmt.Errorf("failed to query related products: %w", err)
	}
	defer rows.Close()

	var products []model.Product
	for rows.Next() {
		var p model.Product
		if err := scanProduct(rows, &p); err != nil {
			r.logger.Error().Err(err).Msg("failed to scan product row")
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		products = append(products, p)
	}

	if err := rows.Err(); err != nil {
		r.logger.Error().Err(err).Msg("error iterating product rows")
		return nil, fmt.Errorf("error iterating products: %w", err)
	}

	return products, nil
}

// PriceRange returns the min/max price across a category's active products.
func (r *productRepository) PriceRange(ctx context.Context, categoryID int64) (*model.PriceRange, error) {
	query := `
		SELECT COALESCE(MIN(price), 0), COALESCE(MAX(price), 0)
		FROM products
		WHERE category_id = $1 AND is_active
	`

	var pr model.PriceRange
	if err := r.pool.QueryRow(ctx, query, categoryID).Scan(&pr.Min, &pr.Max); err != nil {
		r.logger.Error().Err(err).Int64("category_id", categoryID).Msg("failed to query price range")
		return nil, fmt.Errorf("failed to query price range: %w", err)
	}

	return &pr, nil
}

// Create inserts a new product and fills in the generated ID.
func (r *productRepository) Create(ctx context.Context, product *model.Product) error {
	query := `
		INSERT INTO products (category_id, name, slug, description, short_description,
			price, sale_price, sku, stock_quantity, stock_status, featured_image,
			is_featured, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, views, rating, reviews_count, created_at, updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		product.CategoryID, product.Name, product.Slug, product.Description, product.ShortDescription,
		product.Price, product.SalePrice, product.SKU, product.StockQuantity, product.StockStatus,
		product.FeaturedImage, product.IsFeatured, product.IsActive,
	).Scan(&product.ID, &product.Views, &product.Rating, &product.ReviewsCount, &product.CreatedAt, &product.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Str("slug", product.Slug).Msg("failed to create product")
		return fmt.Errorf("failed to create product: %w", err)
	}

	return nil
}

// Update persists all mutable fields of the product.
func (r *productRepository) Update(ctx context.Context, product *model.Product) error {
	query := `
		UPDATE products
		SET category_id = $2, name = $3, slug = $4, description = $5, short_description = $6,
		    price = $7, sale_price = $8, sku = $9, stock_quantity = $10, stock_status = $11,
		    featured_image = $12, is_featured = $13, is_active = $14, updated_at = now()
		WHERE id = $1
		RETURNING updated_at
	`

	err := r.pool.QueryRow(ctx, query,
		product.ID, product.CategoryID, product.Name, product.Slug, product.Description,
		product.ShortDescription, product.Price, product.SalePrice, product.SKU,
		product.StockQuantity, product.StockStatus, product.FeaturedImage,
		product.IsFeatured, product.IsActive,
	).Scan(&product.UpdatedAt)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", product.ID).Msg("failed to update product")
		return fmt.Errorf("failed to update product: %w", err)
	}

	return nil
}

// Delete removes a product. Returns false when it did not exist.
func (r *productRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to delete product")
		return false, fmt.Errorf("failed to delete product: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// IncrementViews bumps the view counter.
func (r *productRepository) IncrementViews(ctx context.Context, id int64) error {
	_, err := r.pool.Exec(ctx, `UPDATE products SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to increment views")
		return fmt.Errorf("failed to increment views: %w", err)
	}
	return nil
}

// LockForUpdate retrieves a product inside the transaction with a row lock
// held until commit. Returns nil when absent.
func (r *productRepository) LockForUpdate(ctx context.Context, tx pgx.Tx, id int64) (*model.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products p WHERE p.id = $1 FOR UPDATE`

	var p model.Product
	if err := scanProduct(tx.QueryRow(ctx, query, id), &p); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		r.logger.Error().Err(err).Int64("product_id", id).Msg("failed to lock product")
		return nil, fmt.Errorf("failed to lock product: %w", err)
	}

	return &p, nil
}

// DecrementStock reduces stock within the transaction, flipping stock_status
// to out_of_stock at zero. Fails if stock would go negative.
func (r *productRepository) DecrementStock(ctx context.Context, tx pgx.Tx, id int64, quantity int) error {
	query := `
		UPDATE products
		SET stock_quantity = stock_quantity - $2,
		    stock_status = CASE WHEN stock_quantity - $2 <= 0 THEN 'out_of_stock' ELSE stock_status END,
		    updated_at = now()
		WHERE id = $1 AND stock_quantity >= $2
	`

	tag, err := tx.Exec(ctx, query, id, quantity)
	if err != nil {
		r.logger.Error().Err(err).Int64("product_id", id).Int("quantity", quantity).Msg("failed to decrement stock")
		return fmt.Errorf("failed to decrement stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("stock decrement rejected for product %d", id)
	}

	return nil
}
