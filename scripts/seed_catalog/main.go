// Command seed_catalog loads a small demo catalogue (categories and
// products) into the configured database. Intended for local development.
package main

import (
	"context"
	"fmt"
	"os"

	"print-kart/db"
	"print-kart/internal/config"
	"print-kart/internal/database"
	"print-kart/internal/model"
	"print-kart/internal/repository"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

type seedProduct struct {
	category  string
	name      string
	short     string
	price     string
	salePrice string
	sku       string
	stock     int
	featured  bool
}

var seedCategories = []model.Category{
	{Name: "T-Shirts", Slug: "t-shirts", Path: "/t-shirts", SortOrder: 1, IsActive: true, IsFeatured: true},
	{Name: "Hoodies", Slug: "hoodies", Path: "/hoodies", SortOrder: 2, IsActive: true, IsFeatured: true},
	{Name: "Mugs", Slug: "mugs", Path: "/mugs", SortOrder: 3, IsActive: true},
	{Name: "Posters", Slug: "posters", Path: "/posters", SortOrder: 4, IsActive: true},
}

var seedProducts = []seedProduct{
	{"t-shirts", "Classic Cotton Tee", "Round-neck 180 GSM cotton tee", "499.00", "399.00", "TS-CLS-001", 120, true},
	{"t-shirts", "Oversized Street Tee", "Drop-shoulder oversized fit", "699.00", "", "TS-OVR-002", 80, true},
	{"t-shirts", "Polo Tee", "Pique knit polo with collar", "799.00", "649.00", "TS-PLO-003", 45, false},
	{"hoodies", "Fleece Pullover Hoodie", "320 GSM brushed fleece", "1299.00", "999.00", "HD-FLC-001", 60, true},
	{"hoodies", "Zip-Up Hoodie", "Full-zip with kangaroo pockets", "1499.00", "", "HD-ZIP-002", 35, false},
	{"mugs", "Ceramic Mug 325ml", "Glossy white, dishwasher safe", "299.00", "249.00", "MG-CRM-001", 200, false},
	{"mugs", "Magic Colour-Change Mug", "Reveals print when hot", "449.00", "", "MG-MGC-002", 90, true},
	{"posters", "A3 Matte Poster", "200 GSM matte art paper", "199.00", "149.00", "PS-A3M-001", 300, false},
	{"posters", "A2 Framed Poster", "Black wooden frame included", "899.00", "", "PS-A2F-002", 25, false},
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := config.NewLogger(cfg.Logger)
	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	if err := database.Migrate(ctx, pool, db.Schema); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	categoryRepo := repository.NewCategoryRepository(pool, logger)
	productRepo := repository.NewProductRepository(pool, logger)

	categoryIDs, err := seedCategoryRows(ctx, categoryRepo, logger)
	if err != nil {
		return err
	}

	for _, sp := range seedProducts {
		categoryID, ok := categoryIDs[sp.category]
		if !ok {
			return fmt.Errorf("unknown seed category %q", sp.category)
		}

		price, err := decimal.NewFromString(sp.price)
		if err != nil {
			return fmt.Errorf("invalid seed price %q: %w", sp.price, err)
		}

		product := &model.Product{
			CategoryID:       &categoryID,
			Name:             sp.name,
			Slug:             model.Slugify(sp.name),
			ShortDescription: &sp.short,
			Price:            price,
			SKU:              &sp.sku,
			StockQuantity:    sp.stock,
			StockStatus:      model.StockStatusInStock,
			IsFeatured:       sp.featured,
			IsActive:         true,
		}
		if sp.salePrice != "" {
			sale, err := decimal.NewFromString(sp.salePrice)
			if err != nil {
				return fmt.Errorf("invalid seed sale price %q: %w", sp.salePrice, err)
			}
			product.SalePrice = &sale
		}

		if err := productRepo.Create(ctx, product); err != nil {
			return fmt.Errorf("failed to seed product %q: %w", sp.name, err)
		}
		logger.Info().Str("slug", product.Slug).Msg("product seeded")
	}

	logger.Info().
		Int("categories", len(seedCategories)).
		Int("products", len(seedProducts)).
		Msg("catalogue seeded")
	return nil
}

func seedCategoryRows(ctx context.Context, repo repository.CategoryRepository, logger zerolog.Logger) (map[string]int64, error) {
	ids := make(map[string]int64, len(seedCategories))
	for i := range seedCategories {
		c := seedCategories[i]
		if err := repo.Create(ctx, &c); err != nil {
			return nil, fmt.Errorf("failed to seed category %q: %w", c.Name, err)
		}
		ids[c.Slug] = c.ID
		logger.Info().Str("slug", c.Slug).Msg("category seeded")
	}
	return ids, nil
}
