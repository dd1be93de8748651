package service

import (
	"context"
	"fmt"

	"print-kart/internal/model"
	"print-kart/internal/repository"
	"print-kart/internal/storage"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
)

const designUploadDir = "designs"

// cartService implements CartService.
type cartService struct {
	cartRepo    repository.CartRepository
	productRepo repository.ProductRepository
	store       storage.Store
	logger      zerolog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	cartRepo repository.CartRepository,
	productRepo repository.ProductRepository,
	store storage.Store,
	logger zerolog.Logger,
) CartService {
	return &cartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
		store:       store,
		logger:      logger.With().Str("service", "cart").Logger(),
	}
}

// List retrieves the cart with aggregates. Lines whose product has been
// deleted are dropped by the listing query, so count and total are recomputed
// from the surviving lines rather than read from the table.
func (s *cartService) List(ctx context.Context, userID int64) (*model.CartSummary, error) {
	lines, err := s.cartRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cart: %w", err)
	}
	if lines == nil {
		lines = []model.CartLine{}
	}

	count := 0
	total := decimal.Zero
	for _, line := range lines {
		count += line.Quantity
		total = total.Add(line.TotalPrice)
	}

	return &model.CartSummary{Items: lines, Count: count, Total: total}, nil
}

// Add adds a product to the cart, merging with an existing line carrying the
// same canonical attribute selection.
func (s *cartService) Add(ctx context.Context, userID int64, req *model.AddToCartRequest, front, back *Upload) (*model.CartLine, error) {
	v := model.NewValidationError()
	if req.ProductID <= 0 {
		v.Add("product_id", "Product is required")
	}
	if req.Quantity < 1 {
		v.Add("quantity", "Quantity must be at least 1")
	}
	if front != nil && !storage.AllowedExtension(front.Filename) {
		v.Add("front_design", "Unsupported image type")
	}
	if back != nil && !storage.AllowedExtension(back.Filename) {
		v.Add("back_design", "Unsupported image type")
	}
	if v.HasErrors() {
		return nil, v
	}

	product, err := s.productRepo.GetByID(ctx, req.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}
	if product == nil || !product.IsActive {
		return nil, model.NewNotFoundError("Product")
	}

	line := &model.CartLine{
		UserID:             userID,
		ProductID:          product.ID,
		Quantity:           req.Quantity,
		SelectedAttributes: req.SelectedAttributes,
		UnitPrice:          product.CurrentPrice(),
	}

	if front != nil {
		path, err := s.store.Save(ctx, designUploadDir, front.Filename, front.Content)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to store front design")
			return nil, fmt.Errorf("failed to store design upload: %w", err)
		}
		line.FrontDesignPath = &path
	}
	if back != nil {
		path, err := s.store.Save(ctx, designUploadDir, back.Filename, back.Content)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to store back design")
			return nil, fmt.Errorf("failed to store design upload: %w", err)
		}
		line.BackDesignPath = &path
	}

	if err := s.cartRepo.Upsert(ctx, line); err != nil {
		return nil, fmt.Errorf("failed to add to cart: %w", err)
	}

	line.Product = product
	s.logger.Info().
		Int64("user_id", userID).
		Int64("product_id", product.ID).
		Int("quantity", line.Quantity).
		Msg("cart line upserted")
	return line, nil
}

// UpdateQuantity sets a line's quantity.
func (s *cartService) UpdateQuantity(ctx context.Context, userID, lineID int64, quantity int) (*model.CartLine, error) {
	if quantity < 1 {
		return nil, model.NewValidationError().Add("quantity", "Quantity must be at least 1")
	}

	line, err := s.cartRepo.UpdateQuantity(ctx, lineID, userID, quantity)
	if err != nil {
		return nil, fmt.Errorf("failed to update cart: %w", err)
	}
	if line == nil {
		return nil, model.NewNotFoundError("Cart item")
	}
	return line, nil
}

// Remove deletes a line.
func (s *cartService) Remove(ctx context.Context, userID, lineID int64) error {
	deleted, err := s.cartRepo.Delete(ctx, lineID, userID)
	if err != nil {
		return fmt.Errorf("failed to remove cart item: %w", err)
	}
	if !deleted {
		return model.NewNotFoundError("Cart item")
	}
	return nil
}

// Clear empties the cart.
func (s *cartService) Clear(ctx context.Context, userID int64) error {
	if err := s.cartRepo.Clear(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear cart: %w", err)
	}
	return nil
}

// Count returns the summed quantity across the cart.
func (s *cartService) Count(ctx context.Context, userID int64) (int64, error) {
	count, err := s.cartRepo.Count(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count cart: %w", err)
	}
	return count, nil
}

// Total returns the cart's total price.
func (s *cartService) Total(ctx context.Context, userID int64) (decimal.Decimal, error) {
	total, err := s.cartRepo.Total(ctx, userID)
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to total cart: %w", err)
	}
	return total, nil
}
