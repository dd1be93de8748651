package service

import (
	"context"
	"fmt"

	"print-kart/internal/model"
	"print-kart/internal/repository"

	"github.com/rs/zerolog"
)

// favoriteService implements FavoriteService.
type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	productRepo  repository.ProductRepository
	logger       zerolog.Logger
}

// NewFavoriteService creates a new favorites service.
func NewFavoriteService(
	favoriteRepo repository.FavoriteRepository,
	productRepo repository.ProductRepository,
	logger zerolog.Logger,
) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		productRepo:  productRepo,
		logger:       logger.With().Str("service", "favorite").Logger(),
	}
}

// List retrieves the favourited products, newest favourites first.
func (s *favoriteService) List(ctx context.Context, userID int64) ([]model.Product, error) {
	products, err := s.favoriteRepo.ListProducts(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	if products == nil {
		products = []model.Product{}
	}
	return products, nil
}

// Add favourites a product. Adding twice is not an error.
func (s *favoriteService) Add(ctx context.Context, userID, productID int64) error {
	if err := s.requireProduct(ctx, productID); err != nil {
		return err
	}
	if _, err := s.favoriteRepo.Add(ctx, userID, productID); err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

// Toggle flips the favourite state and reports the resulting state.
func (s *favoriteService) Toggle(ctx context.Context, userID, productID int64) (bool, error) {
	if err := s.requireProduct(ctx, productID); err != nil {
		return false, err
	}

	added, err := s.favoriteRepo.Add(ctx, userID, productID)
	if err != nil {
		return false, fmt.Errorf("failed to toggle favorite: %w", err)
	}
	if added {
		return true, nil
	}

	if _, err := s.favoriteRepo.Remove(ctx, userID, productID); err != nil {
		return false, fmt.Errorf("failed to toggle favorite: %w", err)
	}
	return false, nil
}

// Remove unfavourites a product.
func (s *favoriteService) Remove(ctx context.Context, userID, productID int64) error {
	removed, err := s.favoriteRepo.Remove(ctx, userID, productID)
	if err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	if !removed {
		return model.NewNotFoundError("Favorite")
	}
	return nil
}

// Check reports whether the product is favourited.
func (s *favoriteService) Check(ctx context.Context, userID, productID int64) (bool, error) {
	exists, err := s.favoriteRepo.Exists(ctx, userID, productID)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return exists, nil
}

// Count returns the number of favourites.
func (s *favoriteService) Count(ctx context.Context, userID int64) (int64, error) {
	count, err := s.favoriteRepo.Count(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to count favorites: %w", err)
	}
	return count, nil
}

// Clear removes all favourites.
func (s *favoriteService) Clear(ctx context.Context, userID int64) error {
	if err := s.favoriteRepo.Clear(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear favorites: %w", err)
	}
	return nil
}

func (s *favoriteService) requireProduct(ctx context.Context, productID int64) error {
	product, err := s.productRepo.GetByID(ctx, productID)
	if err != nil {
		return fmt.Errorf("failed to look up product: %w", err)
	}
	if product == nil || !product.IsActive {
		return model.NewNotFoundError("Product")
	}
	return nil
}
