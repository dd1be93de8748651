package service

import (
	"context"
	"fmt"
	"strings"

	"print-kart/internal/model"
	"print-kart/internal/repository"

	"github.com/rs/zerolog"
)

// categoryService implements CategoryService.
type categoryService struct {
	categoryRepo repository.CategoryRepository
	logger       zerolog.Logger
}

// NewCategoryService creates a new category service.
func NewCategoryService(categoryRepo repository.CategoryRepository, logger zerolog.Logger) CategoryService {
	return &categoryService{
		categoryRepo: categoryRepo,
		logger:       logger.With().Str("service", "category").Logger(),
	}
}

// List retrieves active categories with product counts.
func (s *categoryService) List(ctx context.Context, featuredOnly bool) ([]model.Category, error) {
	categories, err := s.categoryRepo.List(ctx, true, featuredOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// GetBySlug retrieves an active category by slug.
func (s *categoryService) GetBySlug(ctx context.Context, slug string) (*model.Category, error) {
	category, err := s.categoryRepo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	if category == nil {
		return nil, model.NewNotFoundError("Category")
	}
	return category, nil
}

// Create creates a category; the slug is derived from the name.
func (s *categoryService) Create(ctx context.Context, req *model.CategoryRequest) (*model.Category, error) {
	if err := validateCategoryRequest(req); err != nil {
		return nil, err
	}

	category := &model.Category{
		Name:        strings.TrimSpace(req.Name),
		Slug:        model.Slugify(req.Name),
		Path:        req.Path,
		Description: req.Description,
		Image:       req.Image,
		Icon:        req.Icon,
		IsActive:    true,
	}
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		category.IsFeatured = *req.IsFeatured
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.logger.Info().Int64("category_id", category.ID).Str("slug", category.Slug).Msg("category created")
	return category, nil
}

// Update updates a category.
func (s *categoryService) Update(ctx context.Context, id int64, req *model.CategoryRequest) (*model.Category, error) {
	if err := validateCategoryRequest(req); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}
	if category == nil {
		return nil, model.NewNotFoundError("Category")
	}

	category.Name = strings.TrimSpace(req.Name)
	category.Slug = model.Slugify(req.Name)
	category.Path = req.Path
	category.Description = req.Description
	category.Image = req.Image
	category.Icon = req.Icon
	if req.SortOrder != nil {
		category.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		category.IsActive = *req.IsActive
	}
	if req.IsFeatured != nil {
		category.IsFeatured = *req.IsFeatured
	}

	if err := s.categoryRepo.Update(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.logger.Info().Int64("category_id", category.ID).Msg("category updated")
	return category, nil
}

// Delete removes a category.
func (s *categoryService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.categoryRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}
	if !deleted {
		return model.NewNotFoundError("Category")
	}

	s.logger.Info().Int64("category_id", id).Msg("category deleted")
	return nil
}

func validateCategoryRequest(req *model.CategoryRequest) error {
	v := model.NewValidationError()
	if strings.TrimSpace(req.Name) == "" {
		v.Add("name", "Name is required")
	}
	if v.HasErrors() {
		return v
	}
	return nil
}
