package service

import (
	"context"
	"fmt"
	"strings"

	"print-kart/internal/model"
	"print-kart/internal/repository"
	"print-kart/internal/storage"

	"github.com/rs/zerolog"
)

const bannerUploadDir = "banners"

// bannerService implements BannerService.
type bannerService struct {
	bannerRepo repository.BannerRepository
	store      storage.Store
	publicURL  string
	logger     zerolog.Logger
}

// NewBannerService creates a new banner service. publicURL is the base URL
// under which stored images are served.
func NewBannerService(bannerRepo repository.BannerRepository, store storage.Store, publicURL string, logger zerolog.Logger) BannerService {
	return &bannerService{
		bannerRepo: bannerRepo,
		store:      store,
		publicURL:  strings.TrimSuffix(publicURL, "/"),
		logger:     logger.With().Str("service", "banner").Logger(),
	}
}

// List retrieves banners, optionally filtered by type and active status.
func (s *bannerService) List(ctx context.Context, bannerType string, activeOnly bool) ([]model.Banner, error) {
	banners, err := s.bannerRepo.List(ctx, bannerType, activeOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list banners: %w", err)
	}
	for i := range banners {
		banners[i].ImageURL = s.imageURL(banners[i].ImagePath)
	}
	if banners == nil {
		banners = []model.Banner{}
	}
	return banners, nil
}

// Create creates a banner with its uploaded image.
func (s *bannerService) Create(ctx context.Context, req *model.BannerRequest, image *Upload) (*model.Banner, error) {
	v := validateBannerRequest(req)
	if image == nil {
		v.Add("image", "Image is required")
	} else if !storage.AllowedExtension(image.Filename) {
		v.Add("image", "Unsupported image type")
	}
	if v.HasErrors() {
		return nil, v
	}

	path, err := s.store.Save(ctx, bannerUploadDir, image.Filename, image.Content)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to store banner image")
		return nil, fmt.Errorf("failed to store banner image: %w", err)
	}

	banner := &model.Banner{
		Title:       strings.TrimSpace(req.Title),
		Subtitle:    req.Subtitle,
		Description: req.Description,
		PriceText:   req.PriceText,
		ButtonText:  req.ButtonText,
		ButtonLink:  req.ButtonLink,
		ImagePath:   path,
		Type:        req.Type,
		Position:    req.Position,
		SortOrder:   req.SortOrder,
		IsActive:    req.IsActive,
	}
	if banner.ButtonText == "" {
		banner.ButtonText = "Shop Now"
	}
	if banner.Type == "" {
		banner.Type = model.BannerTypeHero
	}
	if banner.Position == "" {
		banner.Position = model.BannerPositionLeft
	}

	if err := s.bannerRepo.Create(ctx, banner); err != nil {
		return nil, fmt.Errorf("failed to create banner: %w", err)
	}

	banner.ImageURL = s.imageURL(banner.ImagePath)
	s.logger.Info().Int64("banner_id", banner.ID).Msg("banner created")
	return banner, nil
}

// Update updates a banner, replacing the image when a new one is uploaded.
func (s *bannerService) Update(ctx context.Context, id int64, req *model.BannerRequest, image *Upload) (*model.Banner, error) {
	v := validateBannerRequest(req)
	if image != nil && !storage.AllowedExtension(image.Filename) {
		v.Add("image", "Unsupported image type")
	}
	if v.HasErrors() {
		return nil, v
	}

	banner, err := s.bannerRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update banner: %w", err)
	}
	if banner == nil {
		return nil, model.NewNotFoundError("Banner")
	}

	if image != nil {
		path, err := s.store.Save(ctx, bannerUploadDir, image.Filename, image.Content)
		if err != nil {
			s.logger.Error().Err(err).Msg("failed to store banner image")
			return nil, fmt.Errorf("failed to store banner image: %w", err)
		}
		if delErr := s.store.Delete(ctx, banner.ImagePath); delErr != nil {
			s.logger.Warn().Err(delErr).Str("path", banner.ImagePath).Msg("failed to delete old banner image")
		}
		banner.ImagePath = path
	}

	banner.Title = strings.TrimSpace(req.Title)
	banner.Subtitle = req.Subtitle
	banner.Description = req.Description
	banner.PriceText = req.PriceText
	if req.ButtonText != "" {
		banner.ButtonText = req.ButtonText
	}
	banner.ButtonLink = req.ButtonLink
	if req.Type != "" {
		banner.Type = req.Type
	}
	if req.Position != "" {
		banner.Position = req.Position
	}
	banner.SortOrder = req.SortOrder
	banner.IsActive = req.IsActive

	if err := s.bannerRepo.Update(ctx, banner); err != nil {
		return nil, fmt.Errorf("failed to update banner: %w", err)
	}

	banner.ImageURL = s.imageURL(banner.ImagePath)
	s.logger.Info().Int64("banner_id", banner.ID).Msg("banner updated")
	return banner, nil
}

// Delete removes a banner and its stored image.
func (s *bannerService) Delete(ctx context.Context, id int64) error {
	banner, err := s.bannerRepo.GetByID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete banner: %w", err)
	}
	if banner == nil {
		return model.NewNotFoundError("Banner")
	}

	if _, err := s.bannerRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete banner: %w", err)
	}
	if delErr := s.store.Delete(ctx, banner.ImagePath); delErr != nil {
		s.logger.Warn().Err(delErr).Str("path", banner.ImagePath).Msg("failed to delete banner image")
	}

	s.logger.Info().Int64("banner_id", id).Msg("banner deleted")
	return nil
}

func (s *bannerService) imageURL(path string) string {
	if path == "" {
		return ""
	}
	return s.publicURL + "/" + strings.TrimPrefix(path, "/")
}

func validateBannerRequest(req *model.BannerRequest) *model.ValidationError {
	v := model.NewValidationError()
	if strings.TrimSpace(req.Title) == "" {
		v.Add("title", "Title is required")
	}
	if req.Type != "" && req.Type != model.BannerTypeHero && req.Type != model.BannerTypePromo {
		v.Add("type", "Type must be hero or promo")
	}
	if req.Position != "" && req.Position != model.BannerPositionLeft &&
		req.Position != model.BannerPositionRight && req.Position != model.BannerPositionFull {
		v.Add("position", "Position must be left, right or full")
	}
	return v
}
