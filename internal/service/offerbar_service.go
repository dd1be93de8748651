package service

import (
	"context"
	"fmt"
	"strings"

	"print-kart/internal/model"
	"print-kart/internal/repository"

	"github.com/rs/zerolog"
)

// offerBarService implements OfferBarService.
type offerBarService struct {
	offerBarRepo repository.OfferBarRepository
	logger       zerolog.Logger
}

// NewOfferBarService creates a new offer bar service.
func NewOfferBarService(offerBarRepo repository.OfferBarRepository, logger zerolog.Logger) OfferBarService {
	return &offerBarService{
		offerBarRepo: offerBarRepo,
		logger:       logger.With().Str("service", "offer_bar").Logger(),
	}
}

// List retrieves offer bars; when currentOnly is set, only active bars within
// their date window.
func (s *offerBarService) List(ctx context.Context, currentOnly bool) ([]model.OfferBar, error) {
	bars, err := s.offerBarRepo.List(ctx, currentOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list offer bars: %w", err)
	}
	if bars == nil {
		bars = []model.OfferBar{}
	}
	return bars, nil
}

// Create creates an offer bar.
func (s *offerBarService) Create(ctx context.Context, req *model.OfferBarRequest) (*model.OfferBar, error) {
	if err := validateOfferBarRequest(req); err != nil {
		return nil, err
	}

	bar := &model.OfferBar{
		Message:         strings.TrimSpace(req.Message),
		BackgroundColor: "#000000",
		TextColor:       "#ffffff",
		IsActive:        true,
		StartDate:       req.StartDate,
		EndDate:         req.EndDate,
	}
	if req.BackgroundColor != nil {
		bar.BackgroundColor = *req.BackgroundColor
	}
	if req.TextColor != nil {
		bar.TextColor = *req.TextColor
	}
	if req.SortOrder != nil {
		bar.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		bar.IsActive = *req.IsActive
	}

	if err := s.offerBarRepo.Create(ctx, bar); err != nil {
		return nil, fmt.Errorf("failed to create offer bar: %w", err)
	}

	s.logger.Info().Int64("offer_bar_id", bar.ID).Msg("offer bar created")
	return bar, nil
}

// Update updates an offer bar. Nil request fields leave the current value
// untouched.
func (s *offerBarService) Update(ctx context.Context, id int64, req *model.OfferBarRequest) (*model.OfferBar, error) {
	if err := validateOfferBarRequest(req); err != nil {
		return nil, err
	}

	bar, err := s.offerBarRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to update offer bar: %w", err)
	}
	if bar == nil {
		return nil, model.NewNotFoundError("Offer bar")
	}

	bar.Message = strings.TrimSpace(req.Message)
	if req.BackgroundColor != nil {
		bar.BackgroundColor = *req.BackgroundColor
	}
	if req.TextColor != nil {
		bar.TextColor = *req.TextColor
	}
	if req.SortOrder != nil {
		bar.SortOrder = *req.SortOrder
	}
	if req.IsActive != nil {
		bar.IsActive = *req.IsActive
	}
	bar.StartDate = req.StartDate
	bar.EndDate = req.EndDate

	if err := s.offerBarRepo.Update(ctx, bar); err != nil {
		return nil, fmt.Errorf("failed to update offer bar: %w", err)
	}

	s.logger.Info().Int64("offer_bar_id", bar.ID).Msg("offer bar updated")
	return bar, nil
}

// Delete removes an offer bar.
func (s *offerBarService) Delete(ctx context.Context, id int64) error {
	deleted, err := s.offerBarRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to delete offer bar: %w", err)
	}
	if !deleted {
		return model.NewNotFoundError("Offer bar")
	}

	s.logger.Info().Int64("offer_bar_id", id).Msg("offer bar deleted")
	return nil
}

func validateOfferBarRequest(req *model.OfferBarRequest) error {
	v := model.NewValidationError()
	if strings.TrimSpace(req.Message) == "" {
		v.Add("message", "Message is required")
	}
	if req.StartDate != nil && req.EndDate != nil && req.EndDate.Before(*req.StartDate) {
		v.Add("end_date", "End date must not precede start date")
	}
	if v.HasErrors() {
		return v
	}
	return nil
}
