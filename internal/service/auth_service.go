package service

import (
	"context"
	"fmt"
	"strings"

	"print-kart/internal/auth"
	"print-kart/internal/model"
	"print-kart/internal/repository"

	"github.com/rs/zerolog"
)

// authService implements AuthService.
type authService struct {
	userRepo repository.UserRepository
	tokens   *auth.TokenManager
	logger   zerolog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(userRepo repository.UserRepository, tokens *auth.TokenManager, logger zerolog.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		tokens:   tokens,
		logger:   logger.With().Str("service", "auth").Logger(),
	}
}

// Register creates a new user and issues a bearer token.
func (s *authService) Register(ctx context.Context, req *model.RegisterRequest) (*model.AuthResponse, error) {
	v := model.NewValidationError()
	if strings.TrimSpace(req.Name) == "" {
		v.Add("name", "Name is required")
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		v.Add("email", "Email is required")
	} else if !strings.Contains(email, "@") {
		v.Add("email", "Email is invalid")
	}
	if len(req.Password) < 8 {
		v.Add("password", "Password must be at least 8 characters")
	}
	if v.HasErrors() {
		return nil, v
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}
	if existing != nil {
		s.logger.Debug().Str("email", email).Msg("registration with taken email")
		return nil, model.ErrEmailTaken
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		s.logger.Error().Err(err).Msg("failed to hash password")
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	user := &model.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to issue token")
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user registered")
	return &model.AuthResponse{User: user, Token: token}, nil
}

// Login verifies credentials and issues a bearer token.
func (s *authService) Login(ctx context.Context, req *model.LoginRequest) (*model.AuthResponse, error) {
	v := model.NewValidationError()
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" {
		v.Add("email", "Email is required")
	}
	if req.Password == "" {
		v.Add("password", "Password is required")
	}
	if v.HasErrors() {
		return nil, v
	}

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to log in: %w", err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, req.Password) {
		s.logger.Debug().Str("email", email).Msg("invalid credentials")
		return nil, model.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.Error().Err(err).Int64("user_id", user.ID).Msg("failed to issue token")
		return nil, fmt.Errorf("failed to log in: %w", err)
	}

	s.logger.Info().Int64("user_id", user.ID).Msg("user logged in")
	return &model.AuthResponse{User: user, Token: token}, nil
}

// Profile retrieves the authenticated user.
func (s *authService) Profile(ctx context.Context, userID int64) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile: %w", err)
	}
	if user == nil {
		return nil, model.NewNotFoundError("User")
	}
	return user, nil
}
