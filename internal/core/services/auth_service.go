package services

import (
	"context"
	"errors"

	"github.com/lorrc/customer-service-backend/internal/core/domain"
	apperrors "github.com/lorrc/customer-service-backend/internal/core/errors"
	"github.com/lorrc/customer-service-backend/internal/core/ports"
)

// AuthService implements authentication business logic
type AuthService struct {
	userRepo ports.UserRepository
}

var _ ports.AuthService = (*AuthService)(nil)

// NewAuthService creates a new authentication service
func NewAuthService(userRepo ports.UserRepository) ports.AuthService {
	return &AuthService{userRepo: userRepo}
}

// Register creates a new user account with validated credentials
func (s *AuthService) Register(ctx context.Context, params ports.RegisterParams) (*domain.User, error) {
	// Validate registration parameters
	regParams := domain.UserRegistrationParams{
		Name:     params.Name,
		Email:    params.Email,
		Password: params.Password,
		Role:     params.Role,
	}

	if err := regParams.Validate(); err != nil {
		return nil, err
	}

	// Check if the email is already registered
	_, err := s.userRepo.GetByEmail(ctx, params.Email)
	if err == nil {
		return nil, apperrors.ErrEmailTaken
	}
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err // An actual DB error occurred
	}

	// Create user with validated params
	user, err := domain.NewUser(regParams)
	if err != nil {
		return nil, err
	}

	// Persist the user
	return s.userRepo.Create(ctx, user)
}

// Login authenticates a user with email and password
func (s *AuthService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	// Basic validation
	if email == "" {
		return nil, apperrors.ErrEmailRequired
	}
	if password == "" {
		return nil, apperrors.ErrPasswordRequired
	}

	// Find user by email
	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			// Don't reveal whether email exists
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	// Deactivated accounts cannot sign in
	if !user.IsActive {
		return nil, apperrors.ErrInvalidCredentials
	}

	// Verify password
	if !user.CheckPassword(password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return user, nil
}

// GetUserByID loads the account behind an authenticated request
func (s *AuthService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, userID)
}
