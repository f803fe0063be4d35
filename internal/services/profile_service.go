package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/otpauth/backend/internal/models"
)

// profileService implements ProfileService
type profileService struct {
	userRepo UserRepository
}

// NewProfileService creates a new profile service
func NewProfileService(userRepo UserRepository) *profileService {
	return &profileService{
		userRepo: userRepo,
	}
}

// GetProfile returns the user with the given ID without its password
func (s *profileService) GetProfile(ctx context.Context, userID int) (*models.ProfileResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &models.ProfileResponse{
		ID:       user.ID,
		Username: user.Username,
		Mobile:   user.Mobile,
		Email:    user.Email,
		Role:     user.Role,
	}, nil
}
