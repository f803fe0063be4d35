package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/otpauth/backend/internal/credentials"
	"github.com/otpauth/backend/internal/models"
	"go.uber.org/zap"
)

// adminService implements AdminService
type adminService struct {
	userRepo UserRepository
	hasher   credentials.PasswordHasher
	logger   *zap.Logger
}

// NewAdminService creates a new admin service
func NewAdminService(userRepo UserRepository, hasher credentials.PasswordHasher, logger *zap.Logger) *adminService {
	return &adminService{
		userRepo: userRepo,
		hasher:   hasher,
		logger:   logger,
	}
}

// AddUser creates a user without an OTP challenge
func (s *adminService) AddUser(ctx context.Context, req *models.SignUpRequest) (int, error) {
	user, err := createUser(ctx, s.userRepo, s.hasher, req)
	if err != nil {
		return 0, err
	}

	s.logger.Info("user added by admin", zap.Int("userId", user.ID), zap.String("role", string(user.Role)))
	return user.ID, nil
}

// DeleteUser removes a user by ID
func (s *adminService) DeleteUser(ctx context.Context, userID int) error {
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return ErrNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.logger.Info("user deleted by admin", zap.Int("userId", userID))
	return nil
}
