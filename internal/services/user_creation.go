package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/otpauth/backend/internal/credentials"
	"github.com/otpauth/backend/internal/models"
)

// UserRepository is the interface that wraps methods for User table data access
type UserRepository interface {
	// Method Create inserts a new user into the database.
	//
	// "user" parameter is used to create a new user. Its ID is set on success.
	//
	// If username is already taken, models.ErrDuplicateUsername is returned.
	Create(ctx context.Context, user *models.User) error
	// Method GetByUsername retrieves a user by username.
	//
	// "username" parameter is used to retrieve a user by username.
	//
	// If user with such username does not exist, models.ErrUserNotFound will be returned together with "nil" value.
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	// Method GetByEmail retrieves the oldest user registered with an email.
	//
	// "email" parameter is used to retrieve a user by email.
	//
	// If user with such email does not exist, models.ErrUserNotFound will be returned together with "nil" value.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// Method GetByID retrieves a user by ID.
	//
	// "userID" parameter is used to retrieve a user by ID.
	//
	// If user with such ID does not exist, models.ErrUserNotFound will be returned together with "nil" value.
	GetByID(ctx context.Context, userID int) (*models.User, error)
	// Method ExistsByUsername checks if a user with such username exists.
	//
	// "username" parameter is used to check if a user with such username exists.
	//
	// If some error occurs during check, the error will be returned together with "false" value.
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	// Method Delete deletes a user by ID.
	//
	// "userID" parameter is used to delete a user by ID.
	//
	// If user with such ID does not exist, models.ErrUserNotFound will be returned.
	Delete(ctx context.Context, userID int) error
}

// createUser validates req and stores a new user. Used by sign-up and admin add-user.
func createUser(ctx context.Context, repo UserRepository, hasher credentials.PasswordHasher, req *models.SignUpRequest) (*models.User, error) {
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.TrimSpace(req.Email)
	req.Mobile = strings.TrimSpace(req.Mobile)

	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	exists, err := repo.ExistsByUsername(ctx, req.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if exists {
		return nil, ErrConflict
	}

	password, err := hasher.Hash(req.Password)
	if err != nil {
		if errors.Is(err, credentials.ErrPasswordTooLong) {
			return nil, fmt.Errorf("%w: password: the length must be no more than %d bytes", ErrValidation, credentials.MaxBcryptPasswordBytes)
		}
		return nil, err
	}

	user := &models.User{
		Username: req.Username,
		Password: password,
		Mobile:   req.Mobile,
		Email:    req.Email,
		Role:     role,
	}

	// The unique index settles sign-ups racing past the existence check
	if err := repo.Create(ctx, user); err != nil {
		if errors.Is(err, models.ErrDuplicateUsername) {
			return nil, ErrConflict
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}
