package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/otpauth/backend/internal/credentials"
	"github.com/otpauth/backend/internal/models"
	"github.com/otpauth/backend/internal/notifier"
	"github.com/otpauth/backend/internal/otp"
	"github.com/otpauth/backend/libs/auth/service"
	"go.uber.org/zap"
)

// DeliveryStatus reports how far OTP delivery got before SignUp returned
type DeliveryStatus string

const (
	// DeliverySent means the notifier accepted the message
	DeliverySent DeliveryStatus = "sent"
	// DeliveryPending means the wait elapsed with delivery still running
	DeliveryPending DeliveryStatus = "pending"
)

// OTPStore is the interface that wraps methods for one-time password challenges
type OTPStore interface {
	// Method Put stores a challenge for an email, replacing any previous one.
	//
	// "email" parameter is the key of the challenge.
	// "code" parameter is the six digit code.
	//
	// If some error occurs during storing, the error will be returned.
	Put(ctx context.Context, email, code string) error
	// Method Consume removes a challenge if it matches.
	//
	// "email" parameter is the key of the challenge.
	// "code" parameter is the code presented by the user.
	//
	// Returns "true" exactly once for a matching code. A mismatch returns "false" and keeps the challenge.
	Consume(ctx context.Context, email, code string) (bool, error)
}

// Notifier is the interface that wraps the method for sending OTP emails
type Notifier interface {
	// Method Send delivers a message.
	//
	// "to" parameter is the recipient email.
	// "subject" and "body" parameters are the message content.
	//
	// If the message could not be delivered, the error will be returned.
	Send(ctx context.Context, to, subject, body string) error
}

// TokenIssuer is the interface that wraps the method for issuing bearer tokens
type TokenIssuer interface {
	// Method GenerateToken signs claims into a token with the configured lifetime.
	//
	// If some error occurs during signing, the error will be returned together with empty string.
	GenerateToken(claims service.Claims) (string, error)
}

// authService implements AuthService
type authService struct {
	userRepo     UserRepository
	otpStore     OTPStore
	notifier     Notifier
	tokens       TokenIssuer
	hasher       credentials.PasswordHasher
	deliveryWait time.Duration
	generateCode func() (string, error)
	logger       *zap.Logger
}

// NewAuthService creates a new auth service.
// deliveryWait bounds how long SignUp waits for the OTP email to be handed off.
func NewAuthService(
	userRepo UserRepository,
	otpStore OTPStore,
	notifier Notifier,
	tokens TokenIssuer,
	hasher credentials.PasswordHasher,
	deliveryWait time.Duration,
	logger *zap.Logger,
) *authService {
	return &authService{
		userRepo:     userRepo,
		otpStore:     otpStore,
		notifier:     notifier,
		tokens:       tokens,
		hasher:       hasher,
		deliveryWait: deliveryWait,
		generateCode: otp.GenerateCode,
		logger:       logger,
	}
}

// SignUp registers a user and emails an OTP to the given address
func (s *authService) SignUp(ctx context.Context, req *models.SignUpRequest) (DeliveryStatus, error) {
	user, err := createUser(ctx, s.userRepo, s.hasher, req)
	if err != nil {
		return "", err
	}

	code, err := s.issueChallenge(ctx, user.Email)
	if err != nil {
		return "", err
	}

	// Delivery is detached from the request so a client disconnect does not abort the send
	done := make(chan error, 1)
	go func() {
		done <- s.notifier.Send(context.WithoutCancel(ctx), user.Email, notifier.OTPSubject, notifier.OTPBody(code))
	}()

	timer := time.NewTimer(s.deliveryWait)
	defer timer.Stop()

	select {
	case err := <-done:
		if err != nil {
			s.logger.Error("failed to deliver otp", zap.Int("userId", user.ID), zap.Error(err))
			return "", fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
		}
		return DeliverySent, nil
	case <-timer.C:
		go func() {
			if err := <-done; err != nil {
				s.logger.Warn("delayed otp delivery failed", zap.Int("userId", user.ID), zap.Error(err))
				return
			}
			s.logger.Info("delayed otp delivery completed", zap.Int("userId", user.ID))
		}()
		return DeliveryPending, nil
	}
}

// Login checks credentials and issues a token
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (string, error) {
	if err := req.Validate(); err != nil {
		return "", ErrInvalidCredentials
	}

	user, err := s.userRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	if !credentials.VerifyPassword(s.hasher, user.Password, req.Password) {
		return "", ErrInvalidCredentials
	}

	return s.issueToken(user)
}

// VerifyOTP consumes the challenge for an email and issues a token for its user.
// The user is resolved and the token signed before the challenge is consumed, so a
// lookup or signing failure leaves the code usable. A matching code for an email
// with no user is still spent.
func (s *authService) VerifyOTP(ctx context.Context, req *models.OTPVerificationRequest) (string, error) {
	req.Email = strings.TrimSpace(req.Email)
	if err := req.Validate(); err != nil {
		return "", ErrInvalidOTP
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, models.ErrUserNotFound) {
		return "", fmt.Errorf("failed to get user: %w", err)
	}

	var token string
	if user != nil {
		if token, err = s.issueToken(user); err != nil {
			return "", err
		}
	}

	ok, err := s.otpStore.Consume(ctx, req.Email, req.OTP)
	if err != nil {
		return "", fmt.Errorf("failed to consume otp: %w", err)
	}
	if !ok {
		return "", ErrInvalidOTP
	}
	if user == nil {
		return "", ErrInvalidEmail
	}

	return token, nil
}

// ResendOTP replaces the challenge for a registered email and delivers it synchronously
func (s *authService) ResendOTP(ctx context.Context, req *models.OTPResendRequest) error {
	req.Email = strings.TrimSpace(req.Email)
	if err := req.Validate(); err != nil {
		return fmt.Errorf("%w: %s", ErrValidation, err.Error())
	}

	user, err := s.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			return ErrInvalidEmail
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	code, err := s.issueChallenge(ctx, user.Email)
	if err != nil {
		return err
	}

	if err := s.notifier.Send(ctx, user.Email, notifier.OTPSubject, notifier.OTPBody(code)); err != nil {
		s.logger.Error("failed to resend otp", zap.Int("userId", user.ID), zap.Error(err))
		return fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	return nil
}

// issueChallenge generates and stores a fresh code for email
func (s *authService) issueChallenge(ctx context.Context, email string) (string, error) {
	code, err := s.generateCode()
	if err != nil {
		return "", err
	}
	if err := s.otpStore.Put(ctx, email, code); err != nil {
		return "", fmt.Errorf("failed to store otp: %w", err)
	}
	return code, nil
}

// issueToken signs the identity of user
func (s *authService) issueToken(user *models.User) (string, error) {
	token, err := s.tokens.GenerateToken(service.Claims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     string(user.Role),
	})
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}
