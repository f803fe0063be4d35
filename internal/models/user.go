package models

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
)

// Role is the access level of a user
type Role string

// UserRole constants
const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// User represents a user in the system
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"` // Never serialize the credential
	Mobile   string `json:"mobile"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// ProfileResponse is the user object returned by GET /profile
type ProfileResponse struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Mobile   string `json:"mobile"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
}

// SignUpRequest is the body of POST /sign-up and POST /admin/add-user
type SignUpRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"pw1"`
	Mobile   string `json:"mobile" example:"555"`
	Email    string `json:"email" example:"a@x.com"`
	Role     Role   `json:"role" example:"user"`
}

// Validate checks the required fields of a sign-up request
func (r SignUpRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required, validation.Length(1, 100)),
		validation.Field(&r.Password, validation.Required, validation.Length(1, 255)),
		validation.Field(&r.Mobile, validation.Length(0, 32)),
		validation.Field(&r.Email, validation.Required, validation.Length(3, 255), is.Email),
		validation.Field(&r.Role, validation.In(RoleUser, RoleAdmin)),
	)
}

// LoginRequest is the body of POST /login
type LoginRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"pw1"`
}

// Validate checks the required fields of a login request
func (r LoginRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Username, validation.Required),
		validation.Field(&r.Password, validation.Required),
	)
}

// OTPVerificationRequest is the body of POST /otp-verification
type OTPVerificationRequest struct {
	Email string `json:"email" example:"a@x.com"`
	OTP   string `json:"otp" example:"123456"`
}

// Validate checks the required fields of an OTP verification request
func (r OTPVerificationRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required),
		validation.Field(&r.OTP, validation.Required),
	)
}

// OTPResendRequest is the body of POST /otp-resend
type OTPResendRequest struct {
	Email string `json:"email" example:"a@x.com"`
}

// Validate checks the required fields of an OTP resend request
func (r OTPResendRequest) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Email, validation.Required, is.Email),
	)
}

// TokenResponse carries a freshly issued bearer token
type TokenResponse struct {
	Token string `json:"token"`
}
