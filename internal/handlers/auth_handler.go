package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/otpauth/backend/internal/models"
	"github.com/otpauth/backend/internal/services"
	"github.com/otpauth/backend/libs/handlers"
	"go.uber.org/zap"
)

// AuthService is the interface that wraps methods for authentication business logic.
type AuthService interface {
	// Method SignUp creates a user and sends an OTP to the user's email.
	//
	// "req" parameter contains username, password, mobile, email and role.
	//
	// If the username is taken, the request is invalid or the OTP could not be delivered, the error will be returned.
	// Otherwise the returned status tells whether delivery finished or is still in progress.
	SignUp(ctx context.Context, req *models.SignUpRequest) (services.DeliveryStatus, error)
	// Method Login checks username and password and returns a token.
	//
	// "req" parameter contains username and password.
	//
	// If the credentials do not match a user, the error will be returned together with empty string.
	Login(ctx context.Context, req *models.LoginRequest) (string, error)
	// Method VerifyOTP consumes the OTP sent to an email and returns a token.
	//
	// "req" parameter contains email and the OTP.
	//
	// If the OTP does not match or no user has the email, the error will be returned together with empty string.
	VerifyOTP(ctx context.Context, req *models.OTPVerificationRequest) (string, error)
	// Method ResendOTP replaces the OTP of a registered email and sends it again.
	//
	// "req" parameter contains email.
	//
	// If no user has the email or delivery fails, the error will be returned.
	ResendOTP(ctx context.Context, req *models.OTPResendRequest) error
}

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	handlers.BaseHandler
	authService AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		BaseHandler: handlers.BaseHandler{Logger: logger},
		authService: authService,
	}
}

// RegisterRoutes registers all public auth routes
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Get("/home", h.Home)
	r.Post("/sign-up", h.SignUp)
	r.Post("/login", h.Login)
	r.Post("/otp-verification", h.VerifyOTP)
	r.Post("/otp-resend", h.ResendOTP)
}

// Home handles GET /home
// @Summary Welcome message
// @Tags auth
// @Produce json
// @Success 200 {string} string "Welcome message"
// @Router /home [get]
func (h *AuthHandler) Home(w http.ResponseWriter, r *http.Request) {
	h.RespondJSON(w, http.StatusOK, msgWelcomeToHome)
}

// SignUp handles POST /sign-up
// @Summary Register a new user
// @Description Creates a user and emails a six digit OTP for verification. No token is returned.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.SignUpRequest true "Sign-up request"
// @Success 201 {object} map[string]string "User registered"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 409 {object} map[string]string "Username already exists"
// @Failure 502 {object} map[string]string "OTP email could not be sent"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /sign-up [post]
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		respondDecodeError(&h.BaseHandler, w, err)
		return
	}

	status, err := h.authService.SignUp(r.Context(), &req)
	if err != nil {
		respondServiceError(&h.BaseHandler, w, err, "sign up")
		return
	}

	message := msgSignUpSent
	if status == services.DeliveryPending {
		message = msgSignUpPending
	}
	h.RespondMessage(w, http.StatusCreated, message)
}

// Login handles POST /login
// @Summary Login user
// @Description Checks username and password and returns a bearer token.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.LoginRequest true "Login request"
// @Success 200 {object} models.TokenResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Invalid username or password"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		respondDecodeError(&h.BaseHandler, w, err)
		return
	}

	token, err := h.authService.Login(r.Context(), &req)
	if err != nil {
		respondServiceError(&h.BaseHandler, w, err, "login")
		return
	}

	h.RespondJSON(w, http.StatusOK, models.TokenResponse{Token: token})
}

// VerifyOTP handles POST /otp-verification
// @Summary Verify the emailed OTP
// @Description Consumes the OTP sent at sign-up and returns a bearer token. Each OTP works once.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.OTPVerificationRequest true "OTP verification request"
// @Success 200 {object} models.TokenResponse
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "Invalid OTP"
// @Failure 404 {object} map[string]string "Invalid email"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /otp-verification [post]
func (h *AuthHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req models.OTPVerificationRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		respondDecodeError(&h.BaseHandler, w, err)
		return
	}

	token, err := h.authService.VerifyOTP(r.Context(), &req)
	if err != nil {
		respondServiceError(&h.BaseHandler, w, err, "verify otp")
		return
	}

	h.RespondJSON(w, http.StatusOK, models.TokenResponse{Token: token})
}

// ResendOTP handles POST /otp-resend
// @Summary Send a new OTP
// @Description Replaces the outstanding OTP of a registered email and sends it again.
// @Tags auth
// @Accept json
// @Produce json
// @Param request body models.OTPResendRequest true "OTP resend request"
// @Success 200 {object} map[string]string "OTP sent"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 404 {object} map[string]string "Invalid email"
// @Failure 502 {object} map[string]string "OTP email could not be sent"
// @Router /otp-resend [post]
func (h *AuthHandler) ResendOTP(w http.ResponseWriter, r *http.Request) {
	var req models.OTPResendRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		respondDecodeError(&h.BaseHandler, w, err)
		return
	}

	if err := h.authService.ResendOTP(r.Context(), &req); err != nil {
		respondServiceError(&h.BaseHandler, w, err, "resend otp")
		return
	}

	h.RespondMessage(w, http.StatusOK, msgOTPResent)
}
