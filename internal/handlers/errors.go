package handlers

import (
	"errors"
	"net/http"

	"github.com/otpauth/backend/internal/services"
	"github.com/otpauth/backend/libs/handlers"
	"go.uber.org/zap"
)

// Response messages
const (
	msgInvalidBody    = "Invalid request body"
	msgBodyTooLarge   = "Request body too large"
	msgInternalError  = "Internal server error"
	msgUserNotFound   = "User not found"
	msgNoToken        = "No token provided"
	msgSignUpSent     = "User registered successfully. OTP sent to email for verification."
	msgSignUpPending  = "User registered successfully. OTP email is on its way."
	msgOTPResent      = "OTP sent to email for verification."
	msgUserAdded      = "User added successfully by admin."
	msgUserDeleted    = "User deleted successfully"
	msgWelcomeToHome  = " Hello Welcome To Home"
	msgDeliveryFailed = "Failed to send OTP email"
)

// serviceErrors maps service errors to a status and client message.
// An empty message means the error text itself is sent.
var serviceErrors = []struct {
	err     error
	status  int
	message string
}{
	{services.ErrValidation, http.StatusBadRequest, ""},
	{services.ErrConflict, http.StatusConflict, "Username already exists"},
	{services.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid username or password"},
	{services.ErrInvalidOTP, http.StatusUnauthorized, "Invalid OTP"},
	{services.ErrInvalidEmail, http.StatusNotFound, "Invalid email"},
	{services.ErrNotFound, http.StatusNotFound, msgUserNotFound},
	{services.ErrDeliveryFailed, http.StatusBadGateway, msgDeliveryFailed},
}

// respondServiceError writes the response for an error returned by a service.
// Unknown errors are logged and reported as 500 without details.
func respondServiceError(h *handlers.BaseHandler, w http.ResponseWriter, err error, action string) {
	for _, e := range serviceErrors {
		if errors.Is(err, e.err) {
			message := e.message
			if message == "" {
				message = err.Error()
			}
			h.Logger.Debug(action+" rejected", zap.Error(err))
			h.RespondError(w, e.status, message)
			return
		}
	}

	h.Logger.Error("failed to "+action, zap.Error(err))
	h.RespondError(w, http.StatusInternalServerError, msgInternalError)
}

// respondDecodeError writes the response for a request body DecodeJSON rejected
func respondDecodeError(h *handlers.BaseHandler, w http.ResponseWriter, err error) {
	if errors.Is(err, handlers.ErrBodyTooLarge) {
		h.RespondError(w, http.StatusRequestEntityTooLarge, msgBodyTooLarge)
		return
	}
	h.RespondError(w, http.StatusBadRequest, msgInvalidBody)
}
