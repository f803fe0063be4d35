package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/otpauth/backend/internal/models"
	"github.com/otpauth/backend/libs/auth/middleware"
	"github.com/otpauth/backend/libs/handlers"
	"go.uber.org/zap"
)

// ProfileService is the interface that wraps methods for profile business logic.
type ProfileService interface {
	// Method GetProfile returns the user with the given ID without its password.
	//
	// "userID" parameter is taken from the bearer token.
	//
	// If the user no longer exists, the error will be returned together with "nil" value.
	GetProfile(ctx context.Context, userID int) (*models.ProfileResponse, error)
}

// ProfileHandler handles profile-related HTTP requests
type ProfileHandler struct {
	handlers.BaseHandler
	profileService ProfileService
}

// NewProfileHandler creates a new profile handler
func NewProfileHandler(profileService ProfileService, logger *zap.Logger) *ProfileHandler {
	return &ProfileHandler{
		BaseHandler:    handlers.BaseHandler{Logger: logger},
		profileService: profileService,
	}
}

// RegisterRoutes registers profile routes behind authMiddleware
func (h *ProfileHandler) RegisterRoutes(r chi.Router, authMiddleware func(http.Handler) http.Handler) {
	r.With(authMiddleware).Get("/profile", h.GetProfile)
}

// GetProfile handles GET /profile
// @Summary Get own profile
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ProfileResponse
// @Failure 401 {object} map[string]string "No token provided"
// @Failure 403 {object} map[string]string "Failed to authenticate token"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /profile [get]
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.RespondError(w, http.StatusUnauthorized, msgNoToken)
		return
	}

	profile, err := h.profileService.GetProfile(r.Context(), userID)
	if err != nil {
		respondServiceError(&h.BaseHandler, w, err, "get profile")
		return
	}

	h.RespondJSON(w, http.StatusOK, profile)
}
