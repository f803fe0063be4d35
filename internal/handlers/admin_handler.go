package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/otpauth/backend/internal/models"
	"github.com/otpauth/backend/libs/handlers"
	"go.uber.org/zap"
)

// AdminService is the interface that wraps methods for admin user management.
type AdminService interface {
	// Method AddUser creates a user with any role and no OTP challenge.
	//
	// "req" parameter contains username, password, mobile, email and role.
	//
	// If the username is taken or the request is invalid, the error will be returned together with 0.
	AddUser(ctx context.Context, req *models.SignUpRequest) (int, error)
	// Method DeleteUser removes a user.
	//
	// "userID" parameter is the ID of the user to remove.
	//
	// If no user has the ID, the error will be returned.
	DeleteUser(ctx context.Context, userID int) error
}

// AdminHandler handles admin-only HTTP requests.
// Routes must be mounted behind authentication and admin role checks.
type AdminHandler struct {
	handlers.BaseHandler
	adminService AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService AdminService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		BaseHandler:  handlers.BaseHandler{Logger: logger},
		adminService: adminService,
	}
}

// RegisterRoutes registers admin routes
func (h *AdminHandler) RegisterRoutes(r chi.Router) {
	r.Post("/admin/add-user", h.AddUser)
	r.Delete("/delete-user/{id}", h.DeleteUser)
}

// AddUser handles POST /admin/add-user
// @Summary Add a user
// @Description Creates a user with the given role. No OTP is sent.
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.SignUpRequest true "User to add"
// @Success 201 {object} map[string]string "User added"
// @Failure 400 {object} map[string]string "Invalid request body"
// @Failure 401 {object} map[string]string "No token provided"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 409 {object} map[string]string "Username already exists"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /admin/add-user [post]
func (h *AdminHandler) AddUser(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := h.DecodeJSON(r, &req); err != nil {
		respondDecodeError(&h.BaseHandler, w, err)
		return
	}

	if _, err := h.adminService.AddUser(r.Context(), &req); err != nil {
		respondServiceError(&h.BaseHandler, w, err, "add user")
		return
	}

	h.RespondMessage(w, http.StatusCreated, msgUserAdded)
}

// DeleteUser handles DELETE /delete-user/{id}
// @Summary Delete a user
// @Tags admin
// @Produce json
// @Security BearerAuth
// @Param id path int true "User ID"
// @Success 200 {object} map[string]string "User deleted"
// @Failure 401 {object} map[string]string "No token provided"
// @Failure 403 {object} map[string]string "Admin access required"
// @Failure 404 {object} map[string]string "User not found"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /delete-user/{id} [delete]
func (h *AdminHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	// An id that cannot name a user is reported like a missing one
	userID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || userID <= 0 {
		h.RespondError(w, http.StatusNotFound, msgUserNotFound)
		return
	}

	if err := h.adminService.DeleteUser(r.Context(), userID); err != nil {
		respondServiceError(&h.BaseHandler, w, err, "delete user")
		return
	}

	h.RespondMessage(w, http.StatusOK, msgUserDeleted)
}
