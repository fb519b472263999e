package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Dias221467/tagwish/internal/models"
	"github.com/Dias221467/tagwish/internal/services"
)

type UserHandler struct {
	Service *services.UserService
}

func NewUserHandler(service *services.UserService) *UserHandler {
	return &UserHandler{Service: service}
}

// GetCurrentUserHandler returns the acting user
func (h *UserHandler) GetCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.Service.CurrentUser(r.Context()))
}

// SwitchRoleHandler toggles between the buyer and traveler views
func (h *UserHandler) SwitchRoleHandler(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Role models.UserRole `json:"role"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}
	defer r.Body.Close()

	user, err := h.Service.SwitchRole(r.Context(), req.Role)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
