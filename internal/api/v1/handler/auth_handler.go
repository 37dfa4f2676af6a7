package handler

import (
	"encoding/json"
	"net/http"

	"nutrigenius/internal/api/v1/dto"
	"nutrigenius/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// AuthHandler handles wallet-address user upsert and lookup.
type AuthHandler struct {
	userService service.UserService
	validate    *validator.Validate
	logger      zerolog.Logger
}

func NewAuthHandler(userService service.UserService, v *validator.Validate, logger zerolog.Logger) *AuthHandler {
	return &AuthHandler{userService: userService, validate: v, logger: logger}
}

// RegisterRoutes mounts the auth routes.
func (h *AuthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/auth", h.handleAuth)
}

func (h *AuthHandler) handleAuth(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.upsertUser(w, r)
	case http.MethodGet:
		h.getUser(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *AuthHandler) upsertUser(w http.ResponseWriter, r *http.Request) {
	var req dto.AuthUpsertRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Wallet address is required")
		return
	}

	user, isNew, err := h.userService.Upsert(r.Context(), req.WalletAddress, req.UserData.ToProfileUpdate())
	if err != nil {
		h.logger.Error().Err(err).Msg("Auth error")
		writeError(w, http.StatusInternalServerError, "Authentication failed")
		return
	}

	writeSuccess(w, envelope{"user": user, "isNewUser": isNew})
}

func (h *AuthHandler) getUser(w http.ResponseWriter, r *http.Request) {
	address := r.URL.Query().Get("address")
	if address == "" {
		writeError(w, http.StatusBadRequest, "Wallet address is required")
		return
	}

	user, err := h.userService.GetByAddress(r.Context(), address)
	if err != nil {
		h.logger.Error().Err(err).Msg("Get user error")
		writeError(w, http.StatusInternalServerError, "Failed to fetch user")
		return
	}

	// A missing row is success-with-null, not an error.
	writeSuccess(w, envelope{"user": user})
}
