package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"nutrigenius/internal/api/v1/dto"
	"nutrigenius/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// SubscriptionHandler handles checkout session creation, subscription
// listing, and webhook ingestion.
type SubscriptionHandler struct {
	stripeService *service.StripeService
	validate      *validator.Validate
	logger        zerolog.Logger
}

func NewSubscriptionHandler(stripeService *service.StripeService, v *validator.Validate, logger zerolog.Logger) *SubscriptionHandler {
	return &SubscriptionHandler{stripeService: stripeService, validate: v, logger: logger}
}

// RegisterRoutes mounts the subscription routes.
func (h *SubscriptionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/subscription/create", h.handleCreate)
	mux.HandleFunc("/subscription/webhook", h.handleWebhook)
}

func (h *SubscriptionHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.createCheckoutSession(w, r)
	case http.MethodGet:
		h.listSubscriptions(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *SubscriptionHandler) createCheckoutSession(w http.ResponseWriter, r *http.Request) {
	var req dto.SubscriptionCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "User ID and price ID are required")
		return
	}

	sessionID, url, err := h.stripeService.CreateCheckoutSession(r.Context(), req.UserID, req.PriceID, req.WalletAddress)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to create checkout session")
		return
	}

	writeSuccess(w, envelope{"data": dto.CheckoutSessionResponse{SessionID: sessionID, URL: url}})
}

func (h *SubscriptionHandler) listSubscriptions(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "User ID is required")
		return
	}

	subs, err := h.stripeService.ListActiveSubscriptions(r.Context(), userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch subscriptions")
		return
	}

	writeSuccess(w, envelope{"data": dto.SubscriptionListResponse{
		Subscriptions:         subs,
		HasActiveSubscription: len(subs) > 0,
	}})
}

func (h *SubscriptionHandler) handleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Failed to read request body")
		return
	}

	if err := h.stripeService.HandleEvent(r.Context(), payload, r.Header.Get("Stripe-Signature")); err != nil {
		if errors.Is(err, service.ErrInvalidSignature) {
			writeError(w, http.StatusBadRequest, "Invalid signature")
			return
		}
		h.logger.Error().Err(err).Msg("Webhook processing failed")
		writeError(w, http.StatusInternalServerError, "Webhook processing failed")
		return
	}

	// Stripe only needs acknowledgement to stop redelivery.
	writeJSON(w, http.StatusOK, envelope{"received": true})
}
