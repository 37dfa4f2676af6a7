package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"nutrigenius/internal/api/v1/dto"
	"nutrigenius/internal/model"
	"nutrigenius/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// MealHandler handles meal suggestion generation and feedback.
type MealHandler struct {
	mealService     service.MealService
	feedbackService service.FeedbackService
	validate        *validator.Validate
	logger          zerolog.Logger
}

func NewMealHandler(mealService service.MealService, feedbackService service.FeedbackService, v *validator.Validate, logger zerolog.Logger) *MealHandler {
	return &MealHandler{mealService: mealService, feedbackService: feedbackService, validate: v, logger: logger}
}

// RegisterRoutes mounts the meal routes.
func (h *MealHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/meals/generate", h.handleGenerate)
	mux.HandleFunc("/meals/feedback", h.handleFeedback)
}

func (h *MealHandler) handleGenerate(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.generateMeals(w, r)
	case http.MethodGet:
		h.getMeals(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *MealHandler) generateMeals(w http.ResponseWriter, r *http.Request) {
	var req dto.MealGenerateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "User preferences are required")
		return
	}

	// Never fails: generation errors degrade to fallback content per slot.
	suggestions := h.mealService.GenerateSuggestions(r.Context(), *req.UserPreferences, req.MealTypes, req.UserID)

	writeSuccess(w, envelope{"data": suggestions})
}

func (h *MealHandler) getMeals(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "User ID is required")
		return
	}
	date := r.URL.Query().Get("date")
	if date == "" {
		date = time.Now().Format("2006-01-02")
	}

	suggestions, err := h.mealService.GetSuggestions(r.Context(), userID, date)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch meal suggestions")
		return
	}
	if suggestions == nil {
		suggestions = []model.MealSuggestion{}
	}

	writeSuccess(w, envelope{"data": suggestions})
}

func (h *MealHandler) handleFeedback(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.saveFeedback(w, r)
	case http.MethodGet:
		h.getFeedback(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *MealHandler) saveFeedback(w http.ResponseWriter, r *http.Request) {
	var req dto.MealFeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "User ID, meal ID, and feedback are required")
		return
	}

	feedback := &model.MealFeedback{
		UserID:       req.UserID,
		MealID:       req.MealID,
		FeedbackType: req.Feedback,
		Rating:       req.Rating,
		Notes:        req.Notes,
	}
	saved, err := h.feedbackService.Upsert(r.Context(), feedback)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save feedback")
		return
	}

	writeSuccess(w, envelope{"data": saved})
}

func (h *MealHandler) getFeedback(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "User ID is required")
		return
	}
	mealID := r.URL.Query().Get("mealId")

	feedback, err := h.feedbackService.List(r.Context(), userID, mealID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch feedback")
		return
	}
	if feedback == nil {
		feedback = []model.MealFeedback{}
	}

	writeSuccess(w, envelope{"data": feedback})
}
