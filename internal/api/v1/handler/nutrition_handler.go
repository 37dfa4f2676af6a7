package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"nutrigenius/internal/api/v1/dto"
	"nutrigenius/internal/model"
	"nutrigenius/internal/service"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// NutritionHandler handles daily-log tracking and insight generation.
type NutritionHandler struct {
	nutritionService service.NutritionService
	insightService   service.InsightService
	validate         *validator.Validate
	logger           zerolog.Logger
}

func NewNutritionHandler(nutritionService service.NutritionService, insightService service.InsightService, v *validator.Validate, logger zerolog.Logger) *NutritionHandler {
	return &NutritionHandler{nutritionService: nutritionService, insightService: insightService, validate: v, logger: logger}
}

// RegisterRoutes mounts the nutrition routes.
func (h *NutritionHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/nutrition/log", h.handleLog)
	mux.HandleFunc("/nutrition/insights", h.handleInsights)
}

func (h *NutritionHandler) handleLog(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.saveLog(w, r)
	case http.MethodGet:
		h.getLogs(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *NutritionHandler) saveLog(w http.ResponseWriter, r *http.Request) {
	var req dto.NutritionLogRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "User ID, date, meal type, and food items are required")
		return
	}

	log := &model.DailyLog{
		UserID:         req.UserID,
		Date:           req.Date,
		MealType:       req.MealType,
		FoodItems:      req.FoodItems,
		TotalNutrition: req.TotalNutrition,
	}
	saved, err := h.nutritionService.UpsertLog(r.Context(), log)
	if err != nil {
		if errors.Is(err, service.ErrInvalidMealType) {
			writeError(w, http.StatusBadRequest, "Invalid meal type")
			return
		}
		writeError(w, http.StatusInternalServerError, "Failed to save nutrition log")
		return
	}

	writeSuccess(w, envelope{"data": saved})
}

func (h *NutritionHandler) getLogs(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "User ID is required")
		return
	}

	q := r.URL.Query()
	logs, totals, err := h.nutritionService.GetLogs(r.Context(), userID, q.Get("date"), q.Get("startDate"), q.Get("endDate"))
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch nutrition logs")
		return
	}
	if logs == nil {
		logs = []model.DailyLog{}
	}
	if totals == nil {
		totals = []model.DailyTotals{}
	}

	writeSuccess(w, envelope{"data": dto.NutritionLogsResponse{Logs: logs, DailyTotals: totals}})
}

func (h *NutritionHandler) handleInsights(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.generateInsight(w, r)
	case http.MethodGet:
		h.getInsights(w, r)
	default:
		writeError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

func (h *NutritionHandler) generateInsight(w http.ResponseWriter, r *http.Request) {
	var req dto.InsightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON payload")
		return
	}
	if err := h.validate.Struct(&req); err != nil {
		writeError(w, http.StatusBadRequest, "User ID, current nutrition, and target nutrition are required")
		return
	}

	insight, err := h.insightService.Generate(r.Context(), req.UserID, *req.CurrentNutrition, *req.TargetNutrition, req.Timeframe)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to generate insight")
		return
	}

	writeSuccess(w, envelope{"data": dto.InsightResponse{Insight: insight.InsightText, ID: insight.ID}})
}

func (h *NutritionHandler) getInsights(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		writeError(w, http.StatusBadRequest, "User ID is required")
		return
	}

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			limit = parsed
		}
	}

	insights, err := h.insightService.List(r.Context(), userID, limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to fetch insights")
		return
	}
	if insights == nil {
		insights = []model.NutritionInsight{}
	}

	writeSuccess(w, envelope{"data": insights})
}
