package dto

import "nutrigenius/internal/model"

// NutritionLogRequest is the POST /nutrition/log body, upserted by
// (userId, date, mealType).
type NutritionLogRequest struct {
	UserID         string             `json:"userId" validate:"required"`
	Date           string             `json:"date" validate:"required"`
	MealType       string             `json:"mealType" validate:"required"`
	FoodItems      []model.FoodItem   `json:"foodItems" validate:"required"`
	TotalNutrition model.NutrientInfo `json:"totalNutrition"`
}

// NutritionLogsResponse carries the filtered logs plus the read-side daily
// aggregates.
type NutritionLogsResponse struct {
	Logs        []model.DailyLog    `json:"logs"`
	DailyTotals []model.DailyTotals `json:"dailyTotals"`
}

// InsightRequest is the POST /nutrition/insights body.
type InsightRequest struct {
	UserID           string              `json:"userId" validate:"required"`
	CurrentNutrition *model.NutrientInfo `json:"currentNutrition" validate:"required"`
	TargetNutrition  *model.NutrientInfo `json:"targetNutrition" validate:"required"`
	Timeframe        string              `json:"timeframe"`
}

// InsightResponse returns the generated text and its stored id.
type InsightResponse struct {
	Insight string `json:"insight"`
	ID      string `json:"id"`
}
