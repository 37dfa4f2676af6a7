package model

import "time"

// NutrientInfo is a nutrition breakdown for a food item, a meal, or a day.
type NutrientInfo struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber,omitempty"`
	Sugar    float64 `json:"sugar,omitempty"`
	Sodium   float64 `json:"sodium,omitempty"`
}

// FoodItem is a single food entry within a logged meal.
type FoodItem struct {
	FoodID          string       `json:"foodId,omitempty"`
	Name            string       `json:"name"`
	NutritionalInfo NutrientInfo `json:"nutritionalInfo"`
	DietaryTags     []string     `json:"dietaryTags,omitempty"`
	Category        string       `json:"category,omitempty"`
	Description     string       `json:"description,omitempty"`
	Quantity        float64      `json:"quantity,omitempty"`
	Unit            string       `json:"unit,omitempty"`
}

// DailyLog is one logged meal, unique per (user, date, meal type).
type DailyLog struct {
	ID             string       `db:"id" json:"id"`
	UserID         string       `db:"user_id" json:"user_id"`
	Date           string       `db:"date" json:"date"`
	MealType       string       `db:"meal_type" json:"meal_type"`
	FoodItems      []FoodItem   `db:"food_items" json:"food_items"`
	TotalNutrition NutrientInfo `db:"total_nutrition" json:"total_nutrition"`
	LoggedAt       time.Time    `db:"logged_at" json:"logged_at"`
	UpdatedAt      time.Time    `db:"updated_at" json:"updated_at"`
}

// DailyTotals is the read-side aggregate of all logs for one date. It is
// recomputed on every read, never stored.
type DailyTotals struct {
	Date     string     `json:"date"`
	Calories float64    `json:"calories"`
	Protein  float64    `json:"protein"`
	Carbs    float64    `json:"carbs"`
	Fat      float64    `json:"fat"`
	Fiber    float64    `json:"fiber"`
	Meals    []DailyLog `json:"meals"`
}

// NutritionInsight is an AI-generated comparison of current vs target intake.
type NutritionInsight struct {
	ID               string       `db:"id" json:"id"`
	UserID           string       `db:"user_id" json:"user_id"`
	InsightText      string       `db:"insight_text" json:"insight_text"`
	CurrentNutrition NutrientInfo `db:"current_nutrition" json:"current_nutrition"`
	TargetNutrition  NutrientInfo `db:"target_nutrition" json:"target_nutrition"`
	Timeframe        string       `db:"timeframe" json:"timeframe"`
	GeneratedAt      time.Time    `db:"generated_at" json:"generated_at"`
}
