package dto

import "nutrigenius/internal/model"

// MealGenerateRequest is the POST /meals/generate body. mealTypes defaults to
// breakfast, lunch, and dinner.
type MealGenerateRequest struct {
	UserPreferences *model.UserPreferences `json:"userPreferences" validate:"required"`
	UserID          string                 `json:"userId"`
	MealTypes       []string               `json:"mealTypes"`
}

// MealFeedbackRequest is the POST /meals/feedback body. Feedback is one of
// like, dislike, made, skipped.
type MealFeedbackRequest struct {
	UserID   string  `json:"userId" validate:"required"`
	MealID   string  `json:"mealId" validate:"required"`
	Feedback string  `json:"feedback" validate:"required"`
	Rating   *int    `json:"rating"`
	Notes    *string `json:"notes"`
}
