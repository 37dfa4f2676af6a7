package model

import "time"

// UserPreferences is the preference profile embedded in generation prompts.
type UserPreferences struct {
	HealthGoals         []string `json:"healthGoals"`
	DietaryRestrictions []string `json:"dietaryRestrictions"`
	Allergies           []string `json:"allergies"`
	CuisinePreferences  []string `json:"cuisinePreferences"`
	CookingSkill        string   `json:"cookingSkill"`
	TimeAvailable       int      `json:"timeAvailable"`
	BudgetLevel         string   `json:"budgetLevel"`
}

// MealSuggestion is a generated meal. Suggestions are append-only per day and
// never updated after generation.
type MealSuggestion struct {
	ID              string       `json:"id"`
	Name            string       `json:"name"`
	Description     string       `json:"description"`
	Ingredients     []string     `json:"ingredients"`
	Instructions    []string     `json:"instructions"`
	NutritionalInfo NutrientInfo `json:"nutritionalInfo"`
	DietaryTags     []string     `json:"dietaryTags"`
	MealType        string       `json:"mealType"`
	PrepTime        int          `json:"prepTime"`
	Difficulty      string       `json:"difficulty"`
}

// MealFeedback is a user's reaction to a suggested meal, unique per
// (user, meal).
type MealFeedback struct {
	ID           string    `db:"id" json:"id"`
	UserID       string    `db:"user_id" json:"user_id"`
	MealID       string    `db:"meal_id" json:"meal_id"`
	FeedbackType string    `db:"feedback_type" json:"feedback_type"`
	Rating       *int      `db:"rating" json:"rating,omitempty"`
	Notes        *string   `db:"notes" json:"notes,omitempty"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// PaymentLog is an append-only record of a Stripe invoice outcome, written
// only from webhook handling.
type PaymentLog struct {
	ID              string    `db:"id" json:"id"`
	UserID          string    `db:"user_id" json:"user_id"`
	StripeInvoiceID string    `db:"stripe_invoice_id" json:"stripe_invoice_id"`
	Amount          int64     `db:"amount" json:"amount"`
	Currency        string    `db:"currency" json:"currency"`
	Status          string    `db:"status" json:"status"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
