package model

import "time"

// MacroTargets is a per-day gram target for each macronutrient.
type MacroTargets struct {
	Protein int `json:"protein"`
	Carbs   int `json:"carbs"`
	Fat     int `json:"fat"`
}

// User represents a user in the system, keyed by their wallet address.
type User struct {
	ID                  string        `db:"id" json:"id"`
	OnchainAddress      string        `db:"onchain_address" json:"onchain_address"`
	Email               *string       `db:"email" json:"email,omitempty"`
	HealthGoals         []string      `db:"health_goals" json:"health_goals"`
	DietaryRestrictions []string      `db:"dietary_restrictions" json:"dietary_restrictions"`
	Allergies           []string      `db:"allergies" json:"allergies"`
	CuisinePreferences  []string      `db:"cuisine_preferences" json:"cuisine_preferences"`
	CookingSkill        *string       `db:"cooking_skill" json:"cooking_skill,omitempty"`
	TimeAvailable       *int          `db:"time_available" json:"time_available,omitempty"`
	CalorieTarget       *int          `db:"calorie_target" json:"calorie_target,omitempty"`
	MacroTargets        *MacroTargets `db:"macro_targets" json:"macro_targets,omitempty"`

	StripeCustomerID             *string    `db:"stripe_customer_id" json:"stripe_customer_id,omitempty"`
	SubscriptionStatus           *string    `db:"subscription_status" json:"subscription_status,omitempty"`
	SubscriptionID               *string    `db:"subscription_id" json:"subscription_id,omitempty"`
	SubscriptionCurrentPeriodEnd *time.Time `db:"subscription_current_period_end" json:"subscription_current_period_end,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
	LastLogin time.Time `db:"last_login" json:"last_login"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// BodyStats are the physical stats used to estimate calorie needs. They are
// consumed at upsert time and not stored.
type BodyStats struct {
	Age           int     `json:"age"`
	Gender        string  `json:"gender"`
	Weight        float64 `json:"weight"` // kg
	Height        float64 `json:"height"` // cm
	ActivityLevel string  `json:"activityLevel"`
}

// ProfileUpdate carries the optional profile fields supplied on auth upsert.
// Nil fields leave the stored value untouched.
type ProfileUpdate struct {
	Email               *string
	HealthGoals         []string
	DietaryRestrictions []string
	Allergies           []string
	CuisinePreferences  []string
	CookingSkill        *string
	TimeAvailable       *int
	CalorieTarget       *int
	MacroTargets        *MacroTargets
	BodyStats           *BodyStats
}
