package dto

import "nutrigenius/internal/model"

// AuthUpsertRequest is the POST /auth body. userData is an optional partial
// profile merged into the user record.
type AuthUpsertRequest struct {
	WalletAddress string       `json:"walletAddress" validate:"required"`
	UserData      *UserDataDTO `json:"userData"`
}

// UserDataDTO carries optional profile fields; absent fields leave stored
// values untouched.
type UserDataDTO struct {
	Email               *string             `json:"email"`
	HealthGoals         []string            `json:"healthGoals"`
	DietaryRestrictions []string            `json:"dietaryRestrictions"`
	Allergies           []string            `json:"allergies"`
	CuisinePreferences  []string            `json:"cuisinePreferences"`
	CookingSkill        *string             `json:"cookingSkill"`
	TimeAvailable       *int                `json:"timeAvailable"`
	CalorieTarget       *int                `json:"calorieTarget"`
	MacroTargets        *model.MacroTargets `json:"macroTargets"`
	BodyStats           *model.BodyStats    `json:"bodyStats"`
}

// ToProfileUpdate maps the DTO onto the domain profile-update type.
func (d *UserDataDTO) ToProfileUpdate() *model.ProfileUpdate {
	if d == nil {
		return nil
	}
	return &model.ProfileUpdate{
		Email:               d.Email,
		HealthGoals:         d.HealthGoals,
		DietaryRestrictions: d.DietaryRestrictions,
		Allergies:           d.Allergies,
		CuisinePreferences:  d.CuisinePreferences,
		CookingSkill:        d.CookingSkill,
		TimeAvailable:       d.TimeAvailable,
		CalorieTarget:       d.CalorieTarget,
		MacroTargets:        d.MacroTargets,
		BodyStats:           d.BodyStats,
	}
}
