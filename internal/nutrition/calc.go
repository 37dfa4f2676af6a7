// Package nutrition holds the calorie and macro arithmetic shared by the
// profile and meal layers: BMR-based calorie targets, goal-keyed macro
// splits, and dietary-tag compatibility checks.
package nutrition

import "math"

// Activity multipliers for the Mifflin-St Jeor TDEE estimate.
var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// CalorieNeeds estimates daily calorie needs using the Mifflin-St Jeor
// equation, adjusted for the user's activity level and primary health goal.
// Weight is in kg, height in cm.
func CalorieNeeds(age int, gender string, weight, height float64, activityLevel, goal string) int {
	var bmr float64
	if gender == "male" {
		bmr = 10*weight + 6.25*height - 5*float64(age) + 5
	} else {
		bmr = 10*weight + 6.25*height - 5*float64(age) - 161
	}

	mult, ok := activityMultipliers[activityLevel]
	if !ok {
		mult = activityMultipliers["sedentary"]
	}
	tdee := bmr * mult

	switch goal {
	case "Weight Loss":
		return int(math.Round(tdee * 0.8)) // 20% deficit
	case "Weight Gain":
		return int(math.Round(tdee * 1.15)) // 15% surplus
	case "Muscle Building":
		return int(math.Round(tdee * 1.1)) // 10% surplus
	default:
		return int(math.Round(tdee))
	}
}

// MacroSplit converts a calorie target into gram targets per macronutrient
// using the ratio for the given goal. Protein and carbs are 4 cal/g, fat is
// 9 cal/g. Unknown goals fall back to the General Wellness split.
func MacroSplit(calories int, goal string) (protein, carbs, fat int) {
	ratio, ok := macroRatios[goal]
	if !ok {
		ratio = macroRatios["General Wellness"]
	}
	protein = int(math.Round(float64(calories) * ratio.protein / 4))
	carbs = int(math.Round(float64(calories) * ratio.carbs / 4))
	fat = int(math.Round(float64(calories) * ratio.fat / 9))
	return protein, carbs, fat
}
