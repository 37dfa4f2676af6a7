package nutrition

// HealthGoals lists the supported onboarding health goals.
var HealthGoals = []string{
	"Weight Loss",
	"Weight Gain",
	"Muscle Building",
	"Maintenance",
	"Athletic Performance",
	"Heart Health",
	"Diabetes Management",
	"General Wellness",
}

// DietaryRestrictions lists the supported dietary restriction options.
var DietaryRestrictions = []string{
	"Vegetarian",
	"Vegan",
	"Gluten-Free",
	"Dairy-Free",
	"Keto",
	"Paleo",
	"Mediterranean",
	"Low-Carb",
	"Low-Fat",
	"High-Protein",
}

// CommonAllergies lists the supported allergy options.
var CommonAllergies = []string{
	"Nuts",
	"Shellfish",
	"Eggs",
	"Dairy",
	"Soy",
	"Wheat",
	"Fish",
	"Sesame",
}

// CuisineTypes lists the supported cuisine preference options.
var CuisineTypes = []string{
	"American",
	"Italian",
	"Mexican",
	"Asian",
	"Mediterranean",
	"Indian",
	"Middle Eastern",
	"French",
	"Thai",
	"Japanese",
}

// MealTypes are the meal slots a suggestion or log can belong to.
var MealTypes = []string{"breakfast", "lunch", "dinner", "snack"}

// ValidMealType reports whether t is one of the supported meal slots.
func ValidMealType(t string) bool {
	for _, mt := range MealTypes {
		if t == mt {
			return true
		}
	}
	return false
}

// PrimaryGoal returns the first recognized health goal, falling back to the
// first entry when none match the known set.
func PrimaryGoal(goals []string) string {
	for _, g := range goals {
		for _, known := range HealthGoals {
			if g == known {
				return g
			}
		}
	}
	if len(goals) > 0 {
		return goals[0]
	}
	return "General Wellness"
}

type macroRatio struct {
	protein float64
	carbs   float64
	fat     float64
}

// macroRatios maps each health goal to its macro calorie split.
var macroRatios = map[string]macroRatio{
	"Weight Loss":          {protein: 0.30, carbs: 0.35, fat: 0.35},
	"Weight Gain":          {protein: 0.25, carbs: 0.45, fat: 0.30},
	"Muscle Building":      {protein: 0.35, carbs: 0.40, fat: 0.25},
	"Maintenance":          {protein: 0.25, carbs: 0.45, fat: 0.30},
	"Athletic Performance": {protein: 0.20, carbs: 0.55, fat: 0.25},
	"Heart Health":         {protein: 0.20, carbs: 0.50, fat: 0.30},
	"Diabetes Management":  {protein: 0.25, carbs: 0.40, fat: 0.35},
	"General Wellness":     {protein: 0.20, carbs: 0.50, fat: 0.30},
}
