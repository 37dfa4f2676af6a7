package nutrition

import "strings"

var restrictionConflicts = map[string]struct {
	tags      []string
	violation string
}{
	"vegetarian":  {tags: []string{"meat", "poultry", "fish", "seafood"}, violation: "Contains meat/fish"},
	"vegan":       {tags: []string{"meat", "poultry", "fish", "seafood", "dairy", "eggs"}, violation: "Contains animal products"},
	"gluten-free": {tags: []string{"wheat", "gluten", "barley", "rye"}, violation: "Contains gluten"},
	"dairy-free":  {tags: []string{"dairy", "milk", "cheese", "yogurt"}, violation: "Contains dairy"},
	// Tag-based approximation; a real keto check needs carb content.
	"keto": {tags: []string{"high-carb", "sugar", "grains"}, violation: "High in carbs"},
}

// CheckDietaryCompatibility reports whether a food's dietary tags conflict
// with any of the user's restrictions, and which violations were found.
func CheckDietaryCompatibility(foodTags, restrictions []string) (bool, []string) {
	lowered := make(map[string]bool, len(foodTags))
	for _, tag := range foodTags {
		lowered[strings.ToLower(tag)] = true
	}

	var violations []string
	for _, restriction := range restrictions {
		conflict, ok := restrictionConflicts[strings.ToLower(restriction)]
		if !ok {
			continue
		}
		for _, tag := range conflict.tags {
			if lowered[tag] {
				violations = append(violations, conflict.violation)
				break
			}
		}
	}
	return len(violations) == 0, violations
}
