package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"nutrigenius/internal/model"
	"nutrigenius/internal/nutrition"
	"nutrigenius/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const mealSystemPrompt = "You are a professional nutritionist and chef. Generate healthy, practical meal suggestions " +
	"that strictly adhere to the user's dietary restrictions and health goals. Always respond with valid JSON."

// MealService generates meal suggestions and serves persisted ones.
type MealService interface {
	// GenerateSuggestions produces exactly one suggestion per requested meal
	// type. Generation or parse failures degrade to static fallbacks, never
	// errors. If userID is set, suggestions are persisted for same-day
	// retrieval; persistence failure is logged but not surfaced.
	GenerateSuggestions(ctx context.Context, prefs model.UserPreferences, mealTypes []string, userID string) []model.MealSuggestion
	GetSuggestions(ctx context.Context, userID, date string) ([]model.MealSuggestion, error)
}

type mealService struct {
	ai       ChatClient
	mealRepo repository.MealSuggestionRepository
	logger   zerolog.Logger
}

func NewMealService(ai ChatClient, mealRepo repository.MealSuggestionRepository, logger zerolog.Logger) MealService {
	return &mealService{
		ai:       ai,
		mealRepo: mealRepo,
		logger:   logger.With().Str("service", "MealService").Logger(),
	}
}

func (s *mealService) GenerateSuggestions(ctx context.Context, prefs model.UserPreferences, mealTypes []string, userID string) []model.MealSuggestion {
	if len(mealTypes) == 0 {
		mealTypes = []string{"breakfast", "lunch", "dinner"}
	}

	suggestions := make([]model.MealSuggestion, 0, len(mealTypes))
	for _, mealType := range mealTypes {
		suggestion := s.generateOne(ctx, prefs, mealType)

		if ok, violations := nutrition.CheckDietaryCompatibility(suggestion.DietaryTags, prefs.DietaryRestrictions); !ok {
			s.logger.Warn().Str("meal", suggestion.Name).Strs("violations", violations).
				Msg("Generated meal conflicts with dietary restrictions")
		}
		suggestions = append(suggestions, suggestion)
	}

	if userID != "" && len(suggestions) > 0 {
		date := time.Now().Format("2006-01-02")
		if err := s.mealRepo.SaveAll(ctx, userID, date, suggestions); err != nil {
			// Persistence is best-effort; the caller still gets the suggestions.
			s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to save meal suggestions")
		}
	}
	return suggestions
}

func (s *mealService) generateOne(ctx context.Context, prefs model.UserPreferences, mealType string) model.MealSuggestion {
	prompt := buildMealPrompt(prefs, mealType)

	raw, err := s.ai.Complete(ctx, mealSystemPrompt, prompt, 1000)
	if err != nil {
		s.logger.Error().Err(err).Str("meal_type", mealType).Msg("Meal generation failed, using fallback")
		return fallbackSuggestion(mealType)
	}

	suggestion, err := parseSuggestion(raw, mealType)
	if err != nil {
		s.logger.Error().Err(err).Str("meal_type", mealType).Msg("Failed to parse AI response, using fallback")
		return fallbackSuggestion(mealType)
	}
	return suggestion
}

func (s *mealService) GetSuggestions(ctx context.Context, userID, date string) ([]model.MealSuggestion, error) {
	suggestions, err := s.mealRepo.ListByDate(ctx, userID, date)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Str("date", date).Msg("Failed to fetch meal suggestions")
		return nil, err
	}
	return suggestions, nil
}

func buildMealPrompt(prefs model.UserPreferences, mealType string) string {
	return fmt.Sprintf(`Generate a personalized %s meal suggestion for someone with the following preferences:

Health Goals: %s
Dietary Restrictions: %s
Allergies: %s
Cuisine Preferences: %s
Cooking Skill: %s
Time Available: %d minutes
Budget Level: %s

Please provide:
1. Meal name
2. Brief description
3. Ingredients list
4. Simple cooking instructions
5. Estimated nutritional information (calories, protein, carbs, fat)
6. Prep time
7. Difficulty level

Format the response as JSON with the following structure:
{
  "name": "Meal Name",
  "description": "Brief description",
  "ingredients": ["ingredient1", "ingredient2"],
  "instructions": ["step1", "step2"],
  "nutritionalInfo": {
    "calories": 400,
    "protein": 25,
    "carbs": 30,
    "fat": 15
  },
  "prepTime": 20,
  "difficulty": "easy",
  "dietaryTags": ["vegetarian", "gluten-free"]
}`,
		mealType,
		strings.Join(prefs.HealthGoals, ", "),
		strings.Join(prefs.DietaryRestrictions, ", "),
		strings.Join(prefs.Allergies, ", "),
		strings.Join(prefs.CuisinePreferences, ", "),
		prefs.CookingSkill,
		prefs.TimeAvailable,
		prefs.BudgetLevel,
	)
}

// parseSuggestion decodes the model's JSON answer into a suggestion, filling
// defaults for fields the model omitted.
func parseSuggestion(raw, mealType string) (model.MealSuggestion, error) {
	var parsed struct {
		Name            string              `json:"name"`
		Description     string              `json:"description"`
		Ingredients     []string            `json:"ingredients"`
		Instructions    []string            `json:"instructions"`
		NutritionalInfo *model.NutrientInfo `json:"nutritionalInfo"`
		DietaryTags     []string            `json:"dietaryTags"`
		PrepTime        int                 `json:"prepTime"`
		Difficulty      string              `json:"difficulty"`
	}
	if err := json.Unmarshal([]byte(cleanModelResponse(raw)), &parsed); err != nil {
		return model.MealSuggestion{}, fmt.Errorf("parse suggestion: %w", err)
	}
	if parsed.Name == "" {
		return model.MealSuggestion{}, fmt.Errorf("suggestion missing name")
	}

	suggestion := model.MealSuggestion{
		ID:           fmt.Sprintf("%s-%s", mealType, uuid.NewString()),
		Name:         parsed.Name,
		Description:  parsed.Description,
		Ingredients:  parsed.Ingredients,
		Instructions: parsed.Instructions,
		DietaryTags:  parsed.DietaryTags,
		MealType:     mealType,
		PrepTime:     parsed.PrepTime,
		Difficulty:   parsed.Difficulty,
	}
	if parsed.Ingredients == nil {
		suggestion.Ingredients = []string{}
	}
	if parsed.Instructions == nil {
		suggestion.Instructions = []string{}
	}
	if parsed.DietaryTags == nil {
		suggestion.DietaryTags = []string{}
	}
	if parsed.NutritionalInfo != nil {
		suggestion.NutritionalInfo = *parsed.NutritionalInfo
	}
	if suggestion.PrepTime == 0 {
		suggestion.PrepTime = 30
	}
	if suggestion.Difficulty == "" {
		suggestion.Difficulty = "medium"
	}
	return suggestion, nil
}

// cleanModelResponse strips markdown code fences and clamps the text to the
// outermost JSON object, since models wrap JSON answers inconsistently.
func cleanModelResponse(response string) string {
	response = strings.ReplaceAll(response, "```json", "")
	response = strings.ReplaceAll(response, "```", "")
	response = strings.TrimSpace(response)

	start := strings.Index(response, "{")
	end := strings.LastIndex(response, "}")
	if start >= 0 && end > start {
		response = response[start : end+1]
	}
	return response
}

// fallbackSuggestion returns the static substitute meal for a slot, so the
// caller always receives one suggestion per requested type.
func fallbackSuggestion(mealType string) model.MealSuggestion {
	base := model.MealSuggestion{
		ID:          fmt.Sprintf("fallback-%s-%s", mealType, uuid.NewString()),
		MealType:    mealType,
		DietaryTags: []string{},
	}

	switch mealType {
	case "breakfast":
		base.Name = "Overnight Oats with Berries"
		base.Description = "Creamy overnight oats topped with fresh berries and nuts"
		base.Ingredients = []string{"1/2 cup rolled oats", "1/2 cup milk", "1 tbsp chia seeds", "1/2 cup mixed berries", "1 tbsp honey"}
		base.Instructions = []string{"Mix oats, milk, and chia seeds", "Refrigerate overnight", "Top with berries and honey"}
		base.NutritionalInfo = model.NutrientInfo{Calories: 320, Protein: 12, Carbs: 45, Fat: 8}
		base.PrepTime = 5
		base.Difficulty = "easy"
	case "lunch":
		base.Name = "Mediterranean Bowl"
		base.Description = "Fresh Mediterranean-inspired bowl with quinoa and vegetables"
		base.Ingredients = []string{"1 cup cooked quinoa", "1/2 cup chickpeas", "1/4 cup feta cheese", "Mixed greens", "Olive oil"}
		base.Instructions = []string{"Cook quinoa", "Combine all ingredients", "Drizzle with olive oil"}
		base.NutritionalInfo = model.NutrientInfo{Calories: 420, Protein: 18, Carbs: 52, Fat: 14}
		base.PrepTime = 15
		base.Difficulty = "easy"
	case "dinner":
		base.Name = "Grilled Chicken with Vegetables"
		base.Description = "Lean grilled chicken breast with roasted seasonal vegetables"
		base.Ingredients = []string{"6oz chicken breast", "2 cups mixed vegetables", "1 tbsp olive oil", "Herbs and spices"}
		base.Instructions = []string{"Season and grill chicken", "Roast vegetables with olive oil", "Serve together"}
		base.NutritionalInfo = model.NutrientInfo{Calories: 380, Protein: 35, Carbs: 20, Fat: 12}
		base.PrepTime = 25
		base.Difficulty = "medium"
	default: // snack
		base.Name = "Greek Yogurt with Nuts"
		base.Description = "Protein-rich Greek yogurt topped with mixed nuts"
		base.Ingredients = []string{"1 cup Greek yogurt", "1 oz mixed nuts", "1 tsp honey"}
		base.Instructions = []string{"Top yogurt with nuts", "Drizzle with honey"}
		base.NutritionalInfo = model.NutrientInfo{Calories: 220, Protein: 15, Carbs: 12, Fat: 12}
		base.PrepTime = 2
		base.Difficulty = "easy"
	}
	return base
}
