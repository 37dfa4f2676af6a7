package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"nutrigenius/internal/model"

	"github.com/rs/zerolog"
)

type fakeChatClient struct {
	response string
	err      error
	calls    int
}

func (f *fakeChatClient) Complete(ctx context.Context, systemPrompt, userPrompt string, maxTokens int) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

type fakeMealRepo struct {
	savedUserID string
	savedDate   string
	saved       []model.MealSuggestion
	saveErr     error
	listed      []model.MealSuggestion
	listErr     error
}

func (f *fakeMealRepo) SaveAll(ctx context.Context, userID, date string, suggestions []model.MealSuggestion) error {
	f.savedUserID = userID
	f.savedDate = date
	f.saved = append(f.saved, suggestions...)
	return f.saveErr
}

func (f *fakeMealRepo) ListByDate(ctx context.Context, userID, date string) ([]model.MealSuggestion, error) {
	return f.listed, f.listErr
}

const validMealJSON = `{
  "name": "Tofu Stir Fry",
  "description": "Quick tofu and vegetable stir fry",
  "ingredients": ["tofu", "broccoli", "soy sauce"],
  "instructions": ["Press tofu", "Stir fry everything"],
  "nutritionalInfo": {"calories": 350, "protein": 20, "carbs": 30, "fat": 14},
  "prepTime": 20,
  "difficulty": "easy",
  "dietaryTags": ["vegan"]
}`

func TestGenerateSuggestionsDefaultSlots(t *testing.T) {
	ai := &fakeChatClient{response: validMealJSON}
	repo := &fakeMealRepo{}
	svc := NewMealService(ai, repo, zerolog.Nop())

	got := svc.GenerateSuggestions(context.Background(), model.UserPreferences{}, nil, "user-1")
	if len(got) != 3 {
		t.Fatalf("expected 3 suggestions for default slots, got %d", len(got))
	}
	wantTypes := []string{"breakfast", "lunch", "dinner"}
	for i, s := range got {
		if s.MealType != wantTypes[i] {
			t.Fatalf("suggestion %d: expected meal type %q, got %q", i, wantTypes[i], s.MealType)
		}
		if s.Name != "Tofu Stir Fry" {
			t.Fatalf("suggestion %d: unexpected name %q", i, s.Name)
		}
	}
	if repo.savedUserID != "user-1" || len(repo.saved) != 3 {
		t.Fatalf("expected 3 suggestions persisted for user-1, got %d for %q", len(repo.saved), repo.savedUserID)
	}
}

func TestGenerateSuggestionsFallbackOnAIError(t *testing.T) {
	ai := &fakeChatClient{err: errors.New("upstream down")}
	svc := NewMealService(ai, &fakeMealRepo{}, zerolog.Nop())

	got := svc.GenerateSuggestions(context.Background(), model.UserPreferences{}, []string{"breakfast"}, "")
	if len(got) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(got))
	}
	if got[0].Name != "Overnight Oats with Berries" {
		t.Fatalf("expected breakfast fallback, got %q", got[0].Name)
	}
	if !strings.HasPrefix(got[0].ID, "fallback-breakfast-") {
		t.Fatalf("expected fallback ID prefix, got %q", got[0].ID)
	}
}

func TestGenerateSuggestionsFallbackOnBadJSON(t *testing.T) {
	ai := &fakeChatClient{response: "sorry, I cannot help with that"}
	svc := NewMealService(ai, &fakeMealRepo{}, zerolog.Nop())

	got := svc.GenerateSuggestions(context.Background(), model.UserPreferences{}, []string{"snack"}, "")
	if len(got) != 1 {
		t.Fatalf("expected 1 suggestion, got %d", len(got))
	}
	if got[0].Name != "Greek Yogurt with Nuts" {
		t.Fatalf("expected snack fallback, got %q", got[0].Name)
	}
}

func TestGenerateSuggestionsPersistFailureStillReturns(t *testing.T) {
	ai := &fakeChatClient{response: validMealJSON}
	repo := &fakeMealRepo{saveErr: errors.New("db down")}
	svc := NewMealService(ai, repo, zerolog.Nop())

	got := svc.GenerateSuggestions(context.Background(), model.UserPreferences{}, []string{"lunch"}, "user-1")
	if len(got) != 1 {
		t.Fatalf("persistence failure must not drop suggestions, got %d", len(got))
	}
}

func TestGenerateSuggestionsSkipsPersistenceWithoutUserID(t *testing.T) {
	ai := &fakeChatClient{response: validMealJSON}
	repo := &fakeMealRepo{}
	svc := NewMealService(ai, repo, zerolog.Nop())

	svc.GenerateSuggestions(context.Background(), model.UserPreferences{}, []string{"lunch"}, "")
	if repo.savedUserID != "" || len(repo.saved) != 0 {
		t.Fatal("expected no persistence without a user ID")
	}
}

func TestParseSuggestionDefaults(t *testing.T) {
	got, err := parseSuggestion("```json\n{\"name\": \"Plain Toast\"}\n```", "breakfast")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.PrepTime != 30 {
		t.Fatalf("expected default prep time 30, got %d", got.PrepTime)
	}
	if got.Difficulty != "medium" {
		t.Fatalf("expected default difficulty medium, got %q", got.Difficulty)
	}
	if got.Ingredients == nil || got.Instructions == nil || got.DietaryTags == nil {
		t.Fatal("expected empty slices instead of nil")
	}
}

func TestParseSuggestionRequiresName(t *testing.T) {
	if _, err := parseSuggestion(`{"description": "no name"}`, "lunch"); err == nil {
		t.Fatal("expected error for suggestion without name")
	}
}

func TestCleanModelResponse(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"Here you go:\n{\"a\":1}\nEnjoy!", `{"a":1}`},
		{`{"a":1}`, `{"a":1}`},
	}
	for _, c := range cases {
		if got := cleanModelResponse(c.in); got != c.want {
			t.Fatalf("cleanModelResponse(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestGetSuggestionsPropagatesError(t *testing.T) {
	repo := &fakeMealRepo{listErr: errors.New("db down")}
	svc := NewMealService(&fakeChatClient{}, repo, zerolog.Nop())

	if _, err := svc.GetSuggestions(context.Background(), "user-1", "2026-08-31"); err == nil {
		t.Fatal("expected error from repository")
	}
}
