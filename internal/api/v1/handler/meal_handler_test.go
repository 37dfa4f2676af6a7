package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"nutrigenius/internal/model"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type fakeMealService struct {
	suggestions []model.MealSuggestion
	lastTypes   []string
	lastUserID  string
	err         error
}

func (f *fakeMealService) GenerateSuggestions(ctx context.Context, prefs model.UserPreferences, mealTypes []string, userID string) []model.MealSuggestion {
	f.lastTypes = mealTypes
	f.lastUserID = userID
	return f.suggestions
}

func (f *fakeMealService) GetSuggestions(ctx context.Context, userID, date string) ([]model.MealSuggestion, error) {
	return f.suggestions, f.err
}

type fakeFeedbackService struct {
	saved *model.MealFeedback
	err   error
}

func (f *fakeFeedbackService) Upsert(ctx context.Context, feedback *model.MealFeedback) (*model.MealFeedback, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.saved = feedback
	return feedback, nil
}

func (f *fakeFeedbackService) List(ctx context.Context, userID, mealID string) ([]model.MealFeedback, error) {
	return nil, f.err
}

func newMealMux(m *fakeMealService, fb *fakeFeedbackService) *http.ServeMux {
	h := NewMealHandler(m, fb, validator.New(validator.WithRequiredStructEnabled()), zerolog.Nop())
	mux := http.NewServeMux()
	h.RegisterRoutes(mux)
	return mux
}

func TestMealGenerate(t *testing.T) {
	svc := &fakeMealService{suggestions: []model.MealSuggestion{
		{ID: "m1", Name: "Oats", MealType: "breakfast"},
	}}
	mux := newMealMux(svc, &fakeFeedbackService{})

	body := `{"userPreferences": {"healthGoals": ["Weight Loss"]}, "userId": "user-1", "mealTypes": ["breakfast"]}`
	req := httptest.NewRequest(http.MethodPost, "/meals/generate", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if svc.lastUserID != "user-1" || len(svc.lastTypes) != 1 || svc.lastTypes[0] != "breakfast" {
		t.Fatalf("unexpected service call: types=%v user=%q", svc.lastTypes, svc.lastUserID)
	}
	var resp struct {
		Success bool                   `json:"success"`
		Data    []model.MealSuggestion `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.Success || len(resp.Data) != 1 || resp.Data[0].Name != "Oats" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestMealGenerateMissingPreferences(t *testing.T) {
	mux := newMealMux(&fakeMealService{}, &fakeFeedbackService{})

	req := httptest.NewRequest(http.MethodPost, "/meals/generate", strings.NewReader(`{"userId": "user-1"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestMealListMissingUserID(t *testing.T) {
	mux := newMealMux(&fakeMealService{}, &fakeFeedbackService{})

	req := httptest.NewRequest(http.MethodGet, "/meals/generate", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestMealFeedbackSave(t *testing.T) {
	fb := &fakeFeedbackService{}
	mux := newMealMux(&fakeMealService{}, fb)

	body := `{"userId": "user-1", "mealId": "m1", "feedback": "like", "rating": 5}`
	req := httptest.NewRequest(http.MethodPost, "/meals/feedback", strings.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if fb.saved == nil || fb.saved.FeedbackType != "like" || fb.saved.Rating == nil || *fb.saved.Rating != 5 {
		t.Fatalf("unexpected saved feedback: %+v", fb.saved)
	}
}

func TestMealFeedbackMissingFields(t *testing.T) {
	mux := newMealMux(&fakeMealService{}, &fakeFeedbackService{})

	req := httptest.NewRequest(http.MethodPost, "/meals/feedback", strings.NewReader(`{"userId": "user-1"}`))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
