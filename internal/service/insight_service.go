package service

import (
	"context"
	"encoding/json"
	"fmt"

	"nutrigenius/internal/model"
	"nutrigenius/internal/repository"

	"github.com/rs/zerolog"
)

const insightSystemPrompt = "You are a supportive nutritionist. Provide brief, actionable insights that motivate users."

// insightFallback is returned when generation fails; insights are best-effort
// and never load-bearing.
const insightFallback = "Keep tracking your nutrition to stay on track with your health goals!"

// InsightService generates and serves nutrition insights.
type InsightService interface {
	// Generate produces an insight comparing current vs target intake and
	// persists it. Generation failure degrades to a fixed encouragement
	// string; only the persistence write can fail.
	Generate(ctx context.Context, userID string, current, target model.NutrientInfo, timeframe string) (*model.NutritionInsight, error)
	List(ctx context.Context, userID string, limit int) ([]model.NutritionInsight, error)
}

type insightService struct {
	ai          ChatClient
	insightRepo repository.NutritionInsightRepository
	logger      zerolog.Logger
}

func NewInsightService(ai ChatClient, insightRepo repository.NutritionInsightRepository, logger zerolog.Logger) InsightService {
	return &insightService{
		ai:          ai,
		insightRepo: insightRepo,
		logger:      logger.With().Str("service", "InsightService").Logger(),
	}
}

func (s *insightService) Generate(ctx context.Context, userID string, current, target model.NutrientInfo, timeframe string) (*model.NutritionInsight, error) {
	if timeframe == "" {
		timeframe = "daily"
	}

	text, err := s.ai.Complete(ctx, insightSystemPrompt, buildInsightPrompt(current, target), 200)
	if err != nil || text == "" {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Insight generation failed, using fallback text")
		text = insightFallback
	}

	insight := &model.NutritionInsight{
		UserID:           userID,
		InsightText:      text,
		CurrentNutrition: current,
		TargetNutrition:  target,
		Timeframe:        timeframe,
	}
	saved, err := s.insightRepo.Create(ctx, insight)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to save nutrition insight")
		return nil, err
	}
	return saved, nil
}

func (s *insightService) List(ctx context.Context, userID string, limit int) ([]model.NutritionInsight, error) {
	insights, err := s.insightRepo.ListByUser(ctx, userID, limit)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to fetch nutrition insights")
		return nil, err
	}
	return insights, nil
}

func buildInsightPrompt(current, target model.NutrientInfo) string {
	currentJSON, _ := json.Marshal(current)
	targetJSON, _ := json.Marshal(target)
	return fmt.Sprintf(`Based on the following nutrition data, provide a brief insight and recommendation:

Current intake: %s
Target intake: %s

Provide a concise, encouraging insight about their progress and one specific recommendation for improvement.`,
		currentJSON, targetJSON)
}
