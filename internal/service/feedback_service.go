package service

import (
	"context"

	"nutrigenius/internal/model"
	"nutrigenius/internal/repository"

	"github.com/rs/zerolog"
)

// FeedbackService handles meal feedback upserts and retrieval.
type FeedbackService interface {
	Upsert(ctx context.Context, f *model.MealFeedback) (*model.MealFeedback, error)
	List(ctx context.Context, userID, mealID string) ([]model.MealFeedback, error)
}

type feedbackService struct {
	feedbackRepo repository.MealFeedbackRepository
	logger       zerolog.Logger
}

func NewFeedbackService(feedbackRepo repository.MealFeedbackRepository, logger zerolog.Logger) FeedbackService {
	return &feedbackService{
		feedbackRepo: feedbackRepo,
		logger:       logger.With().Str("service", "FeedbackService").Logger(),
	}
}

func (s *feedbackService) Upsert(ctx context.Context, f *model.MealFeedback) (*model.MealFeedback, error) {
	saved, err := s.feedbackRepo.Upsert(ctx, f)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", f.UserID).Str("meal_id", f.MealID).Msg("Failed to save meal feedback")
		return nil, err
	}
	return saved, nil
}

func (s *feedbackService) List(ctx context.Context, userID, mealID string) ([]model.MealFeedback, error) {
	feedback, err := s.feedbackRepo.List(ctx, userID, mealID)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to fetch meal feedback")
		return nil, err
	}
	return feedback, nil
}
