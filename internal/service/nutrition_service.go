package service

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"nutrigenius/internal/model"
	"nutrigenius/internal/nutrition"
	"nutrigenius/internal/repository"

	"github.com/rs/zerolog"
)

// ErrInvalidMealType is returned when a log names a meal slot outside
// nutrition.MealTypes.
var ErrInvalidMealType = errors.New("invalid meal type")

// NutritionService handles daily-log upserts and read-side aggregation.
type NutritionService interface {
	UpsertLog(ctx context.Context, log *model.DailyLog) (*model.DailyLog, error)
	// GetLogs applies filter precedence: exact date, else [startDate,
	// endDate], else the trailing seven days. Daily totals are recomputed on
	// every read.
	GetLogs(ctx context.Context, userID, date, startDate, endDate string) ([]model.DailyLog, []model.DailyTotals, error)
}

type nutritionService struct {
	logRepo repository.DailyLogRepository
	logger  zerolog.Logger
}

func NewNutritionService(logRepo repository.DailyLogRepository, logger zerolog.Logger) NutritionService {
	return &nutritionService{
		logRepo: logRepo,
		logger:  logger.With().Str("service", "NutritionService").Logger(),
	}
}

func (s *nutritionService) UpsertLog(ctx context.Context, log *model.DailyLog) (*model.DailyLog, error) {
	if !nutrition.ValidMealType(log.MealType) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidMealType, log.MealType)
	}

	saved, err := s.logRepo.Upsert(ctx, log)
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", log.UserID).Str("date", log.Date).Msg("Failed to save nutrition log")
		return nil, err
	}
	return saved, nil
}

func (s *nutritionService) GetLogs(ctx context.Context, userID, date, startDate, endDate string) ([]model.DailyLog, []model.DailyTotals, error) {
	var logs []model.DailyLog
	var err error

	switch {
	case date != "":
		logs, err = s.logRepo.ListByDate(ctx, userID, date)
	case startDate != "" && endDate != "":
		logs, err = s.logRepo.ListByRange(ctx, userID, startDate, endDate)
	default:
		logs, err = s.logRepo.ListRecent(ctx, userID)
	}
	if err != nil {
		s.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to fetch nutrition logs")
		return nil, nil, err
	}

	return logs, aggregateDailyTotals(logs), nil
}

// aggregateDailyTotals folds logs into per-date sums, newest date first.
func aggregateDailyTotals(logs []model.DailyLog) []model.DailyTotals {
	byDate := make(map[string]*model.DailyTotals)
	for _, log := range logs {
		totals, ok := byDate[log.Date]
		if !ok {
			totals = &model.DailyTotals{Date: log.Date}
			byDate[log.Date] = totals
		}
		totals.Calories += log.TotalNutrition.Calories
		totals.Protein += log.TotalNutrition.Protein
		totals.Carbs += log.TotalNutrition.Carbs
		totals.Fat += log.TotalNutrition.Fat
		totals.Fiber += log.TotalNutrition.Fiber
		totals.Meals = append(totals.Meals, log)
	}

	result := make([]model.DailyTotals, 0, len(byDate))
	for _, totals := range byDate {
		result = append(result, *totals)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Date > result[j].Date
	})
	return result
}
