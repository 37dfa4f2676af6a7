package service

import (
	"context"
	"errors"

	"nutrigenius/internal/model"
	"nutrigenius/internal/nutrition"
	"nutrigenius/internal/repository"

	"github.com/rs/zerolog"
)

var ErrUserNotFound = errors.New("user not found")

// UserService handles wallet-address-keyed identity.
type UserService interface {
	// Upsert creates or merges the user for a wallet address. The bool
	// reports whether the user was newly created.
	Upsert(ctx context.Context, address string, p *model.ProfileUpdate) (*model.User, bool, error)
	// GetByAddress returns nil without error when no user matches; a missing
	// row is not a failure.
	GetByAddress(ctx context.Context, address string) (*model.User, error)
}

type userService struct {
	userRepo repository.UserRepository
	logger   zerolog.Logger
}

func NewUserService(userRepo repository.UserRepository, logger zerolog.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger.With().Str("service", "UserService").Logger(),
	}
}

func (s *userService) Upsert(ctx context.Context, address string, p *model.ProfileUpdate) (*model.User, bool, error) {
	if p != nil && len(p.HealthGoals) > 0 {
		goal := nutrition.PrimaryGoal(p.HealthGoals)
		if p.CalorieTarget == nil && p.BodyStats != nil {
			// Estimate a calorie target from body stats when the client did
			// not supply one.
			stats := p.BodyStats
			calories := nutrition.CalorieNeeds(stats.Age, stats.Gender, stats.Weight, stats.Height,
				stats.ActivityLevel, goal)
			p.CalorieTarget = &calories
		}
		if p.MacroTargets == nil && p.CalorieTarget != nil {
			// Derive gram targets from the calorie target and primary goal
			// when the client did not supply them.
			protein, carbs, fat := nutrition.MacroSplit(*p.CalorieTarget, goal)
			p.MacroTargets = &model.MacroTargets{Protein: protein, Carbs: carbs, Fat: fat}
		}
	}

	user, isNew, err := s.userRepo.UpsertByAddress(ctx, address, p)
	if err != nil {
		s.logger.Error().Err(err).Str("address", address).Msg("Failed to upsert user")
		return nil, false, err
	}
	return user, isNew, nil
}

func (s *userService) GetByAddress(ctx context.Context, address string) (*model.User, error) {
	user, err := s.userRepo.GetByAddress(ctx, address)
	if err != nil {
		s.logger.Error().Err(err).Str("address", address).Msg("Failed to fetch user by address")
		return nil, err
	}
	return user, nil
}
