package repository

import (
	"context"
	"database/sql"
	"fmt"

	"nutrigenius/internal/model"
)

// MealFeedbackRepository defines methods for accessing meal feedback data.
type MealFeedbackRepository interface {
	// Upsert writes feedback keyed by (user, meal); a second submission for
	// the same pair replaces feedback type, rating, and notes.
	Upsert(ctx context.Context, f *model.MealFeedback) (*model.MealFeedback, error)
	List(ctx context.Context, userID string, mealID string) ([]model.MealFeedback, error)
}

type mealFeedbackRepo struct {
	db *sql.DB
}

func NewMealFeedbackRepo(db *sql.DB) MealFeedbackRepository {
	return &mealFeedbackRepo{db: db}
}

const feedbackColumns = `id, user_id, meal_id, feedback_type, rating, notes, created_at, updated_at`

func (r *mealFeedbackRepo) Upsert(ctx context.Context, f *model.MealFeedback) (*model.MealFeedback, error) {
	query := `
        INSERT INTO meal_feedback (user_id, meal_id, feedback_type, rating, notes, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
        ON CONFLICT (user_id, meal_id) DO UPDATE SET
            feedback_type = EXCLUDED.feedback_type,
            rating        = EXCLUDED.rating,
            notes         = EXCLUDED.notes,
            updated_at    = NOW()
        RETURNING ` + feedbackColumns

	var saved model.MealFeedback
	err := r.db.QueryRowContext(ctx, query, f.UserID, f.MealID, f.FeedbackType, f.Rating, f.Notes).
		Scan(&saved.ID, &saved.UserID, &saved.MealID, &saved.FeedbackType, &saved.Rating, &saved.Notes,
			&saved.CreatedAt, &saved.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("upsert feedback for user %s meal %s: %w", f.UserID, f.MealID, err)
	}
	return &saved, nil
}

func (r *mealFeedbackRepo) List(ctx context.Context, userID string, mealID string) ([]model.MealFeedback, error) {
	query := `SELECT ` + feedbackColumns + ` FROM meal_feedback WHERE user_id = $1`
	args := []interface{}{userID}
	if mealID != "" {
		query += ` AND meal_id = $2`
		args = append(args, mealID)
	}
	query += ` ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var feedback []model.MealFeedback
	for rows.Next() {
		var f model.MealFeedback
		if err := rows.Scan(&f.ID, &f.UserID, &f.MealID, &f.FeedbackType, &f.Rating, &f.Notes,
			&f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		feedback = append(feedback, f)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return feedback, nil
}
