package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"nutrigenius/internal/model"
)

// MealSuggestionRepository persists generated meal suggestions for same-day
// retrieval. Rows are append-only and never updated.
type MealSuggestionRepository interface {
	SaveAll(ctx context.Context, userID, date string, suggestions []model.MealSuggestion) error
	ListByDate(ctx context.Context, userID, date string) ([]model.MealSuggestion, error)
}

type mealSuggestionRepo struct {
	db *sql.DB
}

func NewMealSuggestionRepo(db *sql.DB) MealSuggestionRepository {
	return &mealSuggestionRepo{db: db}
}

func (r *mealSuggestionRepo) SaveAll(ctx context.Context, userID, date string, suggestions []model.MealSuggestion) error {
	query := `
        INSERT INTO meal_suggestions (user_id, meal_id, name, description, ingredients, instructions,
                                      nutritional_info, dietary_tags, meal_type, prep_time, difficulty,
                                      date, generated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12::date, NOW())`

	for _, s := range suggestions {
		ingredients, err := json.Marshal(s.Ingredients)
		if err != nil {
			return fmt.Errorf("marshal ingredients: %w", err)
		}
		instructions, err := json.Marshal(s.Instructions)
		if err != nil {
			return fmt.Errorf("marshal instructions: %w", err)
		}
		nutrition, err := json.Marshal(s.NutritionalInfo)
		if err != nil {
			return fmt.Errorf("marshal nutritional_info: %w", err)
		}
		tags, err := json.Marshal(s.DietaryTags)
		if err != nil {
			return fmt.Errorf("marshal dietary_tags: %w", err)
		}
		if _, err := r.db.ExecContext(ctx, query, userID, s.ID, s.Name, s.Description, ingredients,
			instructions, nutrition, tags, s.MealType, s.PrepTime, s.Difficulty, date); err != nil {
			return fmt.Errorf("save meal suggestion %s: %w", s.ID, err)
		}
	}
	return nil
}

func (r *mealSuggestionRepo) ListByDate(ctx context.Context, userID, date string) ([]model.MealSuggestion, error) {
	query := `
        SELECT meal_id, name, description, ingredients, instructions, nutritional_info,
               dietary_tags, meal_type, prep_time, difficulty
        FROM meal_suggestions
        WHERE user_id = $1 AND date = $2::date
        ORDER BY generated_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID, date)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var suggestions []model.MealSuggestion
	for rows.Next() {
		var s model.MealSuggestion
		var ingredients, instructions, nutrition, tags []byte
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &ingredients, &instructions,
			&nutrition, &tags, &s.MealType, &s.PrepTime, &s.Difficulty); err != nil {
			return nil, err
		}
		for _, pair := range []struct {
			raw []byte
			out interface{}
		}{
			{ingredients, &s.Ingredients},
			{instructions, &s.Instructions},
			{nutrition, &s.NutritionalInfo},
			{tags, &s.DietaryTags},
		} {
			if pair.raw == nil {
				continue
			}
			if err := json.Unmarshal(pair.raw, pair.out); err != nil {
				return nil, fmt.Errorf("unmarshal meal suggestion field: %w", err)
			}
		}
		suggestions = append(suggestions, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return suggestions, nil
}
