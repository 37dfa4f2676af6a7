package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"nutrigenius/internal/model"
)

// NutritionInsightRepository stores generated insights. Rows are append-only.
type NutritionInsightRepository interface {
	Create(ctx context.Context, insight *model.NutritionInsight) (*model.NutritionInsight, error)
	ListByUser(ctx context.Context, userID string, limit int) ([]model.NutritionInsight, error)
}

type nutritionInsightRepo struct {
	db *sql.DB
}

func NewNutritionInsightRepo(db *sql.DB) NutritionInsightRepository {
	return &nutritionInsightRepo{db: db}
}

func (r *nutritionInsightRepo) Create(ctx context.Context, insight *model.NutritionInsight) (*model.NutritionInsight, error) {
	current, err := json.Marshal(insight.CurrentNutrition)
	if err != nil {
		return nil, fmt.Errorf("marshal current_nutrition: %w", err)
	}
	target, err := json.Marshal(insight.TargetNutrition)
	if err != nil {
		return nil, fmt.Errorf("marshal target_nutrition: %w", err)
	}

	query := `
        INSERT INTO nutrition_insights (user_id, insight_text, current_nutrition, target_nutrition, timeframe, generated_at)
        VALUES ($1, $2, $3, $4, $5, NOW())
        RETURNING id, generated_at`

	saved := *insight
	err = r.db.QueryRowContext(ctx, query, insight.UserID, insight.InsightText, current, target, insight.Timeframe).
		Scan(&saved.ID, &saved.GeneratedAt)
	if err != nil {
		return nil, fmt.Errorf("create insight for user %s: %w", insight.UserID, err)
	}
	return &saved, nil
}

func (r *nutritionInsightRepo) ListByUser(ctx context.Context, userID string, limit int) ([]model.NutritionInsight, error) {
	query := `
        SELECT id, user_id, insight_text, current_nutrition, target_nutrition, timeframe, generated_at
        FROM nutrition_insights
        WHERE user_id = $1
        ORDER BY generated_at DESC
        LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var insights []model.NutritionInsight
	for rows.Next() {
		var i model.NutritionInsight
		var current, target []byte
		if err := rows.Scan(&i.ID, &i.UserID, &i.InsightText, &current, &target, &i.Timeframe, &i.GeneratedAt); err != nil {
			return nil, err
		}
		if current != nil {
			if err := json.Unmarshal(current, &i.CurrentNutrition); err != nil {
				return nil, fmt.Errorf("unmarshal current_nutrition: %w", err)
			}
		}
		if target != nil {
			if err := json.Unmarshal(target, &i.TargetNutrition); err != nil {
				return nil, fmt.Errorf("unmarshal target_nutrition: %w", err)
			}
		}
		insights = append(insights, i)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return insights, nil
}
