package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"nutrigenius/internal/model"
)

// DailyLogRepository defines the interface for interacting with daily log data.
type DailyLogRepository interface {
	// Upsert writes the log row keyed by (user, date, meal type); a second
	// write for the same key replaces the first.
	Upsert(ctx context.Context, log *model.DailyLog) (*model.DailyLog, error)
	// ListByDate returns the logs for one exact date.
	ListByDate(ctx context.Context, userID, date string) ([]model.DailyLog, error)
	// ListByRange returns the logs with date in [startDate, endDate].
	ListByRange(ctx context.Context, userID, startDate, endDate string) ([]model.DailyLog, error)
	// ListRecent returns the logs from the trailing seven days.
	ListRecent(ctx context.Context, userID string) ([]model.DailyLog, error)
}

type dailyLogRepo struct {
	db *sql.DB
}

func NewDailyLogRepo(db *sql.DB) DailyLogRepository {
	return &dailyLogRepo{db: db}
}

const dailyLogColumns = `id, user_id, date::text, meal_type, food_items, total_nutrition, logged_at, updated_at`

func (r *dailyLogRepo) Upsert(ctx context.Context, log *model.DailyLog) (*model.DailyLog, error) {
	items, err := json.Marshal(log.FoodItems)
	if err != nil {
		return nil, fmt.Errorf("marshal food_items: %w", err)
	}
	nutrition, err := json.Marshal(log.TotalNutrition)
	if err != nil {
		return nil, fmt.Errorf("marshal total_nutrition: %w", err)
	}

	query := `
        INSERT INTO daily_logs (user_id, date, meal_type, food_items, total_nutrition, logged_at, updated_at)
        VALUES ($1, $2::date, $3, $4, $5, NOW(), NOW())
        ON CONFLICT (user_id, date, meal_type) DO UPDATE SET
            food_items      = EXCLUDED.food_items,
            total_nutrition = EXCLUDED.total_nutrition,
            logged_at       = NOW(),
            updated_at      = NOW()
        RETURNING ` + dailyLogColumns

	row := r.db.QueryRowContext(ctx, query, log.UserID, log.Date, log.MealType, items, nutrition)
	saved, err := scanDailyLog(row)
	if err != nil {
		return nil, fmt.Errorf("upsert daily log for user %s: %w", log.UserID, err)
	}
	return saved, nil
}

func (r *dailyLogRepo) ListByDate(ctx context.Context, userID, date string) ([]model.DailyLog, error) {
	query := `SELECT ` + dailyLogColumns + `
        FROM daily_logs
        WHERE user_id = $1 AND date = $2::date
        ORDER BY date DESC, logged_at DESC`
	return r.list(ctx, query, userID, date)
}

func (r *dailyLogRepo) ListByRange(ctx context.Context, userID, startDate, endDate string) ([]model.DailyLog, error) {
	query := `SELECT ` + dailyLogColumns + `
        FROM daily_logs
        WHERE user_id = $1 AND date >= $2::date AND date <= $3::date
        ORDER BY date DESC, logged_at DESC`
	return r.list(ctx, query, userID, startDate, endDate)
}

func (r *dailyLogRepo) ListRecent(ctx context.Context, userID string) ([]model.DailyLog, error) {
	query := `SELECT ` + dailyLogColumns + `
        FROM daily_logs
        WHERE user_id = $1 AND date >= CURRENT_DATE - INTERVAL '7 days'
        ORDER BY date DESC, logged_at DESC`
	return r.list(ctx, query, userID)
}

func (r *dailyLogRepo) list(ctx context.Context, query string, args ...interface{}) ([]model.DailyLog, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []model.DailyLog
	for rows.Next() {
		log, err := scanDailyLog(rows)
		if err != nil {
			return nil, err
		}
		logs = append(logs, *log)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}

func scanDailyLog(row rowScanner) (*model.DailyLog, error) {
	var log model.DailyLog
	var items, nutrition []byte
	if err := row.Scan(&log.ID, &log.UserID, &log.Date, &log.MealType, &items, &nutrition, &log.LoggedAt, &log.UpdatedAt); err != nil {
		return nil, err
	}
	if items != nil {
		if err := json.Unmarshal(items, &log.FoodItems); err != nil {
			return nil, fmt.Errorf("unmarshal food_items: %w", err)
		}
	}
	if nutrition != nil {
		if err := json.Unmarshal(nutrition, &log.TotalNutrition); err != nil {
			return nil, fmt.Errorf("unmarshal total_nutrition: %w", err)
		}
	}
	return &log, nil
}
