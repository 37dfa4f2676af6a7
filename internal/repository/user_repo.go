package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"nutrigenius/internal/model"
)

type UserRepository interface {
	// UpsertByAddress inserts a user on first sight of the wallet address or
	// merges the supplied profile fields into the existing row. The returned
	// bool reports whether the row was newly created.
	UpsertByAddress(ctx context.Context, address string, p *model.ProfileUpdate) (*model.User, bool, error)
	GetByAddress(ctx context.Context, address string) (*model.User, error)
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByStripeCustomerID(ctx context.Context, customerID string) (*model.User, error)
	UpdateStripeCustomerID(ctx context.Context, userID, customerID string) error
	// UpdateSubscription copies provider-reported subscription state onto the
	// user. Nil fields leave the stored value untouched.
	UpdateSubscription(ctx context.Context, userID string, status string, subscriptionID *string, periodEnd *time.Time) error
}

type userRepo struct {
	db *sql.DB
}

func NewUserRepo(db *sql.DB) UserRepository {
	return &userRepo{db: db}
}

const userColumns = `id, onchain_address, email, health_goals, dietary_restrictions, allergies,
       cuisine_preferences, cooking_skill, time_available, calorie_target, macro_targets,
       stripe_customer_id, subscription_status, subscription_id, subscription_current_period_end,
       created_at, last_login, updated_at`

func (r *userRepo) UpsertByAddress(ctx context.Context, address string, p *model.ProfileUpdate) (*model.User, bool, error) {
	if p == nil {
		p = &model.ProfileUpdate{}
	}
	goals, err := marshalOrNil(p.HealthGoals)
	if err != nil {
		return nil, false, err
	}
	restrictions, err := marshalOrNil(p.DietaryRestrictions)
	if err != nil {
		return nil, false, err
	}
	allergies, err := marshalOrNil(p.Allergies)
	if err != nil {
		return nil, false, err
	}
	cuisines, err := marshalOrNil(p.CuisinePreferences)
	if err != nil {
		return nil, false, err
	}
	var macros []byte
	if p.MacroTargets != nil {
		if macros, err = json.Marshal(p.MacroTargets); err != nil {
			return nil, false, err
		}
	}

	// Atomic upsert by natural key; (xmax = 0) distinguishes the insert arm
	// from the conflict-update arm.
	query := `
        INSERT INTO users (onchain_address, email, health_goals, dietary_restrictions, allergies,
                           cuisine_preferences, cooking_skill, time_available, calorie_target,
                           macro_targets, created_at, last_login, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW(), NOW())
        ON CONFLICT (onchain_address) DO UPDATE SET
            email                = COALESCE(EXCLUDED.email, users.email),
            health_goals         = COALESCE(EXCLUDED.health_goals, users.health_goals),
            dietary_restrictions = COALESCE(EXCLUDED.dietary_restrictions, users.dietary_restrictions),
            allergies            = COALESCE(EXCLUDED.allergies, users.allergies),
            cuisine_preferences  = COALESCE(EXCLUDED.cuisine_preferences, users.cuisine_preferences),
            cooking_skill        = COALESCE(EXCLUDED.cooking_skill, users.cooking_skill),
            time_available       = COALESCE(EXCLUDED.time_available, users.time_available),
            calorie_target       = COALESCE(EXCLUDED.calorie_target, users.calorie_target),
            macro_targets        = COALESCE(EXCLUDED.macro_targets, users.macro_targets),
            last_login           = NOW(),
            updated_at           = NOW()
        RETURNING ` + userColumns + `, (xmax = 0) AS is_new`

	row := r.db.QueryRowContext(ctx, query, address, p.Email, goals, restrictions, allergies,
		cuisines, p.CookingSkill, p.TimeAvailable, p.CalorieTarget, macros)

	var isNew bool
	u, err := scanUser(row, &isNew)
	if err != nil {
		return nil, false, fmt.Errorf("upsert user %s: %w", address, err)
	}
	return u, isNew, nil
}

func (r *userRepo) GetByAddress(ctx context.Context, address string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE onchain_address = $1`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, address), nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepo) GetByID(ctx context.Context, id string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, id), nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepo) GetByStripeCustomerID(ctx context.Context, customerID string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE stripe_customer_id = $1`
	u, err := scanUser(r.db.QueryRowContext(ctx, query, customerID), nil)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return u, nil
}

func (r *userRepo) UpdateStripeCustomerID(ctx context.Context, userID, customerID string) error {
	query := `UPDATE users SET stripe_customer_id = $2, updated_at = NOW() WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID, customerID); err != nil {
		return fmt.Errorf("store stripe customer id for user %s: %w", userID, err)
	}
	return nil
}

func (r *userRepo) UpdateSubscription(ctx context.Context, userID string, status string, subscriptionID *string, periodEnd *time.Time) error {
	query := `
        UPDATE users
        SET subscription_status = $2,
            subscription_id = COALESCE($3, subscription_id),
            subscription_current_period_end = COALESCE($4, subscription_current_period_end),
            updated_at = NOW()
        WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, userID, status, subscriptionID, periodEnd); err != nil {
		return fmt.Errorf("update subscription for user %s: %w", userID, err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanUser(row rowScanner, isNew *bool) (*model.User, error) {
	var u model.User
	var goals, restrictions, allergies, cuisines, macros []byte

	dest := []interface{}{
		&u.ID, &u.OnchainAddress, &u.Email, &goals, &restrictions, &allergies,
		&cuisines, &u.CookingSkill, &u.TimeAvailable, &u.CalorieTarget, &macros,
		&u.StripeCustomerID, &u.SubscriptionStatus, &u.SubscriptionID, &u.SubscriptionCurrentPeriodEnd,
		&u.CreatedAt, &u.LastLogin, &u.UpdatedAt,
	}
	if isNew != nil {
		dest = append(dest, isNew)
	}
	if err := row.Scan(dest...); err != nil {
		return nil, err
	}

	for _, pair := range []struct {
		raw []byte
		out interface{}
	}{
		{goals, &u.HealthGoals},
		{restrictions, &u.DietaryRestrictions},
		{allergies, &u.Allergies},
		{cuisines, &u.CuisinePreferences},
	} {
		if pair.raw == nil {
			continue
		}
		if err := json.Unmarshal(pair.raw, pair.out); err != nil {
			return nil, fmt.Errorf("unmarshal user field: %w", err)
		}
	}
	if macros != nil {
		u.MacroTargets = &model.MacroTargets{}
		if err := json.Unmarshal(macros, u.MacroTargets); err != nil {
			return nil, fmt.Errorf("unmarshal macro_targets: %w", err)
		}
	}
	return &u, nil
}

// marshalOrNil marshals a slice to JSONB input, preserving nil so COALESCE
// keeps the stored value when the field was not supplied.
func marshalOrNil(v []string) ([]byte, error) {
	if v == nil {
		return nil, nil
	}
	return json.Marshal(v)
}
