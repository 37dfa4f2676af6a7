package repository

import (
	"context"
	"database/sql"
	"fmt"

	"nutrigenius/internal/model"
)

// PaymentLogRepository records invoice outcomes. Rows are append-only and
// written only from webhook handling.
type PaymentLogRepository interface {
	Create(ctx context.Context, log *model.PaymentLog) error
	ListByUser(ctx context.Context, userID string) ([]model.PaymentLog, error)
}

type paymentLogRepo struct {
	db *sql.DB
}

func NewPaymentLogRepo(db *sql.DB) PaymentLogRepository {
	return &paymentLogRepo{db: db}
}

func (r *paymentLogRepo) Create(ctx context.Context, log *model.PaymentLog) error {
	query := `
        INSERT INTO payment_logs (user_id, stripe_invoice_id, amount, currency, status, created_at)
        VALUES ($1, $2, $3, $4, $5, NOW())`
	if _, err := r.db.ExecContext(ctx, query, log.UserID, log.StripeInvoiceID, log.Amount, log.Currency, log.Status); err != nil {
		return fmt.Errorf("create payment log for user %s: %w", log.UserID, err)
	}
	return nil
}

func (r *paymentLogRepo) ListByUser(ctx context.Context, userID string) ([]model.PaymentLog, error) {
	query := `
        SELECT id, user_id, stripe_invoice_id, amount, currency, status, created_at
        FROM payment_logs
        WHERE user_id = $1
        ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var logs []model.PaymentLog
	for rows.Next() {
		var l model.PaymentLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.StripeInvoiceID, &l.Amount, &l.Currency, &l.Status, &l.CreatedAt); err != nil {
			return nil, err
		}
		logs = append(logs, l)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return logs, nil
}
