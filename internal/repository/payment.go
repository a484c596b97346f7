package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/billmate/billmate/internal/model"
)

// ErrPaymentNotFound is returned when a payment record is absent or owned
// by a different user. The two cases are indistinguishable on purpose.
var ErrPaymentNotFound = errors.New("payment not found")

// CreatePayment inserts a new payment record.
func (r *Repository) CreatePayment(ctx context.Context, payment *model.Payment) error {
	query := `
		INSERT INTO payments (id, bill_id, email, payer_name, address, phone, amount, payment_date, note, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		payment.ID,
		payment.BillID,
		payment.Email,
		payment.PayerName,
		payment.Address,
		payment.Phone,
		payment.Amount.Float64(),
		payment.Date,
		payment.Note,
		payment.CreatedAt,
		payment.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to create payment: %w", err)
	}

	return nil
}

// GetPayment retrieves a payment owned by the given email.
func (r *Repository) GetPayment(ctx context.Context, id, email string) (*model.Payment, error) {
	query := `
		SELECT id, bill_id, email, payer_name, address, phone, amount, payment_date, note, created_at, updated_at
		FROM payments
		WHERE id = $1 AND email = $2
	`

	payment, err := scanPayment(r.pool.QueryRow(ctx, query, id, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return payment, nil
}

// ListPaymentsByEmail retrieves all payment records owned by the given email,
// most recent first.
func (r *Repository) ListPaymentsByEmail(ctx context.Context, email string) ([]*model.Payment, error) {
	query := `
		SELECT id, bill_id, email, payer_name, address, phone, amount, payment_date, note, created_at, updated_at
		FROM payments
		WHERE email = $1
		ORDER BY payment_date DESC, id DESC
	`

	rows, err := r.pool.Query(ctx, query, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}
	defer rows.Close()

	var payments []*model.Payment
	for rows.Next() {
		payment, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payment: %w", err)
		}
		payments = append(payments, payment)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating payments: %w", err)
	}

	return payments, nil
}

// UpdatePayment updates a payment's mutable fields. Ownership is enforced
// by the email predicate; last write wins.
func (r *Repository) UpdatePayment(ctx context.Context, payment *model.Payment) error {
	query := `
		UPDATE payments
		SET payer_name = $3, address = $4, phone = $5, amount = $6, payment_date = $7, note = $8, updated_at = $9
		WHERE id = $1 AND email = $2
	`

	result, err := r.pool.Exec(ctx, query,
		payment.ID,
		payment.Email,
		payment.PayerName,
		payment.Address,
		payment.Phone,
		payment.Amount.Float64(),
		payment.Date,
		payment.Note,
		payment.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to update payment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

// DeletePayment removes a payment owned by the given email.
func (r *Repository) DeletePayment(ctx context.Context, id, email string) error {
	query := `DELETE FROM payments WHERE id = $1 AND email = $2`

	result, err := r.pool.Exec(ctx, query, id, email)
	if err != nil {
		return fmt.Errorf("failed to delete payment: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrPaymentNotFound
	}

	return nil
}

// scanPayment scans a single row into a Payment model.
func scanPayment(row pgx.Row) (*model.Payment, error) {
	var (
		payment model.Payment
		amount  float64
	)
	err := row.Scan(
		&payment.ID,
		&payment.BillID,
		&payment.Email,
		&payment.PayerName,
		&payment.Address,
		&payment.Phone,
		&amount,
		&payment.Date,
		&payment.Note,
		&payment.CreatedAt,
		&payment.UpdatedAt,
	)
	payment.Amount = model.Amount(amount)
	return &payment, err
}
