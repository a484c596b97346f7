package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/billmate/billmate/internal/model"
)

// Common errors for bill repository operations.
var (
	ErrBillNotFound = errors.New("bill not found")
	ErrBillExists   = errors.New("bill already exists")
)

// CreateBill inserts a new bill into the database.
func (r *Repository) CreateBill(ctx context.Context, bill *model.Bill) error {
	query := `
		INSERT INTO bills (id, title, category, amount, location, description, image_url, bill_date, creator_email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`

	_, err := r.pool.Exec(ctx, query,
		bill.ID,
		bill.Title,
		bill.Category,
		bill.Amount,
		bill.Location,
		bill.Description,
		bill.ImageURL,
		bill.Date,
		bill.CreatorEmail,
		bill.CreatedAt,
		bill.UpdatedAt,
	)

	if err != nil {
		if isUniqueViolation(err) {
			return ErrBillExists
		}
		return fmt.Errorf("failed to create bill: %w", err)
	}

	return nil
}

// GetBillByID retrieves a bill by its ID.
// Absence is signaled by ErrBillNotFound, never by an empty row.
func (r *Repository) GetBillByID(ctx context.Context, id string) (*model.Bill, error) {
	query := `
		SELECT id, title, category, amount, location, description, image_url, bill_date, creator_email, created_at, updated_at
		FROM bills
		WHERE id = $1
	`

	bill, err := scanBill(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrBillNotFound
		}
		return nil, fmt.Errorf("failed to get bill by ID: %w", err)
	}

	return bill, nil
}

// ListBills retrieves bills, optionally filtered by category, most recent
// first. The id tie-break keeps the order stable for same-day bills.
func (r *Repository) ListBills(ctx context.Context, category model.Category) ([]*model.Bill, error) {
	query := `
		SELECT id, title, category, amount, location, description, image_url, bill_date, creator_email, created_at, updated_at
		FROM bills
	`
	args := []any{}

	if category != "" {
		query += " WHERE category = $1"
		args = append(args, category)
	}

	query += " ORDER BY bill_date DESC, id DESC"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}
	defer rows.Close()

	return collectBills(rows)
}

// RecentBills retrieves the most recent bills for the home view.
func (r *Repository) RecentBills(ctx context.Context, limit int) ([]*model.Bill, error) {
	query := `
		SELECT id, title, category, amount, location, description, image_url, bill_date, creator_email, created_at, updated_at
		FROM bills
		ORDER BY bill_date DESC, id DESC
		LIMIT $1
	`

	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent bills: %w", err)
	}
	defer rows.Close()

	return collectBills(rows)
}

func collectBills(rows pgx.Rows) ([]*model.Bill, error) {
	var bills []*model.Bill
	for rows.Next() {
		bill, err := scanBill(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan bill: %w", err)
		}
		bills = append(bills, bill)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bills: %w", err)
	}

	return bills, nil
}

// scanBill scans a single row into a Bill model.
func scanBill(row pgx.Row) (*model.Bill, error) {
	var bill model.Bill
	err := row.Scan(
		&bill.ID,
		&bill.Title,
		&bill.Category,
		&bill.Amount,
		&bill.Location,
		&bill.Description,
		&bill.ImageURL,
		&bill.Date,
		&bill.CreatorEmail,
		&bill.CreatedAt,
		&bill.UpdatedAt,
	)
	return &bill, err
}
