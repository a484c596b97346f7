// Package service provides business logic for the application.
package service

import (
	"context"
	"crypto/rand"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/billmate/billmate/internal/model"
)

// UserStore is the account persistence surface consumed by services.
type UserStore interface {
	CreateUser(ctx context.Context, user *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id string) (*model.User, error)
	UpdateUserProfile(ctx context.Context, user *model.User) error
}

// BillStore is the bill persistence surface consumed by services.
type BillStore interface {
	CreateBill(ctx context.Context, bill *model.Bill) error
	GetBillByID(ctx context.Context, id string) (*model.Bill, error)
	ListBills(ctx context.Context, category model.Category) ([]*model.Bill, error)
	RecentBills(ctx context.Context, limit int) ([]*model.Bill, error)
}

// PaymentStore is the payment persistence surface consumed by services.
type PaymentStore interface {
	CreatePayment(ctx context.Context, payment *model.Payment) error
	GetPayment(ctx context.Context, id, email string) (*model.Payment, error)
	ListPaymentsByEmail(ctx context.Context, email string) ([]*model.Payment, error)
	UpdatePayment(ctx context.Context, payment *model.Payment) error
	DeletePayment(ctx context.Context, id, email string) error
}

// SessionStore is the mirrored-session surface consumed by services.
type SessionStore interface {
	SetSession(ctx context.Context, session *model.Session, ttl time.Duration) error
	DeleteSession(ctx context.Context, tokenID string) error
	RevokeSession(ctx context.Context, tokenID string, ttl time.Duration) error
}

// EventPublisher enqueues audit events without blocking the caller.
type EventPublisher interface {
	PublishAsync(event *model.PaymentEvent)
}

// generateULID creates a lexicographically sortable unique identifier.
func generateULID() string {
	return ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
}
