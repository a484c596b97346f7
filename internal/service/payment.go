package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/billmate/billmate/internal/metrics"
	"github.com/billmate/billmate/internal/model"
	"github.com/billmate/billmate/internal/repository"
)

// Payment service errors.
var (
	ErrPaymentNotFound = errors.New("payment not found")
	ErrMissingPayer    = errors.New("payer name, address and phone are required")
)

// PaymentService handles payment record business logic. All reads and
// mutations are scoped to the owning email taken from the session, never
// from the request body.
type PaymentService struct {
	payments PaymentStore
	bills    BillStore
	events   EventPublisher
	metrics  metrics.Recorder
	now      func() time.Time
}

// NewPaymentService creates a new PaymentService. events may be nil when
// the audit pipeline is disabled.
func NewPaymentService(payments PaymentStore, bills BillStore, events EventPublisher, recorder metrics.Recorder) *PaymentService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &PaymentService{
		payments: payments,
		bills:    bills,
		events:   events,
		metrics:  recorder,
		now:      time.Now,
	}
}

// PayInput defines input for paying a bill. Email comes from the session;
// bill id and amount are carried over from the bill, not client-supplied.
type PayInput struct {
	BillID    string
	Email     string
	PayerName string
	Address   string
	Phone     string
	Note      string
}

// Pay creates a payment record for a bill. The eligibility rule is
// enforced here: a bill outside the current calendar month is rejected
// and nothing is persisted.
func (s *PaymentService) Pay(ctx context.Context, input PayInput) (*model.Payment, error) {
	bill, err := s.bills.GetBillByID(ctx, input.BillID)
	if err != nil {
		if errors.Is(err, repository.ErrBillNotFound) {
			return nil, ErrBillNotFound
		}
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	if !bill.IsPayable(s.now()) {
		return nil, ErrBillNotPayable
	}

	if strings.TrimSpace(input.PayerName) == "" ||
		strings.TrimSpace(input.Address) == "" ||
		strings.TrimSpace(input.Phone) == "" {
		return nil, ErrMissingPayer
	}

	now := s.now().UTC()
	payment := &model.Payment{
		ID:        generateULID(),
		BillID:    bill.ID,
		Email:     input.Email,
		PayerName: strings.TrimSpace(input.PayerName),
		Address:   strings.TrimSpace(input.Address),
		Phone:     strings.TrimSpace(input.Phone),
		Amount:    model.Amount(bill.Amount),
		Date:      now,
		Note:      input.Note,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.payments.CreatePayment(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to create payment: %w", err)
	}

	s.metrics.IncPaymentCreated()
	s.publish(model.PaymentCreated, payment)

	return payment, nil
}

// PaymentList is a user's payment history with its aggregates.
type PaymentList struct {
	Payments []*model.Payment
	Count    int
	Total    float64
}

// ListPayments returns the payment records owned by email, with count and
// total. Missing or non-numeric amounts contribute zero to the total.
func (s *PaymentService) ListPayments(ctx context.Context, email string) (*PaymentList, error) {
	payments, err := s.payments.ListPaymentsByEmail(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("failed to list payments: %w", err)
	}

	return &PaymentList{
		Payments: payments,
		Count:    len(payments),
		Total:    model.TotalAmount(payments),
	}, nil
}

// UpdatePaymentInput defines the patchable fields of a payment record.
// Nil fields are left unchanged.
type UpdatePaymentInput struct {
	PayerName *string
	Address   *string
	Phone     *string
	Amount    *float64
	Date      *time.Time
	Note      *string
}

// UpdatePayment patches a payment owned by email and returns the stored
// record so callers reconcile from the server state, not the request.
func (s *PaymentService) UpdatePayment(ctx context.Context, email, id string, input UpdatePaymentInput) (*model.Payment, error) {
	payment, err := s.payments.GetPayment(ctx, id, email)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	if input.PayerName != nil {
		payment.PayerName = strings.TrimSpace(*input.PayerName)
	}
	if input.Address != nil {
		payment.Address = strings.TrimSpace(*input.Address)
	}
	if input.Phone != nil {
		payment.Phone = strings.TrimSpace(*input.Phone)
	}
	if input.Amount != nil {
		payment.Amount = model.Amount(*input.Amount)
	}
	if input.Date != nil {
		payment.Date = *input.Date
	}
	if input.Note != nil {
		payment.Note = *input.Note
	}
	payment.UpdatedAt = s.now().UTC()

	if err := s.payments.UpdatePayment(ctx, payment); err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to update payment: %w", err)
	}

	s.metrics.IncPaymentUpdated()
	s.publish(model.PaymentUpdated, payment)

	return payment, nil
}

// DeletePayment removes a payment owned by email. Local state on the
// client should drop the record only after this returns nil.
func (s *PaymentService) DeletePayment(ctx context.Context, email, id string) error {
	payment, err := s.payments.GetPayment(ctx, id, email)
	if err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return ErrPaymentNotFound
		}
		return fmt.Errorf("failed to get payment: %w", err)
	}

	if err := s.payments.DeletePayment(ctx, id, email); err != nil {
		if errors.Is(err, repository.ErrPaymentNotFound) {
			return ErrPaymentNotFound
		}
		return fmt.Errorf("failed to delete payment: %w", err)
	}

	s.metrics.IncPaymentDeleted()
	s.publish(model.PaymentDeleted, payment)

	return nil
}

// publish emits an audit event, fire-and-forget.
func (s *PaymentService) publish(kind model.PaymentEventKind, payment *model.Payment) {
	if s.events == nil {
		return
	}

	s.events.PublishAsync(&model.PaymentEvent{
		ID:         generateULID(),
		Kind:       kind,
		PaymentID:  payment.ID,
		BillID:     payment.BillID,
		ActorEmail: payment.Email,
		Amount:     payment.Amount.Float64(),
		OccurredAt: s.now().UTC(),
	})
}
