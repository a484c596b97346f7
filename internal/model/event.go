package model

import "time"

// PaymentEventKind labels an audit event on a payment record.
type PaymentEventKind string

const (
	PaymentCreated PaymentEventKind = "payment.created"
	PaymentUpdated PaymentEventKind = "payment.updated"
	PaymentDeleted PaymentEventKind = "payment.deleted"
)

// PaymentEvent is one entry in the payment activity audit trail.
type PaymentEvent struct {
	ID         string           `json:"id"`
	Kind       PaymentEventKind `json:"kind"`
	PaymentID  string           `json:"payment_id"`
	BillID     string           `json:"bill_id,omitempty"`
	ActorEmail string           `json:"actor_email"`
	Amount     float64          `json:"amount"`
	OccurredAt time.Time        `json:"occurred_at"`
}
