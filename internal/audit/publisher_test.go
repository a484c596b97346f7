package audit

import (
	"strings"
	"testing"
)

func TestValidatePayload(t *testing.T) {
	t.Parallel()

	valid := eventPayload{
		ID:         "evt-1",
		Kind:       "payment.created",
		PaymentID:  "pay-1",
		ActorEmail: "payer@example.com",
		Amount:     120.50,
		OccurredAt: 1718000000000,
	}

	if err := validatePayload(valid); err != nil {
		t.Fatalf("expected valid payload, got %v", err)
	}

	cases := []struct {
		name    string
		payload eventPayload
	}{
		{"unknown_kind", eventPayload{ID: "e", Kind: "payment.exploded", PaymentID: "p", ActorEmail: "a@b.c"}},
		{"missing_kind", eventPayload{ID: "e", PaymentID: "p", ActorEmail: "a@b.c"}},
		{"missing_id", eventPayload{Kind: "payment.created", PaymentID: "p", ActorEmail: "a@b.c"}},
		{"missing_payment_id", eventPayload{ID: "e", Kind: "payment.updated", ActorEmail: "a@b.c"}},
		{"missing_actor", eventPayload{ID: "e", Kind: "payment.deleted", PaymentID: "p"}},
	}

	for _, tc := range cases {
		if err := validatePayload(tc.payload); err == nil {
			t.Fatalf("expected error for %s", tc.name)
		}
	}
}

func TestNewConsumerID_Shape(t *testing.T) {
	t.Parallel()

	id := NewConsumerID()

	if id == "" {
		t.Fatal("consumer ID should not be empty")
	}
	if strings.Count(id, "-") < 2 {
		t.Errorf("consumer ID %q should carry host, pid and nonce parts", id)
	}
}
