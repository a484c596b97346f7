package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/billmate/billmate/internal/model"
)

func samplePayments() []*model.Payment {
	date := time.Date(2024, time.June, 3, 0, 0, 0, 0, time.UTC)
	return []*model.Payment{
		{
			ID:        "p1",
			PayerName: "Pat Payer",
			Email:     "pat@example.com",
			Amount:    120.50,
			Address:   "1 Main St",
			Phone:     "555-0100",
			Date:      date,
		},
		{
			ID:        "p2",
			PayerName: "Sam Smith",
			Email:     "sam@example.com",
			Amount:    30,
			Address:   "2 Side St",
			Phone:     "555-0101",
			Date:      date.AddDate(0, 0, 4),
		},
	}
}

func TestPaymentReport_ProducesPDF(t *testing.T) {
	t.Parallel()

	doc, err := PaymentReport(samplePayments(), time.Now())
	if err != nil {
		t.Fatalf("PaymentReport failed: %v", err)
	}

	if len(doc) == 0 {
		t.Fatal("report should not be empty")
	}
	if !bytes.HasPrefix(doc, []byte("%PDF-")) {
		t.Errorf("report should start with the PDF magic, got %q", doc[:8])
	}
}

func TestPaymentReport_EmptyHistory(t *testing.T) {
	t.Parallel()

	doc, err := PaymentReport(nil, time.Now())
	if err != nil {
		t.Fatalf("PaymentReport on empty history failed: %v", err)
	}
	if !bytes.HasPrefix(doc, []byte("%PDF-")) {
		t.Error("empty report should still be a valid PDF")
	}
}

func TestPaymentReport_Deterministic(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, time.June, 20, 10, 0, 0, 0, time.UTC)

	doc1, err := PaymentReport(samplePayments(), at)
	if err != nil {
		t.Fatalf("PaymentReport failed: %v", err)
	}
	doc2, err := PaymentReport(samplePayments(), at)
	if err != nil {
		t.Fatalf("PaymentReport failed: %v", err)
	}

	if !bytes.Equal(doc1, doc2) {
		t.Error("same records and timestamp should render identical documents")
	}
}
