package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/billmate/billmate/internal/model"
)

func fixedJune() func() time.Time {
	return func() time.Time {
		return time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)
	}
}

func seedBill(t *testing.T, bills *fakeBillStore, date time.Time, amount float64) *model.Bill {
	t.Helper()
	bill := &model.Bill{
		ID:       "bill-" + date.Format("2006-01"),
		Title:    "Electricity",
		Category: model.CategoryElectricity,
		Amount:   amount,
		Date:     date,
	}
	if err := bills.CreateBill(context.Background(), bill); err != nil {
		t.Fatalf("seed bill: %v", err)
	}
	return bill
}

func TestPaymentService_Pay(t *testing.T) {
	t.Parallel()

	bills := newFakeBillStore()
	payments := newFakePaymentStore()
	publisher := &fakePublisher{}
	svc := NewPaymentService(payments, bills, publisher, nil)
	svc.now = fixedJune()

	bill := seedBill(t, bills, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), 75.50)

	payment, err := svc.Pay(context.Background(), PayInput{
		BillID:    bill.ID,
		Email:     "payer@example.com",
		PayerName: "Pat Payer",
		Address:   "1 Main St",
		Phone:     "555-0100",
	})
	if err != nil {
		t.Fatalf("Pay failed: %v", err)
	}

	// The amount comes from the bill, never the request.
	if payment.Amount.Float64() != 75.50 {
		t.Errorf("Amount = %v, want 75.50 from the bill", payment.Amount)
	}
	if payments.payments[payment.ID] == nil {
		t.Error("payment should be persisted")
	}

	kinds := publisher.kinds()
	if len(kinds) != 1 || kinds[0] != model.PaymentCreated {
		t.Errorf("published events = %v, want [payment.created]", kinds)
	}
}

func TestPaymentService_Pay_StaleBillRejected(t *testing.T) {
	t.Parallel()

	bills := newFakeBillStore()
	payments := newFakePaymentStore()
	svc := NewPaymentService(payments, bills, nil, nil)
	svc.now = fixedJune()

	bill := seedBill(t, bills, time.Date(2024, time.May, 20, 0, 0, 0, 0, time.UTC), 75.50)

	_, err := svc.Pay(context.Background(), PayInput{
		BillID:    bill.ID,
		Email:     "payer@example.com",
		PayerName: "Pat Payer",
		Address:   "1 Main St",
		Phone:     "555-0100",
	})
	if !errors.Is(err, ErrBillNotPayable) {
		t.Fatalf("error = %v, want ErrBillNotPayable", err)
	}

	// Nothing persisted on rejection.
	if len(payments.payments) != 0 {
		t.Errorf("payments stored = %d, want 0", len(payments.payments))
	}
}

func TestPaymentService_Pay_MissingPayer(t *testing.T) {
	t.Parallel()

	bills := newFakeBillStore()
	svc := NewPaymentService(newFakePaymentStore(), bills, nil, nil)
	svc.now = fixedJune()

	bill := seedBill(t, bills, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), 10)

	_, err := svc.Pay(context.Background(), PayInput{
		BillID: bill.ID,
		Email:  "payer@example.com",
		Phone:  "555-0100",
	})
	if !errors.Is(err, ErrMissingPayer) {
		t.Errorf("error = %v, want ErrMissingPayer", err)
	}
}

func TestPaymentService_Pay_UnknownBill(t *testing.T) {
	t.Parallel()

	svc := NewPaymentService(newFakePaymentStore(), newFakeBillStore(), nil, nil)
	svc.now = fixedJune()

	_, err := svc.Pay(context.Background(), PayInput{
		BillID:    "ghost",
		Email:     "payer@example.com",
		PayerName: "P",
		Address:   "A",
		Phone:     "1",
	})
	if !errors.Is(err, ErrBillNotFound) {
		t.Errorf("error = %v, want ErrBillNotFound", err)
	}
}

func TestPaymentService_ListPayments_Aggregates(t *testing.T) {
	t.Parallel()

	bills := newFakeBillStore()
	payments := newFakePaymentStore()
	svc := NewPaymentService(payments, bills, nil, nil)
	svc.now = fixedJune()

	bill := seedBill(t, bills, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), 100)

	for i := 0; i < 3; i++ {
		if _, err := svc.Pay(context.Background(), PayInput{
			BillID:    bill.ID,
			Email:     "payer@example.com",
			PayerName: "P",
			Address:   "A",
			Phone:     "1",
		}); err != nil {
			t.Fatalf("Pay failed: %v", err)
		}
	}

	// Another user's record must not leak into the aggregate.
	other := &model.Payment{ID: "other", BillID: bill.ID, Email: "other@example.com", Amount: 999}
	payments.payments[other.ID] = other

	list, err := svc.ListPayments(context.Background(), "payer@example.com")
	if err != nil {
		t.Fatalf("ListPayments failed: %v", err)
	}
	if list.Count != 3 {
		t.Errorf("Count = %d, want 3", list.Count)
	}
	if list.Total != 300 {
		t.Errorf("Total = %v, want 300", list.Total)
	}
}

func TestPaymentService_UpdatePayment_PatchSemantics(t *testing.T) {
	t.Parallel()

	bills := newFakeBillStore()
	payments := newFakePaymentStore()
	publisher := &fakePublisher{}
	svc := NewPaymentService(payments, bills, publisher, nil)
	svc.now = fixedJune()

	bill := seedBill(t, bills, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), 50)
	created, err := svc.Pay(context.Background(), PayInput{
		BillID:    bill.ID,
		Email:     "payer@example.com",
		PayerName: "Old Name",
		Address:   "Old Address",
		Phone:     "555-0100",
	})
	if err != nil {
		t.Fatalf("Pay failed: %v", err)
	}

	newName := "New Name"
	updated, err := svc.UpdatePayment(context.Background(), "payer@example.com", created.ID, UpdatePaymentInput{
		PayerName: &newName,
	})
	if err != nil {
		t.Fatalf("UpdatePayment failed: %v", err)
	}

	if updated.PayerName != "New Name" {
		t.Errorf("PayerName = %s, want New Name", updated.PayerName)
	}
	// Untouched fields survive the patch.
	if updated.Address != "Old Address" {
		t.Errorf("Address = %s, want unchanged", updated.Address)
	}

	kinds := publisher.kinds()
	if len(kinds) != 2 || kinds[1] != model.PaymentUpdated {
		t.Errorf("published events = %v, want created then updated", kinds)
	}
}

func TestPaymentService_UpdatePayment_WrongOwner(t *testing.T) {
	t.Parallel()

	bills := newFakeBillStore()
	payments := newFakePaymentStore()
	svc := NewPaymentService(payments, bills, nil, nil)
	svc.now = fixedJune()

	bill := seedBill(t, bills, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), 50)
	created, err := svc.Pay(context.Background(), PayInput{
		BillID:    bill.ID,
		Email:     "owner@example.com",
		PayerName: "P",
		Address:   "A",
		Phone:     "1",
	})
	if err != nil {
		t.Fatalf("Pay failed: %v", err)
	}

	name := "Hijack"
	_, err = svc.UpdatePayment(context.Background(), "intruder@example.com", created.ID, UpdatePaymentInput{
		PayerName: &name,
	})
	// Not-owner is indistinguishable from absent.
	if !errors.Is(err, ErrPaymentNotFound) {
		t.Errorf("error = %v, want ErrPaymentNotFound", err)
	}
}

func TestPaymentService_DeletePayment(t *testing.T) {
	t.Parallel()

	bills := newFakeBillStore()
	payments := newFakePaymentStore()
	publisher := &fakePublisher{}
	svc := NewPaymentService(payments, bills, publisher, nil)
	svc.now = fixedJune()

	bill := seedBill(t, bills, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), 50)
	created, err := svc.Pay(context.Background(), PayInput{
		BillID:    bill.ID,
		Email:     "payer@example.com",
		PayerName: "P",
		Address:   "A",
		Phone:     "1",
	})
	if err != nil {
		t.Fatalf("Pay failed: %v", err)
	}

	if err := svc.DeletePayment(context.Background(), "payer@example.com", created.ID); err != nil {
		t.Fatalf("DeletePayment failed: %v", err)
	}
	if len(payments.payments) != 0 {
		t.Error("payment should be removed")
	}

	kinds := publisher.kinds()
	if len(kinds) != 2 || kinds[1] != model.PaymentDeleted {
		t.Errorf("published events = %v, want created then deleted", kinds)
	}
}

func TestPaymentService_DeletePayment_FailureKeepsRecord(t *testing.T) {
	t.Parallel()

	bills := newFakeBillStore()
	payments := newFakePaymentStore()
	svc := NewPaymentService(payments, bills, nil, nil)
	svc.now = fixedJune()

	bill := seedBill(t, bills, time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC), 50)
	created, err := svc.Pay(context.Background(), PayInput{
		BillID:    bill.ID,
		Email:     "payer@example.com",
		PayerName: "P",
		Address:   "A",
		Phone:     "1",
	})
	if err != nil {
		t.Fatalf("Pay failed: %v", err)
	}

	payments.failNext = errors.New("connection reset")

	if err := svc.DeletePayment(context.Background(), "payer@example.com", created.ID); err == nil {
		t.Fatal("DeletePayment should surface the storage error")
	}
	// The record survives a failed delete.
	if payments.payments[created.ID] == nil {
		t.Error("payment should still exist after failed delete")
	}
}
