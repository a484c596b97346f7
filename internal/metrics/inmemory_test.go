package metrics

import (
	"sync"
	"testing"
	"time"
)

func TestInMemoryRecorder_Counters(t *testing.T) {
	t.Parallel()

	rec := NewInMemory()

	rec.IncSessionStarted()
	rec.IncSessionStarted()
	rec.IncLoginFailed()
	rec.IncBillCreated()
	rec.IncPaymentCreated()
	rec.IncPaymentUpdated()
	rec.IncPaymentDeleted()
	rec.IncReportGenerated()
	rec.ObserveReportDuration(150 * time.Millisecond)

	snap := rec.Snapshot()

	if snap.SessionsStarted != 2 {
		t.Errorf("SessionsStarted = %d, want 2", snap.SessionsStarted)
	}
	if snap.LoginsFailed != 1 {
		t.Errorf("LoginsFailed = %d, want 1", snap.LoginsFailed)
	}
	if snap.PaymentsCreated != 1 || snap.PaymentsUpdated != 1 || snap.PaymentsDeleted != 1 {
		t.Errorf("payment counters = %d/%d/%d, want 1/1/1",
			snap.PaymentsCreated, snap.PaymentsUpdated, snap.PaymentsDeleted)
	}
	if snap.ReportDurationCount != 1 {
		t.Errorf("ReportDurationCount = %d, want 1", snap.ReportDurationCount)
	}
	if snap.ReportDurationTotalNs != (150 * time.Millisecond).Nanoseconds() {
		t.Errorf("ReportDurationTotalNs = %d, want 150ms", snap.ReportDurationTotalNs)
	}
}

func TestInMemoryRecorder_AuditStatuses(t *testing.T) {
	t.Parallel()

	rec := NewInMemory()

	rec.IncAuditEventPublished("success")
	rec.IncAuditEventPublished("dropped")
	rec.IncAuditEventProcessed("success")
	rec.IncAuditEventProcessed("failed")
	rec.IncAuditEventProcessed("skipped")
	rec.ObserveAuditBatchSize(5)
	rec.ObserveAuditBatchSize(3)

	snap := rec.Snapshot()

	if snap.AuditEventsPublished != 1 || snap.AuditEventsDropped != 1 {
		t.Errorf("published/dropped = %d/%d, want 1/1", snap.AuditEventsPublished, snap.AuditEventsDropped)
	}
	if snap.AuditEventsProcessed != 1 || snap.AuditEventsFailed != 1 || snap.AuditEventsSkipped != 1 {
		t.Errorf("processed/failed/skipped = %d/%d/%d, want 1/1/1",
			snap.AuditEventsProcessed, snap.AuditEventsFailed, snap.AuditEventsSkipped)
	}
	if snap.AuditBatchCount != 2 || snap.AuditBatchSizeTotal != 8 {
		t.Errorf("batches = %d with %d events, want 2 with 8", snap.AuditBatchCount, snap.AuditBatchSizeTotal)
	}
}

func TestInMemoryRecorder_ConcurrentUse(t *testing.T) {
	t.Parallel()

	rec := NewInMemory()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				rec.IncPaymentCreated()
			}
		}()
	}
	wg.Wait()

	if snap := rec.Snapshot(); snap.PaymentsCreated != 1000 {
		t.Errorf("PaymentsCreated = %d, want 1000", snap.PaymentsCreated)
	}
}
