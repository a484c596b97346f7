package metrics

import (
	"sync/atomic"
	"time"
)

// Snapshot captures current in-memory counters.
type Snapshot struct {
	SessionsStarted        uint64
	LoginsFailed           uint64
	SessionsRevoked        uint64
	BillsCreated           uint64
	PaymentsCreated        uint64
	PaymentsUpdated        uint64
	PaymentsDeleted        uint64
	ReportsGenerated       uint64
	ReportDurationCount    uint64
	ReportDurationTotalNs  int64
	AuditEventsPublished   uint64
	AuditEventsDropped     uint64
	AuditEventsProcessed   uint64
	AuditEventsFailed      uint64
	AuditEventsSkipped     uint64
	AuditBatchCount        uint64
	AuditBatchSizeTotal    uint64
}

// InMemoryRecorder stores metrics in memory for tests and the admin
// snapshot endpoint.
type InMemoryRecorder struct {
	sessionsStarted       uint64
	loginsFailed          uint64
	sessionsRevoked       uint64
	billsCreated          uint64
	paymentsCreated       uint64
	paymentsUpdated       uint64
	paymentsDeleted       uint64
	reportsGenerated      uint64
	reportDurationCount   uint64
	reportDurationTotalNs int64
	auditEventsPublished  uint64
	auditEventsDropped    uint64
	auditEventsProcessed  uint64
	auditEventsFailed     uint64
	auditEventsSkipped    uint64
	auditBatchCount       uint64
	auditBatchSizeTotal   uint64
}

// NewInMemory returns a Recorder that stores counters in memory.
func NewInMemory() *InMemoryRecorder {
	return &InMemoryRecorder{}
}

// Snapshot returns a copy of the counters.
func (m *InMemoryRecorder) Snapshot() Snapshot {
	return Snapshot{
		SessionsStarted:       atomic.LoadUint64(&m.sessionsStarted),
		LoginsFailed:          atomic.LoadUint64(&m.loginsFailed),
		SessionsRevoked:       atomic.LoadUint64(&m.sessionsRevoked),
		BillsCreated:          atomic.LoadUint64(&m.billsCreated),
		PaymentsCreated:       atomic.LoadUint64(&m.paymentsCreated),
		PaymentsUpdated:       atomic.LoadUint64(&m.paymentsUpdated),
		PaymentsDeleted:       atomic.LoadUint64(&m.paymentsDeleted),
		ReportsGenerated:      atomic.LoadUint64(&m.reportsGenerated),
		ReportDurationCount:   atomic.LoadUint64(&m.reportDurationCount),
		ReportDurationTotalNs: atomic.LoadInt64(&m.reportDurationTotalNs),
		AuditEventsPublished:  atomic.LoadUint64(&m.auditEventsPublished),
		AuditEventsDropped:    atomic.LoadUint64(&m.auditEventsDropped),
		AuditEventsProcessed:  atomic.LoadUint64(&m.auditEventsProcessed),
		AuditEventsFailed:     atomic.LoadUint64(&m.auditEventsFailed),
		AuditEventsSkipped:    atomic.LoadUint64(&m.auditEventsSkipped),
		AuditBatchCount:       atomic.LoadUint64(&m.auditBatchCount),
		AuditBatchSizeTotal:   atomic.LoadUint64(&m.auditBatchSizeTotal),
	}
}

// IncSessionStarted increments the sessions started counter.
func (m *InMemoryRecorder) IncSessionStarted() {
	atomic.AddUint64(&m.sessionsStarted, 1)
}

// IncLoginFailed increments the failed logins counter.
func (m *InMemoryRecorder) IncLoginFailed() {
	atomic.AddUint64(&m.loginsFailed, 1)
}

// IncSessionRevoked increments the revoked sessions counter.
func (m *InMemoryRecorder) IncSessionRevoked() {
	atomic.AddUint64(&m.sessionsRevoked, 1)
}

// IncBillCreated increments the bills created counter.
func (m *InMemoryRecorder) IncBillCreated() {
	atomic.AddUint64(&m.billsCreated, 1)
}

// IncPaymentCreated increments the payments created counter.
func (m *InMemoryRecorder) IncPaymentCreated() {
	atomic.AddUint64(&m.paymentsCreated, 1)
}

// IncPaymentUpdated increments the payments updated counter.
func (m *InMemoryRecorder) IncPaymentUpdated() {
	atomic.AddUint64(&m.paymentsUpdated, 1)
}

// IncPaymentDeleted increments the payments deleted counter.
func (m *InMemoryRecorder) IncPaymentDeleted() {
	atomic.AddUint64(&m.paymentsDeleted, 1)
}

// IncReportGenerated increments the reports generated counter.
func (m *InMemoryRecorder) IncReportGenerated() {
	atomic.AddUint64(&m.reportsGenerated, 1)
}

// ObserveReportDuration records report generation duration.
func (m *InMemoryRecorder) ObserveReportDuration(duration time.Duration) {
	atomic.AddUint64(&m.reportDurationCount, 1)
	atomic.AddInt64(&m.reportDurationTotalNs, duration.Nanoseconds())
}

// IncAuditEventPublished increments publish counters by status.
func (m *InMemoryRecorder) IncAuditEventPublished(status string) {
	if status == "success" {
		atomic.AddUint64(&m.auditEventsPublished, 1)
		return
	}
	atomic.AddUint64(&m.auditEventsDropped, 1)
}

// IncAuditEventProcessed increments processing counters by status.
func (m *InMemoryRecorder) IncAuditEventProcessed(status string) {
	switch status {
	case "success":
		atomic.AddUint64(&m.auditEventsProcessed, 1)
	case "failed":
		atomic.AddUint64(&m.auditEventsFailed, 1)
	default:
		atomic.AddUint64(&m.auditEventsSkipped, 1)
	}
}

// ObserveAuditBatchSize records an audit batch size.
func (m *InMemoryRecorder) ObserveAuditBatchSize(size int) {
	atomic.AddUint64(&m.auditBatchCount, 1)
	atomic.AddUint64(&m.auditBatchSizeTotal, uint64(size))
}
