package metrics

import "time"

// NoopRecorder implements Recorder with no-op methods.
type NoopRecorder struct{}

// NewNoop returns a Recorder that discards all metrics.
func NewNoop() Recorder {
	return &NoopRecorder{}
}

// IncSessionStarted is a no-op.
func (n *NoopRecorder) IncSessionStarted() {}

// IncLoginFailed is a no-op.
func (n *NoopRecorder) IncLoginFailed() {}

// IncSessionRevoked is a no-op.
func (n *NoopRecorder) IncSessionRevoked() {}

// IncBillCreated is a no-op.
func (n *NoopRecorder) IncBillCreated() {}

// IncPaymentCreated is a no-op.
func (n *NoopRecorder) IncPaymentCreated() {}

// IncPaymentUpdated is a no-op.
func (n *NoopRecorder) IncPaymentUpdated() {}

// IncPaymentDeleted is a no-op.
func (n *NoopRecorder) IncPaymentDeleted() {}

// IncReportGenerated is a no-op.
func (n *NoopRecorder) IncReportGenerated() {}

// ObserveReportDuration is a no-op.
func (n *NoopRecorder) ObserveReportDuration(duration time.Duration) {}

// IncAuditEventPublished is a no-op.
func (n *NoopRecorder) IncAuditEventPublished(status string) {}

// IncAuditEventProcessed is a no-op.
func (n *NoopRecorder) IncAuditEventProcessed(status string) {}

// ObserveAuditBatchSize is a no-op.
func (n *NoopRecorder) ObserveAuditBatchSize(size int) {}
