// Package metrics provides lightweight hooks for instrumentation.
package metrics

import "time"

// Recorder captures metric events for the application.
// Implementations can expose these to Prometheus, StatsD, etc.
type Recorder interface {
	// Session metrics
	IncSessionStarted()
	IncLoginFailed()
	IncSessionRevoked()

	// Catalog and payment metrics
	IncBillCreated()
	IncPaymentCreated()
	IncPaymentUpdated()
	IncPaymentDeleted()

	// Report export metrics
	IncReportGenerated()
	ObserveReportDuration(duration time.Duration)

	// Audit pipeline metrics
	IncAuditEventPublished(status string) // status: "success" or "dropped"
	IncAuditEventProcessed(status string) // status: "success", "failed", "skipped"
	ObserveAuditBatchSize(size int)
}

// Snapshotter exposes a snapshot of current metrics.
type Snapshotter interface {
	Snapshot() Snapshot
}
