package handler

import (
	"fmt"
	"net/http"

	"github.com/billmate/billmate/internal/metrics"
)

// MetricsHandler exposes in-memory metrics.
type MetricsHandler struct {
	snapshotter metrics.Snapshotter
}

// NewMetricsHandler creates a new MetricsHandler.
func NewMetricsHandler(snapshotter metrics.Snapshotter) *MetricsHandler {
	return &MetricsHandler{snapshotter: snapshotter}
}

// Metrics returns metrics in Prometheus exposition format.
func (h *MetricsHandler) Metrics(w http.ResponseWriter, r *http.Request) {
	if h.snapshotter == nil {
		w.WriteHeader(http.StatusServiceUnavailable)
		return
	}

	snap := h.snapshotter.Snapshot()

	w.Header().Set("Content-Type", "text/plain; version=0.0.4")

	writeMetric(w, "billmate_sessions_started_total %d\n", snap.SessionsStarted)
	writeMetric(w, "billmate_logins_failed_total %d\n", snap.LoginsFailed)
	writeMetric(w, "billmate_sessions_revoked_total %d\n", snap.SessionsRevoked)

	writeMetric(w, "billmate_bills_created_total %d\n", snap.BillsCreated)
	writeMetric(w, "billmate_payments_created_total %d\n", snap.PaymentsCreated)
	writeMetric(w, "billmate_payments_updated_total %d\n", snap.PaymentsUpdated)
	writeMetric(w, "billmate_payments_deleted_total %d\n", snap.PaymentsDeleted)

	writeMetric(w, "billmate_reports_generated_total %d\n", snap.ReportsGenerated)
	writeMetric(w, "billmate_report_duration_seconds_count %d\n", snap.ReportDurationCount)
	writeMetric(w, "billmate_report_duration_seconds_sum %.6f\n", float64(snap.ReportDurationTotalNs)/1e9)

	writeMetric(w, "billmate_audit_events_published_total{status=\"success\"} %d\n", snap.AuditEventsPublished)
	writeMetric(w, "billmate_audit_events_published_total{status=\"dropped\"} %d\n", snap.AuditEventsDropped)

	writeMetric(w, "billmate_audit_events_processed_total{status=\"success\"} %d\n", snap.AuditEventsProcessed)
	writeMetric(w, "billmate_audit_events_processed_total{status=\"failed\"} %d\n", snap.AuditEventsFailed)
	writeMetric(w, "billmate_audit_events_processed_total{status=\"skipped\"} %d\n", snap.AuditEventsSkipped)

	writeMetric(w, "billmate_audit_batches_total %d\n", snap.AuditBatchCount)
	writeMetric(w, "billmate_audit_batch_size_sum %d\n", snap.AuditBatchSizeTotal)
}

func writeMetric(w http.ResponseWriter, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}
