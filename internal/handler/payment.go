package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/billmate/billmate/internal/auth"
	"github.com/billmate/billmate/internal/handler/dto"
	"github.com/billmate/billmate/internal/metrics"
	"github.com/billmate/billmate/internal/report"
	"github.com/billmate/billmate/internal/service"
)

// PaymentHandler handles HTTP requests for payment records. Every route
// is session-scoped: the owning email always comes from the session.
type PaymentHandler struct {
	svc     *service.PaymentService
	logger  *slog.Logger
	metrics metrics.Recorder
}

// NewPaymentHandler creates a new PaymentHandler.
func NewPaymentHandler(svc *service.PaymentService, logger *slog.Logger, recorder metrics.Recorder) *PaymentHandler {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	return &PaymentHandler{
		svc:     svc,
		logger:  logger,
		metrics: recorder,
	}
}

// Pay handles POST /api/v1/payments.
func (h *PaymentHandler) Pay(w http.ResponseWriter, r *http.Request) {
	session := auth.MustSessionFromContext(r.Context())

	var req dto.PayBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		if !writeValidationError(w, err) {
			h.handleServiceError(w, err)
		}
		return
	}

	payment, err := h.svc.Pay(r.Context(), service.PayInput{
		BillID:    req.BillID,
		Email:     session.Email,
		PayerName: req.PayerName,
		Address:   req.Address,
		Phone:     req.Phone,
		Note:      req.Note,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("payment_created",
		"payment_id", payment.ID,
		"bill_id", payment.BillID,
	)

	writeJSON(w, http.StatusCreated, dto.ToPaymentResponse(payment))
}

// List handles GET /api/v1/payments.
func (h *PaymentHandler) List(w http.ResponseWriter, r *http.Request) {
	session := auth.MustSessionFromContext(r.Context())

	list, err := h.svc.ListPayments(r.Context(), session.Email)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToPaymentListResponse(list.Payments, list.Count, list.Total))
}

// Update handles PATCH /api/v1/payments/{id}.
func (h *PaymentHandler) Update(w http.ResponseWriter, r *http.Request) {
	session := auth.MustSessionFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Payment ID is required")
		return
	}

	var req dto.UpdatePaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		if !writeValidationError(w, err) {
			h.handleServiceError(w, err)
		}
		return
	}

	payment, err := h.svc.UpdatePayment(r.Context(), session.Email, id, service.UpdatePaymentInput{
		PayerName: req.PayerName,
		Address:   req.Address,
		Phone:     req.Phone,
		Amount:    req.Amount,
		Date:      req.Date,
		Note:      req.Note,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("payment_updated", "payment_id", payment.ID)

	writeJSON(w, http.StatusOK, dto.ToPaymentResponse(payment))
}

// Delete handles DELETE /api/v1/payments/{id}.
func (h *PaymentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	session := auth.MustSessionFromContext(r.Context())

	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Payment ID is required")
		return
	}

	if err := h.svc.DeletePayment(r.Context(), session.Email, id); err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("payment_deleted", "payment_id", id)

	w.WriteHeader(http.StatusNoContent)
}

// Report handles GET /api/v1/payments/report. It streams the user's
// payment history as a PDF attachment.
func (h *PaymentHandler) Report(w http.ResponseWriter, r *http.Request) {
	session := auth.MustSessionFromContext(r.Context())

	list, err := h.svc.ListPayments(r.Context(), session.Email)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	start := time.Now()
	doc, err := report.PaymentReport(list.Payments, start)
	if err != nil {
		h.logger.Error("report_render_failed", "error", err)
		writeError(w, http.StatusInternalServerError, "REPORT_FAILED", "Failed to generate report")
		return
	}

	h.metrics.IncReportGenerated()
	h.metrics.ObserveReportDuration(time.Since(start))

	h.logger.Info("report_generated",
		"payments", list.Count,
		"bytes", len(doc),
	)

	filename := fmt.Sprintf("my-bills-%s.pdf", start.UTC().Format("2006-01-02"))
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.Header().Set("Content-Length", fmt.Sprintf("%d", len(doc)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc)
}

// handleServiceError maps payment service errors to HTTP responses.
func (h *PaymentHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrPaymentNotFound):
		writeError(w, http.StatusNotFound, "PAYMENT_NOT_FOUND", "Payment not found")
	case errors.Is(err, service.ErrBillNotFound):
		writeError(w, http.StatusNotFound, "BILL_NOT_FOUND", "Bill not found")
	case errors.Is(err, service.ErrBillNotPayable):
		writeError(w, http.StatusConflict, "BILL_NOT_PAYABLE", "Only current month bills can be paid")
	case errors.Is(err, service.ErrMissingPayer):
		writeError(w, http.StatusBadRequest, "MISSING_PAYER", "Payer name, address and phone are required")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
