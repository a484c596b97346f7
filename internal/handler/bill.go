package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/billmate/billmate/internal/auth"
	"github.com/billmate/billmate/internal/handler/dto"
	"github.com/billmate/billmate/internal/service"
)

// BillHandler handles HTTP requests for the bill catalog.
type BillHandler struct {
	svc    *service.BillService
	logger *slog.Logger
}

// NewBillHandler creates a new BillHandler.
func NewBillHandler(svc *service.BillService, logger *slog.Logger) *BillHandler {
	return &BillHandler{
		svc:    svc,
		logger: logger,
	}
}

// List handles GET /api/v1/bills. An optional category query parameter
// filters the catalog.
func (h *BillHandler) List(w http.ResponseWriter, r *http.Request) {
	bills, err := h.svc.ListBills(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToBillListResponse(bills, h.svc.Payable))
}

// Recent handles GET /api/v1/bills/recent.
func (h *BillHandler) Recent(w http.ResponseWriter, r *http.Request) {
	bills, err := h.svc.RecentBills(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToBillListResponse(bills, h.svc.Payable))
}

// Get handles GET /api/v1/bills/{id}.
func (h *BillHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "MISSING_ID", "Bill ID is required")
		return
	}

	bill, err := h.svc.GetBill(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.ToBillResponse(bill, h.svc.Payable(bill)))
}

// Create handles POST /api/v1/bills.
func (h *BillHandler) Create(w http.ResponseWriter, r *http.Request) {
	session := auth.MustSessionFromContext(r.Context())

	var req dto.CreateBillRequest
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

	bill, err := h.svc.CreateBill(r.Context(), service.CreateBillInput{
		Title:        req.Title,
		Category:     req.Category,
		Amount:       req.Amount,
		Location:     req.Location,
		Description:  req.Description,
		ImageURL:     req.ImageURL,
		Date:         req.Date,
		CreatorEmail: session.Email,
	})
	if err != nil {
		h.handleServiceError(w, err)
		return
	}

	h.logger.Info("bill_created",
		"bill_id", bill.ID,
		"category", bill.Category,
	)

	writeJSON(w, http.StatusCreated, dto.ToBillResponse(bill, h.svc.Payable(bill)))
}

// handleServiceError maps bill service errors to HTTP responses.
func (h *BillHandler) handleServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrBillNotFound):
		writeError(w, http.StatusNotFound, "BILL_NOT_FOUND", "Bill not found")
	case errors.Is(err, service.ErrInvalidCategory):
		writeError(w, http.StatusBadRequest, "INVALID_CATEGORY", "Category must be Electricity, Gas, Water or Internet")
	case errors.Is(err, service.ErrMissingTitle):
		writeError(w, http.StatusBadRequest, "MISSING_TITLE", "Title is required")
	case errors.Is(err, service.ErrNegativeAmount):
		writeError(w, http.StatusBadRequest, "NEGATIVE_AMOUNT", "Amount must not be negative")
	default:
		h.logger.Error("internal_error", "error", err)
		writeError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "An internal error occurred")
	}
}
