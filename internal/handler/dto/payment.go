package dto

import (
	"time"

	"github.com/billmate/billmate/internal/model"
)

// PayBillRequest represents the request body for paying a bill. The amount
// is carried over from the bill server-side and is not accepted here.
type PayBillRequest struct {
	BillID    string `json:"bill_id" validate:"required"`
	PayerName string `json:"payer_name" validate:"required,max=120"`
	Address   string `json:"address" validate:"required,max=300"`
	Phone     string `json:"phone" validate:"required,max=40"`
	Note      string `json:"note,omitempty" validate:"omitempty,max=2000"`
}

// Validate checks field-level rules.
func (r *PayBillRequest) Validate() error { return checkStruct(r) }

// UpdatePaymentRequest represents the request body for patching a payment.
// Absent fields are left unchanged.
type UpdatePaymentRequest struct {
	PayerName *string    `json:"payer_name,omitempty" validate:"omitempty,max=120"`
	Address   *string    `json:"address,omitempty" validate:"omitempty,max=300"`
	Phone     *string    `json:"phone,omitempty" validate:"omitempty,max=40"`
	Amount    *float64   `json:"amount,omitempty" validate:"omitempty,gte=0"`
	Date      *time.Time `json:"date,omitempty"`
	Note      *string    `json:"note,omitempty" validate:"omitempty,max=2000"`
}

// Validate checks field-level rules.
func (r *UpdatePaymentRequest) Validate() error { return checkStruct(r) }

// PaymentResponse represents a payment record in API responses.
type PaymentResponse struct {
	ID        string    `json:"id"`
	BillID    string    `json:"bill_id"`
	Email     string    `json:"email"`
	PayerName string    `json:"payer_name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	Amount    float64   `json:"amount"`
	Date      time.Time `json:"date"`
	Note      string    `json:"note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PaymentListResponse is a user's payment history with its aggregates.
type PaymentListResponse struct {
	Data  []PaymentResponse `json:"data"`
	Count int               `json:"count"`
	Total float64           `json:"total"`
}

// ToPaymentResponse converts a Payment model to PaymentResponse DTO.
func ToPaymentResponse(payment *model.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:        payment.ID,
		BillID:    payment.BillID,
		Email:     payment.Email,
		PayerName: payment.PayerName,
		Address:   payment.Address,
		Phone:     payment.Phone,
		Amount:    payment.Amount.Float64(),
		Date:      payment.Date,
		Note:      payment.Note,
		CreatedAt: payment.CreatedAt,
		UpdatedAt: payment.UpdatedAt,
	}
}

// ToPaymentListResponse converts a payment history page to its DTO.
func ToPaymentListResponse(payments []*model.Payment, count int, total float64) *PaymentListResponse {
	data := make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		data = append(data, *ToPaymentResponse(p))
	}
	return &PaymentListResponse{
		Data:  data,
		Count: count,
		Total: total,
	}
}
