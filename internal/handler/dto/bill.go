package dto

import (
	"time"

	"github.com/billmate/billmate/internal/model"
)

// CreateBillRequest represents the request body for creating a bill.
type CreateBillRequest struct {
	Title       string    `json:"title" validate:"required,max=200"`
	Category    string    `json:"category" validate:"required,oneof=Electricity Gas Water Internet"`
	Amount      float64   `json:"amount" validate:"gte=0"`
	Location    string    `json:"location,omitempty" validate:"omitempty,max=200"`
	Description string    `json:"description,omitempty" validate:"omitempty,max=2000"`
	ImageURL    string    `json:"image_url,omitempty" validate:"omitempty,url,max=2048"`
	Date        time.Time `json:"date,omitempty"`
}

// Validate checks field-level rules.
func (r *CreateBillRequest) Validate() error { return checkStruct(r) }

// BillResponse represents a bill in API responses. Payable is evaluated
// server-side against the current calendar month.
type BillResponse struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Category     string    `json:"category"`
	Amount       float64   `json:"amount"`
	Location     string    `json:"location,omitempty"`
	Description  string    `json:"description,omitempty"`
	ImageURL     string    `json:"image_url,omitempty"`
	Date         time.Time `json:"date"`
	Payable      bool      `json:"payable"`
	PayableNote  string    `json:"payable_note,omitempty"`
	CreatorEmail string    `json:"creator_email,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// BillListResponse represents a bill catalog page.
type BillListResponse struct {
	Data  []BillResponse `json:"data"`
	Count int            `json:"count"`
}

// ToBillResponse converts a Bill model to BillResponse DTO.
func ToBillResponse(bill *model.Bill, payable bool) *BillResponse {
	note := ""
	if !payable {
		note = "Only bills in the current month can be paid"
	}
	return &BillResponse{
		ID:           bill.ID,
		Title:        bill.Title,
		Category:     string(bill.Category),
		Amount:       bill.Amount,
		Location:     bill.Location,
		Description:  bill.Description,
		ImageURL:     bill.ImageURL,
		Date:         bill.Date,
		Payable:      payable,
		PayableNote:  note,
		CreatorEmail: bill.CreatorEmail,
		CreatedAt:    bill.CreatedAt,
		UpdatedAt:    bill.UpdatedAt,
	}
}

// ToBillListResponse converts bills to a list DTO, evaluating payability
// per bill with the supplied rule.
func ToBillListResponse(bills []*model.Bill, payable func(*model.Bill) bool) *BillListResponse {
	data := make([]BillResponse, 0, len(bills))
	for _, b := range bills {
		data = append(data, *ToBillResponse(b, payable(b)))
	}
	return &BillListResponse{
		Data:  data,
		Count: len(data),
	}
}
