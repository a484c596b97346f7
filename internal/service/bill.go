package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/billmate/billmate/internal/metrics"
	"github.com/billmate/billmate/internal/model"
	"github.com/billmate/billmate/internal/repository"
)

// Bill service errors.
var (
	ErrBillNotFound    = errors.New("bill not found")
	ErrInvalidCategory = errors.New("invalid bill category")
	ErrNegativeAmount  = errors.New("amount must not be negative")
	ErrMissingTitle    = errors.New("title is required")
	ErrBillNotPayable  = errors.New("only current month bills can be paid")
)

// BillService handles bill catalog business logic.
type BillService struct {
	bills       BillStore
	recentLimit int
	metrics     metrics.Recorder
	now         func() time.Time
}

// NewBillService creates a new BillService.
func NewBillService(bills BillStore, recentLimit int, recorder metrics.Recorder) *BillService {
	if recorder == nil {
		recorder = metrics.NewNoop()
	}
	if recentLimit <= 0 {
		recentLimit = 6
	}
	return &BillService{
		bills:       bills,
		recentLimit: recentLimit,
		metrics:     recorder,
		now:         time.Now,
	}
}

// CreateBillInput defines input for creating a bill.
type CreateBillInput struct {
	Title        string
	Category     string
	Amount       float64
	Location     string
	Description  string
	ImageURL     string
	Date         time.Time
	CreatorEmail string
}

// CreateBill validates and stores a new bill.
func (s *BillService) CreateBill(ctx context.Context, input CreateBillInput) (*model.Bill, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrMissingTitle
	}

	category := model.Category(input.Category)
	if !category.IsValid() {
		return nil, ErrInvalidCategory
	}

	if input.Amount < 0 {
		return nil, ErrNegativeAmount
	}

	date := input.Date
	if date.IsZero() {
		date = s.now().UTC()
	}

	now := s.now().UTC()
	bill := &model.Bill{
		ID:           generateULID(),
		Title:        title,
		Category:     category,
		Amount:       input.Amount,
		Location:     strings.TrimSpace(input.Location),
		Description:  input.Description,
		ImageURL:     input.ImageURL,
		Date:         date,
		CreatorEmail: input.CreatorEmail,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.bills.CreateBill(ctx, bill); err != nil {
		return nil, fmt.Errorf("failed to create bill: %w", err)
	}

	s.metrics.IncBillCreated()

	return bill, nil
}

// GetBill retrieves a bill by ID. Absence surfaces as ErrBillNotFound,
// which callers route to the not-found view, never to a generic error.
func (s *BillService) GetBill(ctx context.Context, id string) (*model.Bill, error) {
	bill, err := s.bills.GetBillByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrBillNotFound) {
			return nil, ErrBillNotFound
		}
		return nil, fmt.Errorf("failed to get bill: %w", err)
	}

	return bill, nil
}

// ListBills returns the catalog, optionally filtered by category,
// most recent first.
func (s *BillService) ListBills(ctx context.Context, category string) ([]*model.Bill, error) {
	var cat model.Category
	if category != "" {
		cat = model.Category(category)
		if !cat.IsValid() {
			return nil, ErrInvalidCategory
		}
	}

	bills, err := s.bills.ListBills(ctx, cat)
	if err != nil {
		return nil, fmt.Errorf("failed to list bills: %w", err)
	}

	return bills, nil
}

// RecentBills returns the newest bills for the home view.
func (s *BillService) RecentBills(ctx context.Context) ([]*model.Bill, error) {
	bills, err := s.bills.RecentBills(ctx, s.recentLimit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent bills: %w", err)
	}

	return bills, nil
}

// Payable evaluates the eligibility rule for a bill at the current instant.
func (s *BillService) Payable(bill *model.Bill) bool {
	return bill.IsPayable(s.now())
}
