package service

import (
	"context"
	"sync"
	"time"

	"github.com/billmate/billmate/internal/model"
	"github.com/billmate/billmate/internal/repository"
)

type fakeUserStore struct {
	mu    sync.Mutex
	users map[string]*model.User // keyed by email
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*model.User)}
}

func (f *fakeUserStore) CreateUser(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, exists := f.users[user.Email]; exists {
		return repository.ErrEmailExists
	}
	f.users[user.Email] = user
	return nil
}

func (f *fakeUserStore) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[email]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	return user, nil
}

func (f *fakeUserStore) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, user := range f.users {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (f *fakeUserStore) UpdateUserProfile(ctx context.Context, user *model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.Email] = user
	return nil
}

type fakeSessionStore struct {
	mu       sync.Mutex
	sessions map[string]*model.Session
	revoked  map[string]bool
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{
		sessions: make(map[string]*model.Session),
		revoked:  make(map[string]bool),
	}
}

func (f *fakeSessionStore) SetSession(ctx context.Context, session *model.Session, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sessions[session.TokenID] = session
	return nil
}

func (f *fakeSessionStore) DeleteSession(ctx context.Context, tokenID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.sessions, tokenID)
	return nil
}

func (f *fakeSessionStore) RevokeSession(ctx context.Context, tokenID string, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.revoked[tokenID] = true
	return nil
}

type fakeBillStore struct {
	mu    sync.Mutex
	bills map[string]*model.Bill
}

func newFakeBillStore() *fakeBillStore {
	return &fakeBillStore{bills: make(map[string]*model.Bill)}
}

func (f *fakeBillStore) CreateBill(ctx context.Context, bill *model.Bill) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bills[bill.ID] = bill
	return nil
}

func (f *fakeBillStore) GetBillByID(ctx context.Context, id string) (*model.Bill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	bill, ok := f.bills[id]
	if !ok {
		return nil, repository.ErrBillNotFound
	}
	return bill, nil
}

func (f *fakeBillStore) ListBills(ctx context.Context, category model.Category) ([]*model.Bill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Bill
	for _, bill := range f.bills {
		if category != "" && bill.Category != category {
			continue
		}
		out = append(out, bill)
	}
	return out, nil
}

func (f *fakeBillStore) RecentBills(ctx context.Context, limit int) ([]*model.Bill, error) {
	bills, _ := f.ListBills(ctx, "")
	if len(bills) > limit {
		bills = bills[:limit]
	}
	return bills, nil
}

type fakePaymentStore struct {
	mu       sync.Mutex
	payments map[string]*model.Payment
	failNext error
}

func newFakePaymentStore() *fakePaymentStore {
	return &fakePaymentStore{payments: make(map[string]*model.Payment)}
}

func (f *fakePaymentStore) takeFailure() error {
	err := f.failNext
	f.failNext = nil
	return err
}

func (f *fakePaymentStore) CreatePayment(ctx context.Context, payment *model.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return err
	}
	f.payments[payment.ID] = payment
	return nil
}

func (f *fakePaymentStore) GetPayment(ctx context.Context, id, email string) (*model.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	payment, ok := f.payments[id]
	if !ok || payment.Email != email {
		return nil, repository.ErrPaymentNotFound
	}
	clone := *payment
	return &clone, nil
}

func (f *fakePaymentStore) ListPaymentsByEmail(ctx context.Context, email string) ([]*model.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.Payment
	for _, p := range f.payments {
		if p.Email == email {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePaymentStore) UpdatePayment(ctx context.Context, payment *model.Payment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return err
	}
	stored, ok := f.payments[payment.ID]
	if !ok || stored.Email != payment.Email {
		return repository.ErrPaymentNotFound
	}
	f.payments[payment.ID] = payment
	return nil
}

func (f *fakePaymentStore) DeletePayment(ctx context.Context, id, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.takeFailure(); err != nil {
		return err
	}
	stored, ok := f.payments[id]
	if !ok || stored.Email != email {
		return repository.ErrPaymentNotFound
	}
	delete(f.payments, id)
	return nil
}

type fakePublisher struct {
	mu     sync.Mutex
	events []*model.PaymentEvent
}

func (f *fakePublisher) PublishAsync(event *model.PaymentEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

func (f *fakePublisher) kinds() []model.PaymentEventKind {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.PaymentEventKind, 0, len(f.events))
	for _, e := range f.events {
		out = append(out, e.Kind)
	}
	return out
}
