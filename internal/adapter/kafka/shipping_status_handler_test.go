package kafka

import (
	"context"
	"sync"
	"testing"

	domain "github.com/shoporbit/shop-api/internal/entity"
	"github.com/shoporbit/shop-api/internal/usecase"
)

type stubOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
}

func (r *stubOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.orders[o.ID] = o
	return nil
}

func (r *stubOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, usecase.ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (r *stubOrderRepo) GetByCodeForCustomer(ctx context.Context, code, customerID string) (*domain.Order, error) {
	return nil, usecase.ErrNotFound
}

func (r *stubOrderRepo) List(ctx context.Context, f usecase.OrderFilter) ([]usecase.OrderSummary, int, error) {
	return nil, 0, nil
}

func (r *stubOrderRepo) UpdateShippingStatus(ctx context.Context, id string, to domain.ShippingStatus) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return usecase.ErrNotFound
	}
	o.ShippingStatus = to
	return nil
}

func newHandler(orders map[string]*domain.Order) (*ShippingStatusHandler, *stubOrderRepo) {
	repo := &stubOrderRepo{orders: orders}
	uc := usecase.NewUpdateShippingStatus(repo, nil, nil, nil, nil)
	return NewShippingStatusHandler(uc, nil), repo
}

func TestHandleAppliesCarrierTransition(t *testing.T) {
	h, repo := newHandler(map[string]*domain.Order{
		"o1": {ID: "o1", OrderCode: "ORD-AB12CD34", ShippingStatus: domain.ShippingPending},
	})

	err := h.Handle(context.Background(), usecase.ShippingStatusMsg{OrderID: "o1", Status: "shipped"})
	if err != nil {
		t.Fatalf("handle: %v", err)
	}
	got, _ := repo.GetByID(context.Background(), "o1")
	if got.ShippingStatus != domain.ShippingShipped {
		t.Errorf("status = %s, want shipped", got.ShippingStatus)
	}
}

func TestHandleDropsUnknownOrder(t *testing.T) {
	h, _ := newHandler(map[string]*domain.Order{})

	err := h.Handle(context.Background(), usecase.ShippingStatusMsg{OrderID: "missing", Status: "shipped"})
	if err != nil {
		t.Fatalf("unknown order must be dropped, not redelivered: %v", err)
	}
}

func TestHandleDropsRepeatAndBadStatus(t *testing.T) {
	h, _ := newHandler(map[string]*domain.Order{
		"o1": {ID: "o1", ShippingStatus: domain.ShippingShipped},
	})

	if err := h.Handle(context.Background(), usecase.ShippingStatusMsg{OrderID: "o1", Status: "shipped"}); err != nil {
		t.Fatalf("repeat status must be dropped: %v", err)
	}
	if err := h.Handle(context.Background(), usecase.ShippingStatusMsg{OrderID: "o1", Status: "teleported"}); err != nil {
		t.Fatalf("unrecognized status must be dropped: %v", err)
	}
}
