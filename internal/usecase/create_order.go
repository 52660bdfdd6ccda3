package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shoporbit/shop-api/internal/apperr"
	domain "github.com/shoporbit/shop-api/internal/entity"
	"github.com/shoporbit/shop-api/internal/logging"
)

// codeRetries bounds duplicate-code retries during creation. With 32 bits of
// entropy one retry is already astronomically unlikely.
const codeRetries = 3

type CreateOrderInput struct {
	CustomerID string
	Items      []ItemRequest
}

type CreateOrder struct {
	repo    OrderRepo
	catalog CatalogReader
	cache   StatusCache
	genCode func() string
	nowFunc func() time.Time
}

func NewCreateOrder(repo OrderRepo, catalog CatalogReader, cache StatusCache) *CreateOrder {
	return &CreateOrder{
		repo:    repo,
		catalog: catalog,
		cache:   cache,
		genCode: NewOrderCode,
		nowFunc: time.Now,
	}
}

// Execute prices the requested items against the live catalog, assigns a
// fresh order code and persists the aggregate. The snapshot and the insert
// are not one transaction: a product deleted mid-flight surfaces as an
// unknown-product failure, which the client may retry.
func (uc *CreateOrder) Execute(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	if in.CustomerID == "" {
		return nil, apperr.Validation("Customer is required")
	}

	items, err := BuildLineItems(ctx, uc.catalog, in.Items)
	if err != nil {
		return nil, err
	}

	now := uc.nowFunc()
	order := &domain.Order{
		ID:             uuid.NewString(),
		CustomerID:     in.CustomerID,
		Items:          items,
		ShippingStatus: domain.ShippingPending,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := order.Validate(); err != nil {
		return nil, apperr.Wrap(apperr.Validation("%s", err.Error()), err)
	}

	// The code is generated exactly once per successful persistence; on the
	// rare unique-key collision we mint a new one and try again.
	for attempt := 0; attempt < codeRetries; attempt++ {
		order.OrderCode = uc.genCode()
		err = uc.repo.Create(ctx, order)
		if err == nil {
			break
		}
		if !errors.Is(err, ErrDuplicateOrderCode) {
			return nil, err
		}
		logging.FromCtx(ctx).Warn("order code collision, regenerating",
			"order_code", order.OrderCode, "attempt", attempt+1)
	}
	if err != nil {
		return nil, apperr.Wrap(apperr.Conflict("Could not allocate a unique order id"), err)
	}

	if uc.cache != nil {
		_ = uc.cache.SetStatus(ctx, order.ID, string(order.ShippingStatus))
	}
	return order, nil
}
