package usecase

import (
	"context"
	"errors"

	"github.com/shoporbit/shop-api/internal/apperr"
	domain "github.com/shoporbit/shop-api/internal/entity"
)

// OrderQueries groups the read paths over orders. The ownership gate lives
// here: a customer can only ever see their own orders, while admins see all.
type OrderQueries struct {
	repo  OrderRepo
	cache StatusCache
}

func NewOrderQueries(repo OrderRepo, cache StatusCache) *OrderQueries {
	return &OrderQueries{repo: repo, cache: cache}
}

// Status returns the order's current shipping status. Admin reads are served
// from the hot cache when possible; customer reads always load the order so
// the ownership gate applies. A repo hit re-warms the cache.
func (q *OrderQueries) Status(ctx context.Context, id, callerID string, callerRole domain.Role) (string, error) {
	if callerRole == domain.RoleAdmin && q.cache != nil {
		if s, err := q.cache.GetStatus(ctx, id); err == nil {
			return s, nil
		}
	}

	order, err := q.GetByID(ctx, id, callerID, callerRole)
	if err != nil {
		return "", err
	}
	if q.cache != nil {
		_ = q.cache.SetStatus(ctx, order.ID, string(order.ShippingStatus))
	}
	return string(order.ShippingStatus), nil
}

// GetByID returns the order, hiding other customers' orders from
// non-admin callers as not-found rather than forbidden.
func (q *OrderQueries) GetByID(ctx context.Context, id string, callerID string, callerRole domain.Role) (*domain.Order, error) {
	order, err := q.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("Order not found")
		}
		return nil, err
	}
	if callerRole != domain.RoleAdmin && order.CustomerID != callerID {
		return nil, apperr.NotFound("Order not found")
	}
	return order, nil
}

// GetMyOrderByCode resolves a customer's own order by its display code.
func (q *OrderQueries) GetMyOrderByCode(ctx context.Context, code, customerID string) (*domain.Order, error) {
	order, err := q.repo.GetByCodeForCustomer(ctx, code, customerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("Order not found")
		}
		return nil, err
	}
	return order, nil
}

// List pages through orders. Non-admin callers are always scoped to their
// own customer id regardless of the requested filter.
func (q *OrderQueries) List(ctx context.Context, f OrderFilter, callerID string, callerRole domain.Role) ([]OrderSummary, int, error) {
	if callerRole != domain.RoleAdmin {
		f.CustomerID = callerID
	}
	f.Page, f.Limit = clampPage(f.Page, f.Limit)
	if f.ShippingStatus != "" && !domain.ShippingStatus(f.ShippingStatus).Valid() {
		return nil, 0, apperr.Validation("Invalid shipping status %q", f.ShippingStatus)
	}
	return q.repo.List(ctx, f)
}
