package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shoporbit/shop-api/internal/apperr"
	domain "github.com/shoporbit/shop-api/internal/entity"
	"github.com/shoporbit/shop-api/internal/logging"
)

type UpdateShippingStatus struct {
	repo     OrderRepo
	users    UserRepo
	cache    StatusCache
	notifier Notifier
	mailq    MailQueue
	nowFunc  func() time.Time
}

func NewUpdateShippingStatus(repo OrderRepo, users UserRepo, cache StatusCache, notifier Notifier, mailq MailQueue) *UpdateShippingStatus {
	return &UpdateShippingStatus{
		repo:     repo,
		users:    users,
		cache:    cache,
		notifier: notifier,
		mailq:    mailq,
		nowFunc:  time.Now,
	}
}

// Execute applies a shipping-status transition. The target must be a
// recognized status and must differ from the current one; the expected
// pending → shipped → delivered ordering is deliberately not enforced.
// Administrative authority is checked by the transport-layer authz gate.
//
// Notification and cache writes after the persist are best-effort: their
// failure never fails the status update.
func (uc *UpdateShippingStatus) Execute(ctx context.Context, orderID string, to domain.ShippingStatus) (*domain.Order, error) {
	if !to.Valid() {
		return nil, apperr.Validation("Invalid shipping status %q", string(to))
	}

	order, err := uc.repo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("Order not found")
		}
		return nil, err
	}
	if order.ShippingStatus == to {
		return nil, apperr.Validation("Order is already %s", string(to))
	}

	if err := uc.repo.UpdateShippingStatus(ctx, order.ID, to); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("Order not found")
		}
		return nil, err
	}
	order.ShippingStatus = to
	order.UpdatedAt = uc.nowFunc()

	uc.fanOut(ctx, order)
	return order, nil
}

func (uc *UpdateShippingStatus) fanOut(ctx context.Context, order *domain.Order) {
	l := logging.FromCtx(ctx)

	if uc.cache != nil {
		if err := uc.cache.SetStatus(ctx, order.ID, string(order.ShippingStatus)); err != nil {
			l.Warn("status cache write failed", "order_id", order.ID, "err", err)
		}
	}

	ev := Event{
		Title:   "Shipping update",
		Message: "Your order " + order.OrderCode + " is now " + string(order.ShippingStatus),
	}
	if uc.notifier != nil {
		uc.notifier.Notify(order.CustomerID, ev)
	}

	if uc.mailq != nil && uc.users != nil {
		customer, err := uc.users.GetByID(ctx, order.CustomerID)
		if err != nil {
			l.Warn("shipping mail skipped, customer lookup failed", "order_id", order.ID, "err", err)
			return
		}
		job := MailJob{
			To:      customer.Email,
			Subject: ev.Title,
			HTML:    "<div><h1>" + ev.Title + "</h1><p>" + ev.Message + "</p></div>",
		}
		if err := uc.mailq.Enqueue(ctx, job); err != nil {
			l.Warn("shipping mail enqueue failed", "order_id", order.ID, "err", err)
		}
	}
}
