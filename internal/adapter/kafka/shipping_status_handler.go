package kafka

import (
	"context"
	"log/slog"

	"github.com/shoporbit/shop-api/internal/apperr"
	domain "github.com/shoporbit/shop-api/internal/entity"
	"github.com/shoporbit/shop-api/internal/usecase"
)

// ShippingStatusHandler applies carrier feed events through the same
// transition guard the HTTP surface uses.
type ShippingStatusHandler struct {
	Updater *usecase.UpdateShippingStatus
	Logger  *slog.Logger
}

func NewShippingStatusHandler(updater *usecase.UpdateShippingStatus, log *slog.Logger) *ShippingStatusHandler {
	return &ShippingStatusHandler{Updater: updater, Logger: log}
}

func (h *ShippingStatusHandler) Handle(ctx context.Context, ev usecase.ShippingStatusMsg) error {
	_, err := h.Updater.Execute(ctx, ev.OrderID, domain.ShippingStatus(ev.Status))
	if err == nil {
		return nil
	}

	// Repeats, unknown orders, and bad statuses from the feed are dropped:
	// retrying cannot make them valid.
	if apperr.IsKind(err, apperr.KindValidation) || apperr.IsKind(err, apperr.KindNotFound) {
		if h.Logger != nil {
			h.Logger.Warn("carrier event dropped",
				"order_id", ev.OrderID, "status", ev.Status, "reason", err)
		}
		return nil
	}
	return err
}
