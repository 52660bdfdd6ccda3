package usecase

import (
	"context"

	"github.com/shoporbit/shop-api/internal/apperr"
	domain "github.com/shoporbit/shop-api/internal/entity"
)

// ItemRequest is one requested (product, quantity) pair before pricing.
type ItemRequest struct {
	ProductID string
	Quantity  int
}

// BuildLineItems resolves every request against the catalog and freezes a
// priced snapshot per line. All-or-nothing: one unknown product rejects the
// whole batch, and nothing is persisted.
//
// Quantity bounds are checked before any catalog access so a malformed
// request never costs a lookup.
func BuildLineItems(ctx context.Context, catalog CatalogReader, reqs []ItemRequest) ([]domain.LineItem, error) {
	if len(reqs) == 0 {
		return nil, apperr.Wrap(apperr.Validation("Order items are required"), domain.ErrEmptyItems)
	}
	for _, r := range reqs {
		if r.ProductID == "" {
			return nil, apperr.Validation("Item productId is required")
		}
		if r.Quantity < 1 {
			return nil, apperr.Wrap(apperr.Validation("Item quantity must be at least 1"), domain.ErrBadQuantity)
		}
	}

	ids := make([]string, 0, len(reqs))
	for _, r := range reqs {
		ids = append(ids, r.ProductID)
	}

	products, err := catalog.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	items := make([]domain.LineItem, 0, len(reqs))
	for _, r := range reqs {
		p, ok := products[r.ProductID]
		if !ok {
			return nil, apperr.Wrap(apperr.NotFound("One or more product IDs are invalid"), domain.ErrUnknownProduct)
		}
		if p.OwnerID == "" {
			return nil, apperr.Wrap(apperr.Validation("Product %q has no owner", p.Name), domain.ErrMissingOwner)
		}
		items = append(items, domain.LineItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			OwnerID:     p.OwnerID,
			Quantity:    r.Quantity,
			UnitCost:    p.Cost,
			LineCost:    int64(r.Quantity) * p.Cost,
		})
	}
	return items, nil
}
