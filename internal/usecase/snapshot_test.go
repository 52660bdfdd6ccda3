package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shoporbit/shop-api/internal/apperr"
	domain "github.com/shoporbit/shop-api/internal/entity"
)

func TestBuildLineItems_FreezesCosts(t *testing.T) {
	catalog := newFakeCatalog(
		&domain.Product{ID: "p1", Name: "Keyboard", Cost: 10, OwnerID: "seller-1"},
		&domain.Product{ID: "p2", Name: "Mouse", Cost: 5, OwnerID: "seller-2"},
	)

	items, err := BuildLineItems(context.Background(), catalog, []ItemRequest{
		{ProductID: "p1", Quantity: 2},
		{ProductID: "p2", Quantity: 3},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].LineCost != 20 {
		t.Errorf("expected line cost 20, got %d", items[0].LineCost)
	}
	if items[1].LineCost != 15 {
		t.Errorf("expected line cost 15, got %d", items[1].LineCost)
	}
	if items[0].ProductName != "Keyboard" || items[0].OwnerID != "seller-1" {
		t.Errorf("snapshot fields not populated: %+v", items[0])
	}

	// Price drift after the snapshot must not change the frozen costs.
	catalog.products["p1"].Cost = 999
	if items[0].UnitCost != 10 {
		t.Errorf("unit cost drifted with catalog: %d", items[0].UnitCost)
	}
}

func TestBuildLineItems_EmptyBatch(t *testing.T) {
	_, err := BuildLineItems(context.Background(), newFakeCatalog(), nil)
	if !errors.Is(err, domain.ErrEmptyItems) {
		t.Fatalf("expected ErrEmptyItems, got %v", err)
	}
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Errorf("expected validation kind, got %v", err)
	}
}

func TestBuildLineItems_UnknownProductRejectsWholeBatch(t *testing.T) {
	catalog := newFakeCatalog(&domain.Product{ID: "p1", Name: "Keyboard", Cost: 10, OwnerID: "seller-1"})

	_, err := BuildLineItems(context.Background(), catalog, []ItemRequest{
		{ProductID: "p1", Quantity: 1},
		{ProductID: "ghost", Quantity: 1},
	})
	if !errors.Is(err, domain.ErrUnknownProduct) {
		t.Fatalf("expected ErrUnknownProduct, got %v", err)
	}
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Errorf("expected not-found kind, got %v", err)
	}
}

func TestBuildLineItems_OrphanedProduct(t *testing.T) {
	catalog := newFakeCatalog(&domain.Product{ID: "p1", Name: "Orphan", Cost: 10})

	_, err := BuildLineItems(context.Background(), catalog, []ItemRequest{{ProductID: "p1", Quantity: 1}})
	if !errors.Is(err, domain.ErrMissingOwner) {
		t.Fatalf("expected ErrMissingOwner, got %v", err)
	}
}

func TestBuildLineItems_BadQuantitySkipsCatalog(t *testing.T) {
	catalog := newFakeCatalog(&domain.Product{ID: "p1", Name: "Keyboard", Cost: 10, OwnerID: "s"})

	_, err := BuildLineItems(context.Background(), catalog, []ItemRequest{{ProductID: "p1", Quantity: 0}})
	if !errors.Is(err, domain.ErrBadQuantity) {
		t.Fatalf("expected ErrBadQuantity, got %v", err)
	}
	if catalog.calls != 0 {
		t.Errorf("catalog consulted despite invalid quantity")
	}
}
