package domain

import (
	"errors"
	"time"
)

type ShippingStatus string

const (
	ShippingPending   ShippingStatus = "pending"
	ShippingShipped   ShippingStatus = "shipped"
	ShippingDelivered ShippingStatus = "delivered"
)

// Valid reports whether s is one of the recognized shipping statuses.
func (s ShippingStatus) Valid() bool {
	switch s {
	case ShippingPending, ShippingShipped, ShippingDelivered:
		return true
	}
	return false
}

var (
	ErrEmptyItems     = errors.New("order items are required")
	ErrBadQuantity    = errors.New("item quantity must be at least 1")
	ErrMissingOwner   = errors.New("product has no owner")
	ErrUnknownProduct = errors.New("unknown product")
)

// LineItem is a priced (product, quantity) pair. UnitCost, ProductName and
// OwnerID are snapshots taken at order creation; catalog changes after that
// never touch them.
type LineItem struct {
	ProductID   string `json:"productId"`
	ProductName string `json:"productName"`
	OwnerID     string `json:"-"`
	Quantity    int    `json:"quantity"`
	UnitCost    int64  `json:"unitCost"`
	LineCost    int64  `json:"lineCost"`
}

type Order struct {
	ID             string         `json:"-"`
	OrderCode      string         `json:"orderId"` // ORD-XXXXXXXX, assigned once
	CustomerID     string         `json:"-"`
	Items          []LineItem     `json:"items"`
	ShippingStatus ShippingStatus `json:"shippingStatus"`
	CreatedAt      time.Time      `json:"createdAt"`
	UpdatedAt      time.Time      `json:"updatedAt"`
}

// TotalCost is the sum of line costs. It is always derived from the items,
// never stored as its own column.
func (o *Order) TotalCost() int64 {
	var total int64
	for _, it := range o.Items {
		total += it.LineCost
	}
	return total
}

// Validate checks the creation-time invariants.
func (o *Order) Validate() error {
	if o.CustomerID == "" {
		return errors.New("customer is required")
	}
	if len(o.Items) == 0 {
		return ErrEmptyItems
	}
	for _, it := range o.Items {
		if it.Quantity < 1 {
			return ErrBadQuantity
		}
		if it.OwnerID == "" {
			return ErrMissingOwner
		}
	}
	return nil
}
