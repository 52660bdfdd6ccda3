package usecase

import (
	"context"
	"errors"

	domain "github.com/shoporbit/shop-api/internal/entity"
)

var ErrNotFound = errors.New("not found")

// ErrDuplicateOrderCode signals a unique-constraint hit on the generated
// order code. Creation retries with a fresh code; callers never see it.
var ErrDuplicateOrderCode = errors.New("duplicate order code")

// ErrDuplicateKey signals a unique-constraint hit on a natural key, such as
// a user email or brand name.
var ErrDuplicateKey = errors.New("duplicate key")

// CatalogReader is the read-only product lookup used by the cost snapshot
// engine. The catalog itself is owned elsewhere; this port never writes.
type CatalogReader interface {
	FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Product, error)
}

type OrderFilter struct {
	CustomerID     string
	ShippingStatus string
	ProductName    string
	Page           int
	Limit          int
}

// OrderSummary is a listing row: the order plus the denormalized customer
// identity admin views need.
type OrderSummary struct {
	Order         *domain.Order
	CustomerName  string
	CustomerEmail string
}

type OrderRepo interface {
	// Create persists the order and its items in one transaction.
	// Returns ErrDuplicateOrderCode if the generated code collides.
	Create(ctx context.Context, o *domain.Order) error
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	// GetByCodeForCustomer scopes the lookup to the owning customer;
	// returns ErrNotFound for other customers' orders.
	GetByCodeForCustomer(ctx context.Context, code, customerID string) (*domain.Order, error)
	List(ctx context.Context, f OrderFilter) ([]OrderSummary, int, error)
	UpdateShippingStatus(ctx context.Context, id string, to domain.ShippingStatus) error
}

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Count(ctx context.Context) (int, error)
	MarkEmailVerified(ctx context.Context, id string) error
}

type ProductRepo interface {
	CatalogReader
	Create(ctx context.Context, p *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	List(ctx context.Context, name string, page, limit int) ([]*domain.Product, int, error)
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
}

type BrandRepo interface {
	Create(ctx context.Context, b *domain.Brand) error
	GetByID(ctx context.Context, id string) (*domain.Brand, error)
	List(ctx context.Context, page, limit int) ([]*domain.Brand, int, error)
	Update(ctx context.Context, b *domain.Brand) error
	Delete(ctx context.Context, id string) error
}

type OtpRepo interface {
	Create(ctx context.Context, c *domain.OtpChallenge) error
	GetByUserAndPurpose(ctx context.Context, userID string, purpose domain.OtpPurpose) (*domain.OtpChallenge, error)
	Delete(ctx context.Context, id string) error
}

// StatusCache keeps the latest shipping status hot for read paths.
// All writes are best-effort.
type StatusCache interface {
	SetStatus(ctx context.Context, orderID string, status string) error
	GetStatus(ctx context.Context, orderID string) (string, error)
}

// Event is a realtime push payload.
type Event struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

// Notifier delivers an event to a customer's live connection, if any.
// Offline customers are silently skipped; Notify never returns an error
// the caller should act on beyond logging.
type Notifier interface {
	Notify(customerID string, ev Event)
}

// MailJob is an outbound email handed to the queue; a worker delivers it.
type MailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

type MailQueue interface {
	Enqueue(ctx context.Context, job MailJob) error
}
