package usecase

import (
	"context"
	"strings"
	"sync"

	domain "github.com/shoporbit/shop-api/internal/entity"
)

// In-memory fakes for the ports. Mutex-guarded so concurrency tests can
// share them.

type fakeCatalog struct {
	mu       sync.Mutex
	products map[string]*domain.Product
	calls    int
}

func newFakeCatalog(products ...*domain.Product) *fakeCatalog {
	m := make(map[string]*domain.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return &fakeCatalog{products: m}
}

func (f *fakeCatalog) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	out := make(map[string]*domain.Product)
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			cp := *p
			out[id] = &cp
		}
	}
	return out, nil
}

type fakeOrderRepo struct {
	mu         sync.Mutex
	byID       map[string]*domain.Order
	codes      map[string]bool
	dupNext    int // fail the next N creates with ErrDuplicateOrderCode
	createFail error
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{
		byID:  make(map[string]*domain.Order),
		codes: make(map[string]bool),
	}
}

func (f *fakeOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createFail != nil {
		return f.createFail
	}
	if f.dupNext > 0 {
		f.dupNext--
		return ErrDuplicateOrderCode
	}
	if f.codes[o.OrderCode] {
		return ErrDuplicateOrderCode
	}
	cp := *o
	f.byID[o.ID] = &cp
	f.codes[o.OrderCode] = true
	return nil
}

func (f *fakeOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	return &cp, nil
}

func (f *fakeOrderRepo) GetByCodeForCustomer(ctx context.Context, code, customerID string) (*domain.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, o := range f.byID {
		if o.OrderCode == code && o.CustomerID == customerID {
			cp := *o
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeOrderRepo) List(ctx context.Context, filter OrderFilter) ([]OrderSummary, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []OrderSummary
	for _, o := range f.byID {
		if filter.CustomerID != "" && o.CustomerID != filter.CustomerID {
			continue
		}
		if filter.ShippingStatus != "" && string(o.ShippingStatus) != filter.ShippingStatus {
			continue
		}
		if filter.ProductName != "" {
			match := false
			for _, it := range o.Items {
				if strings.Contains(strings.ToLower(it.ProductName), strings.ToLower(filter.ProductName)) {
					match = true
					break
				}
			}
			if !match {
				continue
			}
		}
		cp := *o
		out = append(out, OrderSummary{Order: &cp})
	}
	return out, len(out), nil
}

func (f *fakeOrderRepo) UpdateShippingStatus(ctx context.Context, id string, to domain.ShippingStatus) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	o, ok := f.byID[id]
	if !ok {
		return ErrNotFound
	}
	o.ShippingStatus = to
	return nil
}

type fakeUserRepo struct {
	mu      sync.Mutex
	byID    map[string]*domain.User
	byEmail map[string]*domain.User
}

func newFakeUserRepo(users ...*domain.User) *fakeUserRepo {
	f := &fakeUserRepo{
		byID:    make(map[string]*domain.User),
		byEmail: make(map[string]*domain.User),
	}
	for _, u := range users {
		f.byID[u.ID] = u
		f.byEmail[u.Email] = u
	}
	return f
}

func (f *fakeUserRepo) Create(ctx context.Context, u *domain.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *u
	f.byID[u.ID] = &cp
	f.byEmail[u.Email] = &cp
	return nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byEmail[email]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserRepo) Count(ctx context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.byID), nil
}

func (f *fakeUserRepo) MarkEmailVerified(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byID[id]
	if !ok {
		return ErrNotFound
	}
	u.EmailVerified = true
	return nil
}

type fakeOtpRepo struct {
	mu   sync.Mutex
	rows map[string]*domain.OtpChallenge
}

func newFakeOtpRepo() *fakeOtpRepo {
	return &fakeOtpRepo{rows: make(map[string]*domain.OtpChallenge)}
}

func (f *fakeOtpRepo) Create(ctx context.Context, c *domain.OtpChallenge) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *c
	f.rows[cp.ID] = &cp
	return nil
}

func (f *fakeOtpRepo) GetByUserAndPurpose(ctx context.Context, userID string, purpose domain.OtpPurpose) (*domain.OtpChallenge, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.rows {
		if c.UserID == userID && c.Purpose == purpose {
			cp := *c
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeOtpRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.rows[id]; !ok {
		return ErrNotFound
	}
	delete(f.rows, id)
	return nil
}

type fakeCache struct {
	mu     sync.Mutex
	status map[string]string
}

func newFakeCache() *fakeCache {
	return &fakeCache{status: make(map[string]string)}
}

func (f *fakeCache) SetStatus(ctx context.Context, orderID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status[orderID] = status
	return nil
}

func (f *fakeCache) GetStatus(ctx context.Context, orderID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.status[orderID]
	if !ok {
		return "", ErrNotFound
	}
	return s, nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	events map[string][]Event
}

func newFakeNotifier() *fakeNotifier {
	return &fakeNotifier{events: make(map[string][]Event)}
}

func (f *fakeNotifier) Notify(customerID string, ev Event) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events[customerID] = append(f.events[customerID], ev)
}

type fakeMailQueue struct {
	mu   sync.Mutex
	jobs []MailJob
	fail error
}

func (f *fakeMailQueue) Enqueue(ctx context.Context, job MailJob) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail != nil {
		return f.fail
	}
	f.jobs = append(f.jobs, job)
	return nil
}
