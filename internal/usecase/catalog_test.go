package usecase

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/shoporbit/shop-api/internal/apperr"
	domain "github.com/shoporbit/shop-api/internal/entity"
)

type fakeProductRepo struct {
	mu       sync.Mutex
	products map[string]*domain.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*domain.Product{}}
}

func (f *fakeProductRepo) FindByIDs(ctx context.Context, ids []string) (map[string]*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := map[string]*domain.Product{}
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			cp := *p
			out[id] = &cp
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Create(ctx context.Context, p *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.products[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeProductRepo) Update(ctx context.Context, p *domain.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[p.ID]; !ok {
		return ErrNotFound
	}
	cp := *p
	f.products[p.ID] = &cp
	return nil
}

func (f *fakeProductRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.products[id]; !ok {
		return ErrNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) List(ctx context.Context, name string, page, limit int) ([]*domain.Product, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Product
	for _, p := range f.products {
		if name != "" && !strings.Contains(p.Name, name) {
			continue
		}
		cp := *p
		out = append(out, &cp)
	}
	return out, len(out), nil
}

type fakeBrandRepo struct {
	mu     sync.Mutex
	brands map[string]*domain.Brand
}

func newFakeBrandRepo() *fakeBrandRepo {
	return &fakeBrandRepo{brands: map[string]*domain.Brand{}}
}

func (f *fakeBrandRepo) Create(ctx context.Context, b *domain.Brand) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, existing := range f.brands {
		if existing.Name == b.Name {
			return ErrDuplicateKey
		}
	}
	cp := *b
	f.brands[b.ID] = &cp
	return nil
}

func (f *fakeBrandRepo) GetByID(ctx context.Context, id string) (*domain.Brand, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	b, ok := f.brands[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeBrandRepo) List(ctx context.Context, page, limit int) ([]*domain.Brand, int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Brand
	for _, b := range f.brands {
		cp := *b
		out = append(out, &cp)
	}
	return out, len(out), nil
}

func (f *fakeBrandRepo) Update(ctx context.Context, b *domain.Brand) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.brands[b.ID]; !ok {
		return ErrNotFound
	}
	cp := *b
	f.brands[b.ID] = &cp
	return nil
}

func (f *fakeBrandRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.brands[id]; !ok {
		return ErrNotFound
	}
	delete(f.brands, id)
	return nil
}

func newTestCatalog() (*Catalog, *fakeProductRepo, *fakeBrandRepo) {
	products := newFakeProductRepo()
	brands := newFakeBrandRepo()
	return NewCatalog(products, brands), products, brands
}

func TestCreateProductRequiresName(t *testing.T) {
	cat, _, _ := newTestCatalog()
	_, err := cat.CreateProduct(context.Background(), ProductInput{Name: "  ", Cost: 100}, "u1")
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestCreateProductRejectsUnknownBrand(t *testing.T) {
	cat, _, _ := newTestCatalog()
	_, err := cat.CreateProduct(context.Background(),
		ProductInput{Name: "Mug", Cost: 500, BrandID: "nope"}, "u1")
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("err = %v, want validation", err)
	}
}

func TestUpdateProductOwnerGate(t *testing.T) {
	cat, _, _ := newTestCatalog()
	p, err := cat.CreateProduct(context.Background(), ProductInput{Name: "Mug", Cost: 500}, "owner-1")
	if err != nil {
		t.Fatal(err)
	}

	// another customer may not touch it
	_, err = cat.UpdateProduct(context.Background(), p.ID,
		ProductInput{Name: "Stolen", Cost: 1}, "intruder", domain.RoleCustomer)
	if !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("err = %v, want forbidden", err)
	}

	// the owner may
	got, err := cat.UpdateProduct(context.Background(), p.ID,
		ProductInput{Name: "Big Mug", Cost: 700}, "owner-1", domain.RoleCustomer)
	if err != nil {
		t.Fatal(err)
	}
	if got.Name != "Big Mug" || got.Cost != 700 {
		t.Errorf("got %q/%d after update", got.Name, got.Cost)
	}

	// and so may an admin
	if _, err := cat.UpdateProduct(context.Background(), p.ID,
		ProductInput{Name: "Admin Mug", Cost: 900}, "admin-1", domain.RoleAdmin); err != nil {
		t.Fatalf("admin update: %v", err)
	}
}

func TestDeleteProductOwnerGate(t *testing.T) {
	cat, products, _ := newTestCatalog()
	p, err := cat.CreateProduct(context.Background(), ProductInput{Name: "Mug", Cost: 500}, "owner-1")
	if err != nil {
		t.Fatal(err)
	}

	if err := cat.DeleteProduct(context.Background(), p.ID, "intruder", domain.RoleCustomer); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("err = %v, want forbidden", err)
	}
	if err := cat.DeleteProduct(context.Background(), p.ID, "owner-1", domain.RoleCustomer); err != nil {
		t.Fatal(err)
	}
	if _, err := products.GetByID(context.Background(), p.ID); err == nil {
		t.Fatal("product still present after delete")
	}
}

func TestDuplicateBrandNameConflicts(t *testing.T) {
	cat, _, _ := newTestCatalog()
	if _, err := cat.CreateBrand(context.Background(), "Acme"); err != nil {
		t.Fatal(err)
	}
	_, err := cat.CreateBrand(context.Background(), "Acme")
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("err = %v, want conflict", err)
	}
}

func TestUnknownProductIsNotFound(t *testing.T) {
	cat, _, _ := newTestCatalog()
	_, err := cat.GetProduct(context.Background(), "missing")
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("err = %v, want not found", err)
	}
}
