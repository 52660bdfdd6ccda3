package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/shoporbit/shop-api/internal/apperr"
	domain "github.com/shoporbit/shop-api/internal/entity"
)

// Catalog manages products and brands. Products belong to the user who
// created them; only the owner or an admin may change or delete one.
type Catalog struct {
	products ProductRepo
	brands   BrandRepo
	nowFunc  func() time.Time
}

func NewCatalog(products ProductRepo, brands BrandRepo) *Catalog {
	return &Catalog{products: products, brands: brands, nowFunc: time.Now}
}

type ProductInput struct {
	Name    string
	Cost    int64
	BrandID string
}

func (c *Catalog) CreateProduct(ctx context.Context, in ProductInput, ownerID string) (*domain.Product, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, apperr.Validation("Product name is required")
	}
	if in.Cost < 0 {
		return nil, apperr.Validation("Product cost cannot be negative")
	}
	if in.BrandID != "" {
		if _, err := c.brands.GetByID(ctx, in.BrandID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, apperr.Validation("Unknown brand")
			}
			return nil, err
		}
	}

	now := c.nowFunc()
	p := &domain.Product{
		ID:        uuid.NewString(),
		Name:      name,
		Cost:      in.Cost,
		BrandID:   in.BrandID,
		OwnerID:   ownerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := c.products.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *Catalog) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	p, err := c.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("Product not found")
		}
		return nil, err
	}
	return p, nil
}

func (c *Catalog) UpdateProduct(ctx context.Context, id string, in ProductInput, callerID string, callerRole domain.Role) (*domain.Product, error) {
	p, err := c.ownedProduct(ctx, id, callerID, callerRole)
	if err != nil {
		return nil, err
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		p.Name = name
	}
	if in.Cost < 0 {
		return nil, apperr.Validation("Product cost cannot be negative")
	}
	p.Cost = in.Cost
	if in.BrandID != "" {
		if _, err := c.brands.GetByID(ctx, in.BrandID); err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, apperr.Validation("Unknown brand")
			}
			return nil, err
		}
		p.BrandID = in.BrandID
	}
	p.UpdatedAt = c.nowFunc()

	if err := c.products.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (c *Catalog) DeleteProduct(ctx context.Context, id string, callerID string, callerRole domain.Role) error {
	if _, err := c.ownedProduct(ctx, id, callerID, callerRole); err != nil {
		return err
	}
	return c.products.Delete(ctx, id)
}

func (c *Catalog) ListProducts(ctx context.Context, name string, page, limit int) ([]*domain.Product, int, error) {
	page, limit = clampPage(page, limit)
	return c.products.List(ctx, name, page, limit)
}

// ownedProduct loads the product and enforces the owner gate. Existing
// orders are unaffected either way: line items carry frozen copies.
func (c *Catalog) ownedProduct(ctx context.Context, id, callerID string, callerRole domain.Role) (*domain.Product, error) {
	p, err := c.products.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("Product not found")
		}
		return nil, err
	}
	if callerRole != domain.RoleAdmin && p.OwnerID != callerID {
		return nil, apperr.Forbidden("You do not own this product")
	}
	return p, nil
}

func (c *Catalog) CreateBrand(ctx context.Context, name string) (*domain.Brand, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("Brand name is required")
	}
	now := c.nowFunc()
	b := &domain.Brand{ID: uuid.NewString(), Name: name, CreatedAt: now, UpdatedAt: now}
	if err := c.brands.Create(ctx, b); err != nil {
		if errors.Is(err, ErrDuplicateKey) {
			return nil, apperr.Conflict("Brand already exists")
		}
		return nil, err
	}
	return b, nil
}

func (c *Catalog) GetBrand(ctx context.Context, id string) (*domain.Brand, error) {
	b, err := c.brands.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("Brand not found")
		}
		return nil, err
	}
	return b, nil
}

func (c *Catalog) UpdateBrand(ctx context.Context, id, name string) (*domain.Brand, error) {
	b, err := c.GetBrand(ctx, id)
	if err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperr.Validation("Brand name is required")
	}
	b.Name = name
	b.UpdatedAt = c.nowFunc()
	if err := c.brands.Update(ctx, b); err != nil {
		if errors.Is(err, ErrDuplicateKey) {
			return nil, apperr.Conflict("Brand already exists")
		}
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("Brand not found")
		}
		return nil, err
	}
	return b, nil
}

func (c *Catalog) DeleteBrand(ctx context.Context, id string) error {
	if err := c.brands.Delete(ctx, id); err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("Brand not found")
		}
		return err
	}
	return nil
}

func (c *Catalog) ListBrands(ctx context.Context, page, limit int) ([]*domain.Brand, int, error) {
	page, limit = clampPage(page, limit)
	return c.brands.List(ctx, page, limit)
}

func clampPage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 10
	}
	return page, limit
}
