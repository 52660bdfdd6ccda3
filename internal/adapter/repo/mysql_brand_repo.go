package repo

import (
	"context"
	"database/sql"
	"errors"

	domain "github.com/shoporbit/shop-api/internal/entity"
	"github.com/shoporbit/shop-api/internal/usecase"
)

type MySQLBrandRepo struct{ db *sql.DB }

func NewMySQLBrandRepo(db *sql.DB) *MySQLBrandRepo { return &MySQLBrandRepo{db: db} }

func scanBrand(row interface{ Scan(...any) error }) (*domain.Brand, error) {
	var b domain.Brand
	err := row.Scan(&b.ID, &b.Name, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, usecase.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

func (r *MySQLBrandRepo) Create(ctx context.Context, b *domain.Brand) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO brands (id, name, created_at, updated_at) VALUES (?,?,NOW(),NOW())`,
		b.ID, b.Name)
	if isDuplicateKey(err) {
		return usecase.ErrDuplicateKey
	}
	return err
}

func (r *MySQLBrandRepo) GetByID(ctx context.Context, id string) (*domain.Brand, error) {
	return scanBrand(r.db.QueryRowContext(ctx,
		`SELECT id, name, created_at, updated_at FROM brands WHERE id = ?`, id))
}

func (r *MySQLBrandRepo) List(ctx context.Context, page, limit int) ([]*domain.Brand, int, error) {
	var total int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM brands`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.QueryContext(ctx, `
SELECT id, name, created_at, updated_at FROM brands
ORDER BY name LIMIT ? OFFSET ?`, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []*domain.Brand
	for rows.Next() {
		b, err := scanBrand(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, b)
	}
	return out, total, rows.Err()
}

func (r *MySQLBrandRepo) Update(ctx context.Context, b *domain.Brand) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE brands SET name = ?, updated_at = NOW() WHERE id = ?`, b.Name, b.ID)
	if err != nil {
		if isDuplicateKey(err) {
			return usecase.ErrDuplicateKey
		}
		return err
	}
	return mustAffect(res)
}

func (r *MySQLBrandRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM brands WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

var _ usecase.BrandRepo = (*MySQLBrandRepo)(nil)
