package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	domain "github.com/shoporbit/shop-api/internal/entity"
	"github.com/shoporbit/shop-api/internal/usecase"
)

type MySQLOrderRepo struct{ db *sql.DB }

func NewMySQLOrderRepo(db *sql.DB) *MySQLOrderRepo { return &MySQLOrderRepo{db: db} }

// Create inserts the order row and its line items in one transaction.
// A unique-key hit on order_code maps to usecase.ErrDuplicateOrderCode so
// the creation usecase can mint a fresh code and retry.
func (r *MySQLOrderRepo) Create(ctx context.Context, o *domain.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
INSERT INTO orders (id, order_code, customer_id, shipping_status, created_at, updated_at)
VALUES (?,?,?,?,NOW(),NOW())
`, o.ID, o.OrderCode, o.CustomerID, o.ShippingStatus)
	if err != nil {
		if isDuplicateKey(err) {
			return usecase.ErrDuplicateOrderCode
		}
		return err
	}

	for _, it := range o.Items {
		_, err = tx.ExecContext(ctx, `
INSERT INTO order_items (order_id, product_id, product_name, owner_id, quantity, unit_cost, line_cost)
VALUES (?,?,?,?,?,?,?)
`, o.ID, it.ProductID, it.ProductName, it.OwnerID, it.Quantity, it.UnitCost, it.LineCost)
		if err != nil {
			return err
		}
	}

	return tx.Commit()
}

func (r *MySQLOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	return r.getOne(ctx, `WHERE o.id = ?`, id)
}

func (r *MySQLOrderRepo) GetByCodeForCustomer(ctx context.Context, code, customerID string) (*domain.Order, error) {
	return r.getOne(ctx, `WHERE o.order_code = ? AND o.customer_id = ?`, code, customerID)
}

func (r *MySQLOrderRepo) getOne(ctx context.Context, where string, args ...any) (*domain.Order, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT o.id, o.order_code, o.customer_id, o.shipping_status, o.created_at, o.updated_at
FROM orders o `+where, args...)

	var o domain.Order
	if err := row.Scan(&o.ID, &o.OrderCode, &o.CustomerID, &o.ShippingStatus, &o.CreatedAt, &o.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, usecase.ErrNotFound
		}
		return nil, err
	}

	items, err := r.loadItems(ctx, o.ID)
	if err != nil {
		return nil, err
	}
	o.Items = items
	return &o, nil
}

func (r *MySQLOrderRepo) loadItems(ctx context.Context, orderID string) ([]domain.LineItem, error) {
	rows, err := r.db.QueryContext(ctx, `
SELECT product_id, product_name, owner_id, quantity, unit_cost, line_cost
FROM order_items WHERE order_id = ? ORDER BY id`, orderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.LineItem
	for rows.Next() {
		var it domain.LineItem
		if err := rows.Scan(&it.ProductID, &it.ProductName, &it.OwnerID, &it.Quantity, &it.UnitCost, &it.LineCost); err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// List pages newest-first with optional shipping-status and product-name
// filters. Customer identity rides along for admin views.
func (r *MySQLOrderRepo) List(ctx context.Context, f usecase.OrderFilter) ([]usecase.OrderSummary, int, error) {
	var conds []string
	var args []any
	if f.CustomerID != "" {
		conds = append(conds, "o.customer_id = ?")
		args = append(args, f.CustomerID)
	}
	if f.ShippingStatus != "" {
		conds = append(conds, "o.shipping_status = ?")
		args = append(args, f.ShippingStatus)
	}
	if f.ProductName != "" {
		conds = append(conds, `EXISTS (
			SELECT 1 FROM order_items oi
			WHERE oi.order_id = o.id AND oi.product_name LIKE ?)`)
		args = append(args, "%"+f.ProductName+"%")
	}
	where := ""
	if len(conds) > 0 {
		where = "WHERE " + strings.Join(conds, " AND ")
	}

	var total int
	countArgs := make([]any, len(args))
	copy(countArgs, args)
	if err := r.db.QueryRowContext(ctx,
		fmt.Sprintf(`SELECT COUNT(*) FROM orders o %s`, where), countArgs...,
	).Scan(&total); err != nil {
		return nil, 0, err
	}

	offset := (f.Page - 1) * f.Limit
	args = append(args, f.Limit, offset)
	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
SELECT o.id, o.order_code, o.customer_id, o.shipping_status, o.created_at, o.updated_at,
       u.full_name, u.email
FROM orders o
JOIN users u ON u.id = o.customer_id
%s
ORDER BY o.created_at DESC
LIMIT ? OFFSET ?`, where), args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []usecase.OrderSummary
	for rows.Next() {
		var o domain.Order
		var name, email string
		if err := rows.Scan(&o.ID, &o.OrderCode, &o.CustomerID, &o.ShippingStatus, &o.CreatedAt, &o.UpdatedAt, &name, &email); err != nil {
			return nil, 0, err
		}
		out = append(out, usecase.OrderSummary{Order: &o, CustomerName: name, CustomerEmail: email})
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	// Items loaded per order; listings are small pages so N+1 is acceptable
	// at this scale.
	for i := range out {
		items, err := r.loadItems(ctx, out[i].Order.ID)
		if err != nil {
			return nil, 0, err
		}
		out[i].Order.Items = items
	}
	return out, total, nil
}

func (r *MySQLOrderRepo) UpdateShippingStatus(ctx context.Context, id string, to domain.ShippingStatus) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE orders SET shipping_status = ?, updated_at = NOW() WHERE id = ?`, to, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return usecase.ErrNotFound
	}
	return nil
}

var _ usecase.OrderRepo = (*MySQLOrderRepo)(nil)
