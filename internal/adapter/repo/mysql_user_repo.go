package repo

import (
	"context"
	"database/sql"
	"errors"

	domain "github.com/shoporbit/shop-api/internal/entity"
	"github.com/shoporbit/shop-api/internal/usecase"
)

type MySQLUserRepo struct{ db *sql.DB }

func NewMySQLUserRepo(db *sql.DB) *MySQLUserRepo { return &MySQLUserRepo{db: db} }

const userCols = `id, full_name, email, password_hash, role, email_verified, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.ID, &u.FullName, &u.Email, &u.PasswordHash, &u.Role, &u.EmailVerified, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, usecase.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func (r *MySQLUserRepo) Create(ctx context.Context, u *domain.User) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO users (id, full_name, email, password_hash, role, email_verified, created_at, updated_at)
VALUES (?,?,?,?,?,?,NOW(),NOW())`,
		u.ID, u.FullName, u.Email, u.PasswordHash, u.Role, u.EmailVerified)
	// Unique index on email; the auth usecase pre-checks, this covers
	// the race.
	if isDuplicateKey(err) {
		return usecase.ErrDuplicateKey
	}
	return err
}

func (r *MySQLUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userCols+` FROM users WHERE id = ?`, id))
}

func (r *MySQLUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return scanUser(r.db.QueryRowContext(ctx,
		`SELECT `+userCols+` FROM users WHERE email = ?`, email))
}

func (r *MySQLUserRepo) Count(ctx context.Context) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (r *MySQLUserRepo) MarkEmailVerified(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `
UPDATE users SET email_verified = TRUE, updated_at = NOW() WHERE id = ?`, id)
	if err != nil {
		return err
	}
	return mustAffect(res)
}

var _ usecase.UserRepo = (*MySQLUserRepo)(nil)
