package repo

import (
	"context"
	"database/sql"
	"errors"

	domain "github.com/shoporbit/shop-api/internal/entity"
	"github.com/shoporbit/shop-api/internal/usecase"
)

type MySQLOtpRepo struct{ db *sql.DB }

func NewMySQLOtpRepo(db *sql.DB) *MySQLOtpRepo { return &MySQLOtpRepo{db: db} }

func (r *MySQLOtpRepo) Create(ctx context.Context, c *domain.OtpChallenge) error {
	_, err := r.db.ExecContext(ctx, `
INSERT INTO otp_challenges (id, user_id, purpose, code_hash, issued_at, expires_at)
VALUES (?,?,?,?,?,?)`,
		c.ID, c.UserID, c.Purpose, c.CodeHash, c.IssuedAt, c.ExpiresAt)
	return err
}

func (r *MySQLOtpRepo) GetByUserAndPurpose(ctx context.Context, userID string, purpose domain.OtpPurpose) (*domain.OtpChallenge, error) {
	row := r.db.QueryRowContext(ctx, `
SELECT id, user_id, purpose, code_hash, issued_at, expires_at
FROM otp_challenges WHERE user_id = ? AND purpose = ?`, userID, purpose)

	var c domain.OtpChallenge
	err := row.Scan(&c.ID, &c.UserID, &c.Purpose, &c.CodeHash, &c.IssuedAt, &c.ExpiresAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, usecase.ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *MySQLOtpRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM otp_challenges WHERE id = ?`, id)
	return err
}

var _ usecase.OtpRepo = (*MySQLOtpRepo)(nil)
