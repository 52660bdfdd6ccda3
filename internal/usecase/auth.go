package usecase

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shoporbit/shop-api/internal/apperr"
	domain "github.com/shoporbit/shop-api/internal/entity"
	"golang.org/x/crypto/bcrypt"
)

type TokenConfig struct {
	Secret   string
	Issuer   string
	Audience string
	TTL      time.Duration
}

type Auth struct {
	users    UserRepo
	otp      *OtpService
	tokens   TokenConfig
	hashCost int
	nowFunc  func() time.Time
}

func NewAuth(users UserRepo, otp *OtpService, tokens TokenConfig) *Auth {
	return &Auth{
		users:    users,
		otp:      otp,
		tokens:   tokens,
		hashCost: bcrypt.DefaultCost,
		nowFunc:  time.Now,
	}
}

type RegisterInput struct {
	FullName string
	Email    string
	Password string
}

// Register creates an unverified account and issues a verify-email OTP.
// The very first account becomes the admin.
func (a *Auth) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if _, err := a.users.GetByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict("Email already exists")
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), a.hashCost)
	if err != nil {
		return nil, err
	}

	count, err := a.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	role := domain.RoleCustomer
	if count == 0 {
		role = domain.RoleAdmin
	}

	now := a.nowFunc()
	user := &domain.User{
		ID:           uuid.NewString(),
		FullName:     in.FullName,
		Email:        email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := a.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicateKey) {
			return nil, apperr.Conflict("Email already exists")
		}
		return nil, err
	}

	if err := a.otp.Issue(ctx, user, domain.PurposeVerifyEmail, "Verify your email"); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateUserByAdmin provisions a pre-verified account with an explicit role.
func (a *Auth) CreateUserByAdmin(ctx context.Context, in RegisterInput, role domain.Role) (*domain.User, error) {
	if !role.Valid() {
		return nil, apperr.Validation("Invalid role. Must be 'admin' or 'customer'")
	}
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if _, err := a.users.GetByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict("Email already exists")
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), a.hashCost)
	if err != nil {
		return nil, err
	}

	now := a.nowFunc()
	user := &domain.User{
		ID:            uuid.NewString(),
		FullName:      in.FullName,
		Email:         email,
		PasswordHash:  string(hash),
		Role:          role,
		EmailVerified: true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := a.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicateKey) {
			return nil, apperr.Conflict("Email already exists")
		}
		return nil, err
	}
	return user, nil
}

// Login checks credentials and returns a signed bearer token. Accounts with
// unverified email cannot log in.
func (a *Auth) Login(ctx context.Context, email, password string) (string, *domain.User, error) {
	user, err := a.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil, apperr.Unauthorized("Incorrect email or password")
		}
		return "", nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, apperr.Unauthorized("Incorrect email or password")
	}
	if !user.EmailVerified {
		return "", nil, apperr.Forbidden("Please verify your email first")
	}

	now := a.nowFunc()
	claims := jwt.MapClaims{
		"iss":   a.tokens.Issuer,
		"aud":   a.tokens.Audience,
		"iat":   now.Unix(),
		"nbf":   now.Unix(),
		"exp":   now.Add(a.tokens.TTL).Unix(),
		"sub":   user.ID,
		"email": user.Email,
		"role":  string(user.Role),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(a.tokens.Secret))
	if err != nil {
		return "", nil, err
	}
	return signed, user, nil
}

// VerifyOtp resolves the user by email and consumes their challenge.
func (a *Auth) VerifyOtp(ctx context.Context, email, code string, purpose domain.OtpPurpose) error {
	user, err := a.userByEmail(ctx, email)
	if err != nil {
		return err
	}
	return a.otp.Verify(ctx, user, code, purpose)
}

// ResendOtp re-issues a challenge for the given purpose, subject to the
// resend throttle.
func (a *Auth) ResendOtp(ctx context.Context, email string, purpose domain.OtpPurpose) error {
	if !purpose.Valid() {
		return apperr.Validation("Invalid OTP purpose")
	}
	user, err := a.userByEmail(ctx, email)
	if err != nil {
		return err
	}
	return a.otp.Issue(ctx, user, purpose, "Your new OTP")
}

func (a *Auth) userByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := a.users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, apperr.NotFound("Customer not found")
		}
		return nil, err
	}
	return user, nil
}
