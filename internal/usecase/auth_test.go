package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/shoporbit/shop-api/internal/apperr"
	domain "github.com/shoporbit/shop-api/internal/entity"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuth(users *fakeUserRepo, mailq *fakeMailQueue) *Auth {
	otp := newTestOtpService(users, mailq)
	a := NewAuth(users, otp, TokenConfig{
		Secret:   "test-secret",
		Issuer:   "shop-api",
		Audience: "shop-clients",
		TTL:      2 * time.Hour,
	})
	a.hashCost = bcrypt.MinCost
	return a
}

func TestRegister_FirstUserIsAdmin(t *testing.T) {
	users := newFakeUserRepo()
	mailq := &fakeMailQueue{}
	a := newTestAuth(users, mailq)

	first, err := a.Register(context.Background(), RegisterInput{FullName: "Ada", Email: "Ada@X.dev", Password: "hunter22"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if first.Role != domain.RoleAdmin {
		t.Errorf("first user should be admin, got %s", first.Role)
	}
	if first.Email != "ada@x.dev" {
		t.Errorf("email not normalized: %q", first.Email)
	}
	if len(mailq.jobs) != 1 || mailq.jobs[0].Subject != "Verify your email" {
		t.Errorf("verification mail not queued: %+v", mailq.jobs)
	}

	second, err := a.Register(context.Background(), RegisterInput{FullName: "Bob", Email: "bob@x.dev", Password: "hunter22"})
	if err != nil {
		t.Fatalf("register second: %v", err)
	}
	if second.Role != domain.RoleCustomer {
		t.Errorf("second user should be customer, got %s", second.Role)
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	users := newFakeUserRepo()
	a := newTestAuth(users, &fakeMailQueue{})

	if _, err := a.Register(context.Background(), RegisterInput{FullName: "Ada", Email: "ada@x.dev", Password: "pw123456"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	_, err := a.Register(context.Background(), RegisterInput{FullName: "Imposter", Email: "ada@x.dev", Password: "pw123456"})
	if !apperr.IsKind(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestLogin_FullFlow(t *testing.T) {
	users := newFakeUserRepo()
	mailq := &fakeMailQueue{}
	a := newTestAuth(users, mailq)

	user, err := a.Register(context.Background(), RegisterInput{FullName: "Ada", Email: "ada@x.dev", Password: "hunter22"})
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	// Unverified accounts cannot log in.
	if _, _, err := a.Login(context.Background(), "ada@x.dev", "hunter22"); !apperr.IsKind(err, apperr.KindForbidden) {
		t.Fatalf("expected forbidden before verification, got %v", err)
	}

	code := codeFromMail(t, mailq)
	if err := a.VerifyOtp(context.Background(), "ada@x.dev", code, domain.PurposeVerifyEmail); err != nil {
		t.Fatalf("verify otp: %v", err)
	}

	token, got, err := a.Login(context.Background(), "ada@x.dev", "hunter22")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("wrong user returned")
	}

	parsed, err := jwt.Parse(token, func(tk *jwt.Token) (any, error) {
		return []byte("test-secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token does not verify: %v", err)
	}
	claims := parsed.Claims.(jwt.MapClaims)
	if claims["sub"] != user.ID || claims["role"] != "admin" {
		t.Errorf("unexpected claims: %+v", claims)
	}
}

func TestLogin_BadPassword(t *testing.T) {
	users := newFakeUserRepo()
	a := newTestAuth(users, &fakeMailQueue{})

	hash, _ := bcrypt.GenerateFromPassword([]byte("right"), bcrypt.MinCost)
	_ = users.Create(context.Background(), &domain.User{
		ID: "u1", Email: "ada@x.dev", PasswordHash: string(hash), EmailVerified: true, Role: domain.RoleCustomer,
	})

	_, _, err := a.Login(context.Background(), "ada@x.dev", "wrong")
	if !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Fatalf("expected unauthorized, got %v", err)
	}

	_, _, err = a.Login(context.Background(), "ghost@x.dev", "whatever")
	if !apperr.IsKind(err, apperr.KindUnauthorized) {
		t.Fatalf("unknown email must look like bad credentials, got %v", err)
	}
}

func TestResendOtp_UnknownUser(t *testing.T) {
	a := newTestAuth(newFakeUserRepo(), &fakeMailQueue{})

	err := a.ResendOtp(context.Background(), "ghost@x.dev", domain.PurposeVerifyEmail)
	if !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not-found, got %v", err)
	}
}

func TestResendOtp_BadPurpose(t *testing.T) {
	a := newTestAuth(newFakeUserRepo(), &fakeMailQueue{})

	err := a.ResendOtp(context.Background(), "ada@x.dev", domain.OtpPurpose("launch-nukes"))
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateUserByAdmin(t *testing.T) {
	users := newFakeUserRepo()
	a := newTestAuth(users, &fakeMailQueue{})

	u, err := a.CreateUserByAdmin(context.Background(), RegisterInput{FullName: "Ops", Email: "ops@x.dev", Password: "pw123456"}, domain.RoleAdmin)
	if err != nil {
		t.Fatalf("create by admin: %v", err)
	}
	if !u.EmailVerified {
		t.Error("admin-created users should be pre-verified")
	}

	_, err = a.CreateUserByAdmin(context.Background(), RegisterInput{FullName: "X", Email: "x@x.dev", Password: "pw123456"}, domain.Role("root"))
	if !apperr.IsKind(err, apperr.KindValidation) {
		t.Fatalf("expected validation error for bad role, got %v", err)
	}
}
