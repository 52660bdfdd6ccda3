package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math"
	"math/big"
	"time"

	"github.com/google/uuid"

	"github.com/shoporbit/shop-api/internal/apperr"
	domain "github.com/shoporbit/shop-api/internal/entity"
	"golang.org/x/crypto/bcrypt"
)

// OtpService issues and verifies one-time codes per (user, purpose) pair.
// The raw code leaves the process only inside the queued email; storage
// only ever sees its bcrypt hash.
type OtpService struct {
	otps     OtpRepo
	users    UserRepo
	mailq    MailQueue
	length   int
	expiry   time.Duration
	resend   time.Duration
	hashCost int
	nowFunc  func() time.Time
}

func NewOtpService(otps OtpRepo, users UserRepo, mailq MailQueue, length int, expiry, resendInterval time.Duration) *OtpService {
	return &OtpService{
		otps:     otps,
		users:    users,
		mailq:    mailq,
		length:   length,
		expiry:   expiry,
		resend:   resendInterval,
		hashCost: bcrypt.DefaultCost,
		nowFunc:  time.Now,
	}
}

// Issue creates a fresh challenge for (user, purpose), replacing any prior
// one, and queues the code for email delivery.
//
// A live challenge younger than the resend interval rate-limits the caller
// with the remaining whole seconds to wait.
func (s *OtpService) Issue(ctx context.Context, user *domain.User, purpose domain.OtpPurpose, subject string) error {
	if !purpose.Valid() {
		return apperr.Validation("Invalid OTP purpose")
	}
	if purpose == domain.PurposeVerifyEmail && user.EmailVerified {
		return apperr.Validation("Email is already verified")
	}

	now := s.nowFunc()
	existing, err := s.otps.GetByUserAndPurpose(ctx, user.ID, purpose)
	switch {
	case err == nil:
		elapsed := now.Sub(existing.IssuedAt)
		if elapsed < s.resend && !existing.Expired(now) {
			wait := int(math.Ceil((s.resend - elapsed).Seconds()))
			return apperr.RateLimited(wait)
		}
		if err := s.otps.Delete(ctx, existing.ID); err != nil {
			return err
		}
	case errors.Is(err, ErrNotFound):
		// no prior challenge
	default:
		return err
	}

	code, err := generateOTP(s.length)
	if err != nil {
		return err
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(code), s.hashCost)
	if err != nil {
		return err
	}

	challenge := &domain.OtpChallenge{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Purpose:   purpose,
		CodeHash:  string(hash),
		IssuedAt:  now,
		ExpiresAt: now.Add(s.expiry),
	}
	if err := s.otps.Create(ctx, challenge); err != nil {
		return err
	}

	return s.mailq.Enqueue(ctx, MailJob{
		To:      user.Email,
		Subject: subject,
		HTML:    fmt.Sprintf("<div><h1>%s</h1><p>Your OTP is: <strong>%s</strong></p></div>", subject, code),
	})
}

// Verify consumes the challenge on success; a second attempt with the same
// code finds nothing. The verify-email purpose marks the user verified.
func (s *OtpService) Verify(ctx context.Context, user *domain.User, code string, purpose domain.OtpPurpose) error {
	challenge, err := s.otps.GetByUserAndPurpose(ctx, user.ID, purpose)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return apperr.NotFound("No OTP challenge found")
		}
		return err
	}
	if challenge.Expired(s.nowFunc()) {
		return apperr.Expired("OTP has expired")
	}
	if bcrypt.CompareHashAndPassword([]byte(challenge.CodeHash), []byte(code)) != nil {
		return apperr.Validation("Invalid OTP")
	}

	if purpose == domain.PurposeVerifyEmail {
		if err := s.users.MarkEmailVerified(ctx, user.ID); err != nil {
			return err
		}
	}
	return s.otps.Delete(ctx, challenge.ID)
}

// generateOTP returns a zero-padded numeric code of the given length.
func generateOTP(length int) (string, error) {
	limit := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(length)), nil)
	n, err := rand.Int(rand.Reader, limit)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%0*d", length, n), nil
}
