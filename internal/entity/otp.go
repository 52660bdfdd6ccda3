package domain

import "time"

type OtpPurpose string

const (
	PurposeVerifyEmail   OtpPurpose = "verify-email"
	PurposeResetPassword OtpPurpose = "reset-password"
)

func (p OtpPurpose) Valid() bool {
	return p == PurposeVerifyEmail || p == PurposeResetPassword
}

// OtpChallenge holds a pending one-time code. Only the bcrypt hash of the
// code is ever persisted. At most one live challenge exists per
// (user, purpose) pair.
type OtpChallenge struct {
	ID        string
	UserID    string
	Purpose   OtpPurpose
	CodeHash  string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Expired reports whether the challenge is past its expiry at the given time.
func (c *OtpChallenge) Expired(now time.Time) bool {
	return now.After(c.ExpiresAt)
}
