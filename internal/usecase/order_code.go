package usecase

import (
	"crypto/rand"
	"encoding/hex"
	"strings"
)

const orderCodePrefix = "ORD-"

// NewOrderCode returns a display-friendly order code: the fixed prefix plus
// 8 uppercase hex characters from 4 random bytes. Uniqueness is enforced by
// the orders table; collisions are retried by the creation usecase.
func NewOrderCode() string {
	var b [4]byte
	if _, err := rand.Read(b[:]); err != nil {
		// crypto/rand read failure means the platform is broken
		panic("order code entropy: " + err.Error())
	}
	return orderCodePrefix + strings.ToUpper(hex.EncodeToString(b[:]))
}
