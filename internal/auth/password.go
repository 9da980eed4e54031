package auth

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/crypto/bcrypt"
)

var passwordCost atomic.Int64

func init() {
	passwordCost.Store(int64(bcrypt.DefaultCost))
}

// SetPasswordCost changes the bcrypt cost for new hashes. Tests lower it.
func SetPasswordCost(cost int) {
	if cost < bcrypt.MinCost {
		cost = bcrypt.MinCost
	}
	passwordCost.Store(int64(cost))
}

// HashPassword returns the bcrypt hash of plaintext.
func HashPassword(plaintext string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plaintext), int(passwordCost.Load()))
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

// VerifyPassword reports whether plaintext matches hash.
func VerifyPassword(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
