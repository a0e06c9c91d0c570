// Package password wraps bcrypt behind the two operations the auth flow
// needs: hash at registration, verify at login.
package password

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// DefaultCost is the bcrypt work factor used when none is configured.
// Matches the credential store's existing hashes.
const DefaultCost = 12

// Hasher produces and checks salted one-way password hashes. The cost
// parameter trades CPU time for brute-force resistance; hashing is the only
// deliberately expensive step in the auth flow and runs solely during
// registration and login, never on the per-request verification path.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given bcrypt cost. Values outside
// bcrypt's supported range fall back to DefaultCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = DefaultCost
	}
	return &Hasher{cost: cost}
}

// Hash returns the bcrypt hash of plaintext. Each call salts independently:
// hashing the same plaintext twice yields different outputs, and only
// Verify can relate them.
func (h *Hasher) Hash(plaintext string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plaintext), h.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(b), nil
}

// Verify reports whether plaintext reproduces hash. A mismatch is a normal
// outcome, not an error: Verify never fails on wrong passwords, only
// returns false.
func (h *Hasher) Verify(plaintext, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plaintext)) == nil
}
