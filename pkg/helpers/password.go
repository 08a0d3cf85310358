package helpers

import "golang.org/x/crypto/bcrypt"

// PasswordCost is the bcrypt work factor used for stored credentials.
const PasswordCost = 12

// Hasher wraps bcrypt with a fixed cost. The zero value is not usable;
// construct with NewHasher.
type Hasher struct {
	cost int
}

// NewHasher returns a Hasher with the given bcrypt cost. Costs outside the
// valid bcrypt range are clamped to PasswordCost.
func NewHasher(cost int) *Hasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = PasswordCost
	}
	return &Hasher{cost: cost}
}

// Hash derives a salted bcrypt hash from the plain text password.
// Two calls with the same input produce different hashes.
func (h *Hasher) Hash(plain string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(plain), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plain matches the stored bcrypt hash. Malformed
// hashes verify as false; the error from bcrypt never escapes.
func (h *Hasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
