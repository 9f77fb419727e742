package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// DummyHash is a well-formed cost-10 bcrypt hash. Logins for unknown users
// compare against it so every failed login costs one bcrypt comparison.
const DummyHash = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// Hasher hashes passwords and checks candidates against a stored hash
type Hasher interface {
	Hash(password string) (string, error)
	// Compare returns nil only when password matches hash
	Compare(hash, password string) error
}

// BcryptHasher is a Hasher backed by bcrypt
type BcryptHasher struct {
	Cost int
}

// NewBcryptHasher returns a hasher using the given cost, or bcrypt's default when cost is 0
func NewBcryptHasher(cost int) *BcryptHasher {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	return &BcryptHasher{Cost: cost}
}

func (h *BcryptHasher) Hash(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), h.Cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (h *BcryptHasher) Compare(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}
