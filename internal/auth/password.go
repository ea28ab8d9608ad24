package auth

import "golang.org/x/crypto/bcrypt"

const bcryptCost = 10

// PasswordHasher hashes and verifies credentials. The plaintext is never
// stored or logged; only digests leave this package.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Check(password, digest string) bool
}

// BcryptHasher implements PasswordHasher with salted adaptive-cost bcrypt.
type BcryptHasher struct{}

// NewBcryptHasher creates a bcrypt-backed hasher.
func NewBcryptHasher() *BcryptHasher {
	return &BcryptHasher{}
}

// Hash generates a salted hash from a plaintext password.
func (h *BcryptHasher) Hash(password string) (string, error) {
	digest, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(digest), nil
}

// Check reports whether password matches digest.
func (h *BcryptHasher) Check(password, digest string) bool {
	return bcrypt.CompareHashAndPassword([]byte(digest), []byte(password)) == nil
}
