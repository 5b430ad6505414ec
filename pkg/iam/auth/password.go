package auth

import (
	"golang.org/x/crypto/bcrypt"

	"github.com/incluempleo/vinculo/pkg/errx"
)

// PasswordService hashes and verifies account passwords.
type PasswordService interface {
	Hash(plain string) (string, error)
	Verify(hash, plain string) bool
}

// BcryptPasswordService implements PasswordService with bcrypt.
type BcryptPasswordService struct {
	cost int
}

// NewBcryptPasswordService creates a password service at the default cost.
func NewBcryptPasswordService() *BcryptPasswordService {
	return &BcryptPasswordService{cost: bcrypt.DefaultCost}
}

// Hash returns the bcrypt hash of the plain password.
func (s *BcryptPasswordService) Hash(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), s.cost)
	if err != nil {
		return "", errx.Wrap(err, "failed to hash password", errx.TypeInternal)
	}
	return string(hash), nil
}

// Verify reports whether plain matches the stored hash.
func (s *BcryptPasswordService) Verify(hash, plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
