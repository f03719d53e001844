package bookcat

import (
	"crypto/subtle"

	"github.com/ukaji3/bookcat-go/pkg/bookcat/models"
	"golang.org/x/crypto/bcrypt"
)

// DefaultSecret is the librarian password used when none is configured.
const DefaultSecret = "password123"

// Authenticator decides the role for a candidate password.
type Authenticator interface {
	Authenticate(candidate string) models.Role
}

// SharedSecret grants admin when the candidate equals a configured secret.
type SharedSecret struct {
	secret []byte
}

// NewSharedSecret creates a SharedSecret. An empty secret never authenticates.
func NewSharedSecret(secret string) *SharedSecret {
	return &SharedSecret{secret: []byte(secret)}
}

// Authenticate compares in constant time.
func (s *SharedSecret) Authenticate(candidate string) models.Role {
	if len(s.secret) == 0 {
		return models.RoleGuest
	}
	if subtle.ConstantTimeCompare([]byte(candidate), s.secret) == 1 {
		return models.RoleAdmin
	}
	return models.RoleGuest
}

// HashedSecret grants admin when the candidate matches a bcrypt hash.
type HashedSecret struct {
	hash []byte
}

// NewHashedSecret validates hash and creates a HashedSecret.
func NewHashedSecret(hash string) (*HashedSecret, error) {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return nil, err
	}
	return &HashedSecret{hash: []byte(hash)}, nil
}

func (h *HashedSecret) Authenticate(candidate string) models.Role {
	if bcrypt.CompareHashAndPassword(h.hash, []byte(candidate)) == nil {
		return models.RoleAdmin
	}
	return models.RoleGuest
}

// HashSecret returns a bcrypt hash suitable for NewHashedSecret.
func HashSecret(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
