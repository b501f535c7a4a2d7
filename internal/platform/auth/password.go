package auth

import (
	"golang.org/x/crypto/bcrypt"
)

// Hasher wraps bcrypt behind a stateless service object that is constructed
// once at startup and handed to whatever needs it. Hashes remain verifiable
// across process restarts regardless of cost changes, since bcrypt encodes
// the cost in the hash itself.
type Hasher struct {
	cost int
}

func NewHasher() *Hasher {
	return &Hasher{cost: bcrypt.DefaultCost}
}

func (h *Hasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Verify reports whether plain hashes to hash.
func (h *Hasher) Verify(plain, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(plain)) == nil
}
