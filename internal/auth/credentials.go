package auth

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/stockhaus/stockhaus-backend/config"
)

// CredentialStore holds the configured users as bcrypt hashes.
type CredentialStore struct {
	hashes map[string][]byte
	dummy  []byte
}

// NewCredentialStore hashes plaintext passwords with the given cost. Entries
// that already look like bcrypt hashes are kept as they are. The dummy hash
// uses the highest cost in the store.
func NewCredentialStore(creds []config.Credential, cost int) (*CredentialStore, error) {
	if len(creds) == 0 {
		return nil, fmt.Errorf("credential store: no users configured")
	}
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	s := &CredentialStore{hashes: make(map[string][]byte, len(creds))}
	dummyCost := cost
	for _, c := range creds {
		if isBcryptHash(c.Password) {
			s.hashes[c.Username] = []byte(c.Password)
			if hc, _ := bcrypt.Cost([]byte(c.Password)); hc > dummyCost {
				dummyCost = hc
			}
			continue
		}
		h, err := bcrypt.GenerateFromPassword([]byte(c.Password), cost)
		if err != nil {
			return nil, fmt.Errorf("credential store: hash password for %q: %w", c.Username, err)
		}
		s.hashes[c.Username] = h
	}

	dummy, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), dummyCost)
	if err != nil {
		return nil, fmt.Errorf("credential store: dummy hash: %w", err)
	}
	s.dummy = dummy

	return s, nil
}

// Verify runs exactly one bcrypt comparison whether or not the username exists.
func (s *CredentialStore) Verify(username, password string) bool {
	hash, known := s.hashes[username]
	if !known {
		hash = s.dummy
	}
	err := bcrypt.CompareHashAndPassword(hash, []byte(password))
	return known && err == nil
}

func (s *CredentialStore) Len() int { return len(s.hashes) }

func isBcryptHash(v string) bool {
	if !strings.HasPrefix(v, "$2a$") && !strings.HasPrefix(v, "$2b$") && !strings.HasPrefix(v, "$2y$") {
		return false
	}
	_, err := bcrypt.Cost([]byte(v))
	return err == nil
}
