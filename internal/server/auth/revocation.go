package auth

import (
	"sync"
	"time"
)

// Revocations remembers revoked token ids until the tokens would have
// expired anyway.
type Revocations struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewRevocations() *Revocations {
	return &Revocations{revoked: make(map[string]time.Time), now: time.Now}
}

// Revoke marks jti as revoked until expiresAt.
func (r *Revocations) Revoke(jti string, expiresAt time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prune()
	r.revoked[jti] = expiresAt
}

// IsRevoked reports whether jti was revoked.
func (r *Revocations) IsRevoked(jti string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.revoked[jti]
	return ok
}

// Len returns the number of remembered revocations.
func (r *Revocations) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.revoked)
}

func (r *Revocations) prune() {
	now := r.now()
	for jti, exp := range r.revoked {
		if now.After(exp) {
			delete(r.revoked, jti)
		}
	}
}
