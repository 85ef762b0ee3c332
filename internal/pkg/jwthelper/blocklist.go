package jwthelper

import (
	"sync"
	"time"
)

// Blocklist remembers revoked token ids until they would have expired anyway.
type Blocklist struct {
	mu      sync.Mutex
	revoked map[string]time.Time
	now     func() time.Time
}

func NewBlocklist() *Blocklist {
	return &Blocklist{
		revoked: make(map[string]time.Time),
		now:     time.Now,
	}
}

func (b *Blocklist) Revoke(id string, expiresAt time.Time) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.revoked[id] = expiresAt
	b.sweep()
}

func (b *Blocklist) IsRevoked(id string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	_, ok := b.revoked[id]
	return ok
}

func (b *Blocklist) sweep() {
	now := b.now()
	for id, exp := range b.revoked {
		if now.After(exp) {
			delete(b.revoked, id)
		}
	}
}
