package registry

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/nexastore/storefront/internal/domain/errors"
)

// ReferenceRegistry is a short-TTL duplicate guard over minted transaction
// references. It is not an order store: entries expire and nothing about
// the transaction is kept beyond the reference string itself.
type ReferenceRegistry interface {
	// Record registers a freshly minted reference. It fails with
	// ErrDuplicateReference when the reference was seen within the TTL.
	Record(ctx context.Context, reference string) error
}

// MemoryRegistry is the in-process implementation, used in tests and when
// the service runs without Redis.
type MemoryRegistry struct {
	mu   sync.Mutex
	seen map[string]time.Time
	ttl  time.Duration
	now  func() time.Time
}

// NewMemory creates an in-process registry with the given TTL.
func NewMemory(ttl time.Duration) *MemoryRegistry {
	return &MemoryRegistry{
		seen: make(map[string]time.Time),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (m *MemoryRegistry) Record(ctx context.Context, reference string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	for ref, expiry := range m.seen {
		if expiry.Before(now) {
			delete(m.seen, ref)
		}
	}

	if _, ok := m.seen[reference]; ok {
		return domainErrors.ErrDuplicateReference
	}
	m.seen[reference] = now.Add(m.ttl)
	return nil
}
