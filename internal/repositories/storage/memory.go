package storage

import (
	"context"
	"sync"

	"github.com/SscSPs/invoice_wizard/internal/apperrors"
	portsrepo "github.com/SscSPs/invoice_wizard/internal/core/ports/repositories"
)

// MemoryStore keeps slots in process memory. Values are copied on the way in and out.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string][]byte
}

// NewMemoryStore returns an empty in-memory slot store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{slots: make(map[string][]byte)}
}

var _ portsrepo.SlotRepositoryFacade = (*MemoryStore)(nil)

func (s *MemoryStore) LoadSlot(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.slots[key]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return append([]byte(nil), value...), nil
}

func (s *MemoryStore) SaveSlot(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.slots[key] = append([]byte(nil), value...)
	return nil
}

func (s *MemoryStore) DeleteSlot(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.slots, key)
	return nil
}
