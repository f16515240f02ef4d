package dom

import "sync"

// Storage mirrors the Web Storage API used for session storage.
type Storage interface {
	// GetItem returns the stored value and ok=false when the key is absent
	GetItem(key string) (string, bool)
	// SetItem stores value under key
	SetItem(key, value string) error
	// RemoveItem deletes key
	RemoveItem(key string) error
}

// MemoryStorage is an in process Storage. It is safe to share between documents.
type MemoryStorage struct {
	mu    sync.RWMutex
	items map[string]string
}

var _ Storage = &MemoryStorage{}

// NewMemoryStorage returns an empty store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{items: make(map[string]string)}
}

func (s *MemoryStorage) GetItem(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok
}

func (s *MemoryStorage) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return nil
}

func (s *MemoryStorage) RemoveItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return nil
}

// Len returns the number of stored keys.
func (s *MemoryStorage) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items)
}
