package testfixtures

import (
	"context"
	"encoding/json"
	"sync"
)

// MemoryStore is an in-memory cache mirror for tests. Values round-trip
// through JSON so reads observe the same shape a durable store would
// produce.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string][]byte
	writes  []string
}

// NewMemoryStore returns an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]byte)}
}

// Write records the value under key. Unserializable values are dropped
// silently, matching the durable store's contract.
func (s *MemoryStore) Write(_ context.Context, key string, value any) {
	body, err := json.Marshal(value)
	if err != nil {
		return
	}
	s.mu.Lock()
	s.entries[key] = body
	s.writes = append(s.writes, key)
	s.mu.Unlock()
}

// Read decodes the value stored under key into dest, reporting whether a
// usable snapshot was present.
func (s *MemoryStore) Read(_ context.Context, key string, dest any) bool {
	s.mu.Lock()
	body, ok := s.entries[key]
	s.mu.Unlock()
	if !ok {
		return false
	}
	return json.Unmarshal(body, dest) == nil
}

// WriteCount reports how many writes the store has observed for key.
func (s *MemoryStore) WriteCount(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	count := 0
	for _, written := range s.writes {
		if written == key {
			count++
		}
	}
	return count
}

// Delete removes any value stored under key.
func (s *MemoryStore) Delete(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.mu.Unlock()
}
