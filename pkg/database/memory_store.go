package database

import (
	"context"
	"sync"
)

// MemoryStore holds encoded documents in memory. It goes through the same
// envelope encoding as the durable stores so decode errors surface in tests.
type MemoryStore struct {
	mu      sync.Mutex
	version int
	docs    map[string][]byte
	// FailSave, when set, is returned by Save for the named document.
	FailSave map[string]error
}

func NewMemoryStore(version int) *MemoryStore {
	return &MemoryStore{version: version, docs: make(map[string][]byte)}
}

func (s *MemoryStore) Load(ctx context.Context, name string, v any) (bool, error) {
	s.mu.Lock()
	raw, ok := s.docs[name]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	return true, decodeEnvelope(name, s.version, raw, v)
}

func (s *MemoryStore) Save(ctx context.Context, name string, v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := s.FailSave[name]; err != nil {
		return err
	}
	raw, err := encodeEnvelope(s.version, v)
	if err != nil {
		return err
	}
	s.docs[name] = raw
	return nil
}

// Raw returns the stored bytes of a document, for assertions.
func (s *MemoryStore) Raw(name string) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.docs[name]
}

func (s *MemoryStore) Close() error { return nil }
