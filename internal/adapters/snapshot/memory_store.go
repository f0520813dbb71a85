package snapshot

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"carpool-planner/internal/ports"
)

// MemoryStore is the fallback when no database is configured; snapshots live
// for the process lifetime only.
type MemoryStore struct {
	mu   sync.RWMutex
	docs map[string]json.RawMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{docs: make(map[string]json.RawMessage)}
}

func (s *MemoryStore) Save(_ context.Context, id string, doc json.RawMessage) error {
	if strings.TrimSpace(id) == "" {
		return errors.New("snapshot store: id must be non-empty")
	}

	cp := make(json.RawMessage, len(doc))
	copy(cp, doc)

	s.mu.Lock()
	s.docs[id] = cp
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Load(_ context.Context, id string) (json.RawMessage, error) {
	s.mu.RLock()
	doc, ok := s.docs[id]
	s.mu.RUnlock()

	if !ok {
		return nil, ports.ErrSnapshotNotFound
	}
	return doc, nil
}
