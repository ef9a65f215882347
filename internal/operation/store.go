package operation

import (
	"errors"
	"sync"
)

// ErrOperationNotFound is returned when an operation cannot be found by ID.
var ErrOperationNotFound = errors.New("operation not found")

// Store defines the interface for operation metadata persistence.
// Records accumulate for the process lifetime; there is no eviction.
type Store interface {
	// Put inserts or overwrites the record for rec.ID.
	Put(rec *Record)

	// Get retrieves a record by operation ID.
	// Returns ErrOperationNotFound if the record does not exist.
	Get(id string) (*Record, error)
}

// Compile-time check that MemoryStore implements Store.
var _ Store = (*MemoryStore)(nil)

// MemoryStore is an in-memory implementation of Store.
// It uses a map with RWMutex for thread-safe access. Each key is written by
// a single logical job at a time; the mutex guards the map itself, not
// cross-call read-modify-write sequences.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemoryStore creates a new in-memory operation store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		records: make(map[string]*Record),
	}
}

// Put inserts or overwrites the record for rec.ID.
// Stores a clone to avoid external mutations.
func (s *MemoryStore) Put(rec *Record) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[rec.ID] = rec.Clone()
}

// Get retrieves a record by operation ID.
// Returns a clone to prevent external mutations.
func (s *MemoryStore) Get(id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, ErrOperationNotFound
	}
	return rec.Clone(), nil
}
