package concerts

import (
	"context"
	"sync"
)

// Store holds per-user concert records.
// Append must check for duplicates and insert atomically.
// List returns records in insertion order; an unknown user yields an empty slice.
type Store interface {
	Append(ctx context.Context, r Record) (Record, error)
	List(ctx context.Context, userID string) ([]Record, error)
}

// MemoryStore is an in-memory Store safe for concurrent use.
type MemoryStore struct {
	mu     sync.RWMutex
	byUser map[string][]Record
	keys   map[recordKey]struct{}
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byUser: make(map[string][]Record),
		keys:   make(map[recordKey]struct{}),
	}
}

func (s *MemoryStore) Append(_ context.Context, r Record) (Record, error) {
	if err := r.Validate(); err != nil {
		return Record{}, err
	}
	r = cloneRecord(r)
	s.mu.Lock()
	defer s.mu.Unlock()
	k := r.key()
	if _, ok := s.keys[k]; ok {
		return Record{}, ErrDuplicateRecord
	}
	s.keys[k] = struct{}{}
	s.byUser[r.UserID] = append(s.byUser[r.UserID], r)
	return cloneRecord(r), nil
}

func (s *MemoryStore) List(_ context.Context, userID string) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rs := s.byUser[userID]
	out := make([]Record, len(rs))
	for i, r := range rs {
		out[i] = cloneRecord(r)
	}
	return out, nil
}

// Stats lists the user's records and aggregates them.
func (s *MemoryStore) Stats(ctx context.Context, userID string) (Stats, error) {
	rs, err := s.List(ctx, userID)
	if err != nil {
		return Stats{}, err
	}
	return Aggregate(rs)
}

func cloneRecord(r Record) Record {
	if r.Rating != nil {
		v := *r.Rating
		r.Rating = &v
	}
	return r
}
