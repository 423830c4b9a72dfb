package store

import (
	"context"
	"sync"
)

// MemoryStore keeps instruments in a map. Values are copied on the way in and
// out, so callers can't mutate stored state.
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string]Instrument
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string]Instrument)}
}

func (s *MemoryStore) Save(ctx context.Context, inst *Instrument) error {
	if err := prepare(inst); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[inst.ID] = *inst
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Instrument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inst, ok := s.items[id]
	if !ok {
		return nil, notFound(id)
	}
	return &inst, nil
}

func (s *MemoryStore) List(ctx context.Context) ([]*Instrument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*Instrument, 0, len(s.items))
	for _, inst := range s.items {
		out = append(out, &inst)
	}
	sortInstruments(out)
	return out, nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, id)
	return nil
}

func (s *MemoryStore) Close() error { return nil }

var _ Store = (*MemoryStore)(nil)
