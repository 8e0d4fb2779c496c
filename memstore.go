package hesabna

import (
	"encoding/json"
	"maps"
)

// MemStore is an in-memory Store. It backs tests and ephemeral sessions.
//
// FailNext, when set, makes the next Apply fail with that error without
// touching any state; tests use it to verify that a failed batch leaves the
// snapshot entirely intact.
type MemStore struct {
	collections map[string]map[string]json.RawMessage
	kv          map[string]json.RawMessage

	FailNext error
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{
		collections: make(map[string]map[string]json.RawMessage),
		kv:          make(map[string]json.RawMessage),
	}
}

// List implements Store.
func (s *MemStore) List(collection string) ([]Record, error) {
	col := s.collections[collection]
	records := make([]Record, 0, len(col))
	for id, data := range col {
		records = append(records, Record{ID: id, Data: data})
	}
	return records, nil
}

// Apply implements Store. The batch is staged on copies of the touched
// collections and swapped in only once complete.
func (s *MemStore) Apply(batch Batch) error {
	if err := s.FailNext; err != nil {
		s.FailNext = nil
		return err
	}
	staged := make(map[string]map[string]json.RawMessage)
	for _, op := range batch {
		col, ok := staged[op.Collection]
		if !ok {
			col = maps.Clone(s.collections[op.Collection])
			if col == nil {
				col = make(map[string]json.RawMessage)
			}
			staged[op.Collection] = col
		}
		if op.Data == nil {
			delete(col, op.ID)
		} else {
			col[op.ID] = op.Data
		}
	}
	for name, col := range staged {
		s.collections[name] = col
	}
	return nil
}

// Get implements Store.
func (s *MemStore) Get(key string) (json.RawMessage, bool, error) {
	v, ok := s.kv[key]
	return v, ok, nil
}

// Set implements Store.
func (s *MemStore) Set(key string, value json.RawMessage) error {
	s.kv[key] = value
	return nil
}

// DeleteKey implements Store.
func (s *MemStore) DeleteKey(key string) error {
	delete(s.kv, key)
	return nil
}

// Wipe implements Store.
func (s *MemStore) Wipe() error {
	s.collections = make(map[string]map[string]json.RawMessage)
	s.kv = make(map[string]json.RawMessage)
	return nil
}
