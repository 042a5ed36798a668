package docstore

import (
	"context"
	"sort"
	"sync"
)

type Memory struct {
	mu   sync.RWMutex
	data map[string]map[string][]byte
}

func NewMemory() *Memory {
	return &Memory{data: map[string]map[string][]byte{}}
}

func (m *Memory) Get(_ context.Context, collection, id string) ([]byte, bool, error) {
	if err := validateKey(collection, id); err != nil {
		return nil, false, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	b, ok := m.data[collection][id]
	if !ok {
		return nil, false, nil
	}
	return append([]byte(nil), b...), true, nil
}

func (m *Memory) Set(_ context.Context, collection, id string, value any) error {
	if err := validateKey(collection, id); err != nil {
		return err
	}
	b, err := encode(value)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.data[collection]
	if !ok {
		c = map[string][]byte{}
		m.data[collection] = c
	}
	c[id] = b
	return nil
}

func (m *Memory) List(_ context.Context, collection string) ([]Document, error) {
	if err := validateCollection(collection); err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	c := m.data[collection]
	out := make([]Document, 0, len(c))
	for id, b := range c {
		out = append(out, Document{ID: id, Data: append([]byte(nil), b...)})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}
