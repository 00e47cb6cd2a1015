package records

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
)

// NewMemoryRepository returns a mutex guarded in-memory repository.
func NewMemoryRepository() Repository {
	return &memoryRepository{
		byID:   map[uuid.UUID]*Record{},
		bySlug: map[string]uuid.UUID{},
	}
}

type memoryRepository struct {
	mu     sync.RWMutex
	byID   map[uuid.UUID]*Record
	bySlug map[string]uuid.UUID
}

func (m *memoryRepository) Create(_ context.Context, record *Record) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cloned := cloneRecord(record)
	if cloned.ID == uuid.Nil {
		cloned.ID = uuid.New()
	}
	m.byID[cloned.ID] = cloned
	m.bySlug[slugKey(cloned.Collection, cloned.Slug)] = cloned.ID
	return cloneRecord(cloned), nil
}

func (m *memoryRepository) GetByID(_ context.Context, id uuid.UUID) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	record, ok := m.byID[id]
	if !ok {
		return nil, &NotFoundError{Resource: "record", Key: id.String()}
	}
	return cloneRecord(record), nil
}

func (m *memoryRepository) GetBySlug(_ context.Context, collection, slug string) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.bySlug[slugKey(collection, slug)]
	if !ok {
		return nil, &NotFoundError{Resource: "record", Key: slugKey(collection, slug)}
	}
	return cloneRecord(m.byID[id]), nil
}

func (m *memoryRepository) List(_ context.Context, collection string) ([]*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*Record, 0)
	for _, record := range m.byID {
		if record.Collection == collection {
			out = append(out, cloneRecord(record))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Slug < out[j].Slug
	})
	return out, nil
}

func (m *memoryRepository) Update(_ context.Context, record *Record) (*Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[record.ID]
	if !ok {
		return nil, &NotFoundError{Resource: "record", Key: record.ID.String()}
	}
	delete(m.bySlug, slugKey(existing.Collection, existing.Slug))

	cloned := cloneRecord(record)
	m.byID[cloned.ID] = cloned
	m.bySlug[slugKey(cloned.Collection, cloned.Slug)] = cloned.ID
	return cloneRecord(cloned), nil
}

func (m *memoryRepository) Delete(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	existing, ok := m.byID[id]
	if !ok {
		return &NotFoundError{Resource: "record", Key: id.String()}
	}
	delete(m.bySlug, slugKey(existing.Collection, existing.Slug))
	delete(m.byID, id)
	return nil
}
