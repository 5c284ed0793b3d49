package docstore

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"sync"
	"time"
)

// MemoryStore is the in-memory Store used by service tests and local runs
// without a database. Semantics mirror MySQLStore, including merge-patch
// updates where a nil field value removes the key.
type MemoryStore struct {
	mu     sync.RWMutex
	tables map[string]map[string]*memDoc
	seq    int64

	// NowFunc lets tests control document timestamps.
	NowFunc func() time.Time
}

type memDoc struct {
	fields    map[string]any
	createdAt time.Time
	updatedAt time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tables: map[string]map[string]*memDoc{}}
}

func (s *MemoryStore) now() time.Time {
	if s.NowFunc != nil {
		return s.NowFunc()
	}
	return time.Now().UTC()
}

// table lazily creates the collection; callers must hold the write lock.
func (s *MemoryStore) table(collection string) map[string]*memDoc {
	t, ok := s.tables[collection]
	if !ok {
		t = map[string]*memDoc{}
		s.tables[collection] = t
	}
	return t
}

func (s *MemoryStore) List(_ context.Context, collection string, opts ListOptions) ([]Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := []Document{}
	for id, d := range s.tables[collection] {
		if !matchesFilters(d.fields, opts.Filters) {
			continue
		}
		out = append(out, exportDoc(id, d))
	}

	if opts.OrderUpdatedDesc {
		sort.SliceStable(out, func(i, j int) bool {
			if out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
				return out[i].ID > out[j].ID
			}
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		})
	} else {
		sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	}

	if opts.Limit > 0 && len(out) > opts.Limit {
		out = out[:opts.Limit]
	}
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, collection, id string) (Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	d, ok := s.tables[collection][id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return exportDoc(id, d), nil
}

func (s *MemoryStore) Create(_ context.Context, collection string, fields map[string]any) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq++
	id := "doc" + strconv.FormatInt(s.seq, 10)
	now := s.now()
	s.table(collection)[id] = &memDoc{fields: copyFields(fields), createdAt: now, updatedAt: now}
	return exportDoc(id, s.table(collection)[id]), nil
}

func (s *MemoryStore) Update(_ context.Context, collection, id string, fields map[string]any) (Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	d, ok := s.table(collection)[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	for k, v := range fields {
		if v == nil {
			delete(d.fields, k)
			continue
		}
		d.fields[k] = v
	}
	d.updatedAt = s.now()
	return exportDoc(id, d), nil
}

func (s *MemoryStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := s.table(collection)
	if _, ok := t[id]; !ok {
		return ErrNotFound
	}
	delete(t, id)
	return nil
}

func matchesFilters(fields map[string]any, filters []Filter) bool {
	for _, f := range filters {
		v, ok := fields[f.Field]
		if !ok || v == nil {
			return false
		}
		if fmt.Sprint(v) != fmt.Sprint(f.Value) {
			return false
		}
	}
	return true
}

func exportDoc(id string, d *memDoc) Document {
	return Document{ID: id, Fields: copyFields(d.fields), CreatedAt: d.createdAt, UpdatedAt: d.updatedAt}
}

func copyFields(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
