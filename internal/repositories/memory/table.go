package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/BradenHooton/parliament/internal/models"
)

// table is an id-keyed collection with its own sequence. Ids start at 1 and are never reused.
type table[T any] struct {
	mu    sync.RWMutex
	seq   int64
	rows  map[int64]*T
	clone func(*T) *T
	// meta exposes the id and timestamp fields of a row
	meta func(*T) (id *int64, createdAt, updatedAt *time.Time)
}

func newTable[T any](clone func(*T) *T, meta func(*T) (*int64, *time.Time, *time.Time)) *table[T] {
	return &table[T]{rows: make(map[int64]*T), clone: clone, meta: meta}
}

func (t *table[T]) create(row *T) *T {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.seq++
	stored := t.clone(row)
	id, createdAt, updatedAt := t.meta(stored)
	*id = t.seq
	*createdAt = now()
	*updatedAt = *createdAt
	t.rows[t.seq] = stored
	return t.clone(stored)
}

func (t *table[T]) get(id int64) (*T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	row, ok := t.rows[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	return t.clone(row), nil
}

// replace overwrites the row, keeping its id and creation time
func (t *table[T]) replace(id int64, row *T) (*T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	existing, ok := t.rows[id]
	if !ok {
		return nil, models.ErrNotFound
	}
	_, createdAt, _ := t.meta(existing)

	stored := t.clone(row)
	storedID, storedCreated, storedUpdated := t.meta(stored)
	*storedID = id
	*storedCreated = *createdAt
	*storedUpdated = now()
	t.rows[id] = stored
	return t.clone(stored), nil
}

func (t *table[T]) delete(id int64) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if _, ok := t.rows[id]; !ok {
		return models.ErrNotFound
	}
	delete(t.rows, id)
	return nil
}

func (t *table[T]) list() []*T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	ids := make([]int64, 0, len(t.rows))
	for id := range t.rows {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]*T, 0, len(ids))
	for _, id := range ids {
		out = append(out, t.clone(t.rows[id]))
	}
	return out
}

func (t *table[T]) count() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows)
}
