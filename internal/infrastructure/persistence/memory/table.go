// Package memory is the process-local entity store. Each entity type lives in
// its own Table with an independent id counter and lock.
package memory

import (
	"sort"
	"sync"

	"github.com/bizledger/backend/internal/domain/shared"
)

// UniqueKey is one value of one unique index, e.g. {"username", "alice"}
type UniqueKey struct {
	Index string
	Value string
}

// TableSnapshot is the serializable state of a table
type TableSnapshot[T any] struct {
	NextID int64 `json:"nextId"`
	Rows   []T   `json:"rows"`
}

// Table stores records of one entity type.
// Ids start at 1, increase by one per successful insert and are never reused.
type Table[T any] struct {
	entity string
	setID  func(*T, int64)
	keysOf func(T) []UniqueKey

	mu     sync.RWMutex
	nextID int64
	rows   map[int64]T
	order  []int64
	unique map[string]map[string]int64
}

// NewTable creates an empty table. keysOf may be nil when the entity has no
// unique fields.
func NewTable[T any](entity string, setID func(*T, int64), keysOf func(T) []UniqueKey) *Table[T] {
	return &Table[T]{
		entity: entity,
		setID:  setID,
		keysOf: keysOf,
		nextID: 1,
		rows:   make(map[int64]T),
		unique: make(map[string]map[string]int64),
	}
}

// Insert assigns the next id and stores rec. Unique keys are checked in the
// same critical section; a collision returns DUPLICATE_KEY and leaves the
// counter untouched.
func (t *Table[T]) Insert(rec T) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	keys := t.keys(rec)
	for _, k := range keys {
		if _, taken := t.unique[k.Index][k.Value]; taken {
			var zero T
			return zero, shared.DuplicateKey(t.entity, k.Index, k.Value)
		}
	}

	id := t.nextID
	t.nextID++
	t.setID(&rec, id)
	t.rows[id] = rec
	t.order = append(t.order, id)
	t.index(keys, id)
	return rec, nil
}

// Get returns the record with the given id
func (t *Table[T]) Get(id int64) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rec, ok := t.rows[id]
	if !ok {
		var zero T
		return zero, shared.NotFound(t.entity, id)
	}
	return rec, nil
}

// Update runs fn on a copy of the record and stores the result.
// If fn fails, or the result collides on a unique key, nothing changes.
func (t *Table[T]) Update(id int64, fn func(*T) error) (T, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var zero T
	current, ok := t.rows[id]
	if !ok {
		return zero, shared.NotFound(t.entity, id)
	}
	next := current
	if err := fn(&next); err != nil {
		return zero, err
	}
	t.setID(&next, id)

	oldKeys, newKeys := t.keys(current), t.keys(next)
	for _, k := range newKeys {
		if owner, taken := t.unique[k.Index][k.Value]; taken && owner != id {
			return zero, shared.DuplicateKey(t.entity, k.Index, k.Value)
		}
	}
	for _, k := range oldKeys {
		delete(t.unique[k.Index], k.Value)
	}
	t.index(newKeys, id)
	t.rows[id] = next
	return next, nil
}

// List returns records passing pred in insertion order. A nil pred keeps all.
func (t *Table[T]) List(pred func(T) bool) []T {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]T, 0, len(t.order))
	for _, id := range t.order {
		rec := t.rows[id]
		if pred == nil || pred(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// FindUnique looks a record up by a unique index
func (t *Table[T]) FindUnique(index, value string) (T, error) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	id, ok := t.unique[index][value]
	if !ok {
		var zero T
		return zero, shared.NotFoundBy(t.entity, index, value)
	}
	return t.rows[id], nil
}

// Len returns the number of stored records
func (t *Table[T]) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.order)
}

// LastID returns the most recently assigned id, 0 if none was assigned
func (t *Table[T]) LastID() int64 {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.nextID - 1
}

func (t *Table[T]) snapshot() TableSnapshot[T] {
	t.mu.RLock()
	defer t.mu.RUnlock()

	rows := make([]T, 0, len(t.order))
	for _, id := range t.order {
		rows = append(rows, t.rows[id])
	}
	return TableSnapshot[T]{NextID: t.nextID, Rows: rows}
}

type tableState[T any] struct {
	nextID int64
	rows   map[int64]T
	order  []int64
	unique map[string]map[string]int64
}

// prepare validates a snapshot and builds the state it describes without
// touching the table.
func (t *Table[T]) prepare(s TableSnapshot[T], idOf func(T) int64) (*tableState[T], error) {
	st := &tableState[T]{
		nextID: s.NextID,
		rows:   make(map[int64]T, len(s.Rows)),
		order:  make([]int64, 0, len(s.Rows)),
		unique: make(map[string]map[string]int64),
	}
	for _, rec := range s.Rows {
		id := idOf(rec)
		if id <= 0 {
			return nil, shared.Validation("%s snapshot contains invalid id %d", t.entity, id)
		}
		if _, dup := st.rows[id]; dup {
			return nil, shared.Validation("%s snapshot contains id %d twice", t.entity, id)
		}
		for _, k := range t.keys(rec) {
			if _, taken := st.unique[k.Index][k.Value]; taken {
				return nil, shared.DuplicateKey(t.entity, k.Index, k.Value)
			}
			if st.unique[k.Index] == nil {
				st.unique[k.Index] = make(map[string]int64)
			}
			st.unique[k.Index][k.Value] = id
		}
		st.rows[id] = rec
		st.order = append(st.order, id)
		st.nextID = max(st.nextID, id+1)
	}
	sort.Slice(st.order, func(i, j int) bool { return st.order[i] < st.order[j] })
	return st, nil
}

// commit swaps in a prepared state. The counter only moves forward so ids
// handed out before the restore are never issued again.
func (t *Table[T]) commit(st *tableState[T]) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.rows = st.rows
	t.order = st.order
	t.unique = st.unique
	t.nextID = max(t.nextID, st.nextID)
}

func (t *Table[T]) keys(rec T) []UniqueKey {
	if t.keysOf == nil {
		return nil
	}
	return t.keysOf(rec)
}

func (t *Table[T]) index(keys []UniqueKey, id int64) {
	for _, k := range keys {
		if t.unique[k.Index] == nil {
			t.unique[k.Index] = make(map[string]int64)
		}
		t.unique[k.Index][k.Value] = id
	}
}
