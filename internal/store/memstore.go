package store

import (
	"fmt"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/spf13/cast"
)

// MemStore is an in-memory Store used by package tests. It mirrors the
// remote store's contract, including store-assigned ids and the
// update-requires-existing rule, and can be told to fail upcoming calls to
// exercise partial-write paths.
type MemStore struct {
	mu       sync.Mutex
	cols     map[string]map[string]Fields
	seq      int
	failures []failure
}

type failure struct {
	col  string
	verb string
}

// NewMemStore returns an empty in-memory store.
func NewMemStore() *MemStore {
	return &MemStore{cols: make(map[string]map[string]Fields)}
}

// FailNext queues a failure for the next matching call. Verb is one of
// set, update, get, add, find, delete.
func (s *MemStore) FailNext(col, verb string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, failure{col: col, verb: verb})
}

// Count reports how many documents a collection holds. Test helper; not
// part of the Store contract.
func (s *MemStore) Count(col string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cols[col])
}

func (s *MemStore) takeFailure(col, verb string) bool {
	for i, f := range s.failures {
		if f.col == col && f.verb == verb {
			s.failures = append(s.failures[:i], s.failures[i+1:]...)
			return true
		}
	}
	return false
}

func (s *MemStore) collection(col string) map[string]Fields {
	c, ok := s.cols[col]
	if !ok {
		c = make(map[string]Fields)
		s.cols[col] = c
	}
	return c
}

func (s *MemStore) Set(col, id string, fields Fields) *Operation {
	return start(func() (any, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.takeFailure(col, "set") {
			return nil, fmt.Errorf("set %s/%s: injected failure", col, id)
		}
		s.collection(col)[id] = copyFields(fields)
		return nil, nil
	})
}

func (s *MemStore) Update(col, id string, fields Fields) *Operation {
	return start(func() (any, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.takeFailure(col, "update") {
			return nil, fmt.Errorf("update %s/%s: injected failure", col, id)
		}
		doc, ok := s.collection(col)[id]
		if !ok {
			return nil, fmt.Errorf("update %s/%s: %w", col, id, ErrNoDocument)
		}
		for k, v := range fields {
			doc[k] = v
		}
		return nil, nil
	})
}

func (s *MemStore) Get(col, id string) *Operation {
	return start(func() (any, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.takeFailure(col, "get") {
			return nil, fmt.Errorf("get %s/%s: injected failure", col, id)
		}
		doc, ok := s.collection(col)[id]
		if !ok {
			return Snapshot{ID: id}, nil
		}
		return Snapshot{ID: id, Fields: copyFields(doc)}, nil
	})
}

func (s *MemStore) Add(col string, fields Fields) *Operation {
	return start(func() (any, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.takeFailure(col, "add") {
			return nil, fmt.Errorf("add %s: injected failure", col)
		}
		s.seq++
		id := fmt.Sprintf("doc%06d", s.seq)
		s.collection(col)[id] = copyFields(fields)
		return id, nil
	})
}

func (s *MemStore) Find(col string, conds ...Cond) *Operation {
	return start(func() (any, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.takeFailure(col, "find") {
			return nil, fmt.Errorf("find %s: injected failure", col)
		}

		docs := s.collection(col)
		ids := make([]string, 0, len(docs))
		for id := range docs {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		snaps := make([]Snapshot, 0, len(docs))
		for _, id := range ids {
			if matches(docs[id], conds) {
				snaps = append(snaps, Snapshot{ID: id, Fields: copyFields(docs[id])})
			}
		}
		return snaps, nil
	})
}

func (s *MemStore) Delete(col, id string) *Operation {
	return start(func() (any, error) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if s.takeFailure(col, "delete") {
			return nil, fmt.Errorf("delete %s/%s: injected failure", col, id)
		}
		if _, ok := s.collection(col)[id]; !ok {
			return nil, fmt.Errorf("delete %s/%s: %w", col, id, ErrNoDocument)
		}
		delete(s.collection(col), id)
		return nil, nil
	})
}

func (s *MemStore) Close() *Operation {
	return start(func() (any, error) { return nil, nil })
}

func matches(doc Fields, conds []Cond) bool {
	for _, c := range conds {
		v, ok := doc[c.Field]
		if !ok {
			return false
		}
		switch c.Op {
		case OpEq:
			if !reflect.DeepEqual(v, c.Value) {
				return false
			}
		case OpGte, OpLt:
			if !inRange(v, c) {
				return false
			}
		default:
			return false
		}
	}
	return true
}

func inRange(v any, c Cond) bool {
	if tv, ok := v.(time.Time); ok {
		cv := cast.ToTime(c.Value)
		if c.Op == OpGte {
			return !tv.Before(cv)
		}
		return tv.Before(cv)
	}
	fv := cast.ToFloat64(v)
	cv := cast.ToFloat64(c.Value)
	if c.Op == OpGte {
		return fv >= cv
	}
	return fv < cv
}

// Field values are scalars, so a one-level copy is enough to keep callers
// from aliasing stored documents.
func copyFields(fields Fields) Fields {
	out := make(Fields, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}
