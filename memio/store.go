// Package memio is an in-memory reference implementation of
// btreeio.PageIO, used by the btreeset test suite and by callers who
// want a working back-end without wiring real persistence: a map keyed
// by page id plus an atomically-incremented id counter, storing data
// in memory only and not managing memory usage.
package memio

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/go-btreeset/btreeset/btreeio"
)

// Store is a concurrency-safe, unbounded in-memory page store.
type Store[K any] struct {
	pages  sync.Map // btreeio.PageID -> btreeio.Body[K]
	nextID int64
}

// New creates an empty store.
func New[K any]() *Store[K] {
	return &Store[K]{}
}

func (s *Store[K]) Read(id btreeio.PageID) (btreeio.Body[K], error) {
	v, ok := s.pages.Load(id)
	if !ok {
		return btreeio.Body[K]{}, fmt.Errorf("memio: unknown page %d", id)
	}
	return v.(btreeio.Body[K]), nil
}

func (s *Store[K]) Write(id btreeio.PageID, body btreeio.Body[K]) error {
	s.pages.Store(id, body)
	return nil
}

func (s *Store[K]) Allocate() (btreeio.PageID, error) {
	id := atomic.AddInt64(&s.nextID, 1)
	return btreeio.PageID(id), nil
}

func (s *Store[K]) Delete(id btreeio.PageID) error {
	if _, ok := s.pages.Load(id); !ok {
		return fmt.Errorf("memio: unknown page %d", id)
	}
	s.pages.Delete(id)
	return nil
}

// Len reports how many pages are currently stored, for tests that want
// to assert on allocation/merge bookkeeping.
func (s *Store[K]) Len() int {
	n := 0
	s.pages.Range(func(_, _ any) bool {
		n++
		return true
	})
	return n
}
