package btreeio

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var errNotFound = errors.New("btreeio_test: page not found")

// handle stands in for a caller's real storage connection (a file
// handle, a pool checkout); FuncBundle only ever threads it through.
type handle struct {
	pages  map[PageID]Body[int]
	nextID int64
}

func TestNewBundle_RoundTrips(t *testing.T) {
	h := &handle{pages: make(map[PageID]Body[int])}
	pio := NewBundle[int](h,
		func(h *handle, id PageID) (Body[int], error) {
			b, ok := h.pages[id]
			if !ok {
				return Body[int]{}, errNotFound
			}
			return b, nil
		},
		func(h *handle, id PageID, body Body[int]) error {
			h.pages[id] = body
			return nil
		},
		func(h *handle) (PageID, error) {
			h.nextID++
			return PageID(h.nextID), nil
		},
		func(h *handle, id PageID) error {
			delete(h.pages, id)
			return nil
		},
	)

	id, err := pio.Allocate()
	require.NoError(t, err)
	require.NotEqual(t, NoPage, id)

	body := Body[int]{Entries: []Item[int]{{Key: 1}}}
	require.NoError(t, pio.Write(id, body))

	got, err := pio.Read(id)
	require.NoError(t, err)
	require.Equal(t, body, got)

	require.NoError(t, pio.Delete(id))
	_, err = pio.Read(id)
	require.ErrorIs(t, err, errNotFound)
}
