package btreeset

import (
	"fmt"

	"github.com/go-btreeset/btreeset/btreeio"
)

type cacheState int

const (
	stateClean cacheState = iota
	stateDirty
	stateDeleted
)

type cacheEntry[K any] struct {
	id    btreeio.PageID
	state cacheState
	body  btreeio.Body[K]
}

// deleteCache is a one-shot write-back buffer living for the span of a
// single Delete call. Multiple underflow/borrow/merge steps routinely
// revisit the same page — splice walks down the same rightmost spine
// an underflow fixup then walks back up — so every read and write
// during a delete goes through here instead of straight to the
// back-end. Trees are shallow, so a linear scan over a small slice is
// enough; no hash table is warranted for O(depth) working sets.
type deleteCache[K any] struct {
	pio     btreeio.PageIO[K]
	less    Less[K]
	entries []cacheEntry[K]
}

func newDeleteCache[K any](pio btreeio.PageIO[K], less Less[K]) *deleteCache[K] {
	return &deleteCache[K]{pio: pio, less: less}
}

func (c *deleteCache[K]) find(id btreeio.PageID) int {
	for i := range c.entries {
		if c.entries[i].id == id {
			return i
		}
	}
	return -1
}

// Read returns a page's current body: a buffered Dirty/Clean copy if
// one exists, otherwise a fresh back-end read that gets cached as
// Clean. Reading an id this cache has already Deleted is unreachable
// from any legitimate delete path and is treated as a programming
// error — it panics rather than returning an error.
func (c *deleteCache[K]) Read(id btreeio.PageID) (btreeio.Body[K], error) {
	if i := c.find(id); i >= 0 {
		if c.entries[i].state == stateDeleted {
			panic(fmt.Errorf("%w: cache read of deleted page %d", ErrInvariant, id))
		}
		return c.entries[i].body, nil
	}
	body, err := c.pio.Read(id)
	if err != nil {
		return btreeio.Body[K]{}, fmt.Errorf("btreeset: backend read of page %d: %w", id, err)
	}
	if err := validatePage(body, c.less); err != nil {
		return btreeio.Body[K]{}, err
	}
	c.entries = append(c.entries, cacheEntry[K]{id: id, state: stateClean, body: body})
	return body, nil
}

// Write upserts a Dirty entry for body.
func (c *deleteCache[K]) Write(id btreeio.PageID, body btreeio.Body[K]) error {
	if i := c.find(id); i >= 0 {
		c.entries[i].state = stateDirty
		c.entries[i].body = body
		return nil
	}
	c.entries = append(c.entries, cacheEntry[K]{id: id, state: stateDirty, body: body})
	return nil
}

// Delete upserts a Deleted entry for id.
func (c *deleteCache[K]) Delete(id btreeio.PageID) error {
	if i := c.find(id); i >= 0 {
		c.entries[i].state = stateDeleted
		c.entries[i].body = btreeio.Body[K]{}
		return nil
	}
	c.entries = append(c.entries, cacheEntry[K]{id: id, state: stateDeleted})
	return nil
}

// Flush applies every buffered entry to the back-end: Dirty pages are
// written, Deleted pages are removed, Clean entries are no-ops. All
// writes happen before any delete, matching the ordering guarantee a
// parallelized flush would also have to preserve.
func (c *deleteCache[K]) Flush() error {
	for _, e := range c.entries {
		if e.state == stateDirty {
			if err := c.pio.Write(e.id, e.body); err != nil {
				return fmt.Errorf("btreeset: flush write page %d: %w", e.id, err)
			}
		}
	}
	for _, e := range c.entries {
		if e.state == stateDeleted {
			if err := c.pio.Delete(e.id); err != nil {
				return fmt.Errorf("btreeset: flush delete page %d: %w", e.id, err)
			}
		}
	}
	return nil
}
