// Package btreeset is an on-disk B-tree set engine: an ordered
// collection of unique keys held as fixed-capacity pages reached
// through a caller-supplied btreeio.PageIO. It implements create,
// membership test, in-order enumeration, insertion, and deletion while
// preserving B-tree balance — every non-root page holds between Order
// and 2*Order items, and every leaf sits at the same depth.
//
// The package is single-threaded and synchronous: no operation may run
// concurrently with another mutation of the same Tree, and locking
// around a shared back-end is the caller's responsibility.
package btreeset

import "github.com/go-btreeset/btreeset/btreeio"

// Less reports whether a sorts strictly before b. Equality is derived
// as !Less(a, b) && !Less(b, a) — callers never supply a third
// comparator.
type Less[K any] func(a, b K) bool

// Tree is an immutable-from-the-caller's-perspective handle on a
// B-tree: every operation returns a new Tree value whose Root may
// differ, never mutating the one it was given.
type Tree[K any] struct {
	// Order is the minimum item count of a non-root page; a page holds
	// Order..2*Order items.
	Order int
	// Root is the page holding the tree's top level, or NoPage for an
	// empty tree.
	Root btreeio.PageID

	less Less[K]
}

// New creates an empty tree of the given order. Order must be at least
// 2, the minimum that lets a borrow always leave both the donor and the
// receiver at or above Order items without itself underflowing the
// donor.
func New[K any](order int, less Less[K]) (Tree[K], error) {
	if order < 2 {
		return Tree[K]{}, ErrInvalidOrder
	}
	return Tree[K]{Order: order, Root: btreeio.NoPage, less: less}, nil
}

// Member reports whether key is present in the tree.
func Member[K any](pio btreeio.PageIO[K], tree Tree[K], key K) (bool, error) {
	if tree.Root == btreeio.NoPage {
		return false, nil
	}
	_, _, found, _, err := searchTree(pio, tree.less, tree.Root, key)
	return found, err
}
