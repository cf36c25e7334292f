package btreeset

import (
	"fmt"

	"github.com/go-btreeset/btreeset/btreeio"
)

// Check validates every structural invariant (I1-I6) and returns the
// first violation it finds, wrapped in ErrInvariant. It is read-only
// and intended for tests and debugging, not the hot path.
func Check[K any](pio btreeio.PageIO[K], tree Tree[K]) error {
	if tree.Root == btreeio.NoPage {
		return nil
	}
	_, err := checkSubtree(pio, tree.less, tree.Order, tree.Root, true, nil, nil, 0)
	return err
}

// checkSubtree validates the page at id and everything beneath it,
// given the open bound (low, high) inherited from its parent, and
// returns the depth at which its leaves sit so callers can confirm
// every leaf in the tree is equally deep (I6).
func checkSubtree[K any](pio btreeio.PageIO[K], less Less[K], n int, id btreeio.PageID, isRoot bool, low, high *K, depth int) (leafDepth int, err error) {
	body, err := pio.Read(id)
	if err != nil {
		return 0, fmt.Errorf("%w: read page %d: %v", ErrInvariant, id, err)
	}

	m := len(body.Entries)
	if isRoot {
		if m == 0 {
			return 0, fmt.Errorf("%w: root page %d is empty; it should have been collapsed away", ErrInvariant, id)
		}
		if m > 2*n {
			return 0, fmt.Errorf("%w: root page %d has %d items, want at most %d", ErrInvariant, id, m, 2*n)
		}
	} else if m < n || m > 2*n {
		return 0, fmt.Errorf("%w: page %d has %d items, want between %d and %d", ErrInvariant, id, m, n, 2*n)
	}

	isLeaf := body.P0 == btreeio.NoPage
	for i, it := range body.Entries {
		if (it.Child == btreeio.NoPage) != isLeaf {
			return 0, fmt.Errorf("%w: page %d mixes leaf and internal children", ErrInvariant, id)
		}
		if i > 0 && !less(body.Entries[i-1].Key, it.Key) {
			return 0, fmt.Errorf("%w: page %d keys out of order at slot %d", ErrInvariant, id, i)
		}
		if low != nil && !less(*low, it.Key) {
			return 0, fmt.Errorf("%w: page %d key at slot %d is not above its subtree's lower bound", ErrInvariant, id, i)
		}
		if high != nil && !less(it.Key, *high) {
			return 0, fmt.Errorf("%w: page %d key at slot %d is not below its subtree's upper bound", ErrInvariant, id, i)
		}
	}

	if isLeaf {
		return depth, nil
	}

	childDepth := -1
	checkChild := func(childID btreeio.PageID, lo, hi *K) error {
		d, err := checkSubtree(pio, less, n, childID, false, lo, hi, depth+1)
		if err != nil {
			return err
		}
		if childDepth == -1 {
			childDepth = d
		} else if d != childDepth {
			return fmt.Errorf("%w: unequal leaf depth under page %d", ErrInvariant, id)
		}
		return nil
	}

	var firstKey *K
	if len(body.Entries) > 0 {
		k := body.Entries[0].Key
		firstKey = &k
	}
	if err := checkChild(body.P0, low, firstKey); err != nil {
		return 0, err
	}
	for i, it := range body.Entries {
		var nextKey *K
		if i+1 < len(body.Entries) {
			k := body.Entries[i+1].Key
			nextKey = &k
		} else {
			nextKey = high
		}
		lo := it.Key
		if err := checkChild(it.Child, &lo, nextKey); err != nil {
			return 0, err
		}
	}
	return childDepth, nil
}
