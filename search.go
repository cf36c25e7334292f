package btreeset

import (
	"fmt"

	"github.com/go-btreeset/btreeset/btreeio"
)

// pathEntry is one page visited during a missed descent: the page
// itself (already fetched, so insert never re-reads it), and the rank
// at which the probe key would be inserted — which is also the slot
// whose child the descent followed.
type pathEntry[K any] struct {
	id   btreeio.PageID
	slot int
	body btreeio.Body[K]
}

// binarySearch is the classic half-open lo/hi search over a page's item
// vector. It returns (true, i) when entries[i].Key == key, and
// (false, r) otherwise, where r is the number of entries whose key is
// less than key — the rank at which key would be inserted, and the
// slot whose child the descent must follow.
func binarySearch[K any](entries []btreeio.Item[K], less Less[K], key K) (hit bool, rank int) {
	lo, hi := 0, len(entries)
	for lo < hi {
		mid := (lo + hi) / 2
		switch {
		case less(entries[mid].Key, key):
			lo = mid + 1
		case less(key, entries[mid].Key):
			hi = mid
		default:
			return true, mid
		}
	}
	return false, lo
}

// descendChild returns the child subtree to follow from slot: p0 when
// slot is 0, otherwise the item immediately to its left.
func descendChild[K any](body btreeio.Body[K], slot int) btreeio.PageID {
	if slot == 0 {
		return body.P0
	}
	return body.Entries[slot-1].Child
}

// searchTree descends from root, binary-searching each page along the
// way. On a hit it returns the page and index directly. On a miss it
// returns the descent path in root-last order — the deepest page
// visited (where the search finally reached NoPage) at index 0 — which
// is exactly the order Insert needs to bubble a split upward.
func searchTree[K any](pio btreeio.PageIO[K], less Less[K], root btreeio.PageID, key K) (hitPage btreeio.PageID, hitIdx int, found bool, path []pathEntry[K], err error) {
	var forward []pathEntry[K]
	id := root
	for id != btreeio.NoPage {
		body, rerr := pio.Read(id)
		if rerr != nil {
			return 0, 0, false, nil, fmt.Errorf("btreeset: read page %d: %w", id, rerr)
		}
		if err := validatePage(body, less); err != nil {
			return 0, 0, false, nil, err
		}
		hit, rank := binarySearch(body.Entries, less, key)
		if hit {
			return id, rank, true, nil, nil
		}
		forward = append(forward, pathEntry[K]{id: id, slot: rank, body: body})
		id = descendChild(body, rank)
	}
	path = make([]pathEntry[K], len(forward))
	for i, e := range forward {
		path[len(forward)-1-i] = e
	}
	return 0, 0, false, path, nil
}

// validatePage checks the two structural properties a single page body
// can violate on its own (I2 leaf uniformity, I3 key order) without
// consulting siblings or bounds from its parent. Check performs the
// full I1-I6 sweep; this cheaper version runs on every page a live
// operation reads, so a live insert or delete never builds further on
// top of an already-corrupt page without noticing.
func validatePage[K any](body btreeio.Body[K], less Less[K]) error {
	isLeaf := body.P0 == btreeio.NoPage
	for i, it := range body.Entries {
		if (it.Child == btreeio.NoPage) != isLeaf {
			return fmt.Errorf("%w: page mixes leaf and internal children", ErrInvariant)
		}
		if i > 0 && !less(body.Entries[i-1].Key, it.Key) {
			return fmt.Errorf("%w: page keys out of order at slot %d", ErrInvariant, i)
		}
	}
	return nil
}
