package btreeset

import (
	"fmt"

	"github.com/go-btreeset/btreeset/btreeio"
)

// Insert adds key to the tree. It is a no-op returning tree unchanged
// if key is already present — this is a set, not a multiset.
//
// Insert locates the insertion leaf via searchTree, then bubbles a new
// item up the returned path: a page with room gets the item spliced in
// directly; a full page splits, and the median item continues bubbling
// with its child now pointing at the newly allocated right sibling. If
// the path is exhausted (the old root itself split), a fresh root page
// is allocated holding just the surviving median.
func Insert[K any](pio btreeio.PageIO[K], tree Tree[K], key K) (Tree[K], error) {
	if tree.Root == btreeio.NoPage {
		id, err := pio.Allocate()
		if err != nil {
			return tree, fmt.Errorf("btreeset: allocate root leaf: %w", err)
		}
		body := btreeio.Body[K]{
			P0:      btreeio.NoPage,
			Entries: []btreeio.Item[K]{{Key: key, Child: btreeio.NoPage}},
		}
		if err := pio.Write(id, body); err != nil {
			return tree, fmt.Errorf("btreeset: write root leaf: %w", err)
		}
		tree.Root = id
		return tree, nil
	}

	_, _, found, path, err := searchTree(pio, tree.less, tree.Root, key)
	if err != nil {
		return tree, err
	}
	if found {
		return tree, nil
	}

	n := tree.Order
	u := btreeio.Item[K]{Key: key, Child: btreeio.NoPage}

	for _, pe := range path {
		body := pe.body
		if len(body.Entries) < 2*n {
			body.Entries = insertAt(cloneItems(body.Entries), pe.slot, u)
			if err := pio.Write(pe.id, body); err != nil {
				return tree, fmt.Errorf("btreeset: write page %d: %w", pe.id, err)
			}
			return tree, nil
		}

		median, left, right := split(n, body, u, pe.slot)
		rightID, err := pio.Allocate()
		if err != nil {
			return tree, fmt.Errorf("btreeset: allocate split sibling: %w", err)
		}
		right.P0 = median.Child
		median.Child = rightID

		if err := pio.Write(pe.id, left); err != nil {
			return tree, fmt.Errorf("btreeset: write split left page %d: %w", pe.id, err)
		}
		if err := pio.Write(rightID, right); err != nil {
			return tree, fmt.Errorf("btreeset: write split right page %d: %w", rightID, err)
		}
		u = median
	}

	newRoot, err := pio.Allocate()
	if err != nil {
		return tree, fmt.Errorf("btreeset: allocate new root: %w", err)
	}
	body := btreeio.Body[K]{P0: tree.Root, Entries: []btreeio.Item[K]{u}}
	if err := pio.Write(newRoot, body); err != nil {
		return tree, fmt.Errorf("btreeset: write new root: %w", err)
	}
	tree.Root = newRoot
	return tree, nil
}

// split divides a full page (2*n items) around the incoming item u at
// insertion slot, producing the median item that moves up and two
// n-item halves. The three cases follow the slot's position relative
// to n exactly:
//
//   - slot == n: u itself is the median; the existing items split evenly.
//   - slot < n:  the old median (e[n-1]) moves up; u is spliced into
//     the left half.
//   - slot > n:  the old median (e[n]) moves up; u is spliced into the
//     right half.
//
// The caller is responsible for pointing the new right sibling's P0 at
// median.Child and then overwriting median.Child with the sibling's
// freshly allocated id before passing it further up.
func split[K any](n int, body btreeio.Body[K], u btreeio.Item[K], slot int) (median btreeio.Item[K], left, right btreeio.Body[K]) {
	e := body.Entries
	switch {
	case slot == n:
		median = u
		left = btreeio.Body[K]{P0: body.P0, Entries: cloneItems(e[:n])}
		right = btreeio.Body[K]{Entries: cloneItems(e[n:])}

	case slot < n:
		median = e[n-1]
		entries := make([]btreeio.Item[K], 0, n)
		entries = append(entries, e[:slot]...)
		entries = append(entries, u)
		entries = append(entries, e[slot:n-1]...)
		left = btreeio.Body[K]{P0: body.P0, Entries: entries}
		right = btreeio.Body[K]{Entries: cloneItems(e[n:])}

	default: // slot > n
		median = e[n]
		left = btreeio.Body[K]{P0: body.P0, Entries: cloneItems(e[:n])}
		entries := make([]btreeio.Item[K], 0, n)
		spliceAt := slot - n - 1
		entries = append(entries, e[n+1:n+1+spliceAt]...)
		entries = append(entries, u)
		entries = append(entries, e[n+1+spliceAt:]...)
		right = btreeio.Body[K]{Entries: entries}
	}
	return median, left, right
}
