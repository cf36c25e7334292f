package btreeset

import (
	"github.com/go-btreeset/btreeset/btreeio"
)

// Delete removes key from the tree. Deleting an absent key is a
// success that returns tree unchanged — not an error.
//
// Delete opens a delete-scoped cache, recursively locates and removes
// key (splicing in the in-order predecessor when the key sits on an
// internal page, then rebalancing on the way back up), shrinks the
// tree if the root emptied out, flushes the cache to the back-end, and
// returns the possibly-updated tree.
func Delete[K any](pio btreeio.PageIO[K], tree Tree[K], key K) (Tree[K], error) {
	if tree.Root == btreeio.NoPage {
		return tree, nil
	}

	c := newDeleteCache(pio, tree.less)
	underflowed, err := deleteRec(c, tree.Order, tree.less, key, tree.Root)
	if err != nil {
		return tree, err
	}
	if underflowed {
		root, err := c.Read(tree.Root)
		if err != nil {
			return tree, err
		}
		if len(root.Entries) == 0 {
			old := tree.Root
			tree.Root = root.P0
			if err := c.Delete(old); err != nil {
				return tree, err
			}
		}
	}
	if err := c.Flush(); err != nil {
		return tree, err
	}
	return tree, nil
}

// deleteRec locates key starting from page id and removes it, reporting
// whether id itself is now undersized (has fewer than n items) so its
// caller can rebalance around it.
func deleteRec[K any](c *deleteCache[K], n int, less Less[K], key K, id btreeio.PageID) (underflow bool, err error) {
	if id == btreeio.NoPage {
		return false, nil
	}
	body, err := c.Read(id)
	if err != nil {
		return false, err
	}

	hit, rank := binarySearch(body.Entries, less, key)
	child := descendChild(body, rank)

	if hit {
		if child == btreeio.NoPage {
			// A leaf: the key lives right here, just drop it.
			body.Entries = removeAt(cloneItems(body.Entries), rank)
			if err := c.Write(id, body); err != nil {
				return false, err
			}
			return len(body.Entries) < n, nil
		}

		// An internal node: splice the in-order predecessor up from
		// the rightmost leaf of the left subtree, then drop it there.
		predKey, childUnderflow, err := splice(c, n, child)
		if err != nil {
			return false, err
		}
		body = cloneBody(body)
		body.Entries[rank].Key = predKey
		if err := c.Write(id, body); err != nil {
			return false, err
		}
		if childUnderflow {
			return underflowAt(c, n, id, rank, child)
		}
		return false, nil
	}

	if child == btreeio.NoPage {
		return false, nil // key absent
	}
	childUnderflow, err := deleteRec(c, n, less, key, child)
	if err != nil {
		return false, err
	}
	if childUnderflow {
		return underflowAt(c, n, id, rank, child)
	}
	return false, nil
}

// splice walks rightward from id to the rightmost leaf of the subtree,
// removes that leaf's last key, and returns it — the in-order
// predecessor of whatever internal key is being deleted above. It
// reports whether id itself underflowed after the removal and any
// rebalancing along the spine it walked.
func splice[K any](c *deleteCache[K], n int, id btreeio.PageID) (key K, underflow bool, err error) {
	body, err := c.Read(id)
	if err != nil {
		return key, false, err
	}
	last := len(body.Entries) - 1
	rightmost := body.Entries[last].Child

	if rightmost == btreeio.NoPage {
		key = body.Entries[last].Key
		body = cloneBody(body)
		body.Entries = body.Entries[:last]
		if err := c.Write(id, body); err != nil {
			return key, false, err
		}
		return key, len(body.Entries) < n, nil
	}

	key, childUnderflow, err := splice(c, n, rightmost)
	if err != nil {
		return key, false, err
	}
	if childUnderflow {
		selfUnderflow, err := underflowAt(c, n, id, last+1, rightmost)
		return key, selfUnderflow, err
	}
	return key, false, nil
}

// cloneBody returns a copy of body whose Entries slice can be mutated
// without aliasing whatever backing array the cache still holds.
func cloneBody[K any](body btreeio.Body[K]) btreeio.Body[K] {
	return btreeio.Body[K]{P0: body.P0, Entries: cloneItems(body.Entries)}
}

// underflowAt rebalances page childID (reached from parentID at child
// slot slot, 0 meaning parentID's P0) after it dropped to n-1 items. It
// prefers borrowing from the right sibling when one exists, falling
// back to the left sibling — mirroring the same borrow-or-merge choice
// — when childID is the rightmost child. It reports whether parentID
// itself underflowed as a result (only merges propagate underflow;
// a successful borrow never does).
func underflowAt[K any](c *deleteCache[K], n int, parentID btreeio.PageID, slot int, childID btreeio.PageID) (bool, error) {
	parent, err := c.Read(parentID)
	if err != nil {
		return false, err
	}
	if slot < len(parent.Entries) {
		return borrowOrMergeRight(c, n, parentID, parent, slot, childID)
	}
	return borrowOrMergeLeft(c, n, parentID, parent, slot, childID)
}

// borrowOrMergeRight handles the case where childID has a right
// sibling: parent.Entries[slot] separates them. Borrowing moves the
// separator and a run of the sibling's smallest items into childID and
// rotates a new separator up; merging absorbs the separator and the
// whole sibling into childID and drops the sibling.
func borrowOrMergeRight[K any](c *deleteCache[K], n int, parentID btreeio.PageID, parent btreeio.Body[K], slot int, childID btreeio.PageID) (bool, error) {
	sep := parent.Entries[slot]
	a, err := c.Read(childID)
	if err != nil {
		return false, err
	}
	b, err := c.Read(sep.Child)
	if err != nil {
		return false, err
	}

	mb := len(b.Entries)
	k := (mb - n + 1) / 2

	if k > 0 {
		descended := btreeio.Item[K]{Key: sep.Key, Child: b.P0}
		entries := make([]btreeio.Item[K], 0, len(a.Entries)+k)
		entries = append(entries, a.Entries...)
		entries = append(entries, descended)
		entries = append(entries, b.Entries[:k-1]...)
		a.Entries = entries

		ascend := b.Entries[k-1]
		parent = cloneBody(parent)
		parent.Entries[slot] = btreeio.Item[K]{Key: ascend.Key, Child: sep.Child}

		b = btreeio.Body[K]{P0: ascend.Child, Entries: cloneItems(b.Entries[k:])}

		if err := c.Write(childID, a); err != nil {
			return false, err
		}
		if err := c.Write(sep.Child, b); err != nil {
			return false, err
		}
		if err := c.Write(parentID, parent); err != nil {
			return false, err
		}
		return false, nil
	}

	merged := make([]btreeio.Item[K], 0, len(a.Entries)+1+len(b.Entries))
	merged = append(merged, a.Entries...)
	merged = append(merged, btreeio.Item[K]{Key: sep.Key, Child: b.P0})
	merged = append(merged, b.Entries...)
	a.Entries = merged

	parent = cloneBody(parent)
	parent.Entries = removeAt(parent.Entries, slot)

	if err := c.Write(childID, a); err != nil {
		return false, err
	}
	if err := c.Delete(sep.Child); err != nil {
		return false, err
	}
	if err := c.Write(parentID, parent); err != nil {
		return false, err
	}
	return len(parent.Entries) < n, nil
}

// borrowOrMergeLeft mirrors borrowOrMergeRight for a rightmost child
// that has no right sibling: the left sibling at slot-1 (or the
// parent's P0, when slot is 1) donates instead, and a merge keeps the
// left sibling and drops childID — the mirror image of the right case,
// which keeps childID and drops the sibling.
func borrowOrMergeLeft[K any](c *deleteCache[K], n int, parentID btreeio.PageID, parent btreeio.Body[K], slot int, childID btreeio.PageID) (bool, error) {
	sepIdx := slot - 1
	var leftID btreeio.PageID
	if sepIdx == 0 {
		leftID = parent.P0
	} else {
		leftID = parent.Entries[sepIdx-1].Child
	}
	sep := parent.Entries[sepIdx]

	b, err := c.Read(leftID)
	if err != nil {
		return false, err
	}
	a, err := c.Read(childID)
	if err != nil {
		return false, err
	}

	mb := len(b.Entries)
	k := (mb - n + 1) / 2

	if k > 0 {
		ascend := b.Entries[mb-k]
		descended := btreeio.Item[K]{Key: sep.Key, Child: a.P0}
		entries := make([]btreeio.Item[K], 0, len(a.Entries)+k)
		entries = append(entries, b.Entries[mb-k+1:]...)
		entries = append(entries, descended)
		entries = append(entries, a.Entries...)
		a.P0 = ascend.Child
		a.Entries = entries

		parent = cloneBody(parent)
		parent.Entries[sepIdx] = btreeio.Item[K]{Key: ascend.Key, Child: sep.Child}

		b = btreeio.Body[K]{P0: b.P0, Entries: cloneItems(b.Entries[:mb-k])}

		if err := c.Write(childID, a); err != nil {
			return false, err
		}
		if err := c.Write(leftID, b); err != nil {
			return false, err
		}
		if err := c.Write(parentID, parent); err != nil {
			return false, err
		}
		return false, nil
	}

	merged := make([]btreeio.Item[K], 0, len(b.Entries)+1+len(a.Entries))
	merged = append(merged, b.Entries...)
	merged = append(merged, btreeio.Item[K]{Key: sep.Key, Child: a.P0})
	merged = append(merged, a.Entries...)
	b.Entries = merged

	parent = cloneBody(parent)
	parent.Entries = removeAt(parent.Entries, sepIdx)

	if err := c.Write(leftID, b); err != nil {
		return false, err
	}
	if err := c.Delete(childID); err != nil {
		return false, err
	}
	if err := c.Write(parentID, parent); err != nil {
		return false, err
	}
	return len(parent.Entries) < n, nil
}
