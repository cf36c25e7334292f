package btreeset

import "github.com/go-btreeset/btreeset/btreeio"

// insertAt returns entries with item inserted at idx, shifting the tail
// right by one.
func insertAt[K any](entries []btreeio.Item[K], idx int, item btreeio.Item[K]) []btreeio.Item[K] {
	entries = append(entries, btreeio.Item[K]{})
	copy(entries[idx+1:], entries[idx:])
	entries[idx] = item
	return entries
}

// removeAt returns entries with the item at idx dropped, shifting the
// tail left by one.
func removeAt[K any](entries []btreeio.Item[K], idx int) []btreeio.Item[K] {
	copy(entries[idx:], entries[idx+1:])
	return entries[:len(entries)-1]
}

// cloneItems copies a slice of items so a page body written to one
// page id never shares a backing array with another.
func cloneItems[K any](entries []btreeio.Item[K]) []btreeio.Item[K] {
	out := make([]btreeio.Item[K], len(entries))
	copy(out, entries)
	return out
}
