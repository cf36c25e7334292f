package btreeset

import (
	"fmt"

	"github.com/go-btreeset/btreeset/btreeio"
)

// AllKeys walks the tree in order and returns every key, ascending.
// It is read-only and never touches the delete-scoped cache — each
// page is read straight from the back-end exactly once.
func AllKeys[K any](pio btreeio.PageIO[K], tree Tree[K]) ([]K, error) {
	var out []K
	if err := enumerate(pio, tree.Root, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func enumerate[K any](pio btreeio.PageIO[K], id btreeio.PageID, out *[]K) error {
	if id == btreeio.NoPage {
		return nil
	}
	body, err := pio.Read(id)
	if err != nil {
		return fmt.Errorf("btreeset: read page %d: %w", id, err)
	}
	if err := enumerate(pio, body.P0, out); err != nil {
		return err
	}
	for _, it := range body.Entries {
		*out = append(*out, it.Key)
		if err := enumerate(pio, it.Child, out); err != nil {
			return err
		}
	}
	return nil
}
