package btreeset

import (
	"fmt"
	"io"
	"strings"

	"github.com/go-btreeset/btreeset/btreeio"
)

// Print renders the tree to w for human inspection, one page per
// indentation level, using format to render each key.
func Print[K any](w io.Writer, pio btreeio.PageIO[K], tree Tree[K], format func(K) string) error {
	if tree.Root == btreeio.NoPage {
		_, err := fmt.Fprintln(w, "(empty)")
		return err
	}
	return printPage(w, pio, tree.Root, 0, format)
}

func printPage[K any](w io.Writer, pio btreeio.PageIO[K], id btreeio.PageID, depth int, format func(K) string) error {
	body, err := pio.Read(id)
	if err != nil {
		return fmt.Errorf("btreeset: read page %d: %w", id, err)
	}
	indent := strings.Repeat("  ", depth)
	if _, err := fmt.Fprintf(w, "%spage %d (%d items)\n", indent, id, len(body.Entries)); err != nil {
		return err
	}
	if body.P0 != btreeio.NoPage {
		if err := printPage(w, pio, body.P0, depth+1, format); err != nil {
			return err
		}
	}
	for _, it := range body.Entries {
		if _, err := fmt.Fprintf(w, "%s  %s\n", indent, format(it.Key)); err != nil {
			return err
		}
		if it.Child != btreeio.NoPage {
			if err := printPage(w, pio, it.Child, depth+1, format); err != nil {
				return err
			}
		}
	}
	return nil
}
