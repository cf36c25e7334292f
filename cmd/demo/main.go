// Command demo exercises a btreeset.Tree[string] from the command
// line: -insert, -delete, and -member flags apply one operation each
// against a store, -list enumerates it, and -check validates every
// structural invariant. -file picks a real unbuffered file via
// diskio.Open; without it the demo runs against an in-memory file.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/go-btreeset/btreeset"
	"github.com/go-btreeset/btreeset/diskio"
)

const pageSize = 4096

func main() {
	var (
		file    = flag.String("file", "", "path to a backing file (default: in-memory)")
		order   = flag.Int("order", 32, "tree order (min items per non-root page)")
		insert  = flag.String("insert", "", "insert a key")
		del     = flag.String("delete", "", "delete a key")
		member  = flag.String("member", "", "test membership of a key")
		list    = flag.Bool("list", false, "print all keys in order")
		check   = flag.Bool("check", false, "validate structural invariants")
	)
	flag.Parse()

	store, closeStore, err := openStore(*file)
	if err != nil {
		log.Fatalf("demo: %v", err)
	}
	defer closeStore()

	tree, err := btreeset.New[string](*order, func(a, b string) bool { return a < b })
	if err != nil {
		log.Fatalf("demo: new tree: %v", err)
	}

	if *insert != "" {
		tree, err = btreeset.Insert(store, tree, *insert)
		if err != nil {
			log.Fatalf("demo: insert %q: %v", *insert, err)
		}
		fmt.Printf("inserted %q\n", *insert)
	}

	if *del != "" {
		tree, err = btreeset.Delete(store, tree, *del)
		if err != nil {
			log.Fatalf("demo: delete %q: %v", *del, err)
		}
		fmt.Printf("deleted %q\n", *del)
	}

	if *member != "" {
		found, err := btreeset.Member(store, tree, *member)
		if err != nil {
			log.Fatalf("demo: member %q: %v", *member, err)
		}
		fmt.Printf("member(%q) = %v\n", *member, found)
	}

	if *list {
		keys, err := btreeset.AllKeys(store, tree)
		if err != nil {
			log.Fatalf("demo: list: %v", err)
		}
		for _, k := range keys {
			fmt.Println(k)
		}
	}

	if *check {
		if err := btreeset.Check(store, tree); err != nil {
			log.Fatalf("demo: check: %v", err)
		}
		fmt.Println("ok")
	}
}

func openStore(path string) (*diskio.Store[string], func(), error) {
	if path == "" {
		s := diskio.OpenMem[string](pageSize, diskio.StringCodec)
		return s, func() { _ = s.Close() }, nil
	}
	s, err := diskio.Open[string](path, pageSize, diskio.StringCodec)
	if err != nil {
		return nil, func() {}, err
	}
	return s, func() { _ = s.Close() }, nil
}
