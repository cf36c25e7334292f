// Package diskio is a fixed-size-page btreeio.PageIO backed by a real
// block device. It packs each page into a single aligned block using
// manual offset arithmetic and field-by-field binary.LittleEndian
// encoding rather than a generic encoder, and can run against either a
// real file opened for unbuffered I/O via github.com/ncw/directio or
// an in-memory github.com/dsnet/golib/memfile standing in for one
// during tests and demos where O_DIRECT's alignment requirements
// aren't available.
package diskio

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
	"sync/atomic"

	"github.com/dsnet/golib/memfile"
	"github.com/ncw/directio"

	"github.com/go-btreeset/btreeset/btreeio"
)

// Codec encodes and decodes a key to and from bytes, so Store can
// serialize any K into a fixed-size page block.
type Codec[K any] struct {
	Encode func(K) ([]byte, error)
	Decode func([]byte) (K, error)
}

// StringCodec stores a string key verbatim as its UTF-8 bytes.
var StringCodec = Codec[string]{
	Encode: func(s string) ([]byte, error) { return []byte(s), nil },
	Decode: func(b []byte) (string, error) { return string(b), nil },
}

// blockDevice is the slice of *os.File and *memfile.File that Store
// needs: random-access reads and writes plus Close. Both
// directio.OpenFile's result and memfile.New's result satisfy it.
type blockDevice interface {
	io.ReaderAt
	io.WriterAt
	Close() error
}

const (
	p0Size    = 8
	countSize = 4
	childSize = 8
	keyLenSize = 2
	headerSize = p0Size + countSize
)

// Store is a btreeio.PageIO backed by a blockDevice, one fixed-size
// aligned block per page. Page ids map directly to block offsets
// ((id-1) * pageSize, ids starting at 1), so Allocate only ever hands out the next unused
// offset; Delete zeroes the block in place but ids are never reused.
type Store[K any] struct {
	dev      blockDevice
	codec    Codec[K]
	pageSize int
	nextID   int64
}

// Open opens (creating it if needed) the real file at path for
// unbuffered page I/O via directio.OpenFile. pageSize must be a
// multiple of directio.BlockSize.
func Open[K any](path string, pageSize int, codec Codec[K]) (*Store[K], error) {
	if pageSize%directio.BlockSize != 0 {
		return nil, fmt.Errorf("diskio: page size %d is not a multiple of directio.BlockSize %d", pageSize, directio.BlockSize)
	}
	f, err := directio.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("diskio: open %s: %w", path, err)
	}
	return &Store[K]{dev: f, codec: codec, pageSize: pageSize}, nil
}

// OpenMem creates a Store over an in-memory file, for demos and tests
// that want diskio's page format without a real block device or the
// privileges O_DIRECT sometimes requires.
func OpenMem[K any](pageSize int, codec Codec[K]) *Store[K] {
	return &Store[K]{dev: memfile.New(nil), codec: codec, pageSize: pageSize}
}

// Close releases the underlying device.
func (s *Store[K]) Close() error {
	return s.dev.Close()
}

func (s *Store[K]) offset(id btreeio.PageID) int64 {
	return int64(id-1) * int64(s.pageSize)
}

func (s *Store[K]) Allocate() (btreeio.PageID, error) {
	id := atomic.AddInt64(&s.nextID, 1)
	return btreeio.PageID(id), nil
}

func (s *Store[K]) Read(id btreeio.PageID) (btreeio.Body[K], error) {
	buf := make([]byte, s.pageSize)
	if _, err := s.dev.ReadAt(buf, s.offset(id)); err != nil && err != io.EOF {
		return btreeio.Body[K]{}, fmt.Errorf("diskio: read page %d: %w", id, err)
	}
	return s.decode(buf)
}

func (s *Store[K]) Write(id btreeio.PageID, body btreeio.Body[K]) error {
	buf := make([]byte, s.pageSize)
	if err := s.encode(buf, body); err != nil {
		return fmt.Errorf("diskio: encode page %d: %w", id, err)
	}
	if _, err := s.dev.WriteAt(buf, s.offset(id)); err != nil {
		return fmt.Errorf("diskio: write page %d: %w", id, err)
	}
	return nil
}

// Delete zeroes the page's block. The id itself is never reused.
func (s *Store[K]) Delete(id btreeio.PageID) error {
	buf := make([]byte, s.pageSize)
	if _, err := s.dev.WriteAt(buf, s.offset(id)); err != nil {
		return fmt.Errorf("diskio: delete page %d: %w", id, err)
	}
	return nil
}

func (s *Store[K]) encode(buf []byte, body btreeio.Body[K]) error {
	binary.LittleEndian.PutUint64(buf[0:p0Size], uint64(body.P0))
	binary.LittleEndian.PutUint32(buf[p0Size:headerSize], uint32(len(body.Entries)))

	cursor := headerSize
	for i, it := range body.Entries {
		keyBytes, err := s.codec.Encode(it.Key)
		if err != nil {
			return fmt.Errorf("encode key at slot %d: %w", i, err)
		}
		need := childSize + keyLenSize + len(keyBytes)
		if cursor+need > len(buf) {
			return fmt.Errorf("page body exceeds page size %d at slot %d", s.pageSize, i)
		}
		binary.LittleEndian.PutUint64(buf[cursor:cursor+childSize], uint64(it.Child))
		cursor += childSize
		binary.LittleEndian.PutUint16(buf[cursor:cursor+keyLenSize], uint16(len(keyBytes)))
		cursor += keyLenSize
		copy(buf[cursor:cursor+len(keyBytes)], keyBytes)
		cursor += len(keyBytes)
	}
	return nil
}

func (s *Store[K]) decode(buf []byte) (btreeio.Body[K], error) {
	p0 := btreeio.PageID(binary.LittleEndian.Uint64(buf[0:p0Size]))
	count := binary.LittleEndian.Uint32(buf[p0Size:headerSize])

	body := btreeio.Body[K]{P0: p0, Entries: make([]btreeio.Item[K], 0, count)}
	cursor := headerSize
	for i := uint32(0); i < count; i++ {
		child := btreeio.PageID(binary.LittleEndian.Uint64(buf[cursor : cursor+childSize]))
		cursor += childSize
		keyLen := int(binary.LittleEndian.Uint16(buf[cursor : cursor+keyLenSize]))
		cursor += keyLenSize
		key, err := s.codec.Decode(buf[cursor : cursor+keyLen])
		if err != nil {
			return btreeio.Body[K]{}, fmt.Errorf("decode key at slot %d: %w", i, err)
		}
		cursor += keyLen
		body.Entries = append(body.Entries, btreeio.Item[K]{Key: key, Child: child})
	}
	return body, nil
}
