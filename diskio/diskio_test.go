package diskio

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-btreeset/btreeset/btreeio"
)

func TestStore_MemRoundTrip(t *testing.T) {
	s := OpenMem[string](4096, StringCodec)
	defer s.Close()

	id, err := s.Allocate()
	require.NoError(t, err)

	body := btreeio.Body[string]{
		P0: btreeio.NoPage,
		Entries: []btreeio.Item[string]{
			{Key: "alpha", Child: btreeio.NoPage},
			{Key: "beta", Child: btreeio.NoPage},
		},
	}
	require.NoError(t, s.Write(id, body))

	got, err := s.Read(id)
	require.NoError(t, err)
	require.Equal(t, body, got)
}

func TestStore_DeleteZeroesPage(t *testing.T) {
	s := OpenMem[string](4096, StringCodec)
	defer s.Close()

	id, err := s.Allocate()
	require.NoError(t, err)
	require.NoError(t, s.Write(id, btreeio.Body[string]{
		Entries: []btreeio.Item[string]{{Key: "x"}},
	}))

	require.NoError(t, s.Delete(id))

	got, err := s.Read(id)
	require.NoError(t, err)
	require.Empty(t, got.Entries)
}

func TestStore_PageTooSmallErrors(t *testing.T) {
	s := OpenMem[string](headerSize+childSize+keyLenSize+2, StringCodec)
	defer s.Close()

	id, err := s.Allocate()
	require.NoError(t, err)
	err = s.Write(id, btreeio.Body[string]{
		Entries: []btreeio.Item[string]{{Key: "this key is far too long to fit"}},
	})
	require.Error(t, err)
}
