package btreeset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-btreeset/btreeset/btreeio"
	"github.com/go-btreeset/btreeset/memio"
)

func intLess(a, b int) bool { return a < b }

func TestNew_InvalidOrder(t *testing.T) {
	_, err := New[int](1, intLess)
	require.ErrorIs(t, err, ErrInvalidOrder)
}

// S1: an empty tree has no root, no members, and enumerates nothing.
func TestEmptyTree(t *testing.T) {
	store := memio.New[int]()
	tree, err := New[int](2, intLess)
	require.NoError(t, err)

	found, err := Member(store, tree, 7)
	require.NoError(t, err)
	require.False(t, found)

	keys, err := AllKeys(store, tree)
	require.NoError(t, err)
	require.Empty(t, keys)

	require.NoError(t, Check(store, tree))
}

// S2: inserting into an empty tree creates a single leaf root.
func TestSingleInsert(t *testing.T) {
	store := memio.New[int]()
	tree, err := New[int](2, intLess)
	require.NoError(t, err)

	tree, err = Insert(store, tree, 10)
	require.NoError(t, err)
	require.NoError(t, Check(store, tree))

	found, err := Member(store, tree, 10)
	require.NoError(t, err)
	require.True(t, found)

	keys, err := AllKeys(store, tree)
	require.NoError(t, err)
	require.Equal(t, []int{10}, keys)

	root, err := store.Read(tree.Root)
	require.NoError(t, err)
	require.Equal(t, btreeio.NoPage, root.P0)
	require.Len(t, root.Entries, 1)
}
