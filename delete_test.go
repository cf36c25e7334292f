package btreeset

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-btreeset/btreeset/btreeio"

	"github.com/go-btreeset/btreeset/memio"
)

// S4: deleting the only key in the tree collapses the root to empty.
func TestDelete_LastKeyEmptiesTree(t *testing.T) {
	store := memio.New[int]()
	tree, err := New[int](2, intLess)
	require.NoError(t, err)

	tree, err = Insert(store, tree, 1)
	require.NoError(t, err)

	tree, err = Delete(store, tree, 1)
	require.NoError(t, err)
	require.Equal(t, btreeio.NoPage, tree.Root)

	found, err := Member(store, tree, 1)
	require.NoError(t, err)
	require.False(t, found)
}

func TestDelete_AbsentKeyIsNoop(t *testing.T) {
	store := memio.New[int]()
	tree, err := New[int](2, intLess)
	require.NoError(t, err)

	tree, err = Insert(store, tree, 1)
	require.NoError(t, err)
	before := tree.Root

	tree, err = Delete(store, tree, 999)
	require.NoError(t, err)
	require.Equal(t, before, tree.Root)
	require.NoError(t, Check(store, tree))
}

// S5/S6: inserting enough keys to force splits, then deleting down to
// empty one key at a time, must keep every invariant intact at every
// step and never resurrect a deleted key.
func TestDelete_DrainMaintainsInvariants(t *testing.T) {
	store := memio.New[int]()
	tree, err := New[int](2, intLess)
	require.NoError(t, err)

	keys := make([]int, 0, 50)
	for i := 0; i < 50; i++ {
		keys = append(keys, i)
		tree, err = Insert(store, tree, i)
		require.NoError(t, err)
	}
	require.NoError(t, Check(store, tree))

	for _, k := range keys {
		tree, err = Delete(store, tree, k)
		require.NoError(t, err)
		require.NoError(t, Check(store, tree))

		found, err := Member(store, tree, k)
		require.NoError(t, err)
		require.False(t, found, "key %d should be gone", k)
	}
	require.Equal(t, btreeio.NoPage, tree.Root)

	remaining, err := AllKeys(store, tree)
	require.NoError(t, err)
	require.Empty(t, remaining)
}

func TestDelete_InternalKeyTriggersSplice(t *testing.T) {
	store := memio.New[int]()
	tree, err := New[int](2, intLess)
	require.NoError(t, err)

	for _, k := range []int{10, 20, 30, 40, 50, 60, 70} {
		tree, err = Insert(store, tree, k)
		require.NoError(t, err)
	}
	require.NoError(t, Check(store, tree))

	root, err := store.Read(tree.Root)
	require.NoError(t, err)
	require.NotEmpty(t, root.Entries)
	internalKey := root.Entries[0].Key

	tree, err = Delete(store, tree, internalKey)
	require.NoError(t, err)
	require.NoError(t, Check(store, tree))

	found, err := Member(store, tree, internalKey)
	require.NoError(t, err)
	require.False(t, found)
}

func TestDelete_ReverseOrderDrain(t *testing.T) {
	store := memio.New[int]()
	tree, err := New[int](3, intLess)
	require.NoError(t, err)

	for i := 0; i < 80; i++ {
		tree, err = Insert(store, tree, i)
		require.NoError(t, err)
	}
	for i := 79; i >= 0; i-- {
		tree, err = Delete(store, tree, i)
		require.NoError(t, err)
		require.NoError(t, Check(store, tree))
	}
	require.Equal(t, btreeio.NoPage, tree.Root)
}
