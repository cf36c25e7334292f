package btreeset

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/go-btreeset/btreeset/memio"
)

// TestStress_RandomOpsAgainstModel drives Insert/Delete/Member with a
// random sequence of operations and cross-checks every result against a
// plain map, re-validating all structural invariants after each step.
func TestStress_RandomOpsAgainstModel(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	store := memio.New[int]()
	tree, err := New[int](3, intLess)
	require.NoError(t, err)

	model := make(map[int]bool)
	const universe = 60

	for step := 0; step < 2000; step++ {
		key := rng.Intn(universe)
		switch {
		case rng.Intn(3) == 0 && len(model) > 0:
			tree, err = Delete(store, tree, key)
			require.NoError(t, err)
			delete(model, key)
		default:
			tree, err = Insert(store, tree, key)
			require.NoError(t, err)
			model[key] = true
		}

		require.NoError(t, Check(store, tree))

		found, err := Member(store, tree, key)
		require.NoError(t, err)
		require.Equal(t, model[key], found, "step %d key %d", step, key)
	}

	want := make([]int, 0, len(model))
	for k := range model {
		want = append(want, k)
	}
	sort.Ints(want)

	got, err := AllKeys(store, tree)
	require.NoError(t, err)
	require.Equal(t, want, got)

	for k := 0; k < universe; k++ {
		found, err := Member(store, tree, k)
		require.NoError(t, err)
		require.Equal(t, model[k], found, "final membership of %d", k)
	}
}

func TestStress_VaryingOrders(t *testing.T) {
	for _, order := range []int{2, 3, 4, 8} {
		order := order
		t.Run("", func(t *testing.T) {
			store := memio.New[int]()
			tree, err := New[int](order, intLess)
			require.NoError(t, err)

			rng := rand.New(rand.NewSource(int64(order)))
			keys := rng.Perm(300)
			for _, k := range keys {
				tree, err = Insert(store, tree, k)
				require.NoError(t, err)
			}
			require.NoError(t, Check(store, tree))

			rng.Shuffle(len(keys), func(i, j int) { keys[i], keys[j] = keys[j], keys[i] })
			for _, k := range keys {
				tree, err = Delete(store, tree, k)
				require.NoError(t, err)
			}
			require.NoError(t, Check(store, tree))

			remaining, err := AllKeys(store, tree)
			require.NoError(t, err)
			require.Empty(t, remaining)
		})
	}
}
