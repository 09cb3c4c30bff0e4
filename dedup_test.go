package grail_test

import (
	"testing"

	"github.com/fwojciec/grail"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDedup(t *testing.T) {
	t.Parallel()

	t.Run("first occurrence wins", func(t *testing.T) {
		t.Parallel()

		items := []*grail.Item{
			{Name: "Stormshield", Category: grail.CategoryUnique, Subcategory: "Monarch"},
			{Name: "stormshield", Category: grail.CategoryUnique, Subcategory: "Tower Shield"},
		}

		got := grail.Dedup(items)

		require.Len(t, got, 1)
		assert.Equal(t, "Monarch", got[0].Subcategory)
	})

	t.Run("set pieces are keyed by name and set", func(t *testing.T) {
		t.Parallel()

		items := []*grail.Item{
			{Name: "Belt", Category: grail.CategorySet, SetName: "Set A"},
			{Name: "Belt", Category: grail.CategorySet, SetName: "Set B"},
			{Name: "belt", Category: grail.CategorySet, SetName: "SET A"},
		}

		got := grail.Dedup(items)

		require.Len(t, got, 2)
		assert.Equal(t, "Set A", got[0].SetName)
		assert.Equal(t, "Set B", got[1].SetName)
	})

	t.Run("is idempotent", func(t *testing.T) {
		t.Parallel()

		items := []*grail.Item{
			{Name: "Ber", Category: grail.CategoryRune},
			{Name: "Windforce", Category: grail.CategoryUnique},
			{Name: "ber", Category: grail.CategoryRune},
			{Name: "Boots", Category: grail.CategorySet, SetName: "X"},
			{Name: "Windforce", Category: grail.CategoryUnique},
		}

		once := grail.Dedup(items)
		twice := grail.Dedup(once)

		if diff := cmp.Diff(once, twice); diff != "" {
			t.Errorf("Dedup not idempotent (-once +twice):\n%s", diff)
		}
		assert.Len(t, once, 3)
	})
}

func TestDedupByName(t *testing.T) {
	t.Parallel()

	items := []*grail.Item{
		{Name: "Belt", Category: grail.CategorySet, SetName: "Set A"},
		{Name: "BELT", Category: grail.CategorySet, SetName: "Set B"},
	}

	got := grail.DedupByName(items)

	require.Len(t, got, 1)
	assert.Equal(t, "Set A", got[0].SetName)
}
