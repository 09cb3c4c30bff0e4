package grail_test

import (
	"testing"

	"github.com/fwojciec/grail"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestItem_Validate(t *testing.T) {
	t.Parallel()

	t.Run("accepts unique without set name", func(t *testing.T) {
		t.Parallel()
		it := &grail.Item{Name: "Stormshield", Category: grail.CategoryUnique}
		require.NoError(t, it.Validate())
	})

	t.Run("requires name", func(t *testing.T) {
		t.Parallel()
		it := &grail.Item{Category: grail.CategoryRune}
		assert.Equal(t, grail.EINVALID, grail.ErrorCode(it.Validate()))
	})

	t.Run("requires set name for set items", func(t *testing.T) {
		t.Parallel()
		it := &grail.Item{Name: "Civerb's Ward", Category: grail.CategorySet}
		assert.Equal(t, grail.EINVALID, grail.ErrorCode(it.Validate()))
	})

	t.Run("rejects set name outside set category", func(t *testing.T) {
		t.Parallel()
		it := &grail.Item{Name: "Ber", Category: grail.CategoryRune, SetName: "Runes"}
		assert.Equal(t, grail.EINVALID, grail.ErrorCode(it.Validate()))
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		t.Parallel()
		it := &grail.Item{Name: "Gold", Category: "Currency"}
		assert.Equal(t, grail.EINVALID, grail.ErrorCode(it.Validate()))
	})
}

func TestCountItems(t *testing.T) {
	t.Parallel()

	items := []*grail.Item{
		{Name: "A", Category: grail.CategorySet, SetName: "S"},
		{Name: "B", Category: grail.CategoryUnique},
		{Name: "C", Category: grail.CategoryUnique},
		{Name: "El", Category: grail.CategoryRune},
	}

	assert.Equal(t, grail.Counts{Set: 1, Unique: 2, Rune: 1, Total: 4}, grail.CountItems(items))
}

func TestRuneItems(t *testing.T) {
	t.Parallel()

	items := grail.RuneItems(grail.CanonicalRunes, "https://example.com/Rune_list")

	require.Len(t, items, 33)
	assert.Equal(t, "El", items[0].Name)
	assert.Equal(t, "Zod", items[32].Name)
	for _, it := range items {
		assert.Equal(t, grail.CategoryRune, it.Category)
		require.NoError(t, it.Validate())
	}
}
