package wikitext_test

import (
	"testing"

	"github.com/fwojciec/grail"
	"github.com/fwojciec/grail/wikitext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetExtractor_Extract(t *testing.T) {
	t.Parallel()

	text := `== Normal Sets ==
{| class="wikitable"
! Set !! Pieces
|-
| '''[[Civerb's Vestments]]''' ||
* [[Civerb's Ward]] (Large Shield)
* [[Civerb's Icon]] (Amulet)
|-
| [[Hsarus' Defense]]
|
* [[Hsarus' Iron Heel]]
|}
{|
! Set !! Pieces
|-
| [[Sigon's Complete Steel]] || [[Sigon's Gage]], [[Sigon's Visor]]
|}
{|
! Item !! Pieces
|-
| [[Not A Set]] || * [[Nothing]]
|}`

	hint := grail.Hint{Category: grail.CategorySet, SourceURL: "https://diablo.fandom.com/wiki/List_of_Set_Items_(Diablo_II)"}
	items, err := wikitext.NewSetExtractor(grail.DefaultRules()).Extract(text, hint)

	require.NoError(t, err)
	require.Len(t, items, 5)

	assert.Equal(t, "Civerb's Ward", items[0].Name)
	assert.Equal(t, "Civerb's Vestments", items[0].SetName)
	assert.Equal(t, grail.TierNormal, items[0].Tier)
	assert.Equal(t, "Civerb's Icon", items[1].Name)
	assert.Equal(t, "Hsarus' Iron Heel", items[2].Name)
	assert.Equal(t, "Hsarus' Defense", items[2].SetName)

	assert.Equal(t, "Sigon's Gage", items[3].Name)
	assert.Equal(t, "Sigon's Visor", items[4].Name)
	assert.Equal(t, grail.TierNormal, items[4].Tier)

	for _, it := range items {
		require.NoError(t, it.Validate())
	}
}

func TestSetExtractor_SameNamedPiecesInDifferentSets(t *testing.T) {
	t.Parallel()

	text := `{|
! Set !! Pieces
|-
| [[First Set]] ||
* [[Shared Belt]]
|-
| [[Second Set]] ||
* [[Shared Belt]]
|}`

	items, err := wikitext.NewSetExtractor(grail.DefaultRules()).Extract(text, grail.Hint{Category: grail.CategorySet})

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "First Set", items[0].SetName)
	assert.Equal(t, "Second Set", items[1].SetName)
	assert.Equal(t, grail.TierUnknown, items[0].Tier)
}
