package goquery_test

import (
	"testing"

	"github.com/fwojciec/grail"
	"github.com/fwojciec/grail/goquery"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniqueHint(title string) grail.Hint {
	return grail.Hint{
		Category:  grail.CategoryUnique,
		PageTitle: title,
		SourceURL: "https://diablo.fandom.com/wiki/" + title,
	}
}

func TestTreeExtractor_Stormshield(t *testing.T) {
	t.Parallel()

	html := `<div class="mw-parser-output">
<h2><span class="mw-headline">Elite Items</span></h2>
<table class="wikitable">
<tr><th>Item</th><th>Base</th><th>Required Level</th></tr>
<tr><td><a href="/wiki/Stormshield">Stormshield</a></td><td>Monarch</td><td>73</td></tr>
</table>
</div>`

	items, err := goquery.NewTreeExtractor(grail.DefaultRules()).Extract(html, uniqueHint("Unique_Shields"))

	require.NoError(t, err)
	want := []*grail.Item{{
		Name:        "Stormshield",
		Category:    grail.CategoryUnique,
		Subcategory: "Monarch",
		Tier:        grail.TierElite,
		SourceURL:   "https://diablo.fandom.com/wiki/Unique_Shields",
	}}
	if diff := cmp.Diff(want, items); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestTreeExtractor_Extract(t *testing.T) {
	t.Parallel()

	ext := goquery.NewTreeExtractor(grail.DefaultRules())

	t.Run("drops stoplisted and generic links", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<tr><th>Name</th><th>Type</th></tr>
<tr><td><a href="/wiki/Defense">Defense</a></td><td>x</td></tr>
<tr><td><a href="/wiki/Category:Bows">Windforce</a></td><td>x</td></tr>
<tr><td><a href="/wiki/List_of_Unique_Bows">Bows list</a></td><td>x</td></tr>
<tr><td><a href="/wiki/Bows">Bows</a></td><td>x</td></tr>
<tr><td>plain text</td><td>x</td></tr>
<tr><td><a href="/wiki/Windforce">Windforce [2]</a></td><td><a href="/wiki/Hydra_Bow">Hydra Bow</a></td></tr>
</table>`

		items, err := ext.Extract(html, uniqueHint("List_of_Unique_Bows_(Diablo_II)"))

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Windforce", items[0].Name)
		assert.Equal(t, "Hydra Bow", items[0].Subcategory)
		assert.Equal(t, grail.TierNone, items[0].Tier)
	})

	t.Run("picks name column by gear keyword", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<tr><th>Image</th><th>Unique Rings</th><th>Stats</th></tr>
<tr><td><a href="/wiki/File:Ring.png">img</a></td><td><a href="/wiki/The_Stone_of_Jordan">The Stone of Jordan</a></td><td>+1 skills</td></tr>
</table>`

		items, err := ext.Extract(html, uniqueHint("List_of_Unique_Rings_(Diablo_II)"))

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "The Stone of Jordan", items[0].Name)
		assert.Equal(t, "Rings", items[0].Subcategory, "falls back to title-derived subcategory")
	})

	t.Run("prefers exact name header over gear keyword", func(t *testing.T) {
		t.Parallel()

		html := `<table>
<tr><th>Armor</th><th>Item Name</th></tr>
<tr><td><a href="/wiki/Quilted_Armor">Quilted Armor</a></td><td><a href="/wiki/Greyform">Greyform</a></td></tr>
</table>`

		items, err := ext.Extract(html, uniqueHint("Unique_Armor"))

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Greyform", items[0].Name)
	})

	t.Run("embedded tier rows switch the running tier", func(t *testing.T) {
		t.Parallel()

		html := `<h2>Unique Axes</h2>
<table>
<tr><th>Name</th></tr>
<tr><th colspan="3">Normal Uniques</th></tr>
<tr><td><a href="/wiki/The_Gnasher">The Gnasher</a><br/>Hand Axe</td></tr>
<tr><th colspan="3">Exceptional Uniques</th></tr>
<tr><td><a href="/wiki/Razor%27s_Edge">Razor's Edge</a><br/>Tomahawk</td></tr>
<tr><th colspan="3">Elite Uniques</th></tr>
<tr><td><a href="/wiki/Death_Cleaver">Death Cleaver</a><br/>Small Crescent</td></tr>
</table>`

		items, err := ext.Extract(html, uniqueHint("List_of_Unique_Axes_(Diablo_II)"))

		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, grail.TierNormal, items[0].Tier)
		assert.Equal(t, "Hand Axe", items[0].Subcategory)
		assert.Equal(t, grail.TierExceptional, items[1].Tier)
		assert.Equal(t, "Tomahawk", items[1].Subcategory)
		assert.Equal(t, grail.TierElite, items[2].Tier)
	})

	t.Run("tier comes from the nearest heading that names one", func(t *testing.T) {
		t.Parallel()

		html := `<h2>Exceptional</h2><h3>Notes</h3>
<table>
<tr><th>Item</th></tr>
<tr><td><a href="/wiki/Blackhorn%27s_Face">Blackhorn's Face</a></td></tr>
</table>`

		items, err := ext.Extract(html, uniqueHint("Unique_Helms"))

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, grail.TierExceptional, items[0].Tier)
	})

	t.Run("hint subcategory wins over title", func(t *testing.T) {
		t.Parallel()

		html := `<table><tr><th>Name</th></tr><tr><td><a href="/wiki/Gheed%27s_Fortune">Gheed's Fortune</a></td></tr></table>`
		hint := uniqueHint("Unique_Charms")
		hint.Subcategory = "Grand Charm"

		items, err := ext.Extract(html, hint)

		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, "Grand Charm", items[0].Subcategory)
	})

	t.Run("falls back to bold names under headings", func(t *testing.T) {
		t.Parallel()

		html := `<h1>Unique Charms</h1>
<p><b>Ignored before any heading</b></p>
<h2>Small Charm</h2>
<p><b>Annihilus</b> drops from Uber Diablo.</p>
<h2>Grand Charm</h2>
<p><strong>Gheed's Fortune</strong></p>
<p><b>Hellfire Torch</b> and <b>annihilus</b> again.</p>
<p><b>Rings</b></p>`

		items, err := ext.Extract(html, uniqueHint("Unique_Charms"))

		require.NoError(t, err)
		names := make([]string, 0, len(items))
		for _, it := range items {
			names = append(names, it.Name)
			assert.Equal(t, "Charms", it.Subcategory)
			assert.Equal(t, grail.TierNone, it.Tier)
		}
		assert.Equal(t, []string{"Annihilus", "Gheed's Fortune", "Hellfire Torch"}, names)
	})

	t.Run("empty page yields nothing", func(t *testing.T) {
		t.Parallel()

		items, err := ext.Extract("", uniqueHint("Unique_Jewels"))

		require.NoError(t, err)
		assert.Empty(t, items)
	})
}

func TestTreeExtractor_NeverEmitsStoplistedNames(t *testing.T) {
	t.Parallel()

	rules := grail.DefaultRules()
	html := `<table>
<tr><th>Item</th></tr>
<tr><td><a href="/wiki/Ring">Rings</a></td></tr>
<tr><td><a href="/wiki/Ladder">LADDER ONLY</a></td></tr>
<tr><td><a href="/wiki/Nagelring">Nagelring</a></td></tr>
</table>
<h2>More</h2><p><b>Required Level</b></p>`

	items, err := goquery.NewTreeExtractor(rules).Extract(html, uniqueHint("Unique_Rings"))

	require.NoError(t, err)
	for _, it := range items {
		assert.False(t, rules.Excluded(it.Name), "stoplisted name %q emitted", it.Name)
	}
	assert.Len(t, items, 1)
}

func TestTreeExtractor_IgnoresFootnoteMarkers(t *testing.T) {
	t.Parallel()

	html := `<table>
<tr><th>Item</th><th>Base Item</th></tr>
<tr><td><a href="/wiki/Arreat%27s_Face">Arreat's Face</a><sup><a href="#cite_note-1">[1]</a></sup></td><td><a href="/wiki/Slayer_Guard">Slayer Guard</a></td></tr>
</table>`

	items, err := goquery.NewTreeExtractor(grail.DefaultRules()).Extract(html, uniqueHint("Unique_Barbarian_Helms"))

	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Arreat's Face", items[0].Name)
	assert.Equal(t, "Slayer Guard", items[0].Subcategory)
}

func TestTreeExtractor_NestedTablesKeepTheirOwnRows(t *testing.T) {
	t.Parallel()

	html := `<h2>Exceptional Uniques</h2>
<table>
<tr><th>Item</th><th>Base</th><th>Notes</th></tr>
<tr><td><a href="/wiki/Lance_Guard">Lance Guard</a></td><td><a href="/wiki/Barbed_Shield">Barbed Shield</a></td>
<td><table>
<tr><th>Item</th></tr>
<tr><th>Elite Uniques</th></tr>
<tr><td><a href="/wiki/Spirit_Ward">Spirit Ward</a></td></tr>
</table></td></tr>
</table>`

	items, err := goquery.NewTreeExtractor(grail.DefaultRules()).Extract(html, uniqueHint("Unique_Shields"))

	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Lance Guard", items[0].Name)
	assert.Equal(t, "Barbed Shield", items[0].Subcategory)
	assert.Equal(t, grail.TierExceptional, items[0].Tier)
	assert.Equal(t, "Spirit Ward", items[1].Name)
	assert.Equal(t, grail.TierElite, items[1].Tier)
}
