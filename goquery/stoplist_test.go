package goquery_test

import (
	"testing"

	"github.com/fwojciec/grail"
	"github.com/fwojciec/grail/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Every extractor drops names whose lower-cased form is stoplisted,
// whatever the category of the record.
func TestExtractors_NeverEmitStoplistedNames(t *testing.T) {
	t.Parallel()

	rules := grail.DefaultRules()
	rules.Stoplist["zod"] = struct{}{}

	tests := []struct {
		name    string
		ext     grail.Extractor
		hint    grail.Hint
		content string
		want    []string
	}{
		{
			name: "set table pieces",
			ext:  goquery.NewSetExtractor(rules),
			hint: setHint(),
			content: `<table>
<tr><th>Set</th><th>Pieces</th></tr>
<tr><td><a href="/wiki/Sigon%27s_Complete_Steel">Sigon's Complete Steel</a></td>
<td><ul>
<li><a href="/wiki/Rings">Rings</a></li>
<li><a href="/wiki/Sigon%27s_Gage">Sigon's Gage</a></li>
<li><a href="/wiki/Defense">Defense</a></li>
</ul></td></tr>
</table>`,
			want: []string{"Sigon's Gage"},
		},
		{
			name: "legacy set sections",
			ext:  goquery.NewSetExtractor(rules),
			hint: setHint(),
			content: `<h2>Normal Sets</h2>
<p><a href="/wiki/Arctic_Gear">Arctic Gear</a></p>
<ul>
<li><a href="/wiki/Arctic_Horn">Arctic Horn</a></li>
<li><a href="/wiki/Gloves">GLOVES</a></li>
</ul>`,
			want: []string{"Arctic Horn"},
		},
		{
			name: "unique tables",
			ext:  goquery.NewTreeExtractor(rules),
			hint: uniqueHint("Unique_Rings"),
			content: `<table>
<tr><th>Item</th></tr>
<tr><td><a href="/wiki/Rarity">Rarity</a></td></tr>
<tr><td><a href="/wiki/Bul-Kathos%27_Wedding_Band">Bul-Kathos' Wedding Band</a></td></tr>
</table>`,
			want: []string{"Bul-Kathos' Wedding Band"},
		},
		{
			name: "rune rows",
			ext:  goquery.NewRuneExtractor(rules),
			hint: grail.Hint{Category: grail.CategoryRune, SourceURL: runeURL},
			content: `<table>
<tr><td>Jah</td></tr>
<tr><td>Zod</td></tr>
</table>`,
			want: []string{"Jah"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			items, err := tt.ext.Extract(tt.content, tt.hint)

			require.NoError(t, err)
			var names []string
			for _, it := range items {
				assert.False(t, rules.Excluded(it.Name), "stoplisted name %q emitted", it.Name)
				names = append(names, it.Name)
			}
			assert.Equal(t, tt.want, names)
		})
	}
}
