package grail

import (
	"fmt"
	"strings"
)

// Variant is one concrete form of an aggregated item, described by two axes.
type Variant struct {
	Axis1 string
	Axis2 string
}

// FacetItem is the unique jewel that exists in several concrete forms.
const FacetItem = "Rainbow Facet"

// FacetVariants are the element and trigger combinations of Rainbow Facet.
var FacetVariants = []Variant{
	{"Fire", "Level-Up"},
	{"Fire", "Death"},
	{"Cold", "Level-Up"},
	{"Cold", "Death"},
	{"Lightning", "Level-Up"},
	{"Lightning", "Death"},
	{"Poison", "Level-Up"},
	{"Poison", "Death"},
}

// ExpandVariants replaces the first Unique record named base
// (case-insensitive) with one record per variant, in place. Later matches
// are left untouched. Items are returned unchanged when nothing matches.
func ExpandVariants(items []*Item, base string, table []Variant) []*Item {
	idx := -1
	for i, it := range items {
		if it.Category == CategoryUnique && strings.EqualFold(it.Name, base) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return items
	}

	agg := items[idx]
	out := make([]*Item, 0, len(items)+len(table)-1)
	out = append(out, items[:idx]...)
	for _, v := range table {
		row := *agg
		row.Name = fmt.Sprintf("%s (%s, %s)", agg.Name, v.Axis1, v.Axis2)
		row.Variant = v.Axis1 + "/" + v.Axis2
		out = append(out, &row)
	}
	return append(out, items[idx+1:]...)
}
