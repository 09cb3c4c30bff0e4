package grail_test

import (
	"testing"

	"github.com/fwojciec/grail"
	"github.com/stretchr/testify/assert"
)

func TestSubcategoryFromTitle(t *testing.T) {
	t.Parallel()

	tests := []struct {
		title string
		want  string
	}{
		{"Unique Armor", "Armor"},
		{"List of Unique Bows (Diablo II)", "Bows"},
		{"List of Unique Jewels", "Jewels"},
		{"Sunder Charms", "Charms"},
		{"Rainbow Facet", "Rainbow Facet"},
		{"", "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, grail.SubcategoryFromTitle(tt.title))
		})
	}
}

func TestHint_DefaultSubcategory(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Ring", grail.Hint{Subcategory: "Ring", PageTitle: "Unique_Armor"}.DefaultSubcategory())
	assert.Equal(t, "Rings", grail.Hint{PageTitle: "List_of_Unique_Rings_(Diablo_II)"}.DefaultSubcategory())
}
