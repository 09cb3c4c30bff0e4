package grail

// CanonicalRunes lists the 33 runes in ascending order. It backs the rune
// list whenever the upstream rune page cannot be parsed.
var CanonicalRunes = []string{
	"El", "Eld", "Tir", "Nef", "Eth", "Ith", "Tal", "Ral", "Ort", "Thul", "Amn", "Sol", "Shael", "Dol", "Hel", "Io",
	"Lum", "Ko", "Fal", "Lem", "Pul", "Um", "Mal", "Ist", "Gul", "Vex", "Ohm", "Lo", "Sur", "Ber", "Jah", "Cham", "Zod",
}

// MinRunes is the fewest runes a parsed rune page must yield to be trusted.
const MinRunes = 30

// RuneItems builds rune records for names, all attributed to sourceURL.
func RuneItems(names []string, sourceURL string) []*Item {
	items := make([]*Item, 0, len(names))
	for _, n := range names {
		items = append(items, &Item{
			Name:      n,
			Category:  CategoryRune,
			SourceURL: sourceURL,
		})
	}
	return items
}
