package grail

import (
	"regexp"
	"strings"
)

// Hint carries page context into extraction.
type Hint struct {
	// Category is the category assigned to produced records.
	Category Category

	// Subcategory is the default subcategory when none can be resolved
	// from the page itself.
	Subcategory string

	// PageTitle is the wiki title of the page being parsed.
	PageTitle string

	// SourceURL is recorded on every produced record.
	SourceURL string
}

// Extractor produces candidate item records from one page's content.
// Zero records is not an error; unparseable content returns EINVALID.
type Extractor interface {
	Extract(content string, hint Hint) ([]*Item, error)
}

// LinkExtractor returns the wiki titles linked from a page's content.
type LinkExtractor interface {
	LinkTargets(content string) ([]string, error)
}

var uniqueTitleRe = regexp.MustCompile(`Unique\s+([A-Za-z ]+)`)

// SubcategoryFromTitle derives a fallback subcategory from a page heading
// or title label: the words following "Unique", else a known accessory
// kind, else the title itself, else "Unknown".
func SubcategoryFromTitle(title string) string {
	title = strings.TrimSpace(title)
	if m := uniqueTitleRe.FindStringSubmatch(title); m != nil {
		return strings.TrimSpace(m[1])
	}
	for _, kind := range []string{"Charms", "Rings", "Amulets", "Jewels"} {
		if strings.Contains(title, kind) {
			return kind
		}
	}
	if title == "" {
		return "Unknown"
	}
	return title
}

// DefaultSubcategory returns the hinted subcategory, else one derived from
// the page title.
func (h Hint) DefaultSubcategory() string {
	if h.Subcategory != "" {
		return h.Subcategory
	}
	return SubcategoryFromTitle(PageTitleLabel(h.PageTitle))
}
