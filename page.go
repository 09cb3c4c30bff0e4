package grail

import (
	"context"
	"strings"
)

// Representation identifies which form of a page's content was obtained.
type Representation int

// Page representations.
const (
	// Rendered is the display-ready HTML produced by the wiki.
	Rendered Representation = iota
	// Raw is the page's unprocessed wikitext source.
	Raw
)

// String returns the representation's name.
func (r Representation) String() string {
	if r == Raw {
		return "raw"
	}
	return "rendered"
}

// Suffix returns the cache key suffix for the representation.
func (r Representation) Suffix() string {
	if r == Raw {
		return ".wikitext"
	}
	return ".html"
}

// PageHandle names one representation of a wiki page.
type PageHandle struct {
	Title          string
	Representation Representation
}

// CacheKey returns the unsanitized cache key of the handle.
func (h PageHandle) CacheKey() string {
	return h.Title + h.Representation.Suffix()
}

// Page is the fetched content of a wiki page.
type Page struct {
	Title          string
	Representation Representation
	Content        string
	SourceURL      string
}

// PageFetcher retrieves a named page, preferring rendered content.
// Implementations hide caching, polite delays and representation fallback.
type PageFetcher interface {
	FetchPage(ctx context.Context, title string) (*Page, error)
}

// PageAPI exposes the two content actions of the upstream wiki API.
type PageAPI interface {
	// Rendered returns the page rendered to HTML.
	// Returns ENOTFOUND if the response carries no HTML payload.
	Rendered(ctx context.Context, title string) (string, error)

	// Raw returns the page's wikitext source.
	// Returns ENOTFOUND if the response carries no wikitext payload.
	Raw(ctx context.Context, title string) (string, error)

	// PageURL returns the human-facing URL of a page.
	PageURL(title string) string
}

// PageTitleLabel converts a wiki page title to display text.
// Example: List_of_Unique_Bows_(Diablo_II) → List of Unique Bows (Diablo II)
func PageTitleLabel(title string) string {
	return strings.TrimSpace(strings.ReplaceAll(title, "_", " "))
}
