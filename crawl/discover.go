package crawl

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/fwojciec/grail"
)

// Discoverer finds the list pages linked from a hub page.
type Discoverer struct {
	// Links maps each page representation to the link extractor able to
	// read it.
	Links map[grail.Representation]grail.LinkExtractor
	Rules *grail.Rules
}

// DiscoverSubpages fetches hub through pages and returns the linked list
// page titles in the order described by OrderSubpages.
func (d *Discoverer) DiscoverSubpages(ctx context.Context, pages grail.PageFetcher, hub string) ([]string, error) {
	page, err := pages.FetchPage(ctx, hub)
	if err != nil {
		return nil, err
	}

	links, ok := d.Links[page.Representation]
	if !ok {
		return nil, grail.Errorf(grail.EINVALID, "no link extractor for %s content of %s", page.Representation, hub)
	}
	targets, err := links.LinkTargets(page.Content)
	if err != nil {
		return nil, fmt.Errorf("links of %s: %w", hub, err)
	}

	var titles []string
	for _, t := range targets {
		if d.Rules.IsListPage(t) {
			titles = append(titles, t)
		}
	}
	return OrderSubpages(titles, d.Rules.Qualifier), nil
}

// OrderSubpages orders list page titles: titles containing qualifier
// first, sorted, then the remaining generic titles, sorted. A generic title
// is dropped only when a qualified title with the same base name exists.
// Duplicates are removed.
func OrderSubpages(titles []string, qualifier string) []string {
	seen := make(map[string]struct{}, len(titles))
	var qualified, generic []string
	for _, t := range titles {
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		if strings.Contains(t, qualifier) {
			qualified = append(qualified, t)
		} else {
			generic = append(generic, t)
		}
	}
	sort.Strings(qualified)
	sort.Strings(generic)

	covered := make(map[string]struct{}, len(qualified))
	for _, q := range qualified {
		covered[baseName(q, qualifier)] = struct{}{}
	}

	out := qualified
	for _, g := range generic {
		if _, ok := covered[baseName(g, qualifier)]; ok {
			continue
		}
		out = append(out, g)
	}
	return out
}

// baseName strips qualifier and any trailing separators from title.
func baseName(title, qualifier string) string {
	return strings.TrimRight(strings.ReplaceAll(title, qualifier, ""), "_ ")
}
