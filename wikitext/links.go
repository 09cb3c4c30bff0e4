package wikitext

import "github.com/fwojciec/grail"

// Ensure LinkExtractor implements grail.LinkExtractor at compile time.
var _ grail.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor returns the page titles of [[...]] links in wikitext.
type LinkExtractor struct{}

// LinkTargets returns linked titles in underscore form, in order of first
// appearance.
func (LinkExtractor) LinkTargets(content string) ([]string, error) {
	seen := make(map[string]struct{})
	var titles []string
	for _, m := range linkRe.FindAllStringSubmatch(content, -1) {
		title := pageTitle(m[1])
		if title == "" {
			continue
		}
		if _, ok := seen[title]; ok {
			continue
		}
		seen[title] = struct{}{}
		titles = append(titles, title)
	}
	return titles, nil
}
