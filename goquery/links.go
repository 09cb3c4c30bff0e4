package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/grail"
)

// Ensure LinkExtractor implements grail.LinkExtractor at compile time.
var _ grail.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor returns the wiki page titles linked from rendered HTML.
// Both site-relative (/wiki/Title) and absolute links under the wiki base
// are recognized; links to other hosts are ignored.
type LinkExtractor struct {
	base *url.URL
}

// NewLinkExtractor creates a LinkExtractor for pages under wikiBase, for
// example https://diablo.fandom.com/wiki/.
func NewLinkExtractor(wikiBase string) (*LinkExtractor, error) {
	base, err := url.Parse(wikiBase)
	if err != nil {
		return nil, grail.Errorf(grail.EINVALID, "invalid wiki base URL: %v", err)
	}
	return &LinkExtractor{base: base}, nil
}

// LinkTargets returns linked titles in document order, first occurrence
// only. Titles are URL-decoded.
func (e *LinkExtractor) LinkTargets(content string) ([]string, error) {
	doc, err := parse(content)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var titles []string
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		title := e.title(href)
		if title == "" {
			return
		}
		if _, ok := seen[title]; ok {
			return
		}
		seen[title] = struct{}{}
		titles = append(titles, title)
	})
	return titles, nil
}

// title resolves href against the wiki base and returns the page title, or
// "" when href points elsewhere.
func (e *LinkExtractor) title(href string) string {
	if isNonHTTPLink(href) {
		return ""
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return ""
	}
	resolved := e.base.ResolveReference(ref)
	if resolved.Host != e.base.Host {
		return ""
	}
	title, ok := strings.CutPrefix(resolved.Path, e.base.Path)
	if !ok {
		return ""
	}
	return title
}

// isNonHTTPLink checks if a href is a non-HTTP link that should be skipped.
func isNonHTTPLink(href string) bool {
	href = strings.ToLower(strings.TrimSpace(href))
	return strings.HasPrefix(href, "javascript:") ||
		strings.HasPrefix(href, "mailto:") ||
		strings.HasPrefix(href, "tel:") ||
		strings.HasPrefix(href, "data:")
}
