package goquery

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/grail"
)

// Ensure RuneExtractor implements grail.Extractor at compile time.
var _ grail.Extractor = (*RuneExtractor)(nil)

// RuneExtractor reads rune names from the first cell of each table row of
// a rune list page.
type RuneExtractor struct {
	Rules *grail.Rules
}

// NewRuneExtractor creates a RuneExtractor using rules.
func NewRuneExtractor(rules *grail.Rules) *RuneExtractor {
	return &RuneExtractor{Rules: rules}
}

// Extract returns the runes found in content, in page order, without
// repeats.
func (e *RuneExtractor) Extract(content string, hint grail.Hint) ([]*grail.Item, error) {
	doc, err := parse(content)
	if err != nil {
		return nil, err
	}

	root := doc.Find("#bodyContent").First()
	if root.Length() == 0 {
		root = doc.Selection
	}

	var names []string
	seen := make(map[string]struct{})
	root.Find("table tr").Each(func(_ int, tr *goquery.Selection) {
		cell := tr.ChildrenFiltered("td, th").First()
		if cell.Length() == 0 {
			return
		}
		name, ok := e.Rules.MatchRune(text(cell))
		if !ok || !e.Rules.Accept(name) {
			return
		}
		if _, dup := seen[name]; dup {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	})

	return grail.RuneItems(names, hint.SourceURL), nil
}
