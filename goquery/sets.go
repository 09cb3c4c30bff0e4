package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/grail"
)

// Ensure SetExtractor implements grail.Extractor at compile time.
var _ grail.Extractor = (*SetExtractor)(nil)

// SetExtractor extracts set pieces from the rendered set list page. It
// reads "Set | Pieces" tables and falls back to the older layout of tiered
// sections holding a set link followed by a list of pieces.
type SetExtractor struct {
	Rules *grail.Rules
}

// NewSetExtractor creates a SetExtractor using rules.
func NewSetExtractor(rules *grail.Rules) *SetExtractor {
	return &SetExtractor{Rules: rules}
}

// Extract returns one Set item per piece found in content.
func (e *SetExtractor) Extract(content string, hint grail.Hint) ([]*grail.Item, error) {
	doc, err := parse(content)
	if err != nil {
		return nil, err
	}

	items := e.tables(doc, hint)
	if len(items) > 0 {
		return items, nil
	}
	return e.sections(doc, hint), nil
}

func (e *SetExtractor) isSetTable(table *goquery.Selection) bool {
	ths := ownRows(table).ChildrenFiltered("th")
	if ths.Length() == 0 {
		return false
	}
	if !strings.Contains(label(ths.First()), e.Rules.SetHeader) {
		return false
	}
	found := false
	ths.EachWithBreak(func(_ int, th *goquery.Selection) bool {
		found = strings.Contains(label(th), e.Rules.PiecesHeader)
		return !found
	})
	return found
}

func (e *SetExtractor) tables(doc *goquery.Document, hint grail.Hint) []*grail.Item {
	tiers := tableTiers(doc)

	var items []*grail.Item
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		if !e.isSetTable(table) {
			return
		}
		tier := tiers[table.Nodes[0]]
		if tier == grail.TierNone {
			tier = grail.TierUnknown
		}

		ownRows(table).Each(func(_ int, tr *goquery.Selection) {
			tds := tr.ChildrenFiltered("td")
			if tds.Length() < 2 {
				return
			}
			setLink := tds.Eq(0).Find("a[href]").First()
			if setLink.Length() == 0 {
				return
			}
			setName := linkText(setLink)
			if setName == "" {
				return
			}
			list := tds.Eq(1).Find("ul, ol").First()
			for _, piece := range e.pieceNames(list) {
				items = append(items, setItem(piece, setName, tier, hint))
			}
		})
	})
	return items
}

// pieceNames returns the first link label of each direct list item,
// skipping stoplisted labels.
func (e *SetExtractor) pieceNames(list *goquery.Selection) []string {
	var names []string
	list.ChildrenFiltered("li").Each(func(_ int, li *goquery.Selection) {
		a := li.Find("a[href]").First()
		if a.Length() == 0 {
			return
		}
		if name := linkText(a); e.Rules.Accept(name) {
			names = append(names, name)
		}
	})
	return names
}

// sectionTier classifies legacy section headings such as "Elite Sets".
func sectionTier(heading string) (grail.Tier, bool) {
	h := strings.ToLower(heading)
	switch {
	case strings.Contains(h, "normal sets"):
		return grail.TierNormal, true
	case strings.Contains(h, "exceptional sets"), strings.Contains(h, "exeptional sets"):
		return grail.TierExceptional, true
	case strings.Contains(h, "elite sets"):
		return grail.TierElite, true
	}
	return grail.TierNone, false
}

func (e *SetExtractor) sections(doc *goquery.Document, hint grail.Hint) []*grail.Item {
	var items []*grail.Item
	doc.Find("h2, h3").Each(func(_ int, h *goquery.Selection) {
		tier, ok := sectionTier(text(h))
		if !ok {
			return
		}
		items = append(items, e.section(h, tier, hint)...)
	})
	return items
}

// section reads one legacy section: each anchor outside a list names a set
// whose pieces are the next list sibling of the anchor's parent.
func (e *SetExtractor) section(h *goquery.Selection, tier grail.Tier, hint grail.Hint) []*grail.Item {
	var items []*grail.Item
	seen := make(map[string]struct{})

	for _, block := range sectionNodes(h) {
		block.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
			if a.ParentsFiltered("ul, ol").Length() > 0 {
				return
			}
			setName := linkText(a)
			if len(setName) < 2 {
				return
			}
			pieces := e.pieceNames(nextList(a.Parent()))
			if len(pieces) == 0 {
				return
			}
			key := strings.ToLower(setName)
			if _, ok := seen[key]; ok {
				return
			}
			seen[key] = struct{}{}
			for _, piece := range pieces {
				items = append(items, setItem(piece, setName, tier, hint))
			}
		})
	}
	return items
}

// sectionNodes returns the element siblings following h up to the next
// h2/h3.
func sectionNodes(h *goquery.Selection) []*goquery.Selection {
	var out []*goquery.Selection
	h.NextAll().EachWithBreak(func(_ int, sib *goquery.Selection) bool {
		if isHeading(sib.Nodes[0]) {
			return false
		}
		out = append(out, sib)
		return true
	})
	return out
}

// nextList returns the first ul/ol sibling after node, stopping at the next
// section heading.
func nextList(node *goquery.Selection) *goquery.Selection {
	for sib := node.Next(); sib.Length() > 0; sib = sib.Next() {
		if isHeading(sib.Nodes[0]) {
			break
		}
		if sib.Is("ul, ol") {
			return sib
		}
	}
	return node.Slice(0, 0)
}

func setItem(piece, setName string, tier grail.Tier, hint grail.Hint) *grail.Item {
	return &grail.Item{
		Name:      piece,
		Category:  grail.CategorySet,
		SetName:   setName,
		Tier:      tier,
		SourceURL: hint.SourceURL,
	}
}
