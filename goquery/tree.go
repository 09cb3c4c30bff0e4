package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/grail"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Ensure TreeExtractor implements grail.Extractor at compile time.
var _ grail.Extractor = (*TreeExtractor)(nil)

// TreeExtractor extracts unique items from rendered list pages. Tables are
// read first; pages without usable tables fall back to bold names under
// section headings.
type TreeExtractor struct {
	Rules *grail.Rules
}

// NewTreeExtractor creates a TreeExtractor using rules.
func NewTreeExtractor(rules *grail.Rules) *TreeExtractor {
	return &TreeExtractor{Rules: rules}
}

// Extract returns the items found in the rendered HTML content.
func (e *TreeExtractor) Extract(content string, hint grail.Hint) ([]*grail.Item, error) {
	doc, err := parse(content)
	if err != nil {
		return nil, err
	}

	fallback := fallbackSubcategory(doc, hint)
	tiers := tableTiers(doc)

	var items []*grail.Item
	doc.Find("table").Each(func(_ int, table *goquery.Selection) {
		items = append(items, e.table(table, tiers[table.Nodes[0]], fallback, hint)...)
	})
	if len(items) > 0 {
		return items, nil
	}

	return grail.DedupByName(e.headings(doc, fallback, hint)), nil
}

// fallbackSubcategory prefers the hint, then the page's h1, then the
// page title.
func fallbackSubcategory(doc *goquery.Document, hint grail.Hint) string {
	if hint.Subcategory != "" {
		return hint.Subcategory
	}
	if h1 := doc.Find("h1").First(); h1.Length() > 0 {
		return grail.SubcategoryFromTitle(text(h1))
	}
	return hint.DefaultSubcategory()
}

func (e *TreeExtractor) table(table *goquery.Selection, tier grail.Tier, fallback string, hint grail.Hint) []*grail.Item {
	rows := ownRows(table)
	nameCol := e.nameColumn(rows)
	labels := headerLabels(rows)

	var items []*grail.Item
	rows.Each(func(_ int, tr *goquery.Selection) {
		ths := tr.ChildrenFiltered("th")
		tds := tr.ChildrenFiltered("td")

		// Section rows inside the table switch the running tier.
		if ths.Length() > 0 && tds.Length() == 0 {
			if t, ok := grail.ClassifyOK(text(ths)); ok {
				tier = t
			}
			return
		}
		if nameCol >= tds.Length() {
			return
		}

		cell := tds.Eq(nameCol)
		a := cell.Find("a[href]").First()
		if a.Length() == 0 || e.genericLink(a) {
			return
		}
		name := linkText(a)
		if !e.Rules.Accept(name) {
			return
		}

		sub := baseFromCell(cell, name)
		if sub == "" {
			tds.EachWithBreak(func(i int, td *goquery.Selection) bool {
				if i == nameCol || !e.Rules.IsBaseHeader(labels[i]) {
					return true
				}
				sub = baseFromCell(td, name)
				return sub == ""
			})
		}
		if sub == "" {
			sub = fallback
		}

		items = append(items, &grail.Item{
			Name:        name,
			Category:    category(hint),
			Subcategory: sub,
			Tier:        tier,
			SourceURL:   hint.SourceURL,
		})
	})
	return items
}

// nameColumn scans header rows in order and returns the first column the
// rules accept as the name column, or 0.
func (e *TreeExtractor) nameColumn(rows *goquery.Selection) int {
	col := 0
	rows.EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		ths := tr.ChildrenFiltered("th")
		if ths.Length() == 0 {
			return true
		}
		labels := make([]string, 0, ths.Length())
		ths.Each(func(_ int, th *goquery.Selection) {
			labels = append(labels, label(th))
		})
		if i, ok := e.Rules.NameColumn(labels); ok {
			col = i
			return false
		}
		return true
	})
	return col
}

// headerLabels returns the labels of the first header row by column.
func headerLabels(rows *goquery.Selection) map[int]string {
	labels := make(map[int]string)
	rows.EachWithBreak(func(_ int, tr *goquery.Selection) bool {
		tr.ChildrenFiltered("th").Each(func(i int, th *goquery.Selection) {
			labels[i] = label(th)
		})
		return len(labels) == 0
	})
	return labels
}

func (e *TreeExtractor) genericLink(a *goquery.Selection) bool {
	if e.Rules.Excluded(text(a)) {
		return true
	}
	href, _ := a.Attr("href")
	return e.Rules.IsGenericTarget(href)
}

// baseFromCell returns the first link label in cell that differs from
// name, else the first text fragment that does. Footnote markers never
// count. Empty when neither exists.
func baseFromCell(cell *goquery.Selection, name string) string {
	primary := strings.ToLower(strings.TrimSpace(name))

	var base string
	cell.Find("a[href]").EachWithBreak(func(_ int, a *goquery.Selection) bool {
		l := linkText(a)
		if l == "" || isFootnote(l) || strings.ToLower(l) == primary {
			return true
		}
		base = l
		return false
	})
	if base != "" {
		return base
	}

	for _, f := range fragments(cell) {
		f = grail.CleanName(f)
		if f != "" && !isFootnote(f) && strings.ToLower(f) != primary {
			return f
		}
	}
	return ""
}

// headings collects bold text that follows any h2/h3 as item names.
func (e *TreeExtractor) headings(doc *goquery.Document, sub string, hint grail.Hint) []*grail.Item {
	var items []*grail.Item
	inSection := false
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if isHeading(n) {
			inSection = true
		}
		if inSection && n.Type == html.ElementNode && (n.DataAtom == atom.B || n.DataAtom == atom.Strong) {
			if name := nodeText(n); e.Rules.Accept(name) {
				items = append(items, &grail.Item{
					Name:        name,
					Category:    category(hint),
					Subcategory: sub,
					SourceURL:   hint.SourceURL,
				})
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return items
}

var footnoteRe = regexp.MustCompile(`^\[\d+\]$`)

func isFootnote(s string) bool {
	return footnoteRe.MatchString(s)
}

func category(hint grail.Hint) grail.Category {
	if hint.Category == "" {
		return grail.CategoryUnique
	}
	return hint.Category
}
