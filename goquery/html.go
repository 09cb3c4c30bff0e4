// Package goquery implements extraction from rendered wiki HTML using
// goquery.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/grail"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func parse(content string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(content))
	if err != nil {
		return nil, grail.Errorf(grail.EINVALID, "failed to parse HTML: %v", err)
	}
	return doc, nil
}

// fragments returns the trimmed, non-empty text nodes under sel in
// document order.
func fragments(sel *goquery.Selection) []string {
	var out []string
	for _, n := range sel.Nodes {
		out = appendFragments(out, n)
	}
	return out
}

func appendFragments(out []string, n *html.Node) []string {
	if n.Type == html.TextNode {
		if s := strings.TrimSpace(n.Data); s != "" {
			out = append(out, s)
		}
		return out
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = appendFragments(out, c)
	}
	return out
}

// text joins the text fragments under sel with single spaces.
func text(sel *goquery.Selection) string {
	return strings.Join(fragments(sel), " ")
}

func nodeText(n *html.Node) string {
	return strings.Join(appendFragments(nil, n), " ")
}

// label returns the lower-cased text of a header cell.
func label(sel *goquery.Selection) string {
	return strings.ToLower(text(sel))
}

// linkText returns an anchor's text with any trailing footnote removed.
func linkText(a *goquery.Selection) string {
	return grail.CleanName(a.Text())
}

// ownRows returns the rows of table without the rows of tables nested
// inside it.
func ownRows(table *goquery.Selection) *goquery.Selection {
	return table.Find("tr").FilterFunction(func(_ int, tr *goquery.Selection) bool {
		return tr.Closest("table").IsNodes(table.Nodes[0])
	})
}

func isHeading(n *html.Node) bool {
	return n.Type == html.ElementNode && (n.DataAtom == atom.H2 || n.DataAtom == atom.H3)
}

// tableTiers maps every table to the tier of the closest preceding h2/h3
// that names one. Headings without a tier keyword do not reset the
// context. Tables with no such heading map to TierNone.
func tableTiers(doc *goquery.Document) map[*html.Node]grail.Tier {
	tiers := make(map[*html.Node]grail.Tier)
	current := grail.TierNone
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if isHeading(n) {
			if t, ok := grail.ClassifyOK(nodeText(n)); ok {
				current = t
			}
		}
		if n.Type == html.ElementNode && n.DataAtom == atom.Table {
			tiers[n] = current
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range doc.Nodes {
		walk(n)
	}
	return tiers
}
