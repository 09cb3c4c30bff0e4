package wikitext

import (
	"strings"

	"github.com/fwojciec/grail"
)

// Ensure RawMarkupExtractor implements grail.Extractor at compile time.
var _ grail.Extractor = (*RawMarkupExtractor)(nil)

// RawMarkupExtractor extracts unique items from wikitable markup.
type RawMarkupExtractor struct {
	Rules *grail.Rules
}

// NewRawMarkupExtractor creates a RawMarkupExtractor using rules.
func NewRawMarkupExtractor(rules *grail.Rules) *RawMarkupExtractor {
	return &RawMarkupExtractor{Rules: rules}
}

// Extract returns the items found in the tables of content, deduplicated
// by identity key.
func (e *RawMarkupExtractor) Extract(content string, hint grail.Hint) ([]*grail.Item, error) {
	var items []*grail.Item
	for _, b := range tables(content) {
		items = append(items, e.table(b, hint)...)
	}
	return grail.Dedup(items), nil
}

func (e *RawMarkupExtractor) table(b tableBlock, hint grail.Hint) []*grail.Item {
	rows := b.rows()
	nameCol := e.nameColumn(rows)
	labels := headerLabels(rows)
	tier := b.tier

	var items []*grail.Item
	for _, r := range rows {
		if r.tierRow != "" {
			if t, ok := grail.ClassifyOK(plain(r.tierRow)); ok {
				tier = t
			}
			continue
		}
		if nameCol >= len(r.cells) {
			continue
		}

		cell := r.cells[nameCol]
		links := linkNames(cell, e.Rules)
		templates := templateArgs(cell)
		name := first(links, templates)
		if name == "" || !e.Rules.Accept(name) {
			continue
		}

		sub := baseFromCell(cell, name, links, templates)
		if sub == "" {
			for i, c := range r.cells {
				if i == nameCol || i >= len(labels) || !e.Rules.IsBaseHeader(labels[i]) {
					continue
				}
				if sub = baseFromCell(c, name, linkNames(c, e.Rules), templateArgs(c)); sub != "" {
					break
				}
			}
		}
		if sub == "" {
			sub = hint.DefaultSubcategory()
		}

		items = append(items, &grail.Item{
			Name:        name,
			Category:    category(hint),
			Subcategory: sub,
			Tier:        tier,
			SourceURL:   hint.SourceURL,
		})
	}
	return items
}

func (e *RawMarkupExtractor) nameColumn(rows []row) int {
	for _, r := range rows {
		if len(r.labels) == 0 {
			continue
		}
		if i, ok := e.Rules.NameColumn(r.labels); ok {
			return i
		}
	}
	return 0
}

func headerLabels(rows []row) []string {
	for _, r := range rows {
		if len(r.labels) > 0 {
			return r.labels
		}
	}
	return nil
}

func first(lists ...[]string) string {
	for _, l := range lists {
		if len(l) > 0 {
			return l[0]
		}
	}
	return ""
}

// baseFromCell returns the first link or template value in cell that
// differs from name, else the first plain text fragment that does.
func baseFromCell(cell, name string, links, templates []string) string {
	primary := strings.ToLower(name)
	for _, l := range [][]string{links, templates} {
		for _, cand := range l {
			if strings.ToLower(cand) != primary {
				return cand
			}
		}
	}
	for _, f := range fragments(cell) {
		if strings.ToLower(f) != primary {
			return f
		}
	}
	return ""
}

func category(hint grail.Hint) grail.Category {
	if hint.Category == "" {
		return grail.CategoryUnique
	}
	return hint.Category
}
