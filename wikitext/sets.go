package wikitext

import (
	"strings"

	"github.com/fwojciec/grail"
)

// Ensure SetExtractor implements grail.Extractor at compile time.
var _ grail.Extractor = (*SetExtractor)(nil)

// SetExtractor extracts set pieces from "Set | Pieces" wikitables. The
// pieces cell holds one bulleted link per piece.
type SetExtractor struct {
	Rules *grail.Rules
}

// NewSetExtractor creates a SetExtractor using rules.
func NewSetExtractor(rules *grail.Rules) *SetExtractor {
	return &SetExtractor{Rules: rules}
}

// Extract returns one Set item per piece found in content.
func (e *SetExtractor) Extract(content string, hint grail.Hint) ([]*grail.Item, error) {
	var items []*grail.Item
	for _, b := range tables(content) {
		rows := b.rows()
		if !e.isSetTable(headerLabels(rows)) {
			continue
		}
		tier := b.tier
		if tier == grail.TierNone {
			tier = grail.TierUnknown
		}
		for _, r := range rows {
			if len(r.cells) < 2 {
				continue
			}
			setName := first(linkNames(r.cells[0], e.Rules), []string{plain(r.cells[0])})
			if setName == "" {
				continue
			}
			for _, piece := range e.pieces(r.cells[1]) {
				items = append(items, &grail.Item{
					Name:      piece,
					Category:  grail.CategorySet,
					SetName:   setName,
					Tier:      tier,
					SourceURL: hint.SourceURL,
				})
			}
		}
	}
	return grail.Dedup(items), nil
}

func (e *SetExtractor) isSetTable(labels []string) bool {
	if len(labels) == 0 || !strings.Contains(labels[0], e.Rules.SetHeader) {
		return false
	}
	for _, l := range labels {
		if strings.Contains(l, e.Rules.PiecesHeader) {
			return true
		}
	}
	return false
}

// pieces returns the first link of each bulleted line in cell, or every
// link when the cell has no bullets. Stoplisted names are dropped.
func (e *SetExtractor) pieces(cell string) []string {
	var out []string
	bulleted := false
	for _, ln := range strings.Split(cell, "\n") {
		ln = strings.TrimSpace(ln)
		if !strings.HasPrefix(ln, "*") && !strings.HasPrefix(ln, "#") {
			continue
		}
		bulleted = true
		if links := linkNames(ln, e.Rules); len(links) > 0 {
			if name := grail.CleanName(links[0]); e.Rules.Accept(name) {
				out = append(out, name)
			}
		}
	}
	if bulleted {
		return out
	}
	for _, name := range linkNames(cell, e.Rules) {
		if e.Rules.Accept(name) {
			out = append(out, name)
		}
	}
	return out
}
