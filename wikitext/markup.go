// Package wikitext implements extraction from raw MediaWiki markup, used
// when rendered HTML is refused.
package wikitext

import (
	"regexp"
	"strings"

	"github.com/fwojciec/grail"
)

var (
	linkRe     = regexp.MustCompile(`\[\[([^\]|#]+)(?:#[^\]|]*)?(?:\|([^\]]+))?\]\]`)
	templateRe = regexp.MustCompile(`\{\{[^|{}]*\|([^{}|]+)(?:\|[^{}]*)?\}\}`)
	tagRe      = regexp.MustCompile(`<[^>]*>`)
	breakRe    = regexp.MustCompile(`(?i)<br\s*/?>`)
	attrRe     = regexp.MustCompile(`^\s*[\w-]+\s*=`)
)

// tableBlock is one {| ... |} table with the tier of the heading above it.
type tableBlock struct {
	lines []string
	tier  grail.Tier
}

// row is one table row. Labels hold header cells, cells hold data cells.
// A tier row is a spanning header line that names a tier; other spanning
// header lines are read as labels.
type row struct {
	labels  []string
	cells   []string
	tierRow string
}

func lines(text string) []string {
	return strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
}

// headingTier returns the tier named by a "== heading ==" line. ok is false
// when the line is not a heading.
func headingTier(line string) (tier grail.Tier, ok bool) {
	if len(line) < 4 || !strings.HasPrefix(line, "==") || !strings.HasSuffix(line, "==") {
		return grail.TierNone, false
	}
	t, found := grail.ClassifyOK(strings.TrimSpace(strings.Trim(line, "=")))
	if !found {
		return grail.TierNone, true
	}
	return t, true
}

// tables splits text into table blocks. Each table takes the tier of the
// latest heading; a heading without a tier clears it.
func tables(text string) []tableBlock {
	var blocks []tableBlock
	var cur *tableBlock
	tier := grail.TierNone
	for _, raw := range lines(text) {
		line := strings.TrimRight(raw, " \t")
		trimmed := strings.TrimSpace(line)
		if t, ok := headingTier(trimmed); ok {
			tier = t
		}
		if strings.HasPrefix(trimmed, "{|") {
			cur = &tableBlock{tier: tier}
			continue
		}
		if cur == nil {
			continue
		}
		if strings.HasPrefix(trimmed, "|}") {
			blocks = append(blocks, *cur)
			cur = nil
			continue
		}
		cur.lines = append(cur.lines, line)
	}
	return blocks
}

// rows groups table lines into rows separated by "|-". Empty cells keep
// their column. Lines that start neither a header nor a data cell continue
// the previous cell.
func (b tableBlock) rows() []row {
	var out []row
	var cur row
	flush := func() {
		if len(cur.labels) > 0 || len(cur.cells) > 0 {
			out = append(out, cur)
		}
		cur = row{}
	}
	for _, line := range b.lines {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "|-"):
			flush()
		case strings.HasPrefix(trimmed, "|+"):
			// caption
		case strings.HasPrefix(trimmed, "!"):
			if strings.Contains(trimmed, "colspan") {
				if heading := plain(cellContent(strings.TrimPrefix(trimmed, "!"))); isTierLabel(heading) {
					flush()
					out = append(out, row{tierRow: heading})
					continue
				}
			}
			for _, part := range splitCells(strings.TrimPrefix(trimmed, "!"), "!!", "||") {
				cur.labels = append(cur.labels, strings.ToLower(plain(cellContent(part))))
			}
		case strings.HasPrefix(trimmed, "|"):
			for _, part := range splitCells(strings.TrimPrefix(trimmed, "|"), "||") {
				cur.cells = append(cur.cells, cellContent(part))
			}
		default:
			if n := len(cur.cells); n > 0 && trimmed != "" {
				cur.cells[n-1] += "\n" + trimmed
			}
		}
	}
	flush()
	return out
}

func isTierLabel(s string) bool {
	_, ok := grail.ClassifyOK(s)
	return ok
}

func splitCells(s string, seps ...string) []string {
	for _, sep := range seps[1:] {
		s = strings.ReplaceAll(s, sep, seps[0])
	}
	return strings.Split(s, seps[0])
}

// cellContent drops a leading attribute section such as
// `style="text-align:left" |` from a cell.
func cellContent(cell string) string {
	depth := 0
	for i := 0; i < len(cell); i++ {
		switch {
		case strings.HasPrefix(cell[i:], "[[") || strings.HasPrefix(cell[i:], "{{"):
			depth++
			i++
		case strings.HasPrefix(cell[i:], "]]") || strings.HasPrefix(cell[i:], "}}"):
			if depth > 0 {
				depth--
			}
			i++
		case cell[i] == '|' && depth == 0:
			if attrRe.MatchString(cell[:i]) {
				return strings.TrimSpace(cell[i+1:])
			}
			return strings.TrimSpace(cell)
		}
	}
	return strings.TrimSpace(cell)
}

// pageTitle normalizes a link target to title form.
func pageTitle(target string) string {
	return strings.ReplaceAll(strings.TrimSpace(target), " ", "_")
}

// linkNames returns the targets of [[...]] links in s as display names
// (underscores become spaces), skipping targets rules consider generic.
func linkNames(s string, rules *grail.Rules) []string {
	var out []string
	for _, m := range linkRe.FindAllStringSubmatch(s, -1) {
		target := strings.TrimSpace(m[1])
		if target == "" || rules.IsGenericTarget(target) {
			continue
		}
		out = append(out, strings.ReplaceAll(target, "_", " "))
	}
	return out
}

// templateArgs returns the first argument of each {{template|arg|...}}.
func templateArgs(s string) []string {
	var out []string
	for _, m := range templateRe.FindAllStringSubmatch(s, -1) {
		if arg := strings.TrimSpace(m[1]); arg != "" {
			out = append(out, arg)
		}
	}
	return out
}

// plain renders markup as display text: links become their label,
// templates their first argument, tags and bold/italic quotes are removed.
func plain(s string) string {
	s = linkRe.ReplaceAllStringFunc(s, func(m string) string {
		sub := linkRe.FindStringSubmatch(m)
		if sub[2] != "" {
			return sub[2]
		}
		return sub[1]
	})
	s = templateRe.ReplaceAllString(s, "$1")
	s = tagRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "'''", "")
	s = strings.ReplaceAll(s, "''", "")
	return strings.TrimSpace(s)
}

// fragments splits a cell on <br> tags and line breaks into plain text
// pieces, dropping empty ones.
func fragments(cell string) []string {
	var out []string
	for _, part := range breakRe.Split(cell, -1) {
		for _, ln := range strings.Split(part, "\n") {
			if p := plain(ln); p != "" {
				out = append(out, p)
			}
		}
	}
	return out
}
