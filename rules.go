package grail

import (
	"regexp"
	"strings"
)

// Rules is the central table of layout heuristics shared by every extractor.
// Layout drift on the wiki should only ever require edits here.
type Rules struct {
	// Stoplist holds lower-case labels that are never item names: category
	// and mechanic labels, stat-column headers and UI labels.
	Stoplist map[string]struct{}

	// NameHeaders are header labels that identify the name column exactly,
	// in order of preference.
	NameHeaders []string

	// GearKeywords identify a name column headed by a gear type or class.
	GearKeywords []string

	// BaseHeaderKeys identify columns holding the base item type.
	BaseHeaderKeys []string

	// GenericTargets are link target fragments of category, file, list
	// or mechanics pages that never point at an item.
	GenericTargets []string

	// ListPagePattern marks hub-linked titles that are item list pages.
	ListPagePattern string

	// Qualifier is the disambiguation suffix of game-specific pages.
	Qualifier string

	// SetHeader and PiecesHeader identify set tables by their headers.
	SetHeader    string
	PiecesHeader string

	// RunePattern matches a rune name at the start of a table cell.
	RunePattern *regexp.Regexp
}

// DefaultRules returns the rule table for the Diablo Fandom wiki.
func DefaultRules() *Rules {
	return &Rules{
		Stoplist: stringSet(
			// headers, mechanics and categories
			"item name", "required level", "rarity", "defense", "required strength", "durability",
			"chance to block", "range", "ladder only",
			"rings", "amulets", "jewels", "helms", "body armor", "shields", "belts", "boots", "gloves",
			"axes", "bows", "crossbows", "daggers", "javelins", "katars", "maces", "polearms", "spears",
			"staves", "swords", "orbs", "circlets", "barbarian", "druid", "necromancer", "paladin", "amazon", "assassin",
			// table labels
			"two-hand damage", "two-handdamage", "requireddexterity", "smitedamage",
			"potion boxes", "8 potion boxes", "12 potion boxes", "16 potion boxes",
		),
		NameHeaders: []string{"item name", "name", "item"},
		GearKeywords: []string{
			"ring", "amulet", "jewel", "helm", "circlet", "body armor", "armor", "shield",
			"belt", "boots", "gloves", "orb", "barbarian", "druid", "necromancer", "paladin",
			"amazon", "assassin", "axe", "bow", "crossbow", "dagger", "javelin", "katar",
			"mace", "polearm", "spear", "staff", "stave", "sword",
		},
		BaseHeaderKeys: []string{"base", "item type", "weapon type", "armor type", "type"},
		GenericTargets: []string{
			"/Category:", "Category:", "File:", "Image:", "List_of_",
			"/wiki/Defense", "/wiki/Durability", "/wiki/Range", "/wiki/Smite",
		},
		ListPagePattern: "List_of_Unique",
		Qualifier:       "(Diablo_II)",
		SetHeader:       "set",
		PiecesHeader:    "piece",
		RunePattern: regexp.MustCompile(`(?i)^(Eld|El|Tir|Nef|Eth|Ith|Tal|Ral|Ort|Thul|Amn|Sol|Shael|Dol|Hel|Io|Lum|Ko|Fal|Lem|Pul|Um|Mal|Ist|Gul|Vex|Ohm|Lo|Sur|Ber|Jah|Cham|Zod)\b`),
	}
}

func stringSet(values ...string) map[string]struct{} {
	m := make(map[string]struct{}, len(values))
	for _, v := range values {
		m[v] = struct{}{}
	}
	return m
}

// Excluded reports whether name is a stoplisted label (case-insensitive).
func (r *Rules) Excluded(name string) bool {
	_, ok := r.Stoplist[strings.ToLower(strings.TrimSpace(name))]
	return ok
}

// Accept reports whether name is usable as an item name.
func (r *Rules) Accept(name string) bool {
	return strings.TrimSpace(name) != "" && !r.Excluded(name)
}

// NameColumn picks the name-bearing column from lower-case header labels.
// An exact NameHeaders match wins, then the first label containing a gear
// keyword. The bool is false when no label qualifies.
func (r *Rules) NameColumn(labels []string) (int, bool) {
	for _, target := range r.NameHeaders {
		for i, label := range labels {
			if label == target {
				return i, true
			}
		}
	}
	for i, label := range labels {
		for _, kw := range r.GearKeywords {
			if strings.Contains(label, kw) {
				return i, true
			}
		}
	}
	return 0, false
}

// IsBaseHeader reports whether a lower-case header label names a base
// type column.
func (r *Rules) IsBaseHeader(label string) bool {
	for _, key := range r.BaseHeaderKeys {
		if strings.Contains(label, key) {
			return true
		}
	}
	return false
}

// IsGenericTarget reports whether a link target points at a category, list
// or mechanics page.
func (r *Rules) IsGenericTarget(target string) bool {
	for _, frag := range r.GenericTargets {
		if strings.Contains(target, frag) {
			return true
		}
	}
	return false
}

// IsListPage reports whether title is an item list page.
func (r *Rules) IsListPage(title string) bool {
	return strings.Contains(title, r.ListPagePattern)
}

// IsQualified reports whether title carries the disambiguation suffix.
func (r *Rules) IsQualified(title string) bool {
	return strings.Contains(title, r.Qualifier)
}

// MatchRune returns the title-cased rune name at the start of text.
func (r *Rules) MatchRune(text string) (string, bool) {
	m := r.RunePattern.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return "", false
	}
	name := strings.ToLower(m[1])
	return strings.ToUpper(name[:1]) + name[1:], true
}

var footnoteRe = regexp.MustCompile(`\s+\[\d+\]$`)

// CleanName trims surrounding whitespace and a trailing footnote marker
// such as " [3]".
func CleanName(s string) string {
	return strings.TrimSpace(footnoteRe.ReplaceAllString(strings.TrimSpace(s), ""))
}
