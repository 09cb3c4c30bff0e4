package grail

import "strings"

// Tier is a coarse item progression bucket.
type Tier string

// Tiers. TierNone marks a record with no tier context at all.
const (
	TierNone        Tier = ""
	TierNormal      Tier = "Normal"
	TierExceptional Tier = "Exceptional"
	TierElite       Tier = "Elite"
	TierUnknown     Tier = "Unknown"
)

// tierRules maps lower-case keywords to tiers. Order matters: the first
// keyword contained in the text wins.
var tierRules = []struct {
	keyword string
	tier    Tier
}{
	{"normal", TierNormal},
	{"exceptional", TierExceptional},
	{"exeptional", TierExceptional}, // common misspelling on the wiki
	{"elite", TierElite},
}

// Classify maps heading-like text to a tier. It returns TierUnknown when no
// tier keyword is contained in text.
func Classify(text string) Tier {
	tier, _ := ClassifyOK(text)
	return tier
}

// ClassifyOK is like Classify but also reports whether a keyword matched.
func ClassifyOK(text string) (Tier, bool) {
	lower := strings.ToLower(text)
	for _, r := range tierRules {
		if strings.Contains(lower, r.keyword) {
			return r.tier, true
		}
	}
	return TierUnknown, false
}
