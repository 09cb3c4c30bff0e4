package grail

import "strings"

// IdentityKey returns the key deciding whether two records are the same
// item. Set pieces are identified by name and set; everything else by name
// within its category.
func IdentityKey(it *Item) string {
	name := strings.ToLower(strings.TrimSpace(it.Name))
	if it.Category == CategorySet {
		return string(CategorySet) + "\x00" + name + "\x00" + strings.ToLower(strings.TrimSpace(it.SetName))
	}
	return string(it.Category) + "\x00" + name
}

// Dedup collapses records sharing an identity key. The first occurrence
// wins and later duplicates are discarded without merging fields. Order of
// survivors is preserved.
func Dedup(items []*Item) []*Item {
	seen := make(map[string]struct{}, len(items))
	out := make([]*Item, 0, len(items))
	for _, it := range items {
		key := IdentityKey(it)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it)
	}
	return out
}

// DedupByName collapses records by lower-cased name alone, ignoring
// category and set. Extractors use it to drop repeated per-table noise.
func DedupByName(items []*Item) []*Item {
	seen := make(map[string]struct{}, len(items))
	out := make([]*Item, 0, len(items))
	for _, it := range items {
		key := strings.ToLower(it.Name)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it)
	}
	return out
}
