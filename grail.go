// Package grail extracts a catalog of Diablo II Holy Grail items (Unique
// items, Set items and Runes) from a wiki whose page layouts drift over time.
// It fetches pages through a caching layer that falls back from rendered HTML
// to raw wikitext, parses item tables heuristically, classifies tiers and
// deduplicates the result.
//
// This package contains domain types, pure domain rules and interfaces
// following Ben Johnson's Standard Package Layout. Implementations live in
// subdirectories named after their primary dependency (e.g., goquery/, fs/,
// sqlite/) or their concern (crawl/, wikitext/).
package grail
