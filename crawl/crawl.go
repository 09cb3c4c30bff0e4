// Package crawl orchestrates catalog extraction. It coordinates the fetch
// layer, subpage discovery, per-page extraction, sanity checks and the
// final dedup and expansion of item records.
package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/antzucaro/matchr"
	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/grail"
	"github.com/fwojciec/grail/bloom"
	"github.com/google/uuid"
)

// DefaultRuneURL is the external page listing all runes.
const DefaultRuneURL = "https://diablo2.diablowiki.net/Rune_list"

// NearDuplicateThreshold is the Jaro-Winkler similarity at which two
// distinct names of one category are reported as likely duplicates.
const NearDuplicateThreshold = 0.97

// PageTitles names the wiki pages a harvest starts from.
type PageTitles struct {
	Sets    string
	Rings   string
	Amulets string
	Charms  string
	Jewels  string

	// ArmorHub and WeaponsHub link to the per-type unique list pages.
	ArmorHub   string
	WeaponsHub string
}

// DefaultPageTitles returns the page titles of the Diablo Fandom wiki.
func DefaultPageTitles() PageTitles {
	return PageTitles{
		Sets:       "List_of_Set_Items_(Diablo_II)",
		Rings:      "List_of_Unique_Rings_(Diablo_II)",
		Amulets:    "List_of_Unique_Amulets_(Diablo_II)",
		Charms:     "Unique_Charms",
		Jewels:     "List_of_Unique_Jewels",
		ArmorHub:   "Unique_Armor",
		WeaponsHub: "Unique_Weapons",
	}
}

// Direct returns the unique pages parsed without discovery, in order.
func (p PageTitles) Direct() []string {
	return nonEmpty(p.Rings, p.Amulets, p.Charms, p.Jewels)
}

// Hubs returns the hub pages whose subpages are discovered, in order.
func (p PageTitles) Hubs() []string {
	return nonEmpty(p.ArmorHub, p.WeaponsHub)
}

// Map returns the titles keyed by role, as recorded in output metadata.
func (p PageTitles) Map() map[string]string {
	return map[string]string{
		"sets":               p.Sets,
		"unique_rings":       p.Rings,
		"unique_amulets":     p.Amulets,
		"unique_charms":      p.Charms,
		"unique_jewels":      p.Jewels,
		"unique_armor_hub":   p.ArmorHub,
		"unique_weapons_hub": p.WeaponsHub,
	}
}

func nonEmpty(values ...string) []string {
	var out []string
	for _, v := range values {
		if v != "" {
			out = append(out, v)
		}
	}
	return out
}

// ExtractorSet groups the extractors able to read one page representation.
type ExtractorSet struct {
	Uniques grail.Extractor
	Sets    grail.Extractor
}

// URLFetcher retrieves an external page outside the wiki API.
type URLFetcher interface {
	FetchURL(ctx context.Context, url string) (string, error)
}

// Harvester runs a complete extraction. Pages are processed one at a time;
// a failing page becomes a warning and never aborts the run.
type Harvester struct {
	Pages      grail.PageFetcher
	External   URLFetcher
	Discoverer *Discoverer
	Extractors map[grail.Representation]ExtractorSet
	Runes      grail.Extractor
	Rules      *grail.Rules
	Titles     PageTitles
	Logger     *slog.Logger

	// RuneURL defaults to DefaultRuneURL.
	RuneURL string

	IncludeRunes  bool
	FacetVariants bool

	// RunID identifies the run. A random UUID is used when empty.
	RunID string
}

// Run harvests sets, uniques and optionally runes, and returns the
// deduplicated catalog. Only context cancellation aborts a run.
func (h *Harvester) Run(ctx context.Context) (*grail.Catalog, error) {
	runID := h.RunID
	if runID == "" {
		runID = uuid.NewString()
	}
	r := &run{Harvester: h, visited: bloom.NewTitleSet(256, 0.001)}

	r.logger().Info("parsing set items")
	sets, err := r.sets(ctx)
	if err != nil {
		return nil, err
	}

	r.logger().Info("parsing unique items")
	uniques, err := r.uniques(ctx)
	if err != nil {
		return nil, err
	}
	r.logger().Debug("unique pages visited", "pages", r.visited.Len(), "estimated", r.visited.EstimatedCount())
	uniques = grail.Dedup(uniques)
	r.sanityCheck(uniques)
	if h.FacetVariants {
		uniques = grail.ExpandVariants(uniques, grail.FacetItem, grail.FacetVariants)
	}

	items := append(sets, uniques...)
	if h.IncludeRunes {
		r.logger().Info("parsing runes")
		runes, err := r.runes(ctx)
		if err != nil {
			return nil, err
		}
		items = append(items, runes...)
	}

	items = grail.Dedup(items)
	return &grail.Catalog{
		RunID:       runID,
		Items:       items,
		Counts:      grail.CountItems(items),
		Warnings:    r.warnings,
		Fingerprint: Fingerprint(items),
	}, nil
}

// Fingerprint hashes the ordered identity keys of items. Two catalogs
// with the same records in the same order share a fingerprint.
func Fingerprint(items []*grail.Item) string {
	d := xxhash.New()
	for _, it := range items {
		_, _ = d.WriteString(grail.IdentityKey(it))
		_, _ = d.WriteString("\n")
	}
	return fmt.Sprintf("%016x", d.Sum64())
}

// run holds the mutable state of one Harvester.Run call.
type run struct {
	*Harvester
	visited  *bloom.TitleSet
	warnings []grail.Warning
}

func (r *run) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return r.Logger
}

func (r *run) rules() *grail.Rules {
	if r.Rules == nil {
		return grail.DefaultRules()
	}
	return r.Rules
}

func (r *run) warn(title, reason string) {
	r.warnings = append(r.warnings, grail.Warning{Title: title, Reason: reason})
	r.logger().Warn("page skipped", "title", title, "reason", reason)
}

func (r *run) record(res grail.PageResult) []*grail.Item {
	if res.Warning != nil {
		r.warn(res.Warning.Title, res.Warning.Reason)
	}
	return res.Items
}

func (r *run) sets(ctx context.Context) ([]*grail.Item, error) {
	if r.Titles.Sets == "" {
		return nil, nil
	}
	res := r.page(ctx, r.Titles.Sets, grail.CategorySet, func(s ExtractorSet) grail.Extractor { return s.Sets })
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	items := grail.Dedup(r.record(res))
	r.summarizeSets(items)
	return items, nil
}

// summarizeSets logs set and piece counts per tier in order of first
// appearance.
func (r *run) summarizeSets(items []*grail.Item) {
	type tally struct {
		sets   map[string]struct{}
		pieces int
	}
	var order []grail.Tier
	tallies := make(map[grail.Tier]*tally)
	for _, it := range items {
		tier := it.Tier
		if tier == grail.TierNone {
			tier = grail.TierUnknown
		}
		t, ok := tallies[tier]
		if !ok {
			t = &tally{sets: make(map[string]struct{})}
			tallies[tier] = t
			order = append(order, tier)
		}
		t.sets[it.SetName] = struct{}{}
		t.pieces++
	}
	for _, tier := range order {
		r.logger().Info("set summary", "tier", tier, "sets", len(tallies[tier].sets), "pieces", tallies[tier].pieces)
	}
}

func (r *run) uniques(ctx context.Context) ([]*grail.Item, error) {
	pick := func(s ExtractorSet) grail.Extractor { return s.Uniques }
	var items []*grail.Item

	for _, title := range r.Titles.Direct() {
		res := r.page(ctx, title, grail.CategoryUnique, pick)
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if len(res.Items) > 0 {
			r.visited.Add(title)
		}
		items = append(items, r.record(res)...)
	}

	rules := r.rules()
	for _, hub := range r.Titles.Hubs() {
		subpages, err := r.Discoverer.DiscoverSubpages(ctx, r.Pages, hub)
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		if err != nil {
			r.warn(hub, fmt.Sprintf("discovery failed: %v", err))
			continue
		}
		r.logger().Debug("discovered subpages", "hub", hub, "count", len(subpages))

		for _, title := range subpages {
			if r.visited.Has(title) {
				continue
			}
			if !rules.IsQualified(title) && !rules.IsListPage(title) {
				continue
			}
			res := r.page(ctx, title, grail.CategoryUnique, pick)
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			if len(res.Items) > 0 {
				r.visited.Add(title)
			}
			items = append(items, r.record(res)...)
		}
	}
	return items, nil
}

// page fetches title and extracts records with the extractor chosen for
// the representation that came back.
func (r *run) page(ctx context.Context, title string, category grail.Category, pick func(ExtractorSet) grail.Extractor) grail.PageResult {
	res := grail.PageResult{Title: title}
	fail := func(reason string) grail.PageResult {
		res.Warning = &grail.Warning{Title: title, Reason: reason}
		return res
	}

	page, err := r.Pages.FetchPage(ctx, title)
	if err != nil {
		return fail(fmt.Sprintf("fetch: %v", err))
	}
	ext := pick(r.Extractors[page.Representation])
	if ext == nil {
		return fail(fmt.Sprintf("no %s extractor for %s content", strings.ToLower(string(category)), page.Representation))
	}
	items, err := ext.Extract(page.Content, grail.Hint{
		Category:  category,
		PageTitle: title,
		SourceURL: page.SourceURL,
	})
	if err != nil {
		return fail(fmt.Sprintf("extract: %v", err))
	}
	res.Items = items
	if len(items) == 0 {
		return fail(fmt.Sprintf("no %s items parsed from %s content", strings.ToLower(string(category)), page.Representation))
	}
	return res
}

// sanityCheck warns about stoplisted names among the uniques and logs
// pairs of names that are suspiciously similar.
func (r *run) sanityCheck(items []*grail.Item) {
	rules := r.rules()
	bad := make(map[string]struct{})
	for _, it := range items {
		if rules.Excluded(it.Name) {
			bad[it.Name] = struct{}{}
		}
	}
	if len(bad) > 0 {
		names := make([]string, 0, len(bad))
		for n := range bad {
			names = append(names, n)
		}
		sort.Strings(names)
		if len(names) > 8 {
			names = names[:8]
		}
		r.warnings = append(r.warnings, grail.Warning{
			Title:  "uniques",
			Reason: "header or mechanics terms among uniques: " + strings.Join(names, ", "),
		})
		r.logger().Warn("sanity check failed", "examples", strings.Join(names, ", "))
	}

	for i := 0; i < len(items); i++ {
		for j := i + 1; j < len(items); j++ {
			a, b := items[i], items[j]
			if a.Category != b.Category || strings.EqualFold(a.Name, b.Name) {
				continue
			}
			if score := matchr.JaroWinkler(a.Name, b.Name, false); score >= NearDuplicateThreshold {
				r.logger().Debug("near-duplicate names", "a", a.Name, "b", b.Name, "score", score)
			}
		}
	}
}

// runes parses the external rune list, falling back to the canonical list
// when the page cannot be fetched or yields too few runes.
func (r *run) runes(ctx context.Context) ([]*grail.Item, error) {
	url := r.RuneURL
	if url == "" {
		url = DefaultRuneURL
	}

	items, err := r.parseRunes(ctx, url)
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, ctxErr
	}
	if err == nil && len(items) >= grail.MinRunes {
		return items, nil
	}
	reason := fmt.Sprintf("found %d runes", len(items))
	if err != nil {
		reason = err.Error()
	}
	r.warn(url, "using canonical rune list: "+reason)
	return grail.RuneItems(grail.CanonicalRunes, url), nil
}

func (r *run) parseRunes(ctx context.Context, url string) ([]*grail.Item, error) {
	if r.External == nil || r.Runes == nil {
		return nil, grail.Errorf(grail.EINVALID, "rune source not configured")
	}
	body, err := r.External.FetchURL(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	return r.Runes.Extract(body, grail.Hint{Category: grail.CategoryRune, SourceURL: url})
}
