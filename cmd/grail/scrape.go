package main

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/grail"
	"github.com/fwojciec/grail/crawl"
	"github.com/fwojciec/grail/fs"
	"github.com/fwojciec/grail/goquery"
	grailhttp "github.com/fwojciec/grail/http"
	grailslog "github.com/fwojciec/grail/slog"
	"github.com/fwojciec/grail/sqlite"
	"github.com/fwojciec/grail/wikitext"
	"github.com/google/uuid"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	runID := uuid.NewString()
	logger := deps.Logger.With("run", runID)
	started := time.Now()

	h, closeFn, err := c.harvester(runID, logger)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", grail.ErrorMessage(err))
		return err
	}
	defer closeFn()

	cat, err := h.Run(deps.Ctx)
	if err != nil {
		return fmt.Errorf("scrape: %w", err)
	}

	if err := c.write(deps, cat, h, logger); err != nil {
		return err
	}

	renderSummary(deps.Stdout, cat)
	logger.Info("done",
		"items", cat.Counts.Total,
		"warnings", len(cat.Warnings),
		"fingerprint", cat.Fingerprint,
		"duration", time.Since(started).Round(time.Millisecond),
	)
	return nil
}

// harvester wires the transport, cache and extractors into a Harvester.
// The returned func releases the transport.
func (c *ScrapeCmd) harvester(runID string, logger *slog.Logger) (*crawl.Harvester, func() error, error) {
	opts := []grailhttp.Option{
		grailhttp.WithTimeout(c.Timeout),
		grailhttp.WithRetries(c.Retries),
	}
	if c.RPS > 0 {
		opts = append(opts, grailhttp.WithRateLimit(c.RPS))
	}
	if c.Cloudflare {
		opts = append(opts, grailhttp.WithCloudflareBypass())
	}
	client := grailhttp.NewClient(opts...)

	links, err := goquery.NewLinkExtractor(c.WikiURL)
	if err != nil {
		client.Close()
		return nil, nil, err
	}

	fc := &crawl.FetchContext{
		API:     grailhttp.NewAPI(client, c.APIURL, c.WikiURL),
		Fetcher: grailslog.NewLoggingFetcher(client, logger),
		Cache:   fs.NewCache(c.CacheDir),
		Policy:  grail.CachePolicy{TTL: c.CacheTTL, Refresh: c.Refresh},
		Delay:   c.Delay,
	}

	rules := grail.DefaultRules()
	logged := func(ext grail.Extractor) grail.Extractor {
		return grailslog.NewLoggingExtractor(ext, logger)
	}

	h := &crawl.Harvester{
		Pages:    grailslog.NewLoggingPageFetcher(fc, logger),
		External: fc,
		Discoverer: &crawl.Discoverer{
			Links: map[grail.Representation]grail.LinkExtractor{
				grail.Rendered: links,
				grail.Raw:      wikitext.LinkExtractor{},
			},
			Rules: rules,
		},
		Extractors: map[grail.Representation]crawl.ExtractorSet{
			grail.Rendered: {
				Uniques: logged(goquery.NewTreeExtractor(rules)),
				Sets:    logged(goquery.NewSetExtractor(rules)),
			},
			grail.Raw: {
				Uniques: logged(wikitext.NewRawMarkupExtractor(rules)),
				Sets:    logged(wikitext.NewSetExtractor(rules)),
			},
		},
		Runes:         logged(goquery.NewRuneExtractor(rules)),
		Rules:         rules,
		Titles:        crawl.DefaultPageTitles(),
		Logger:        logger,
		RuneURL:       c.RuneURL,
		IncludeRunes:  c.IncludeRunes,
		FacetVariants: c.FacetVariants,
		RunID:         runID,
	}
	return h, client.Close, nil
}

// write sends the catalog to every configured output.
func (c *ScrapeCmd) write(deps *Dependencies, cat *grail.Catalog, h *crawl.Harvester, logger *slog.Logger) error {
	if c.OutJSON != "" {
		meta := fs.Meta{
			GeneratedAt: time.Now().UTC().Truncate(time.Second),
			Sources: fs.Sources{
				WikiBase: c.WikiURL,
				Pages:    h.Titles.Map(),
			},
			IncludeRunes:  c.IncludeRunes,
			FacetVariants: c.FacetVariants,
		}
		if c.IncludeRunes {
			meta.Sources.Runes = c.RuneURL
		}
		if err := fs.WriteJSON(c.OutJSON, cat, meta); err != nil {
			return fmt.Errorf("write %s: %w", c.OutJSON, err)
		}
		logger.Info("wrote json", "path", c.OutJSON)
	}

	if c.OutCSV != "" {
		if err := fs.WriteCSV(c.OutCSV, cat.Items); err != nil {
			return fmt.Errorf("write %s: %w", c.OutCSV, err)
		}
		logger.Info("wrote csv", "path", c.OutCSV)
	}

	if c.DB != "" {
		if err := storeCatalog(deps, c.DB, cat, logger); err != nil {
			fmt.Fprintln(deps.Stderr, "Hint: Set GRAIL_DB to use a different database path")
			return err
		}
	}
	return nil
}

func storeCatalog(deps *Dependencies, path string, cat *grail.Catalog, logger *slog.Logger) error {
	db := sqlite.NewDB(path)
	if err := db.Open(); err != nil {
		return fmt.Errorf("failed to open database at %q: %w", path, err)
	}
	defer db.Close()

	items := sqlite.NewItemService(db)
	prev, storedAt, err := items.LastRun(deps.Ctx)
	switch {
	case err == nil:
		logger.Info("replacing stored catalog", "previous", prev, "stored_at", storedAt)
	case grail.ErrorCode(err) != grail.ENOTFOUND:
		return err
	}

	if err := items.ReplaceItems(deps.Ctx, cat.RunID, cat.Items); err != nil {
		return fmt.Errorf("store catalog: %w", err)
	}
	logger.Info("stored catalog", "path", path, "items", len(cat.Items))
	return nil
}

// renderSummary prints per-category counts and any page warnings.
func renderSummary(w io.Writer, cat *grail.Catalog) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.AppendHeader(table.Row{"Category", "Items"})
	t.AppendRow(table.Row{grail.CategorySet, cat.Counts.Set})
	t.AppendRow(table.Row{grail.CategoryUnique, cat.Counts.Unique})
	t.AppendRow(table.Row{grail.CategoryRune, cat.Counts.Rune})
	t.AppendFooter(table.Row{"Total", cat.Counts.Total})
	t.SetStyle(table.StyleRounded)
	t.Render()

	if len(cat.Warnings) == 0 {
		return
	}
	wt := table.NewWriter()
	wt.SetOutputMirror(w)
	wt.AppendHeader(table.Row{"Page", "Warning"})
	for _, warn := range cat.Warnings {
		wt.AppendRow(table.Row{warn.Title, warn.Reason})
	}
	wt.SetStyle(table.StyleRounded)
	wt.Render()
}
