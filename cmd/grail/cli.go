package main

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Config  string `help:"Config file (JSON5); a .local. sibling overrides it" placeholder:"PATH"`
	Verbose bool   `short:"v" help:"Enable debug logging"`

	Scrape ScrapeCmd `cmd:"" help:"Scrape the item catalog and write it out"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	OutJSON       string        `name:"out-json" default:"holy_grail_items.json" help:"JSON output path (empty to skip)"`
	OutCSV        string        `name:"out-csv" default:"holy_grail_items.csv" help:"CSV output path (empty to skip)"`
	DB            string        `name:"db" env:"GRAIL_DB" help:"SQLite catalog path (empty to skip)"`
	IncludeRunes  bool          `name:"include-runes" help:"Include runes in output"`
	FacetVariants bool          `name:"facet-variants" help:"Track 8 Rainbow Facet variants instead of one"`
	Refresh       bool          `help:"Ignore cache and fetch fresh"`
	CacheTTL      time.Duration `name:"cache-ttl" default:"720h" help:"Maximum age of a cached page"`
	CacheDir      string        `name:"cache-dir" default:".cache" env:"GRAIL_CACHE_DIR" help:"Directory of cached pages"`
	Delay         time.Duration `default:"500ms" help:"Polite delay before each network request (jittered)"`
	Timeout       time.Duration `default:"30s" help:"Per-request timeout"`
	Retries       int           `default:"5" help:"Retries on 429 and 5xx responses"`
	RPS           float64       `name:"rps" default:"0" help:"Maximum requests per second (0 = unlimited)"`
	Cloudflare    bool          `help:"Route requests through the Cloudflare bypass transport"`

	APIURL  string `name:"api-url" default:"https://diablo.fandom.com/api.php" hidden:"" help:"MediaWiki API endpoint"`
	WikiURL string `name:"wiki-url" default:"https://diablo.fandom.com/wiki/" hidden:"" help:"Base URL of wiki pages"`
	RuneURL string `name:"rune-url" default:"https://diablo2.diablowiki.net/Rune_list" hidden:"" help:"Rune list page"`
}
