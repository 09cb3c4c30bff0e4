package grail

import "context"

// Category identifies the kind of grail item.
type Category string

// Item categories.
const (
	CategoryUnique Category = "Unique"
	CategorySet    Category = "Set"
	CategoryRune   Category = "Rune"
)

// Categories lists all categories in processing order.
var Categories = []Category{CategorySet, CategoryUnique, CategoryRune}

// Item represents one collectible in the catalog.
type Item struct {
	Name        string   `json:"name"`
	Category    Category `json:"category"`
	Subcategory string   `json:"subcategory,omitempty"`
	SetName     string   `json:"set_name,omitempty"`
	Tier        Tier     `json:"tier,omitempty"`
	Variant     string   `json:"variant,omitempty"`
	SourceURL   string   `json:"source_url"`
}

// Validate returns an error if the item contains invalid fields.
func (i *Item) Validate() error {
	if i.Name == "" {
		return Errorf(EINVALID, "item name required")
	}
	switch i.Category {
	case CategorySet:
		if i.SetName == "" {
			return Errorf(EINVALID, "set item %q requires a set name", i.Name)
		}
	case CategoryUnique, CategoryRune:
		if i.SetName != "" {
			return Errorf(EINVALID, "%s item %q must not have a set name", i.Category, i.Name)
		}
	default:
		return Errorf(EINVALID, "item %q has unknown category %q", i.Name, i.Category)
	}
	return nil
}

// Warning describes a page that contributed no records, and why.
type Warning struct {
	Title  string `json:"title"`
	Reason string `json:"reason"`
}

// PageResult is the outcome of processing a single page. A non-nil Warning
// means the page failed or yielded nothing; Items may still be empty
// without a warning for pages that are expected to be sparse.
type PageResult struct {
	Title   string
	Items   []*Item
	Warning *Warning
}

// Counts holds aggregate record counts per category.
type Counts struct {
	Set    int `json:"Set"`
	Unique int `json:"Unique"`
	Rune   int `json:"Rune"`
	Total  int `json:"Total"`
}

// CountItems tallies items per category.
func CountItems(items []*Item) Counts {
	var c Counts
	for _, it := range items {
		switch it.Category {
		case CategorySet:
			c.Set++
		case CategoryUnique:
			c.Unique++
		case CategoryRune:
			c.Rune++
		}
	}
	c.Total = len(items)
	return c
}

// Catalog is the final, ordered record set produced by a run.
type Catalog struct {
	RunID       string    `json:"run_id"`
	Items       []*Item   `json:"items"`
	Counts      Counts    `json:"counts"`
	Warnings    []Warning `json:"warnings,omitempty"`
	Fingerprint string    `json:"fingerprint"`
}

// ItemService persists catalogs.
type ItemService interface {
	// ReplaceItems atomically swaps the stored catalog for items.
	ReplaceItems(ctx context.Context, runID string, items []*Item) error

	// FindItems retrieves stored items matching the filter, in catalog order.
	FindItems(ctx context.Context, filter ItemFilter) ([]*Item, error)
}

// ItemFilter represents a filter for FindItems.
type ItemFilter struct {
	RunID    *string   `json:"runId"`
	Category *Category `json:"category"`
	Tier     *Tier     `json:"tier"`
	SetName  *string   `json:"setName"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
