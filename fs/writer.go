package fs

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/fwojciec/grail"
)

// Sources names the upstream locations a catalog was built from.
type Sources struct {
	WikiBase string            `json:"wiki_base"`
	Pages    map[string]string `json:"pages"`
	Runes    string            `json:"runes,omitempty"`
}

// Meta describes how a catalog was produced.
type Meta struct {
	RunID         string          `json:"run_id"`
	GeneratedAt   time.Time       `json:"generated_at"`
	Sources       Sources         `json:"sources"`
	IncludeRunes  bool            `json:"include_runes"`
	FacetVariants bool            `json:"facet_variants"`
	Fingerprint   string          `json:"fingerprint"`
	Warnings      []grail.Warning `json:"warnings,omitempty"`
}

type summary struct {
	Counts grail.Counts `json:"counts"`
}

type catalogFile struct {
	Meta    Meta          `json:"meta"`
	Items   []*grail.Item `json:"items"`
	Summary summary       `json:"summary"`
}

// WriteJSON writes the catalog with its metadata and per-category counts as
// indented JSON. Missing parent directories are created.
func WriteJSON(path string, cat *grail.Catalog, meta Meta) error {
	meta.RunID = cat.RunID
	meta.Fingerprint = cat.Fingerprint
	meta.Warnings = cat.Warnings
	items := cat.Items
	if items == nil {
		items = []*grail.Item{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(catalogFile{
		Meta:    meta,
		Items:   items,
		Summary: summary{Counts: cat.Counts},
	}); err != nil {
		return err
	}
	return writeOutput(path, buf.Bytes())
}

// CSVHeader lists the CSV columns in order.
var CSVHeader = []string{"name", "category", "subcategory", "set_name", "tier", "variant", "source_url"}

// WriteCSV writes one row per item under CSVHeader. Absent fields are empty.
func WriteCSV(path string, items []*grail.Item) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(CSVHeader); err != nil {
		return err
	}
	for _, it := range items {
		row := []string{
			it.Name,
			string(it.Category),
			it.Subcategory,
			it.SetName,
			string(it.Tier),
			it.Variant,
			it.SourceURL,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	return writeOutput(path, buf.Bytes())
}

func writeOutput(path string, data []byte) error {
	// Create parent directories
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return writeFileAtomic(path, data)
}
