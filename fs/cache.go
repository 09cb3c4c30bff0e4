// Package fs provides file-based storage: the page cache and the catalog
// output files.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/fwojciec/grail"
)

// Ensure Cache implements grail.CacheStore at compile time.
var _ grail.CacheStore = (*Cache)(nil)

// CacheEntry is one stored piece of fetched content.
type CacheEntry struct {
	Key       string
	Content   string
	FetchedAt time.Time
}

// Cache implements grail.CacheStore with one file per key. An entry's
// freshness is the modification time of its file.
type Cache struct {
	dir string

	// Now returns the current time. Replaceable in tests.
	Now func() time.Time
}

// NewCache creates a Cache storing files under dir. The directory is
// created on first write.
func NewCache(dir string) *Cache {
	return &Cache{
		dir: dir,
		Now: time.Now,
	}
}

var unsafeKeyRe = regexp.MustCompile(`[^A-Za-z0-9_.()-]`)

// SanitizeKey replaces every character outside [A-Za-z0-9_.()-] with an
// underscore so the key is usable as a file name.
func SanitizeKey(key string) string {
	return unsafeKeyRe.ReplaceAllString(key, "_")
}

// Path returns the file path backing key.
func (c *Cache) Path(key string) string {
	return filepath.Join(c.dir, SanitizeKey(key))
}

// Entry returns the stored entry for key regardless of its age.
// Returns ENOTFOUND if nothing is stored.
func (c *Cache) Entry(key string) (*CacheEntry, error) {
	path := c.Path(key)
	info, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, grail.Errorf(grail.ENOTFOUND, "no cache entry for %q", key)
	} else if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &CacheEntry{
		Key:       key,
		Content:   string(data),
		FetchedAt: info.ModTime(),
	}, nil
}

// GetOrFetch returns the stored content for key if it is younger than
// policy.TTL and policy.Refresh is unset. Otherwise it calls fetch, stores
// the result and returns it. Fetch errors are returned unwrapped and empty
// content is never stored.
func (c *Cache) GetOrFetch(ctx context.Context, key string, policy grail.CachePolicy, fetch grail.FetchFunc) (string, error) {
	if !policy.Refresh {
		if content, ok := c.fresh(key, policy.TTL); ok {
			return content, nil
		}
	}

	content, err := fetch(ctx)
	if err != nil {
		return "", err
	}
	if content == "" {
		return "", nil
	}

	if err := c.put(key, content); err != nil {
		return "", fmt.Errorf("cache %s: %w", key, err)
	}
	return content, nil
}

func (c *Cache) fresh(key string, ttl time.Duration) (string, bool) {
	entry, err := c.Entry(key)
	if err != nil {
		return "", false
	}
	if c.Now().Sub(entry.FetchedAt) >= ttl {
		return "", false
	}
	return entry.Content, true
}

func (c *Cache) put(key, content string) error {
	if err := os.MkdirAll(c.dir, 0755); err != nil {
		return err
	}
	return writeFileAtomic(c.Path(key), []byte(content))
}

// writeFileAtomic writes data to a temporary file next to path and renames
// it into place, so readers never observe a partial file.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}
