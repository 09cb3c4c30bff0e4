package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/grail"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ grail.ItemService = (*ItemService)(nil)

// ItemService implements grail.ItemService using SQLite. It holds exactly
// one catalog: each ReplaceItems call swaps out the previous run.
type ItemService struct {
	db  *DB
	now func() time.Time
}

// NewItemService creates a new ItemService.
func NewItemService(db *DB) *ItemService {
	return &ItemService{db: db, now: time.Now}
}

// ReplaceItems validates items and stores them as the catalog of runID in a
// single transaction. On any error the previous catalog is kept.
func (s *ItemService) ReplaceItems(ctx context.Context, runID string, items []*grail.Item) error {
	if runID == "" {
		return grail.Errorf(grail.EINVALID, "run id required")
	}
	for _, it := range items {
		if err := it.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM items"); err != nil {
		return fmt.Errorf("clear items: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO items (id, run_id, position, name, category, subcategory, set_name, tier, variant, source_url, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	createdAt := s.now().UTC().Format(time.RFC3339)
	for i, it := range items {
		if _, err := stmt.ExecContext(ctx, uuid.NewString(), runID, i, it.Name, string(it.Category),
			it.Subcategory, it.SetName, string(it.Tier), it.Variant, it.SourceURL, createdAt); err != nil {
			return fmt.Errorf("insert item %q: %w", it.Name, err)
		}
	}

	return tx.Commit()
}

// FindItems retrieves stored items matching the filter, in catalog order.
func (s *ItemService) FindItems(ctx context.Context, filter grail.ItemFilter) ([]*grail.Item, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT name, category, subcategory, set_name, tier, variant, source_url FROM items WHERE 1=1")

	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.Category != nil {
		query.WriteString(" AND category = ?")
		args = append(args, string(*filter.Category))
	}
	if filter.Tier != nil {
		query.WriteString(" AND tier = ?")
		args = append(args, string(*filter.Tier))
	}
	if filter.SetName != nil {
		query.WriteString(" AND set_name = ? COLLATE NOCASE")
		args = append(args, *filter.SetName)
	}

	query.WriteString(" ORDER BY position ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []*grail.Item
	for rows.Next() {
		var it grail.Item
		var category, tier string
		if err := rows.Scan(&it.Name, &category, &it.Subcategory, &it.SetName, &tier, &it.Variant, &it.SourceURL); err != nil {
			return nil, err
		}
		it.Category = grail.Category(category)
		it.Tier = grail.Tier(tier)
		items = append(items, &it)
	}
	return items, rows.Err()
}

// LastRun returns the id and store time of the stored catalog.
// Returns ENOTFOUND when nothing has been stored yet.
func (s *ItemService) LastRun(ctx context.Context) (string, time.Time, error) {
	var runID, createdAt string
	err := s.db.QueryRowContext(ctx, `
		SELECT run_id, created_at FROM items ORDER BY position ASC LIMIT 1
	`).Scan(&runID, &createdAt)
	if err == sql.ErrNoRows {
		return "", time.Time{}, grail.Errorf(grail.ENOTFOUND, "no stored catalog")
	}
	if err != nil {
		return "", time.Time{}, err
	}

	t, err := parseRFC3339(createdAt, "created_at")
	if err != nil {
		return "", time.Time{}, err
	}
	return runID, t, nil
}
