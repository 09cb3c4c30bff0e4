package mock

import (
	"context"

	"github.com/fwojciec/grail"
)

var _ grail.ItemService = (*ItemService)(nil)

// ItemService is a mock implementation of grail.ItemService.
type ItemService struct {
	ReplaceItemsFn func(ctx context.Context, runID string, items []*grail.Item) error
	FindItemsFn    func(ctx context.Context, filter grail.ItemFilter) ([]*grail.Item, error)
}

func (s *ItemService) ReplaceItems(ctx context.Context, runID string, items []*grail.Item) error {
	return s.ReplaceItemsFn(ctx, runID, items)
}

func (s *ItemService) FindItems(ctx context.Context, filter grail.ItemFilter) ([]*grail.Item, error) {
	return s.FindItemsFn(ctx, filter)
}
