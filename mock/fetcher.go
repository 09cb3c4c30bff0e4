package mock

import (
	"context"

	"github.com/fwojciec/grail"
)

var _ grail.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of grail.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

var _ grail.PageFetcher = (*PageFetcher)(nil)

// PageFetcher is a mock implementation of grail.PageFetcher.
type PageFetcher struct {
	FetchPageFn func(ctx context.Context, title string) (*grail.Page, error)
}

func (f *PageFetcher) FetchPage(ctx context.Context, title string) (*grail.Page, error) {
	return f.FetchPageFn(ctx, title)
}

var _ grail.PageAPI = (*PageAPI)(nil)

// PageAPI is a mock implementation of grail.PageAPI.
type PageAPI struct {
	RenderedFn func(ctx context.Context, title string) (string, error)
	RawFn      func(ctx context.Context, title string) (string, error)
	PageURLFn  func(title string) string
}

func (a *PageAPI) Rendered(ctx context.Context, title string) (string, error) {
	return a.RenderedFn(ctx, title)
}

func (a *PageAPI) Raw(ctx context.Context, title string) (string, error) {
	return a.RawFn(ctx, title)
}

func (a *PageAPI) PageURL(title string) string {
	return a.PageURLFn(title)
}
